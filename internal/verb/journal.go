package verb

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"

	json "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/deskpilot/api/schemas"
	"github.com/xkilldash9x/deskpilot/internal/geometry"
	"github.com/xkilldash9x/deskpilot/internal/vision"
)

// journalFile is the append-only record of fired actions inside the
// journal directory.
const journalFile = "actions.jsonl"

// Journal persists one ActionRecord per fired verb as a line of JSON,
// optionally alongside the reference frame with the watched zone
// outlined. It exists to make "why did this run misbehave" answerable
// after the fact.
type Journal struct {
	mu         sync.Mutex
	dir        string
	display    geometry.Display
	saveFrames bool
	logger     *zap.Logger
}

// NewJournal creates a journal writing under dir, creating it as needed.
// An empty dir yields a disabled journal that records nothing.
func NewJournal(dir string, display geometry.Display, saveFrames bool, logger *zap.Logger) (*Journal, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir == "" {
		return &Journal{logger: logger}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}
	return &Journal{
		dir:        dir,
		display:    display,
		saveFrames: saveFrames,
		logger:     logger,
	}, nil
}

// Enabled reports whether records are being persisted.
func (j *Journal) Enabled() bool {
	return j != nil && j.dir != ""
}

// Record appends rec to the journal. When frame saving is on and a
// reference frame is supplied, the frame is written next to the record
// with the watched zone outlined in red. Journal failures are logged and
// swallowed: losing a debug artifact must not fail the action that
// produced it.
func (j *Journal) Record(rec schemas.ActionRecord, before *image.RGBA, zone geometry.Rect) {
	if !j.Enabled() {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.appendRecord(rec); err != nil {
		j.logger.Warn("failed to append action record",
			zap.String("action_id", rec.ID),
			zap.Error(err))
	}

	if !j.saveFrames || before == nil {
		return
	}
	outlined := vision.OutlineRegion(before, zone.Physical(j.display), color.RGBA{R: 255, A: 255})
	path := filepath.Join(j.dir, rec.ID+"_before.png")
	if err := vision.EncodePNG(path, outlined); err != nil {
		j.logger.Warn("failed to save reference frame",
			zap.String("action_id", rec.ID),
			zap.Error(err))
	}
}

func (j *Journal) appendRecord(rec schemas.ActionRecord) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding action record: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(j.dir, journalFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("writing journal: %w", err)
	}
	return f.Close()
}
