package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/deskpilot/internal/config"
	"github.com/xkilldash9x/deskpilot/internal/geometry"
	"github.com/xkilldash9x/deskpilot/internal/observability"
)

// stubSession replaces display detection with a fixed virtual display and
// silences the global logger, so command tests run without hardware.
func stubSession(t *testing.T) {
	t.Helper()

	observability.ResetForTest()
	observability.InitializeLogger(config.LoggerConfig{
		Level: "fatal", Format: "console", ServiceName: "test",
	})

	origDetect := detectDisplay
	detectDisplay = func(index int, scale float64) (geometry.Display, error) {
		return geometry.NewDisplay(1920, 1080, scale), nil
	}
	cachedDisplay, displayDetected = geometry.Display{}, false

	t.Cleanup(func() {
		detectDisplay = origDetect
		cachedDisplay, displayDetected = geometry.Display{}, false
		observability.ResetForTest()
	})
}

// executeCommand runs a fresh command tree against the given arguments and
// captures its combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func createTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigFlagOverride(t *testing.T) {
	stubSession(t)

	configContent := `
display:
  scale: 1.25
motion:
  profile: direct
input:
  typing_wpm: 90
`
	configFile := createTempConfig(t, configContent)

	// Build the tree by hand so the test can reach the viper the click
	// command will materialize its config from.
	root, v := newRootCommand()
	var clickCmd *cobra.Command
	for _, c := range root.Commands() {
		if c.Use == "click" {
			clickCmd = c
			break
		}
	}
	require.NotNil(t, clickCmd)

	// Intercept RunE so the test stops after config materialization
	// instead of firing real input.
	var captured *config.Config
	clickCmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewConfigFromViper(v)
		if err != nil {
			return err
		}
		captured = cfg
		return nil
	}

	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"--config", configFile, "--scale", "1.75", "click", "--point", "10,10"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	require.NotNil(t, captured)

	// Flag beats file, file beats default, untouched defaults survive.
	assert.Equal(t, 1.75, captured.Display().Scale)
	assert.Equal(t, "direct", captured.Motion().Profile)
	assert.Equal(t, 90.0, captured.Input().TypingWPM)
	assert.Equal(t, 1*time.Second, captured.Verify().Timeout)
}

func TestTargetFlagValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "no target given",
			args:    []string{"click"},
			wantErr: "one of --template or --point is required",
		},
		{
			name:    "template and point together",
			args:    []string{"click", "--template", "button.png", "--point", "10,10"},
			wantErr: "--template and --point are mutually exclusive",
		},
		{
			name:    "malformed point",
			args:    []string{"click", "--point", "10"},
			wantErr: `point "10": want 'x,y'`,
		},
		{
			name:    "malformed zone",
			args:    []string{"click", "--point", "10,10", "--zone", "1,2,3"},
			wantErr: `zone "1,2,3": want 'x,y,w,h'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubSession(t)
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClickCmdUnknownButton(t *testing.T) {
	stubSession(t)

	_, err := executeCommand(t, "click", "--point", "10,10", "--button", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown mouse button "bogus"`)
}

func TestInputCmdRequiresText(t *testing.T) {
	stubSession(t)

	output, err := executeCommand(t, "input", "--point", "10,10")
	require.Error(t, err)
	assert.Contains(t, output, `required flag(s) "text" not set`)
}

func TestScrollCmdUnknownDirection(t *testing.T) {
	stubSession(t)

	_, err := executeCommand(t, "scroll", "--point", "10,10", "--direction", "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown scroll direction "sideways"`)
}

func TestScrollCmdSeekAndToEndExclusive(t *testing.T) {
	stubSession(t)

	_, err := executeCommand(t, "scroll", "--point", "10,10", "--seek", "needle.png", "--to-end")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--seek and --to-end are mutually exclusive")
}
