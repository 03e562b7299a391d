package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/deskpilot/api/schemas"
	"github.com/xkilldash9x/deskpilot/internal/config"
	"github.com/xkilldash9x/deskpilot/internal/geometry"
	"github.com/xkilldash9x/deskpilot/internal/motion"
)

func TestParsePoint(t *testing.T) {
	display := geometry.NewDisplay(1920, 1080, 1.0)

	t.Run("valid spec", func(t *testing.T) {
		p, err := parsePoint(display, "120.5, 64")
		require.NoError(t, err)
		assert.Equal(t, 120.5, p.X.Float())
		assert.Equal(t, 64.0, p.Y.Float())
	})

	t.Run("wrong arity", func(t *testing.T) {
		_, err := parsePoint(display, "120")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "want 'x,y'")
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := parsePoint(display, "abc,64")
		require.Error(t, err)
	})

	t.Run("outside the display", func(t *testing.T) {
		_, err := parsePoint(display, "5000,64")
		require.Error(t, err)
	})
}

func TestParseZone(t *testing.T) {
	display := geometry.NewDisplay(1920, 1080, 1.0)

	t.Run("valid spec", func(t *testing.T) {
		zone, err := parseZone(display, "100,200,300,150")
		require.NoError(t, err)
		assert.Equal(t, 100.0, zone.Origin.X.Float())
		assert.Equal(t, 200.0, zone.Origin.Y.Float())
		assert.Equal(t, 300.0, zone.Width)
		assert.Equal(t, 150.0, zone.Height)
	})

	t.Run("wrong arity", func(t *testing.T) {
		_, err := parseZone(display, "100,200,300")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "want 'x,y,w,h'")
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := parseZone(display, "100,200,abc,150")
		require.Error(t, err)
	})
}

func TestParseButton(t *testing.T) {
	tests := []struct {
		spec    string
		want    schemas.MouseButton
		wantErr bool
	}{
		{spec: "left", want: schemas.ButtonLeft},
		{spec: "LEFT", want: schemas.ButtonLeft},
		{spec: "right", want: schemas.ButtonRight},
		{spec: "middle", want: schemas.ButtonMiddle},
		{spec: "fourth", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := parseButton(tt.spec)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		spec    string
		want    schemas.ScrollDirection
		wantErr bool
	}{
		{spec: "up", want: schemas.ScrollUp},
		{spec: "down", want: schemas.ScrollDown},
		{spec: "Down", want: schemas.ScrollDown},
		{spec: "sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := parseDirection(tt.spec)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoverConfigProfile(t *testing.T) {
	assert.Equal(t, motion.ProfileDirect, moverConfig(config.MotionConfig{Profile: "direct"}).Profile)
	assert.Equal(t, motion.ProfileHuman, moverConfig(config.MotionConfig{Profile: "human"}).Profile)
	assert.Equal(t, motion.ProfileHuman, moverConfig(config.MotionConfig{Profile: ""}).Profile)
}

func TestSessionDisplayCache(t *testing.T) {
	calls := 0
	orig := detectDisplay
	detectDisplay = func(index int, scale float64) (geometry.Display, error) {
		calls++
		return geometry.NewDisplay(1920, 1080, scale), nil
	}
	cachedDisplay, displayDetected = geometry.Display{}, false
	t.Cleanup(func() {
		detectDisplay = orig
		cachedDisplay, displayDetected = geometry.Display{}, false
	})

	dcfg := config.DisplayConfig{Index: 0, Scale: 1.0}

	_, err := sessionDisplay(dcfg)
	require.NoError(t, err)
	_, err = sessionDisplay(dcfg)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "geometry should be detected once and reused")

	dcfg.RedetectPerFire = true
	_, err = sessionDisplay(dcfg)
	require.NoError(t, err)
	_, err = sessionDisplay(dcfg)
	require.NoError(t, err)
	assert.Equal(t, 3, calls, "redetect_per_fire should force a fresh read every time")
}
