package screen

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/xkilldash9x/deskpilot/api/schemas"
)

// SystemInjector synthesizes input by shelling out to the platform's
// automation tool: xdotool on X11 systems, PowerShell with user32
// mouse_event/SendKeys on Windows. Shelling out keeps the binary free of
// cgo and display-server linkage; each event costs one short-lived process,
// which is negligible next to the driver's poll intervals.
type SystemInjector struct {
	osType string
}

// NewSystemInjector returns an injector for the current platform.
func NewSystemInjector() *SystemInjector {
	return &SystemInjector{osType: runtime.GOOS}
}

// Supported reports whether the platform's injection tool is available.
func (in *SystemInjector) Supported() bool {
	if in.osType == "windows" {
		return true
	}
	_, err := exec.LookPath("xdotool")
	return err == nil
}

// Sleep implements Injector, honoring context cancellation.
func (in *SystemInjector) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// DispatchMouseEvent implements Injector.
func (in *SystemInjector) DispatchMouseEvent(ctx context.Context, data schemas.MouseEventData) error {
	if in.osType == "windows" {
		script, err := winMouseScript(data)
		if err != nil {
			return err
		}
		return in.runPowershell(ctx, script)
	}
	argSets, err := xdoMouseArgs(data)
	if err != nil {
		return err
	}
	for _, args := range argSets {
		if err := in.run(ctx, "xdotool", args...); err != nil {
			return err
		}
	}
	return nil
}

// DispatchKeyEvent implements Injector. A KeyTap with a hold duration is
// expanded into a down, a context-aware sleep, and an up, so the hold obeys
// cancellation like every other wait.
func (in *SystemInjector) DispatchKeyEvent(ctx context.Context, data schemas.KeyEventData) error {
	if data.Type == schemas.KeyTap && data.Hold > 0 {
		if err := in.DispatchKeyEvent(ctx, schemas.KeyEventData{Type: schemas.KeyDown, Key: data.Key}); err != nil {
			return err
		}
		if err := in.Sleep(ctx, data.Hold); err != nil {
			return err
		}
		return in.DispatchKeyEvent(ctx, schemas.KeyEventData{Type: schemas.KeyUp, Key: data.Key})
	}

	if in.osType == "windows" {
		script, err := winKeyScript(data)
		if err != nil {
			return err
		}
		return in.runPowershell(ctx, script)
	}

	var action string
	switch data.Type {
	case schemas.KeyDown:
		action = "keydown"
	case schemas.KeyUp:
		action = "keyup"
	case schemas.KeyTap:
		action = "key"
	default:
		return fmt.Errorf("unknown key event type %q", data.Type)
	}
	return in.run(ctx, "xdotool", action, data.Key)
}

// TypeText implements Injector. Pacing is derived from the words-per-minute
// rate at the usual five characters per word.
func (in *SystemInjector) TypeText(ctx context.Context, text string, wpm float64) error {
	if text == "" {
		return nil
	}
	delay := charDelay(wpm)
	if in.osType == "windows" {
		return in.runPowershell(ctx, winTypeScript(text, delay))
	}
	return in.run(ctx, "xdotool", "type", "--delay", strconv.Itoa(int(delay.Milliseconds())), "--", text)
}

func (in *SystemInjector) run(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w (output: %s)", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (in *SystemInjector) runPowershell(ctx context.Context, script string) error {
	return in.run(ctx, "powershell", "-NoProfile", "-Command", script)
}

// charDelay converts a words-per-minute rate into a per-character delay,
// falling back to 60 wpm for non-positive rates.
func charDelay(wpm float64) time.Duration {
	if wpm <= 0 {
		wpm = 60
	}
	perChar := 60.0 / (wpm * 5)
	return time.Duration(perChar * float64(time.Second))
}

// xdoButton maps a mouse button onto xdotool's button numbering.
func xdoButton(b schemas.MouseButton) (string, error) {
	switch b {
	case schemas.ButtonLeft, schemas.ButtonNone:
		return "1", nil
	case schemas.ButtonMiddle:
		return "2", nil
	case schemas.ButtonRight:
		return "3", nil
	default:
		return "", fmt.Errorf("unknown mouse button %q", b)
	}
}

// xdoMouseArgs translates a mouse event into one or more xdotool argument
// lists. Wheel events expand into one click per notch on button 4 (up) or
// 5 (down).
func xdoMouseArgs(data schemas.MouseEventData) ([][]string, error) {
	switch data.Type {
	case schemas.MouseMove:
		return [][]string{{"mousemove", strconv.Itoa(int(data.X)), strconv.Itoa(int(data.Y))}}, nil
	case schemas.MousePress:
		btn, err := xdoButton(data.Button)
		if err != nil {
			return nil, err
		}
		return [][]string{{"mousedown", btn}}, nil
	case schemas.MouseRelease:
		btn, err := xdoButton(data.Button)
		if err != nil {
			return nil, err
		}
		return [][]string{{"mouseup", btn}}, nil
	case schemas.MouseWheel:
		notches := int(data.DeltaY)
		wheelButton := "5"
		if notches < 0 {
			notches = -notches
			wheelButton = "4"
		}
		if notches == 0 {
			return nil, nil
		}
		return [][]string{{"click", "--repeat", strconv.Itoa(notches), wheelButton}}, nil
	default:
		return nil, fmt.Errorf("unknown mouse event type %q", data.Type)
	}
}
