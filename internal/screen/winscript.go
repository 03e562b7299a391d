package screen

import (
	"fmt"
	"strings"
	"time"

	"github.com/xkilldash9x/deskpilot/api/schemas"
)

// user32Shim is the PowerShell prelude shared by every Windows injection
// script: it loads the Forms assembly for cursor and SendKeys access and
// compiles a small user32 wrapper for raw mouse and keyboard events.
const user32Shim = `
Add-Type -AssemblyName System.Windows.Forms
Add-Type -TypeDefinition '
using System;
using System.Runtime.InteropServices;
public class U32 {
    [DllImport("user32.dll")]
    public static extern void mouse_event(uint dwFlags, uint dx, uint dy, uint dwData, IntPtr dwExtraInfo);
    [DllImport("user32.dll")]
    public static extern void keybd_event(byte bVk, byte bScan, uint dwFlags, IntPtr dwExtraInfo);
    public static void Wheel(int delta) { mouse_event(0x0800, 0, 0, unchecked((uint)delta), IntPtr.Zero); }
    public static void Key(byte vk, bool up) { keybd_event(vk, 0, up ? 2u : 0u, IntPtr.Zero); }
}
'
`

// Windows mouse_event flag pairs per button: press flag, release flag.
var winButtonFlags = map[schemas.MouseButton][2]string{
	schemas.ButtonLeft:   {"0x02", "0x04"},
	schemas.ButtonNone:   {"0x02", "0x04"},
	schemas.ButtonRight:  {"0x08", "0x10"},
	schemas.ButtonMiddle: {"0x20", "0x40"},
}

// winMouseScript renders one mouse event as a PowerShell script.
func winMouseScript(data schemas.MouseEventData) (string, error) {
	switch data.Type {
	case schemas.MouseMove:
		return user32Shim + fmt.Sprintf(
			"[System.Windows.Forms.Cursor]::Position = [System.Drawing.Point]::new(%d, %d)",
			int(data.X), int(data.Y)), nil
	case schemas.MousePress, schemas.MouseRelease:
		flags, ok := winButtonFlags[data.Button]
		if !ok {
			return "", fmt.Errorf("unknown mouse button %q", data.Button)
		}
		flag := flags[0]
		if data.Type == schemas.MouseRelease {
			flag = flags[1]
		}
		return user32Shim + fmt.Sprintf("[U32]::mouse_event(%s, 0, 0, 0, [IntPtr]::Zero)", flag), nil
	case schemas.MouseWheel:
		// Windows wheel deltas are 120 per notch, positive away from the
		// user; our positive DeltaY scrolls down, hence the sign flip.
		return user32Shim + fmt.Sprintf("[U32]::Wheel(%d)", -int(data.DeltaY)*120), nil
	default:
		return "", fmt.Errorf("unknown mouse event type %q", data.Type)
	}
}

// winVirtualKeys maps the keysym vocabulary onto Windows virtual-key codes
// for raw down/up events.
var winVirtualKeys = map[string]int{
	schemas.KeyReturn:    0x0D,
	schemas.KeyTab:       0x09,
	schemas.KeyEscape:    0x1B,
	schemas.KeyBackSpace: 0x08,
	schemas.KeySpace:     0x20,
	schemas.KeyPageUp:    0x21,
	schemas.KeyPageDown:  0x22,
	schemas.KeyEnd:       0x23,
	schemas.KeyHome:      0x24,
}

// winSendKeysTokens maps the keysym vocabulary onto SendKeys tokens for
// simple taps.
var winSendKeysTokens = map[string]string{
	schemas.KeyReturn:    "{ENTER}",
	schemas.KeyTab:       "{TAB}",
	schemas.KeyEscape:    "{ESC}",
	schemas.KeyBackSpace: "{BACKSPACE}",
	schemas.KeySpace:     " ",
	schemas.KeyPageUp:    "{PGUP}",
	schemas.KeyPageDown:  "{PGDN}",
	schemas.KeyEnd:       "{END}",
	schemas.KeyHome:      "{HOME}",
}

// winKeyScript renders one key event as a PowerShell script.
func winKeyScript(data schemas.KeyEventData) (string, error) {
	switch data.Type {
	case schemas.KeyTap:
		token, ok := winSendKeysTokens[data.Key]
		if !ok {
			return "", fmt.Errorf("no SendKeys token for key %q", data.Key)
		}
		return user32Shim + fmt.Sprintf("[System.Windows.Forms.SendKeys]::SendWait('%s')", psQuote(token)), nil
	case schemas.KeyDown, schemas.KeyUp:
		vk, ok := winVirtualKeys[data.Key]
		if !ok {
			return "", fmt.Errorf("no virtual key code for key %q", data.Key)
		}
		up := "$false"
		if data.Type == schemas.KeyUp {
			up = "$true"
		}
		return user32Shim + fmt.Sprintf("[U32]::Key(%d, %s)", vk, up), nil
	default:
		return "", fmt.Errorf("unknown key event type %q", data.Type)
	}
}

// winTypeScript renders paced literal typing: one SendWait per character
// with the per-character delay between them.
func winTypeScript(text string, delay time.Duration) string {
	tokens := make([]string, 0, len(text))
	for _, r := range text {
		tokens = append(tokens, "'"+psQuote(sendKeysEscape(r))+"'")
	}
	return user32Shim + fmt.Sprintf(`
$keys = @(%s)
foreach ($k in $keys) {
    [System.Windows.Forms.SendKeys]::SendWait($k)
    Start-Sleep -Milliseconds %d
}`, strings.Join(tokens, ", "), delay.Milliseconds())
}

// sendKeysEscape wraps SendKeys metacharacters in braces so they type
// literally.
func sendKeysEscape(r rune) string {
	switch r {
	case '+', '^', '%', '~', '(', ')', '{', '}', '[', ']':
		return "{" + string(r) + "}"
	default:
		return string(r)
	}
}

// psQuote doubles single quotes for embedding in a PowerShell
// single-quoted string.
func psQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
