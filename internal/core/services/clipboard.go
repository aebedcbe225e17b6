package services

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/iajur-cli/internal/core/ports/driven"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure SystemClipboard implements the interface.
var _ driven.Clipboard = SystemClipboard{}

// SystemClipboard copies text using the platform clipboard utility.
type SystemClipboard struct{}

// Copy copies text to the system clipboard using OS-specific commands.
func (SystemClipboard) Copy(text string) error {
	cmd, err := clipboardCommand(runtime.GOOS, exec.LookPath)
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// clipboardCommand picks the clipboard command for goos.
func clipboardCommand(goos string, lookPath func(string) (string, error)) (*exec.Cmd, error) {
	switch goos {
	case osDarwin:
		return exec.Command("pbcopy"), nil
	case osLinux:
		// Try xclip first, fall back to xsel
		if _, err := lookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard"), nil
		}
		if _, err := lookPath("xsel"); err == nil {
			return exec.Command("xsel", "--clipboard", "--input"), nil
		}
		return nil, fmt.Errorf("no clipboard utility found (install xclip or xsel)")
	case osWindows:
		return exec.Command("cmd", "/c", "clip"), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
