// Package terminal provides helpers for terminal-specific behavior.
package terminal

import (
	"fmt"
	"io"
	"path/filepath"
)

// SetTitle sets the terminal window title using an ANSI escape sequence.
func SetTitle(w io.Writer, title string) {
	if w == nil || title == "" {
		return
	}

	//nolint:errcheck
	_, _ = fmt.Fprintf(w, "\033]0;%s\007", title)
}

// DirTitle is the window title shown while working in dir
func DirTitle(app, dir string) string {
	base := filepath.Base(dir)
	if base == string(filepath.Separator) || base == "." {
		base = dir
	}

	return fmt.Sprintf("%s: %s", app, base)
}
