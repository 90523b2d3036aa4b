package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Eleusis ASCII art banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Card-table greens fading into gold
	lines := []struct{ text, color string }{
		{"  _____ _                _     ", "#10b981"},
		{" | ____| | ___ _   _ ___(_)___ ", "#34d399"},
		{" |  _| | |/ _ \\ | | / __| / __|", "#a3e635"},
		{" | |___| |  __/ |_| \\__ \\ \\__ \\", "#facc15"},
		{" |_____|_|\\___|\\__,_|___/_|___/", "#f59e0b"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
