package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the dropzone banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct{ text, color string }{
		{"      _                                   ", "#22d3ee"},
		{"   __| |_ __ ___  _ __  _______  _ __   ___ ", "#38bdf8"},
		{"  / _` | '__/ _ \\| '_ \\|_  / _ \\| '_ \\ / _ \\", "#60a5fa"},
		{" | (_| | | | (_) | |_) |/ / (_) | | | |  __/", "#818cf8"},
		{"  \\__,_|_|  \\___/| .__//___\\___/|_| |_|\\___|", "#a78bfa"},
		{"                 |_|                        ", "#c084fc"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
