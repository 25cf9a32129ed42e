package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the formica banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text, color string
	}{
		{"   __                     _           ", "#fbbf24"},
		{"  / _| ___  _ __ _ __ ___ (_) ___ __ _ ", "#f59e0b"},
		{" | |_ / _ \\| '__| '_ ` _ \\| |/ __/ _` |", "#ea580c"},
		{" |  _| (_) | |  | | | | | | | (_| (_| |", "#dc2626"},
		{" |_|  \\___/|_|  |_| |_| |_|_|\\___\\__,_|", "#b91c1c"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
