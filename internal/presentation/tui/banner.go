package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`                    _                       `, "#818cf8"},
	{`   __ _  ___  ___| |_ _   _ _ __ ___  ___ `, "#a78bfa"},
	{`  / _' |/ _ \/ __| __| | | | '__/ _ \/ __|`, "#c084fc"},
	{` | (_| |  __/\__ \ |_| |_| | | |  __/\__ \`, "#e879f9"},
	{`  \__, |\___||___/\__|\__,_|_|  \___||___/`, "#f472b6"},
	{`  |___/                                    `, "#fb7185"},
}

// PrintBanner writes the ASCII art banner to w, coloured when the terminal
// supports it.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, out.String(line.text).Foreground(out.Color(line.color)))
	}
	fmt.Fprintln(w)
}
