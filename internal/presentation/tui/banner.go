package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text, colour string
}{
	{`             _       _                                 `, "#4ade80"},
	{`  _ __ ___  (_)_ __ (_)_ __ ___   __ ___  __ __   __(_)____`, "#86efac"},
	{` | '_ ' _ \ | | '_ \| | '_ ' _ \ / _' \ \/ / \ \ / /| |_  /`, "#fde68a"},
	{` | | | | | || | | | | | | | | | | (_| |>  <   \ V / | |/ / `, "#fdba74"},
	{` |_| |_| |_||_|_| |_|_|_| |_| |_|\__,_/_/\_\   \_/  |_/___|`, "#f87171"},
}

// PrintBanner writes the ASCII banner to w, coloured from max green to min red.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.colour)))
	}
	fmt.Fprintln(w)
}

// Badge colours a short label for line mode, following the node palette.
func Badge(label, colour string) string {
	return termenv.String(label).Foreground(termenv.ColorProfile().Color(colour)).Bold().String()
}
