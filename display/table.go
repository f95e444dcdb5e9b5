package display

import (
	"github.com/pterm/pterm"
)

// Table prints rows under a header using pterm's boxed table
func Table(header []string, rows [][]string) error {
	data := pterm.TableData{header}
	data = append(data, rows...)
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
}

// KeyValues prints aligned key/value pairs, one per line
func KeyValues(pairs [][2]string) {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	for _, p := range pairs {
		pterm.Printf("%-*s  %s\n", width, pterm.Gray(p[0]), p[1])
	}
}
