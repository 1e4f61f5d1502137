package grid

import (
	"fmt"
	"io"
)

// Render writes the grid one line per row, highest y first, so (0, 0) lands
// at the bottom-left corner of the output.
func Render(w io.Writer, g [][]rune) {
	for y := len(g) - 1; y >= 0; y-- {
		fmt.Fprintln(w, string(g[y]))
	}
}
