package grid

import "fmt"

// Build allocates a space-filled grid large enough to hold every point and
// places the first character of each label at its (x, y). Points outside the
// computed bounds are dropped; later points overwrite earlier ones at the
// same cell. An empty point list yields a single-cell grid holding one space
// so callers always have something to render.
func Build(points []Point, labels []string) ([][]rune, error) {
	if len(points) != len(labels) {
		return nil, fmt.Errorf("coordinate/label length mismatch: %d vs %d", len(points), len(labels))
	}

	if len(points) == 0 {
		return [][]rune{{' '}}, nil
	}

	width, height := 0, 0
	for _, p := range points {
		if p.X+1 > width {
			width = p.X + 1
		}
		if p.Y+1 > height {
			height = p.Y + 1
		}
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid size computed: %dx%d", width, height)
	}

	g := make([][]rune, height)
	for y := range g {
		row := make([]rune, width)
		for x := range row {
			row[x] = ' '
		}
		g[y] = row
	}

	for i, p := range points {
		if p.X < 0 || p.Y < 0 || p.X >= width || p.Y >= height {
			continue
		}
		g[p.Y][p.X] = firstRune(labels[i])
	}

	return g, nil
}

// firstRune returns the label's first character, or a space for an empty label.
func firstRune(label string) rune {
	for _, r := range label {
		return r
	}
	return ' '
}
