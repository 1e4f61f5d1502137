package grid

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	digitRun    = regexp.MustCompile(`\d+`)
	nonDigitRun = regexp.MustCompile(`\D+`)
)

// Point is an (x, y) cell coordinate parsed from a table row.
type Point struct {
	X int
	Y int
}

// Skip records a row that could not be parsed into a coordinate pair.
type Skip struct {
	Row    int // 1-based position in the extracted row sequence
	Text   string
	Reason string
}

// ExtractPoints parses each row's text into an (x, y) coordinate and a label.
// The x value is the first maximal digit run in the text, the y value the
// second; the label is the remaining non-digit content. Rows that are empty
// after trimming are dropped silently; rows that fail extraction are dropped
// and reported in the returned skip list. The returned point and label slices
// always have equal length, one entry per successfully parsed row.
func ExtractPoints(rowTexts []string) ([]Point, []string, []Skip) {
	var (
		points []Point
		labels []string
		skips  []Skip
	)

	for i, text := range rowTexts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		runs := digitRun.FindAllString(text, -1)
		if len(runs) < 2 {
			skips = append(skips, Skip{Row: i + 1, Text: text, Reason: "missing at least two coordinates"})
			continue
		}

		x, errX := strconv.Atoi(runs[0])
		y, errY := strconv.Atoi(runs[1])
		if errX != nil || errY != nil {
			skips = append(skips, Skip{Row: i + 1, Text: text, Reason: "coordinate out of integer range"})
			continue
		}

		points = append(points, Point{X: x, Y: y})
		labels = append(labels, labelFor(text))
	}

	return points, labels, skips
}

// labelFor joins the trimmed non-digit runs of a row's text into its label.
// A row with no non-digit content gets a single-space label so the grid cell
// still receives a character.
func labelFor(text string) string {
	var parts []string
	for _, run := range nonDigitRun.FindAllString(text, -1) {
		if run = strings.TrimSpace(run); run != "" {
			parts = append(parts, run)
		}
	}
	if len(parts) == 0 {
		return " "
	}
	return strings.Join(parts, " ")
}
