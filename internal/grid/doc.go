// Package grid turns extracted table-row text into a rendered character grid.
//
// The package covers the back half of the gridscrape pipeline: ExtractPoints
// pulls (x, y) coordinates and labels out of row text with digit-run
// heuristics, Build places the labels into a bounding-box character buffer,
// and Render prints the buffer bottom-up so the coordinate origin appears at
// the bottom-left. Malformed rows are skipped and reported, never fatal.
package grid
