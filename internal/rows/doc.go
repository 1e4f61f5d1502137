// Package rows extracts table-row text from an HTML document.
//
// The package isolates tr elements, drops the leading header row, and
// flattens each remaining row's cell text into a single space-separated
// string for the coordinate parser.
package rows
