package rows

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Extract returns the flattened text of every table row on the page except
// the first, which is assumed to be a header and dropped unconditionally.
// Only tr elements are considered. A page with no rows at all returns a nil
// slice and no error; the caller decides that nothing is worth rendering.
func Extract(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var texts []string
	doc.Find("tr").Each(func(_ int, sel *goquery.Selection) {
		texts = append(texts, flatten(sel))
	})

	if len(texts) == 0 {
		return nil, nil
	}

	// Drop the header row, even when it is the only one.
	return texts[1:], nil
}

// flatten joins the trimmed text nodes under a selection with single spaces,
// collapsing cell boundaries to one separator.
func flatten(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}
