package service

import (
	"strings"

	"golang.org/x/net/html"
)

// skippedElements are subtrees that carry no searchable page text.
var skippedElements = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"iframe":   {},
	"svg":      {},
	"head":     {},
}

// ExtractText pulls the visible text out of an HTML document, collapsing
// runs of whitespace to single spaces. Input that fails to parse as HTML
// is returned trimmed as-is, since the extension may already have
// stripped the markup client-side.
func ExtractText(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return collapseWhitespace(raw)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, skip := skippedElements[n.Data]; skip {
				return
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return collapseWhitespace(b.String())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
