// Package htmltext converts HTML documents to plain text for downstream
// chunking and LLM prompts.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags start a new line in the extracted text.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"table": true, "ul": true, "ol": true, "section": true, "article": true,
}

// skippedTags contribute no text at all.
var skippedTags = map[string]bool{
	"script": true, "style": true, "head": true, "noscript": true,
}

// Extract returns the visible text of an HTML document. Inline whitespace is
// collapsed; block elements become line breaks. Malformed HTML is handled
// leniently by the tokenizer, so this never fails on real-world input.
func Extract(rawHTML string) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	walk(doc, &sb)

	return normalize(sb.String()), nil
}

func walk(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode && skippedTags[n.Data] {
		return
	}

	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}

	if n.Type == html.ElementNode && blockTags[n.Data] {
		sb.WriteString("\n")
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, sb)
	}

	if n.Type == html.ElementNode && blockTags[n.Data] {
		sb.WriteString("\n")
	}
}

// normalize collapses runs of spaces and blank lines.
func normalize(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
