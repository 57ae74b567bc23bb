package ingestion

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// htmlCellGap separates table cells so tables read like columns.
const htmlCellGap = "        "

var (
	htmlBlockTags = map[string]bool{
		"p": true, "div": true, "section": true, "article": true, "header": true, "footer": true,
		"main": true, "aside": true, "ul": true, "ol": true, "li": true, "table": true, "tr": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
		"dl": true, "dt": true, "dd": true, "blockquote": true, "pre": true, "hr": true, "address": true,
	}
	htmlSpace = regexp.MustCompile(`\s+`)
)

// extractHTML renders the visible text of an HTML résumé, one block element per line.
func extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, nav, template, head").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var b strings.Builder
	renderHTML(&b, root)

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n"), nil
}

func renderHTML(b *strings.Builder, sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		node := child.Get(0)
		switch node.Type {
		case html.TextNode:
			b.WriteString(htmlSpace.ReplaceAllString(node.Data, " "))
		case html.ElementNode:
			tag := goquery.NodeName(child)
			switch tag {
			case "br":
				b.WriteByte('\n')
				return
			case "td", "th":
				renderHTML(b, child)
				b.WriteString(htmlCellGap)
				return
			}

			block := htmlBlockTags[tag]
			if block {
				b.WriteByte('\n')
			}
			if tag == "li" {
				b.WriteString("• ")
			}
			renderHTML(b, child)
			if block {
				b.WriteByte('\n')
			}
		}
	})
}
