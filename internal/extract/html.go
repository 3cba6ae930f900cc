package extract

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// blockSelectors end a line in the extracted text
const blockSelectors = "p, div, li, tr, h1, h2, h3, h4, h5, h6, section, article, header, footer, blockquote, pre, dt, dd"

// HTMLExtractor extracts visible text from HTML résumés (e.g. "Save as web page" exports)
type HTMLExtractor struct{}

func (e *HTMLExtractor) SupportedFormats() []string { return []string{"html", "htm"} }

func (e *HTMLExtractor) Extract(_ context.Context, data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Remove elements that never carry résumé content
	doc.Find("script, style, noscript, template, head").Remove()

	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockSelectors).AppendHtml("\n")
	doc.Find("td, th").AppendHtml(" ")

	body := doc.Find("body")
	if body.Length() == 0 {
		return doc.Text(), nil
	}
	return body.Text(), nil
}
