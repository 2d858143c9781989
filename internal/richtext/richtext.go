// Package richtext cleans editor HTML before storage and derives plain-text
// excerpts for listings.
package richtext

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// ExcerptLength is the number of characters kept by Excerpt.
const ExcerptLength = 200

const blockedElements = "script, style, iframe, object, embed"

// policy allows the markup the editor produces. Everything else, including
// svg and math content, event handlers and script URLs, is dropped.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	return p
}

// Sanitize removes executable markup from an HTML fragment and returns the
// cleaned fragment.
func Sanitize(fragment string) string {
	return strings.TrimSpace(policy.Sanitize(fragment))
}

// Text returns the visible text of an HTML fragment with whitespace collapsed.
func Text(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	doc.Find(blockedElements).Remove()
	// Keep words in adjacent blocks apart.
	doc.Find("p, div, br, li, h1, h2, h3, h4, h5, h6, blockquote, pre").Each(func(_ int, s *goquery.Selection) {
		s.AppendNodes(&html.Node{Type: html.TextNode, Data: " "})
	})
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Excerpt returns at most ExcerptLength characters of the fragment's text,
// with an ellipsis when the text was cut.
func Excerpt(fragment string) string {
	text := []rune(Text(fragment))
	if len(text) <= ExcerptLength {
		return string(text)
	}
	return strings.TrimRightFunc(string(text[:ExcerptLength]), unicode.IsSpace) + "..."
}
