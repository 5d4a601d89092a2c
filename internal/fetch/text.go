package fetch

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

const noiseSelector = "script, style, noscript, template, svg, iframe, head"

var (
	mdImage      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	mdLink       = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)(?:\s+"[^"]*")?\)`)
	mdHeading    = regexp.MustCompile(`(?m)^\s*#{1,6}\s*`)
	mdQuote      = regexp.MustCompile(`(?m)^\s*>\s?`)
	mdListMarker = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	mdEmphasis   = regexp.MustCompile("\\*\\*|__|`{1,3}")
	mdRule       = regexp.MustCompile(`(?m)^\s*(?:-{3,}|\*{3,}|_{3,})\s*$`)
	mdEscape     = regexp.MustCompile(`\\([\\` + "`" + `*_{}\[\]()#+\-.!|<>])`)
)

// ExtractText converts an HTML document to newline separated visible text.
// Markdown conversion is preferred because it keeps link targets; the DOM
// text is used when conversion fails or yields nothing.
func ExtractText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find(noiseSelector).Remove()

	if cleaned, err := doc.Html(); err == nil {
		if md, err := htmltomarkdown.ConvertString(cleaned); err == nil {
			if text := markdownToText(md); text != "" {
				return text
			}
		}
	}
	return compactLines(doc.Find("body").Text())
}

func markdownToText(md string) string {
	md = mdImage.ReplaceAllString(md, "")
	md = mdLink.ReplaceAllString(md, "$1 $2")
	md = mdRule.ReplaceAllString(md, "")
	md = mdHeading.ReplaceAllString(md, "")
	md = mdQuote.ReplaceAllString(md, "")
	md = mdListMarker.ReplaceAllString(md, "")
	md = mdEmphasis.ReplaceAllString(md, "")
	md = mdEscape.ReplaceAllString(md, "$1")
	return compactLines(md)
}

// compactLines trims every line, splits runs of double spaces into separate
// lines and drops blank ones.
func compactLines(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		for _, chunk := range strings.Split(line, "  ") {
			if chunk = strings.TrimSpace(chunk); chunk != "" {
				out = append(out, chunk)
			}
		}
	}
	return strings.Join(out, "\n")
}
