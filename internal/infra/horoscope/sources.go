package horoscope

import (
	"bytes"
	nurl "net/url"
	"strings"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// Source is one external horoscope site.
type Source struct {
	Name   string
	URLFor func(slug string) string
}

// DefaultSources are the sites aggregated for the daily horoscope.
func DefaultSources() []Source {
	return []Source{
		{
			Name:   "Mail.ru",
			URLFor: func(slug string) string { return "https://horo.mail.ru/prediction/" + slug + "/today/" },
		},
		{
			Name:   "Rambler",
			URLFor: func(slug string) string { return "https://horoscopes.rambler.ru/" + slug + "/" },
		},
	}
}

// ExtractExcerpt pulls the article text out of a fetched page: readability
// first, a plain node walk when readability finds nothing. Empty string
// means the page had no usable text.
func ExtractExcerpt(body []byte, pageURL string, maxRunes int) string {
	var text string
	if u, err := nurl.Parse(pageURL); err == nil {
		if article, err := readability.FromReader(bytes.NewReader(body), u); err == nil {
			text = strings.TrimSpace(article.TextContent)
		}
	}
	if text == "" {
		text = largestParagraph(body)
	}
	return truncateRunes(collapseSpace(text), maxRunes)
}

// largestParagraph walks the document and keeps the longest <p> text. Good
// enough as a fallback when the page defeats readability.
func largestParagraph(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	var best string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			if t := strings.TrimSpace(nodeText(n)); len(t) > len(best) {
				best = t
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return best
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max])) + "…"
}
