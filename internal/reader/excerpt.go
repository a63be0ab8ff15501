package reader

import (
	"bytes"
	"net/url"
	"strings"

	readability "codeberg.org/readeck/go-readability/v2"
	"golang.org/x/net/html"
)

// DefaultExcerptRunes bounds generated article excerpts.
const DefaultExcerptRunes = 200

// PlainText renders article HTML as readable paragraphs. Readability handles
// full documents; short fragments it rejects fall back to a plain tag strip.
func PlainText(content string, base *url.URL) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}
	if !strings.Contains(trimmed, "<") {
		return CleanText(trimmed)
	}

	if base == nil {
		base = &url.URL{Scheme: "http", Host: "localhost"}
	}
	if article, err := readability.FromReader(strings.NewReader(trimmed), base); err == nil {
		var rendered bytes.Buffer
		if err := article.RenderText(&rendered); err == nil {
			if text := CleanText(rendered.String()); text != "" {
				return text
			}
		}
	}
	return CleanText(stripTags(trimmed))
}

// Excerpt returns the stored excerpt when present, otherwise the first
// maxRunes runes of the article body as plain text.
func Excerpt(stored, content string, maxRunes int, base *url.URL) string {
	if text := strings.TrimSpace(stored); text != "" {
		return text
	}
	if maxRunes <= 0 {
		maxRunes = DefaultExcerptRunes
	}
	body := strings.Join(strings.Fields(PlainText(content, base)), " ")
	excerpt, _ := TruncateText(body, maxRunes)
	return excerpt
}

func stripTags(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var out strings.Builder
	skip := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way the text so far stands.
			return out.String()
		case html.TextToken:
			if skip == 0 {
				out.Write(tokenizer.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style":
				skip++
			case "br", "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6":
				out.WriteString("\n")
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style":
				if skip > 0 {
					skip--
				}
			case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6":
				out.WriteString("\n")
			}
		}
	}
}

// CleanText normalizes line endings and collapses extra in-line whitespace.
func CleanText(raw string) string {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	lines := strings.Split(normalized, "\n")
	paragraphs := make([]string, 0, len(lines))
	for _, line := range lines {
		clean := strings.Join(strings.Fields(strings.TrimSpace(line)), " ")
		if clean == "" {
			continue
		}
		paragraphs = append(paragraphs, clean)
	}

	return strings.TrimSpace(strings.Join(paragraphs, "\n\n"))
}

// TruncateText clips text to maxChars runes and appends a single ellipsis rune when truncated.
func TruncateText(raw string, maxChars int) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	if maxChars <= 0 {
		return trimmed, false
	}

	runes := []rune(trimmed)
	if len(runes) <= maxChars {
		return trimmed, false
	}
	if maxChars == 1 {
		return "…", true
	}

	clipped := strings.TrimSpace(string(runes[:maxChars-1]))
	if clipped == "" {
		return "…", true
	}

	return clipped + "…", true
}
