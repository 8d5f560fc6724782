package content

import (
	"bytes"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// LinkRemoved replaces bare non-image urls in scrubbed text
const LinkRemoved = "[link removed]"

var (
	eventAttrRe = regexp.MustCompile(`(?i)\s+on[a-z]+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	bareURLRe   = regexp.MustCompile(`(?i)\b(?:https?|ftp)://[^\s<>"']+`)
	sqlRe       = regexp.MustCompile(`(?i)(\bunion\s+(?:all\s+)?select\b|\binsert\s+into\s+\w+\s*(?:\(|values\b)|` +
		`\bdelete\s+from\s+\w+\s+where\b|\bdrop\s+(?:table|database)\b|\btruncate\s+table\b|` +
		`\bupdate\s+\w+\s+set\s+\w+\s*=|\bexec(?:ute)?\s*\(|;\s*--|'\s*or\s+'?1'?\s*=\s*'?1)`)
	imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".svg": true, ".bmp": true, ".avif": true}
)

// Scrub removes known malicious patterns from html: script blocks, inline event handlers,
// sql injection sequences in text, and bare links except links to images.
// This is a denylist pass and does not replace allowlist sanitization.
func Scrub(s string) string {
	var out bytes.Buffer
	z := html.NewTokenizer(strings.NewReader(s))
	scriptDepth := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				// tokenizer gave up, keep the rest as text so it still gets scrubbed
				out.WriteString(scrubText(string(z.Raw())))
			}
			break
		}
		raw := string(z.Raw())
		name, _ := z.TagName()
		switch tt {
		case html.StartTagToken:
			if string(name) == "script" {
				scriptDepth++
				continue
			}
			if scriptDepth == 0 {
				out.WriteString(eventAttrRe.ReplaceAllString(raw, ""))
			}
		case html.SelfClosingTagToken:
			if scriptDepth == 0 && string(name) != "script" {
				out.WriteString(eventAttrRe.ReplaceAllString(raw, ""))
			}
		case html.EndTagToken:
			if string(name) == "script" {
				if scriptDepth > 0 {
					scriptDepth--
				}
				continue
			}
			if scriptDepth == 0 {
				out.WriteString(raw)
			}
		case html.TextToken:
			if scriptDepth == 0 {
				out.WriteString(scrubText(raw))
			}
		default:
			if scriptDepth == 0 {
				out.WriteString(raw)
			}
		}
	}
	return out.String()
}

func scrubText(s string) string {
	s = sqlRe.ReplaceAllString(s, "")
	return bareURLRe.ReplaceAllStringFunc(s, func(link string) string {
		if isImageURL(link) {
			return link
		}
		return LinkRemoved
	})
}

// isImageURL checks the url path ends with a known image extension
func isImageURL(link string) bool {
	u, err := url.Parse(strings.TrimRight(link, ".,;:!?)"))
	if err != nil {
		return false
	}
	return imageExts[strings.ToLower(path.Ext(u.Path))]
}
