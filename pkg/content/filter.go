package content

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// IframePolicy defines what happens to iframes in filtered content
type IframePolicy string

// enum of iframe policies
const (
	IframeRemove      IframePolicy = "remove"
	IframePlaceholder IframePolicy = "placeholder"
	IframeAllow       IframePolicy = "allow"
)

// Allowlist names the sanitization policy applied after filtering
type Allowlist string

// enum of allowlists
const (
	AllowlistNone Allowlist = "none"
	AllowlistUGC  Allowlist = "ugc"
)

// EmbeddedPlaceholder replaces iframes with placeholder policy
const EmbeddedPlaceholder = `<p class="embedded-content">[embedded content]</p>`

// truncation marker appended to cut text
const ellipsis = "..."

var tagNameRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// FilterOptions defines content filter settings
type FilterOptions struct {
	UnwantedElements      []string
	UnwantedAttributes    []string
	IframePolicy          IframePolicy
	MaxContentLength      int // in characters, 0 means unlimited
	BaseURL               string
	RemoveEmptyParagraphs bool
	Allowlist             Allowlist
}

// Filter sanitizes html bodies of feed items
type Filter struct {
	opts        FilterOptions
	elements    string // goquery selector of unwanted elements
	attributes  map[string]bool
	baseURL     string
	placeholder string
	media       string // selector of elements keeping a text-less paragraph
	policy      *bluemonday.Policy
	strict      *bluemonday.Policy
}

// NewFilter makes a filter with validated options
func NewFilter(opts FilterOptions) (*Filter, error) {
	if opts.IframePolicy == "" {
		opts.IframePolicy = IframeRemove
	}
	switch opts.IframePolicy {
	case IframeRemove, IframePlaceholder, IframeAllow:
	default:
		return nil, fmt.Errorf("unknown iframe policy %q", opts.IframePolicy)
	}
	if opts.MaxContentLength < 0 {
		return nil, fmt.Errorf("negative max content length %d", opts.MaxContentLength)
	}

	res := &Filter{opts: opts, attributes: make(map[string]bool), strict: bluemonday.StrictPolicy()}

	names := make([]string, 0, len(opts.UnwantedElements))
	for _, el := range opts.UnwantedElements {
		el = strings.ToLower(strings.TrimSpace(el))
		if el == "" {
			continue
		}
		if !tagNameRe.MatchString(el) {
			return nil, fmt.Errorf("invalid element name %q", el)
		}
		names = append(names, el)
	}
	res.elements = strings.Join(names, ",")

	for _, attr := range opts.UnwantedAttributes {
		if attr = strings.ToLower(strings.TrimSpace(attr)); attr != "" {
			res.attributes[attr] = true
		}
	}

	if opts.BaseURL != "" {
		u, err := url.Parse(opts.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("base url %q is not absolute", opts.BaseURL)
		}
		res.baseURL = strings.TrimRight(opts.BaseURL, "/")
	}

	switch opts.Allowlist {
	case "", AllowlistNone:
	case AllowlistUGC:
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class").Matching(regexp.MustCompile(`^embedded-content$`)).OnElements("p")
		if opts.IframePolicy == IframeAllow {
			p.AllowElements("iframe")
			p.AllowAttrs("src", "width", "height", "frameborder", "allow", "allowfullscreen", "title").OnElements("iframe")
		}
		res.policy = p
	default:
		return nil, fmt.Errorf("unknown allowlist %q", opts.Allowlist)
	}

	// placeholder must look the same after a second pass over the output
	res.placeholder = EmbeddedPlaceholder
	if res.attributes["class"] {
		res.placeholder = `<p>[embedded content]</p>`
	}

	// only elements surviving the rest of the pipeline keep a paragraph from being empty
	media := []string{"img[src]"}
	if opts.IframePolicy == IframeAllow {
		media = append(media, "iframe")
	}
	if res.policy == nil {
		media = append(media, "video", "audio", "object", "embed")
	}
	res.media = strings.Join(media, ",")

	return res, nil
}

// Apply runs all filtering steps on raw html and returns the resulting markup.
// It never fails, input the DOM parser can't handle is returned stripped of tags.
func (f *Filter) Apply(rawHTML string) string {
	if strings.TrimSpace(rawHTML) == "" {
		return ""
	}

	normalized := normalizeEncoding(rawHTML)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(normalized))
	if err != nil {
		return f.stripTags(normalized)
	}
	body := doc.Find("body")

	if f.elements != "" {
		body.Find(f.elements).Remove()
	}

	if len(f.attributes) > 0 {
		body.Find("*").Each(func(_ int, s *goquery.Selection) {
			for _, attr := range nodeAttrNames(s) {
				if f.attributes[strings.ToLower(attr)] {
					s.RemoveAttr(attr)
				}
			}
		})
	}

	if f.baseURL != "" {
		f.rewriteRelative(body, "href")
		f.rewriteRelative(body, "src")
	}

	switch f.opts.IframePolicy {
	case IframeRemove:
		body.Find("iframe").Remove()
	case IframePlaceholder:
		body.Find("iframe").ReplaceWithHtml(f.placeholder)
	case IframeAllow:
		body.Find("iframe").Each(func(_ int, s *goquery.Selection) {
			removeEventHandlers(s)
		})
	}

	// empty paragraphs are removed once iframes are settled, a paragraph holding
	// a removed iframe is empty as well
	if f.opts.RemoveEmptyParagraphs {
		body.Find("p").Each(func(_ int, s *goquery.Selection) {
			if strings.TrimSpace(s.Text()) == "" && s.Find(f.media).Length() == 0 {
				s.Remove()
			}
		})
	}

	if f.opts.MaxContentLength > 0 {
		text := body.Text()
		if cut, truncated := truncateText(text, f.opts.MaxContentLength); truncated {
			body.SetText(cut)
		}
	}

	removeComments(body.Nodes...)

	out, err := body.Html()
	if err != nil {
		return f.stripTags(normalized)
	}
	out = strings.TrimSpace(out)

	if f.policy != nil {
		out = f.policy.Sanitize(out)
	}
	return out
}

// rewriteRelative prefixes base url to attribute values without a scheme
func (f *Filter) rewriteRelative(sel *goquery.Selection, attr string) {
	sel.Find("[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
		val, _ := s.Attr(attr)
		val = strings.TrimSpace(val)
		if val == "" || strings.HasPrefix(val, "#") || strings.HasPrefix(val, "//") || hasScheme(val) {
			return
		}
		s.SetAttr(attr, f.baseURL+"/"+strings.TrimLeft(val, "/"))
	})
}

func (f *Filter) stripTags(s string) string {
	return strings.TrimSpace(f.strict.Sanitize(s))
}

// hasScheme reports whether the reference starts with a url scheme like http: or mailto:
func hasScheme(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && u.Scheme != ""
}

func nodeAttrNames(s *goquery.Selection) []string {
	if len(s.Nodes) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.Nodes[0].Attr))
	for _, a := range s.Nodes[0].Attr {
		names = append(names, a.Key)
	}
	return names
}

// removeEventHandlers strips on* attributes of selected elements
func removeEventHandlers(s *goquery.Selection) {
	for _, attr := range nodeAttrNames(s) {
		if strings.HasPrefix(strings.ToLower(attr), "on") {
			s.RemoveAttr(attr)
		}
	}
}

// truncateText cuts text to max runes adding ellipsis. Text already cut to the same limit is left as is.
func truncateText(text string, maxLen int) (string, bool) {
	count := utf8.RuneCountInString(text)
	if count <= maxLen {
		return text, false
	}
	if strings.HasSuffix(text, ellipsis) && count <= maxLen+utf8.RuneCountInString(ellipsis) {
		return text, false
	}
	runes := []rune(text)
	return string(runes[:maxLen]) + ellipsis, true
}

func removeComments(nodes ...*html.Node) {
	for _, n := range nodes {
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			if c.Type == html.CommentNode {
				n.RemoveChild(c)
			} else {
				removeComments(c)
			}
			c = next
		}
	}
}

// normalizeEncoding converts input to UTF-8 using html charset detection and composes it to NFC
func normalizeEncoding(s string) string {
	if !utf8.ValidString(s) {
		enc, name, _ := charset.DetermineEncoding([]byte(s), "text/html")
		if decoded, _, err := transform.String(enc.NewDecoder(), s); err == nil && name != "utf-8" {
			s = decoded
		} else {
			s = strings.ToValidUTF8(s, "�")
		}
	}
	return norm.NFC.String(s)
}

// StripTags returns text content of html fragment
func StripTags(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
