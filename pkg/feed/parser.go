package feed

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/rss"
	"golang.org/x/net/html/charset"

	"github.com/umputun/feedpress/pkg/domain"
)

// ParseResult is a list of extracted items with diagnostics collected on the way
type ParseResult struct {
	Items       []domain.FeedItem
	Diagnostics []string
	Recovered   bool // items were extracted by the lenient pass after the strict one failed
}

// ParseError reports a document without extractable items
type ParseError struct {
	Empty       bool // document is a valid feed without items
	Diagnostics []string
}

func (e *ParseError) Error() string {
	if e.Empty {
		return "feed has no items"
	}
	if len(e.Diagnostics) == 0 {
		return "feed is unparseable"
	}
	return "feed is unparseable: " + strings.Join(e.Diagnostics, "; ")
}

// Parse extracts items from RSS, Atom or JSON feed data.
// Broken XML gets a second lenient pass, items found there are returned with Recovered set.
func Parse(data []byte) (*ParseResult, error) {
	items, err := parseStrict(data)
	if err == nil {
		if len(items) == 0 {
			return nil, &ParseError{Empty: true}
		}
		return &ParseResult{Items: items}, nil
	}

	diagnostics := []string{fmt.Sprintf("strict parse: %v", err)}
	items, recoveryDiags := parseLenient(data)
	diagnostics = append(diagnostics, recoveryDiags...)
	if len(items) == 0 {
		return nil, &ParseError{Diagnostics: diagnostics}
	}
	return &ParseResult{Items: items, Diagnostics: diagnostics, Recovered: true}, nil
}

// parseStrict uses the rss parser directly to keep raw fields the universal translator drops,
// other feed types go through the universal parser
func parseStrict(data []byte) ([]domain.FeedItem, error) {
	switch gofeed.DetectFeedType(bytes.NewReader(data)) {
	case gofeed.FeedTypeRSS:
		feed, err := (&rss.Parser{}).Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse rss: %w", err)
		}
		items := make([]domain.FeedItem, 0, len(feed.Items))
		for _, it := range feed.Items {
			items = append(items, fromRSSItem(it))
		}
		return items, nil
	case gofeed.FeedTypeAtom, gofeed.FeedTypeJSON:
		feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", feedTypeName(data), err)
		}
		items := make([]domain.FeedItem, 0, len(feed.Items))
		for _, it := range feed.Items {
			items = append(items, fromUniversalItem(it))
		}
		return items, nil
	default:
		return nil, gofeed.ErrFeedTypeNotDetected
	}
}

func feedTypeName(data []byte) string {
	if gofeed.DetectFeedType(bytes.NewReader(data)) == gofeed.FeedTypeJSON {
		return "json feed"
	}
	return "atom"
}

func fromRSSItem(it *rss.Item) domain.FeedItem {
	res := domain.FeedItem{
		Title:           strings.TrimSpace(it.Title),
		Link:            strings.TrimSpace(it.Link),
		Description:     strings.TrimSpace(it.Description),
		PubDate:         strings.TrimSpace(it.PubDate),
		Author:          strings.TrimSpace(it.Author),
		Content:         strings.TrimSpace(it.Content),
		MediaContentURL: mediaURL(it.Extensions, "content"),
		Categories:      []string{},
	}
	if it.GUID != nil {
		res.GUID = strings.TrimSpace(it.GUID.Value)
	}
	if res.Author == "" && it.DublinCoreExt != nil && len(it.DublinCoreExt.Creator) > 0 {
		res.Author = strings.TrimSpace(it.DublinCoreExt.Creator[0])
	}
	for _, c := range it.Categories {
		if c != nil {
			res.Categories = append(res.Categories, strings.TrimSpace(c.Value))
		}
	}
	res.ThumbnailURL = res.MediaContentURL
	if res.ThumbnailURL == "" {
		res.ThumbnailURL = mediaURL(it.Extensions, "thumbnail")
	}
	return res
}

func fromUniversalItem(it *gofeed.Item) domain.FeedItem {
	res := domain.FeedItem{
		Title:           strings.TrimSpace(it.Title),
		Link:            strings.TrimSpace(it.Link),
		GUID:            strings.TrimSpace(it.GUID),
		Description:     strings.TrimSpace(it.Description),
		PubDate:         strings.TrimSpace(it.Published),
		Content:         strings.TrimSpace(it.Content),
		MediaContentURL: mediaURL(it.Extensions, "content"),
		Categories:      append([]string{}, it.Categories...),
	}
	if res.PubDate == "" {
		res.PubDate = strings.TrimSpace(it.Updated)
	}
	switch {
	case it.Author != nil && it.Author.Name != "":
		res.Author = it.Author.Name
	case len(it.Authors) > 0 && it.Authors[0] != nil:
		res.Author = it.Authors[0].Name
	}
	res.ThumbnailURL = res.MediaContentURL
	if res.ThumbnailURL == "" {
		res.ThumbnailURL = mediaURL(it.Extensions, "thumbnail")
	}
	if res.ThumbnailURL == "" && it.Image != nil {
		res.ThumbnailURL = it.Image.URL
	}
	return res
}

// parseLenient scans the document with a non-strict decoder and collects every item or entry element,
// wherever it is nested. All decoding problems are returned as diagnostics.
func parseLenient(data []byte) ([]domain.FeedItem, []string) {
	var diagnostics []string

	cleaned, removed := stripInvalidXMLChars(data)
	if removed > 0 {
		diagnostics = append(diagnostics, fmt.Sprintf("removed %d invalid characters", removed))
	}

	dec := xml.NewDecoder(bytes.NewReader(cleaned))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel

	var items []domain.FeedItem
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			diagnostics = append(diagnostics, err.Error())
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		name := strings.ToLower(se.Name.Local)
		if name != "item" && name != "entry" {
			continue
		}
		item, err := decodeLenientItem(dec, se)
		if err != nil {
			diagnostics = append(diagnostics, fmt.Sprintf("item %d: %v", len(items)+1, err))
		}
		if item.Title != "" || item.Link != "" || item.GUID != "" || item.Description != "" || item.Content != "" {
			items = append(items, item)
		}
		if err != nil {
			break // decoder state is unusable after a syntax error
		}
	}
	return items, diagnostics
}

// decodeLenientItem reads children of an item or entry element up to its end.
// Fields read before an error are kept.
func decodeLenientItem(dec *xml.Decoder, start xml.StartElement) (domain.FeedItem, error) {
	item := domain.FeedItem{Categories: []string{}}
	var thumbnail string
	for {
		tok, err := dec.Token()
		if err != nil {
			return finishLenientItem(item, thumbnail), err
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return finishLenientItem(item, thumbnail), nil
			}
		case xml.StartElement:
			local := strings.ToLower(t.Name.Local)
			if local == "group" && isMedia(t.Name) {
				continue // media:group children are handled as top level media elements
			}
			var el rawElement
			if err := dec.DecodeElement(&el, &t); err != nil {
				return finishLenientItem(item, thumbnail), err
			}
			switch {
			case isMedia(t.Name) && local == "content":
				if item.MediaContentURL == "" {
					item.MediaContentURL = el.attr("url")
				}
			case isMedia(t.Name) && local == "thumbnail":
				if thumbnail == "" {
					thumbnail = el.attr("url")
				}
			case local == "title":
				item.Title = el.text()
			case local == "link":
				if item.Link == "" || el.attr("rel") == "alternate" {
					if href := el.attr("href"); href != "" {
						item.Link = href
					} else if txt := strings.TrimSpace(el.Text); txt != "" {
						item.Link = txt
					}
				}
			case local == "guid" || local == "id":
				item.GUID = strings.TrimSpace(el.Text)
			case local == "description" || local == "summary":
				item.Description = el.text()
			case local == "encoded" || local == "content":
				item.Content = el.text()
			case local == "pubdate" || local == "published" || (local == "updated" && item.PubDate == "") || (local == "date" && item.PubDate == ""):
				item.PubDate = strings.TrimSpace(el.Text)
			case local == "author":
				if name := strings.TrimSpace(el.Name); name != "" {
					item.Author = name
				} else {
					item.Author = strings.TrimSpace(el.Text)
				}
			case local == "creator":
				if item.Author == "" {
					item.Author = strings.TrimSpace(el.Text)
				}
			case local == "category":
				if term := el.attr("term"); term != "" {
					item.Categories = append(item.Categories, term)
				} else {
					item.Categories = append(item.Categories, strings.TrimSpace(el.Text))
				}
			}
		}
	}
}

func finishLenientItem(item domain.FeedItem, thumbnail string) domain.FeedItem {
	item.ThumbnailURL = item.MediaContentURL
	if item.ThumbnailURL == "" {
		item.ThumbnailURL = thumbnail
	}
	return item
}

// stripInvalidXMLChars drops control bytes not allowed in XML 1.0 documents.
// works on bytes to keep documents in single-byte charsets intact for the charset reader.
func stripInvalidXMLChars(data []byte) ([]byte, int) {
	cleaned := make([]byte, 0, len(data))
	for _, b := range data {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			continue
		}
		cleaned = append(cleaned, b)
	}
	return cleaned, len(data) - len(cleaned)
}
