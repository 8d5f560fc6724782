package feed

import (
	"encoding/xml"
	"strings"

	"github.com/mmcdole/gofeed/extensions"
)

const mediaNamespace = "http://search.yahoo.com/mrss/"

// rawElement captures a child element of an item during lenient decoding
type rawElement struct {
	Attrs []xml.Attr `xml:",any,attr"`
	Text  string     `xml:",chardata"`
	Inner string     `xml:",innerxml"`
	Name  string     `xml:"name"` // atom author name
}

// attr returns the value of the attribute with the given local name
func (r rawElement) attr(name string) string {
	for _, a := range r.Attrs {
		if strings.EqualFold(a.Name.Local, name) {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

// text returns character data, falling back to raw inner markup for elements with unescaped html
func (r rawElement) text() string {
	if s := strings.TrimSpace(r.Text); s != "" {
		return s
	}
	return strings.TrimSpace(r.Inner)
}

// isMedia checks the element belongs to the Media RSS namespace, declared or not
func isMedia(name xml.Name) bool {
	return name.Space == mediaNamespace || strings.EqualFold(name.Space, "media")
}

// mediaURL returns url attribute of the first media extension element with the given name,
// looking into media:group as well
func mediaURL(exts ext.Extensions, name string) string {
	media, ok := exts["media"]
	if !ok {
		return ""
	}
	for _, e := range media[name] {
		if u := strings.TrimSpace(e.Attrs["url"]); u != "" {
			return u
		}
	}
	for _, group := range media["group"] {
		for _, e := range group.Children[name] {
			if u := strings.TrimSpace(e.Attrs["url"]); u != "" {
				return u
			}
		}
	}
	return ""
}
