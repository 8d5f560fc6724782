package content

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestNewFilter(t *testing.T) {
	tests := []struct {
		name    string
		opts    FilterOptions
		wantErr string
	}{
		{name: "defaults", opts: FilterOptions{}},
		{name: "full", opts: FilterOptions{UnwantedElements: []string{"script", " style "}, IframePolicy: IframeAllow,
			MaxContentLength: 100, BaseURL: "https://example.com", Allowlist: AllowlistUGC}},
		{name: "unknown iframe policy", opts: FilterOptions{IframePolicy: "keep"}, wantErr: "unknown iframe policy"},
		{name: "negative length", opts: FilterOptions{MaxContentLength: -1}, wantErr: "negative max content length"},
		{name: "bad element", opts: FilterOptions{UnwantedElements: []string{"p>a"}}, wantErr: "invalid element name"},
		{name: "relative base url", opts: FilterOptions{BaseURL: "/blog"}, wantErr: "not absolute"},
		{name: "unknown allowlist", opts: FilterOptions{Allowlist: "strict"}, wantErr: "unknown allowlist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(tt.opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, f)
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	tests := []struct {
		name string
		opts FilterOptions
		in   string
		want string
	}{
		{name: "empty", in: "  ", want: ""},
		{name: "unwanted elements", opts: FilterOptions{UnwantedElements: []string{"script", "style"}},
			in: `<p>Hello</p><script>alert(1)</script><style>p{}</style>`, want: `<p>Hello</p>`},
		{name: "unwanted attributes", opts: FilterOptions{UnwantedAttributes: []string{"style", "ONCLICK"}},
			in: `<p style="color:red" onclick="x()" class="a">Hi</p>`, want: `<p class="a">Hi</p>`},
		{name: "iframe removed by default",
			in: `<p>a</p><iframe src="https://video.example.com/e/1"></iframe>`, want: `<p>a</p>`},
		{name: "iframe placeholder", opts: FilterOptions{IframePolicy: IframePlaceholder},
			in: `<div><iframe src="https://video.example.com/e/1"></iframe></div>`, want: `<div>` + EmbeddedPlaceholder + `</div>`},
		{name: "iframe allowed without handlers", opts: FilterOptions{IframePolicy: IframeAllow},
			in:   `<iframe src="https://video.example.com/e/1" onload="steal()"></iframe>`,
			want: `<iframe src="https://video.example.com/e/1"></iframe>`},
		{name: "empty paragraphs", opts: FilterOptions{RemoveEmptyParagraphs: true},
			in: `<p>  </p><p>text</p><p><img src="a.png"/></p><p>&nbsp;</p>`, want: `<p>text</p><p><img src="a.png"/></p>`},
		{name: "empty paragraphs kept when disabled",
			in: `<p> </p><p>text</p>`, want: `<p> </p><p>text</p>`},
		{name: "comments", in: `<p>a<!-- hidden --></p><!-- tail -->`, want: `<p>a</p>`},
		{name: "relative urls", opts: FilterOptions{BaseURL: "https://example.com/"},
			in: `<a href="/post/1">x</a><img src="img.png"/><a href="#top">t</a><a href="https://other.com/">o</a>` +
				`<a href="mailto:me@example.com">m</a><img src="//cdn.example.com/i.png"/>`,
			want: `<a href="https://example.com/post/1">x</a><img src="https://example.com/img.png"/><a href="#top">t</a>` +
				`<a href="https://other.com/">o</a><a href="mailto:me@example.com">m</a><img src="//cdn.example.com/i.png"/>`},
		{name: "nfc normalization", in: "<p>cafe\u0301</p>", want: "<p>caf\u00e9</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Apply(tt.in))
		})
	}
}

func TestFilter_Truncate(t *testing.T) {
	f, err := NewFilter(FilterOptions{MaxContentLength: 50})
	require.NoError(t, err)

	t.Run("long text cut with ellipsis", func(t *testing.T) {
		out := f.Apply("<p>" + strings.Repeat("a", 100) + "</p><p>" + strings.Repeat("b", 20) + "</p>")
		assert.LessOrEqual(t, utf8.RuneCountInString(out), 53)
		assert.Equal(t, strings.Repeat("a", 50)+"...", out)
		assert.Equal(t, out, f.Apply(out), "second pass keeps truncated text")
	})

	t.Run("runes counted, not bytes", func(t *testing.T) {
		out := f.Apply("<p>" + strings.Repeat("ж", 60) + "</p>")
		assert.Equal(t, strings.Repeat("ж", 50)+"...", out)
	})

	t.Run("short text untouched", func(t *testing.T) {
		assert.Equal(t, "<p>short</p>", f.Apply("<p>short</p>"))
	})
}

func TestFilter_Allowlist(t *testing.T) {
	t.Run("ugc strips active content", func(t *testing.T) {
		f, err := NewFilter(FilterOptions{Allowlist: AllowlistUGC})
		require.NoError(t, err)
		out := f.Apply(`<p onclick="x()">a</p><script>alert(1)</script><a href="javascript:alert(1)">l</a><b>bold</b>`)
		assert.NotContains(t, out, "script")
		assert.NotContains(t, out, "onclick")
		assert.NotContains(t, out, "javascript")
		assert.Contains(t, out, "<b>bold</b>")
	})

	t.Run("ugc keeps placeholder", func(t *testing.T) {
		f, err := NewFilter(FilterOptions{Allowlist: AllowlistUGC, IframePolicy: IframePlaceholder})
		require.NoError(t, err)
		assert.Equal(t, EmbeddedPlaceholder, f.Apply(`<iframe src="https://video.example.com/e/1"></iframe>`))
	})

	t.Run("ugc keeps allowed iframes", func(t *testing.T) {
		f, err := NewFilter(FilterOptions{Allowlist: AllowlistUGC, IframePolicy: IframeAllow})
		require.NoError(t, err)
		assert.Contains(t, f.Apply(`<iframe src="https://video.example.com/e/1"></iframe>`), `<iframe src="https://video.example.com/e/1"`)
	})
}

func TestFilter_Encoding(t *testing.T) {
	encoded, err := charmap.Windows1251.NewEncoder().String(`<meta charset="windows-1251"><p>Привет</p>`)
	require.NoError(t, err)
	require.False(t, utf8.ValidString(encoded))

	f, err := NewFilter(FilterOptions{})
	require.NoError(t, err)
	assert.Equal(t, "<p>Привет</p>", f.Apply(encoded))
}

func TestFilter_Idempotent(t *testing.T) {
	tests := []struct {
		name   string
		opts   FilterOptions
		inputs []string
	}{
		{name: "full set", opts: FilterOptions{UnwantedElements: []string{"script", "style", "form"},
			UnwantedAttributes: []string{"style", "onclick"}, IframePolicy: IframePlaceholder, BaseURL: "https://example.com",
			RemoveEmptyParagraphs: true, Allowlist: AllowlistUGC},
			inputs: []string{
				`<p style="x">Hello <a href="/a">link</a></p><p></p><script>x()</script>`,
				`<div><iframe src="https://v.example.com/1"></iframe><p>after</p></div><!-- c -->`,
				`<ul><li>one</li><li onclick="x">two</li></ul><img src="/i.png">`,
				`plain text & more`,
				`<p><video src="/v.mp4"></video></p><p>t</p>`,
			}},
		{name: "paragraph with removed iframe", opts: FilterOptions{RemoveEmptyParagraphs: true},
			inputs: []string{
				`<p><iframe src="https://v.example.com/1"></iframe></p><p>t</p>`,
				`<p><img src="a.png"/><iframe src="https://v.example.com/1"></iframe></p>`,
				`<p><form><input/></form></p>`,
			}},
		{name: "placeholder with stripped class", opts: FilterOptions{UnwantedAttributes: []string{"class"},
			IframePolicy: IframePlaceholder},
			inputs: []string{`<iframe src="https://v.example.com/1"></iframe>`, `<p class="x">a</p>`}},
		{name: "allowed iframe in paragraph", opts: FilterOptions{IframePolicy: IframeAllow, RemoveEmptyParagraphs: true},
			inputs: []string{`<p><iframe src="https://v.example.com/1" onload="x()"></iframe></p>`}},
		{name: "truncated", opts: FilterOptions{MaxContentLength: 10, RemoveEmptyParagraphs: true},
			inputs: []string{`<p>0123456789abcdef</p><p></p>`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(tt.opts)
			require.NoError(t, err)
			for _, in := range tt.inputs {
				once := f.Apply(in)
				assert.Equal(t, once, f.Apply(once), "input: %s", in)
			}
		})
	}
}

func TestFilter_EmptyParagraphsAfterIframes(t *testing.T) {
	f, err := NewFilter(FilterOptions{RemoveEmptyParagraphs: true})
	require.NoError(t, err)
	assert.Equal(t, "<p>t</p>", f.Apply(`<p><iframe src="https://v.example.com/1"></iframe></p><p>t</p>`))

	f, err = NewFilter(FilterOptions{RemoveEmptyParagraphs: true, IframePolicy: IframeAllow})
	require.NoError(t, err)
	assert.Equal(t, `<p><iframe src="https://v.example.com/1"></iframe></p>`,
		f.Apply(`<p><iframe src="https://v.example.com/1"></iframe></p>`))
}

func TestFilter_PlaceholderWithoutClass(t *testing.T) {
	f, err := NewFilter(FilterOptions{UnwantedAttributes: []string{"class"}, IframePolicy: IframePlaceholder})
	require.NoError(t, err)
	assert.Equal(t, "<p>[embedded content]</p>", f.Apply(`<iframe src="https://v.example.com/1"></iframe>`))
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Hello world", StripTags("<p>Hello <b>world</b></p>"))
	assert.Empty(t, StripTags(""))
}
