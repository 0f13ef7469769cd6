package adapters

import (
	"errors"
	"html"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xhtml "golang.org/x/net/html"

	"github.com/jaimessoon/JARVIS-Songbook-Converter/internal/extract"
)

const storeJSON = `{"store":{"page":{"data":{"tab":{"song_name":"Wish You Were Here","artist_name":"Pink Floyd"},` +
	`"tab_view":{"wiki_tab":{"content":"[tab][ch]G[/ch]\nSo, so you think & \"tell\"[/tab]"}}}}}}`

func TestPageAdapter_JSStore(t *testing.T) {
	page := `<!DOCTYPE html><html><head><title>x</title></head><body>
	<div class="js-store" data-content="` + html.EscapeString(storeJSON) + `"></div>
	</body></html>`

	song, err := NewPageAdapter().Extract("song.html", page)
	require.NoError(t, err)
	assert.Equal(t, "Wish You Were Here", song.Title)
	assert.Equal(t, "Pink Floyd", song.Artist)
	assert.Equal(t, "[tab][ch]G[/ch]\nSo, so you think & \"tell\"[/tab]", song.Content)
}

func TestPageAdapter_ScriptAssignment(t *testing.T) {
	page := `<html><body><script>
	window.UGAPP = window.UGAPP || {};
	window.UGAPP.store.page = {"data":{"tab":{"song_name":"Hurt","artist_name":"Johnny Cash"},"tab_view":{"wiki_tab":{"content":"[ch]Am[/ch]"}}}};
	</script></body></html>`

	song, err := NewPageAdapter().Extract("hurt.htm", page)
	require.NoError(t, err)
	assert.Equal(t, "Hurt", song.Title)
	assert.Equal(t, "Johnny Cash", song.Artist)
	assert.Equal(t, "[ch]Am[/ch]", song.Content)
}

func TestPageAdapter_Errors(t *testing.T) {
	_, err := NewPageAdapter().Extract("x.html", `<html><body><p>nothing here</p></body></html>`)
	assert.True(t, errors.Is(err, extract.ErrNoRecord))

	empty := `{"data":{"tab":{"song_name":"Empty"},"tab_view":{"wiki_tab":{"content":""}}}}`
	page := `<html><body><div class="js-store" data-content="` + html.EscapeString(empty) + `"></div></body></html>`
	_, err = NewPageAdapter().Extract("x.html", page)
	assert.True(t, errors.Is(err, extract.ErrNoContent))
}

func TestRecordAdapter(t *testing.T) {
	a := NewRecordAdapter()
	assert.True(t, a.CanHandle("store.json", ""))
	assert.True(t, a.CanHandle("", "  {\"data\":{}}"))
	assert.False(t, a.CanHandle("song.txt", "[ch]G[/ch]"))

	song, err := a.Extract("store.json", storeJSON)
	require.NoError(t, err)
	assert.Equal(t, "Pink Floyd", song.Artist)
}

func TestPlainAdapter(t *testing.T) {
	song, err := NewPlainAdapter().Extract("/tmp/wish_you-were__here.txt", "[ch]C[/ch]")
	require.NoError(t, err)
	assert.Equal(t, "wish you were here", song.Title)
	assert.Equal(t, "", song.Artist)
	assert.Equal(t, "[ch]C[/ch]", song.Content)

	song, err = NewPlainAdapter().Extract("-", "x")
	require.NoError(t, err)
	assert.Equal(t, "", song.Title)
}

func TestRegistry_FindAdapter(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		path    string
		content string
		want    string
	}{
		{"song.html", "", "ugpage"},
		{"song.HTM", "", "ugpage"},
		{"-", "<!DOCTYPE html><html></html>", "ugpage"},
		{"store.json", "", "ugjson"},
		{"-", `{"data":{}}`, "ugjson"},
		{"song.txt", "[tab][ch]G[/ch][/tab]", "plain"},
		{"-", "", "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.FindAdapter(tt.path, tt.content).Name(), tt.path)
	}
}

func TestRegistry_Extract(t *testing.T) {
	r := NewRegistry()

	song, err := r.Extract("store.json", storeJSON)
	require.NoError(t, err)
	assert.Equal(t, "ugjson", song.Adapter)
	assert.Equal(t, "store.json", song.Source)

	_, err = r.Extract("bad.json", `{"nothing":true}`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, extract.ErrNoRecord))
	assert.Contains(t, err.Error(), "ugjson adapter")
}

func TestPageAdapter_StorePreferredOverScript(t *testing.T) {
	page := `<html><head><script>
	window.UGAPP.store.page = {"data":{"tab":{"song_name":"Stale"},"tab_view":{"wiki_tab":{"content":"[ch]C[/ch]"}}}};
	</script></head><body>
	<div class="js-store" data-content="` + html.EscapeString(storeJSON) + `"></div>
	<div class="js-store" data-content="{}"></div>
	</body></html>`

	song, err := NewPageAdapter().Extract("song.html", page)
	require.NoError(t, err)
	assert.Equal(t, "Wish You Were Here", song.Title)
}

func TestBaseAdapter_FindFirst(t *testing.T) {
	var b BaseAdapter
	doc, err := b.ParseHTML(`<div><p id="a">one</p><p id="b">two</p></div>`)
	require.NoError(t, err)

	isP := func(n *xhtml.Node) bool { return n.Type == xhtml.ElementNode && n.Data == "p" }
	first := b.FindFirst(doc, isP)
	require.NotNil(t, first)
	assert.Equal(t, "a", b.GetAttribute(first, "id"))
	assert.Len(t, b.FindAll(doc, isP), 2)

	assert.Nil(t, b.FindFirst(doc, func(n *xhtml.Node) bool { return n.Data == "table" }))
}
