package extract

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func serveHTML(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWebExtract_ErrorStatusIsTransportFailure(t *testing.T) {
	t.Parallel()
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError, http.StatusBadGateway} {
		status := status
		t.Run(http.StatusText(status), func(t *testing.T) {
			t.Parallel()
			srv := serveHTML(t, status, "<html><body><p>error page</p></body></html>")

			_, err := NewWeb(srv.Client(), time.Second).Extract(context.Background(), srv.URL)
			require.Error(t, err)
			assert.Equal(t, KindTransport, KindOf(err))
			assert.Contains(t, err.Error(), srv.URL)
		})
	}
}

func TestWebExtract_UnreachableHostIsTransportFailure(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := NewWeb(nil, time.Second).Extract(context.Background(), addr)
	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
}

func TestWebExtract_ParagraphFallback(t *testing.T) {
	t.Parallel()
	srv := serveHTML(t, http.StatusOK, `<html><body>
		<div><p>First paragraph.</p><p>   </p><p></p></div>
		<section><p>Second <b>bold</b> paragraph.</p></section>
	</body></html>`)

	page, err := NewWeb(srv.Client(), time.Second).Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, SourceParagraphs, page.Source)
	assert.Equal(t, "First paragraph.\n\nSecond bold paragraph.", page.Body)
	assert.Equal(t, "Title: No Title Found\n\nContent:\nFirst paragraph.\n\nSecond bold paragraph.", page.String())
	assert.Equal(t, srv.URL, page.URL)
}

func TestWebExtract_NoTextFound(t *testing.T) {
	t.Parallel()
	srv := serveHTML(t, http.StatusOK, `<html><body><div>loose text</div><ul><li>item</li></ul></body></html>`)

	page, err := NewWeb(srv.Client(), time.Second).Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, SourceNone, page.Source)
	assert.Empty(t, page.Body)
	assert.Equal(t, "Title: No Title Found\n\nContent:\nNo text found on the page.", page.String())
}

func TestWebExtract_PrefersArticle(t *testing.T) {
	t.Parallel()
	sentence := "The quick brown fox jumps over the lazy dog while the reader keeps reading this article. "
	long := strings.Repeat(sentence, 8)
	srv := serveHTML(t, http.StatusOK, `<html><head><title>A Sufficiently Long Article Title</title></head><body>
		<nav><p>Home</p></nav>
		<article><p>`+long+`</p><p>`+long+`</p><p>Closing remark of the story.</p></article>
	</body></html>`)

	page, err := NewWeb(srv.Client(), time.Second).Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, SourceArticle, page.Source)
	assert.Equal(t, "A Sufficiently Long Article Title", page.Title)
	para := strings.TrimSpace(long)
	assert.True(t, strings.HasPrefix(page.Body, para+"\n\n"+para), "paragraphs must be separated by a blank line")
	assert.True(t, strings.HasPrefix(page.String(), "Title: A Sufficiently Long Article Title\n\nContent:\n"))
}

func TestFromDocument_LongParagraphsWithoutArticleMarkup(t *testing.T) {
	t.Parallel()
	first := strings.TrimSpace(strings.Repeat("alpha beta gamma delta. ", 20))
	second := strings.TrimSpace(strings.Repeat("epsilon zeta eta theta. ", 20))
	root, err := html.Parse(strings.NewReader(`<html><head><title>Listing</title></head><body>` +
		`<div><p>` + first + `</p></div><div><p>` + second + `</p></div></body></html>`))
	require.NoError(t, err)
	u, _ := url.Parse("https://example.com/listing")

	page := FromDocument(root, u)
	assert.Equal(t, first+"\n\n"+second, page.Body)
	assert.NotContains(t, page.Body, "delta.epsilon")
}

func TestArticleText_SeparatesBlocks(t *testing.T) {
	t.Parallel()
	root, err := html.Parse(strings.NewReader(`<div><h2>Heading</h2><p>First <b>bold</b> line.</p>` +
		`<ul><li>one</li><li>two</li></ul><p>  </p><div>Tail<br>text</div><script>x()</script></div>`))
	require.NoError(t, err)

	got := articleText(readability.Article{Node: root, TextContent: "ignored"})
	assert.Equal(t, "Heading\n\nFirst bold line.\n\none\n\ntwo\n\nTail\n\ntext", got)
	assert.Equal(t, "plain", articleText(readability.Article{TextContent: " plain "}))
}

func TestWebExtract_SendsUserAgent(t *testing.T) {
	t.Parallel()
	got := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<p>hi</p>"))
	}))
	t.Cleanup(srv.Close)

	w := NewWeb(srv.Client(), time.Second)
	w.UserAgent = "webio-bot/test"
	_, err := w.Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "webio-bot/test", <-got)
}

func TestFromDocument_KeepsParagraphTextAsWritten(t *testing.T) {
	t.Parallel()
	root, err := html.Parse(strings.NewReader("<body><p> padded </p><p>\t</p><p>line one\nline two</p></body>"))
	require.NoError(t, err)
	u, _ := url.Parse("https://example.com/raw")

	page := FromDocument(root, u)
	assert.Equal(t, SourceParagraphs, page.Source)
	assert.Equal(t, " padded \n\nline one\nline two", page.Body)
}

func TestFromDocument_KeepsParagraphOrder(t *testing.T) {
	t.Parallel()
	root, err := html.Parse(strings.NewReader(`<body><p>one</p><div><p>two</p></div><p>three</p></body>`))
	require.NoError(t, err)
	u, _ := url.Parse("https://example.com/list")

	page := FromDocument(root, u)
	assert.Equal(t, "one\n\ntwo\n\nthree", page.Body)
}

func TestPageString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		page Page
		want string
	}{
		{name: "full", page: Page{Title: "T", Body: "B"}, want: "Title: T\n\nContent:\nB"},
		{name: "no title", page: Page{Body: "B"}, want: "Title: No Title Found\n\nContent:\nB"},
		{name: "empty", page: Page{}, want: "Title: No Title Found\n\nContent:\nNo text found on the page."},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.page.String())
		})
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()
	wrapped := errors.Join(errors.New("outer"), fail(KindParse, "parse html", errors.New("bad")))
	assert.Equal(t, KindParse, KindOf(wrapped))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, "parse html: bad", fail(KindParse, "parse html", errors.New("bad")).Error())
}
