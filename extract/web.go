package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const (
	NoTitle       = "No Title Found"
	NoPageText    = "No text found on the page."
	defaultMaxLen = 10 << 20
)

// Source records which heuristic produced a page body.
type Source int

const (
	SourceNone Source = iota
	SourceArticle
	SourceParagraphs
)

func (s Source) String() string {
	switch s {
	case SourceArticle:
		return "article"
	case SourceParagraphs:
		return "paragraphs"
	default:
		return "none"
	}
}

// Page is the readable content of a fetched web page. Title and Body are
// empty when nothing was found; String fills in the placeholders.
type Page struct {
	URL    string
	Title  string
	Body   string
	Source Source
}

func (p Page) String() string {
	title := p.Title
	if title == "" {
		title = NoTitle
	}
	body := p.Body
	if body == "" {
		body = NoPageText
	}
	return fmt.Sprintf("Title: %s\n\nContent:\n%s", title, body)
}

type Web struct {
	HTTPClient *http.Client
	UserAgent  string
	MaxBytes   int64
}

// NewWeb returns a Web extractor. A zero timeout leaves the client without one.
func NewWeb(httpClient *http.Client, timeout time.Duration) *Web {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Web{HTTPClient: httpClient, MaxBytes: defaultMaxLen}
}

func (w *Web) Extract(ctx context.Context, pageURL string) (page Page, err error) {
	defer func() {
		if v := recover(); v != nil {
			page, err = Page{}, fail(KindInternal, "extract page", recovered(v))
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Page{}, fail(KindTransport, "new request", err)
	}
	if w.UserAgent != "" {
		req.Header.Set("User-Agent", w.UserAgent)
	}
	resp, err := w.HTTPClient.Do(req)
	if err != nil {
		return Page{}, fail(KindTransport, "fetch url", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Page{}, fail(KindTransport, "fetch url",
			fmt.Errorf("status %d %s for url: %s", resp.StatusCode, http.StatusText(resp.StatusCode), pageURL))
	}

	limit := w.MaxBytes
	if limit <= 0 {
		limit = defaultMaxLen
	}
	body, err := charset.NewReader(io.LimitReader(resp.Body, limit), resp.Header.Get("Content-Type"))
	if err != nil {
		return Page{}, fail(KindParse, "decode charset", err)
	}
	root, err := html.Parse(body)
	if err != nil {
		return Page{}, fail(KindParse, "parse html", err)
	}

	page = FromDocument(root, req.URL)
	page.URL = pageURL
	return page, nil
}

// FromDocument runs both heuristics over one parsed tree.
func FromDocument(root *html.Node, pageURL *url.URL) Page {
	// Paragraphs are collected before readability touches the tree.
	paragraphs := paragraphText(root)

	var page Page
	readerable := readability.CheckDocument(root)
	if article, err := readability.FromDocument(root, pageURL); err == nil {
		page.Title = strings.TrimSpace(article.Title)
		if readerable {
			page.Body = articleText(article)
		}
	}

	switch {
	case page.Body != "":
		page.Source = SourceArticle
	case paragraphs != "":
		page.Body = paragraphs
		page.Source = SourceParagraphs
	}
	return page
}

// blockTags end a run of text in an article body.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "details": true, "div": true, "dl": true,
	"dt": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"main": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "td": true, "th": true, "tr": true,
	"ul": true,
}

// articleText renders the readability result one block per paragraph,
// separated by a blank line.
func articleText(article readability.Article) string {
	if article.Node == nil {
		return strings.TrimSpace(article.TextContent)
	}
	var (
		parts []string
		run   strings.Builder
	)
	flush := func() {
		if text := strings.TrimSpace(run.String()); text != "" {
			parts = append(parts, text)
		}
		run.Reset()
	}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			run.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		block := n.Type == html.ElementNode && blockTags[n.Data]
		if block {
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			flush()
		}
	}
	walk(article.Node)
	flush()
	return strings.Join(parts, "\n\n")
}

// paragraphText joins the text of every <p> as written. Paragraphs holding
// only whitespace count as empty and are skipped.
func paragraphText(root *html.Node) string {
	doc := goquery.NewDocumentFromNode(root)
	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := s.Text(); strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n")
}
