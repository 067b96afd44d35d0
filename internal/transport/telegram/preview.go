package telegram

import (
	"cmp"
	"context"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/reshetovitsme/offer-listener/internal/shared/errors"
	"github.com/samber/oops"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

// Post is one message scraped from a channel's web preview.
type Post struct {
	ID   int64
	Text string
	Date time.Time
}

// Preview reads https://t.me/s/<username>, the public HTML view of a channel.
type Preview struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewPreview creates a web preview reader limited to perSecond requests.
func NewPreview(baseURL string, perSecond int, timeout time.Duration) *Preview {
	if perSecond <= 0 {
		perSecond = 1
	}
	return &Preview{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(perSecond), perSecond),
	}
}

// Recent returns up to limit of the newest posts, oldest first.
func (p *Preview) Recent(ctx context.Context, username string, limit int) ([]Post, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, oops.With("username", username).Wrap(err)
	}

	endpoint := p.baseURL + "/" + url.PathEscape(strings.TrimPrefix(username, "@"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, oops.With("endpoint", endpoint).Wrap(err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, oops.With("endpoint", endpoint, "context", "preview request failed").Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, oops.With("endpoint", endpoint, "status", resp.StatusCode).Wrap(errors.ErrUnexpectedStatus)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, oops.With("endpoint", endpoint, "context", "failed to parse preview").Wrap(err)
	}

	posts := parsePosts(doc)
	slices.SortFunc(posts, func(a, b Post) int {
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(posts) > limit {
		posts = posts[len(posts)-limit:]
	}
	return posts, nil
}

func parsePosts(doc *html.Node) []Post {
	var posts []Post
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "tgme_widget_message") {
			if post, ok := parsePost(n); ok {
				posts = append(posts, post)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return posts
}

func parsePost(n *html.Node) (Post, bool) {
	ref := attr(n, "data-post")
	idx := strings.LastIndex(ref, "/")
	if idx < 0 {
		return Post{}, false
	}
	id, err := strconv.ParseInt(ref[idx+1:], 10, 64)
	if err != nil || id <= 0 {
		return Post{}, false
	}

	post := Post{ID: id}
	if textNode := find(n, func(c *html.Node) bool { return hasClass(c, "tgme_widget_message_text") }); textNode != nil {
		var sb strings.Builder
		writeText(&sb, textNode)
		post.Text = strings.TrimSpace(sb.String())
	}
	if timeNode := find(n, func(c *html.Node) bool { return c.Data == "time" && attr(c, "datetime") != "" }); timeNode != nil {
		if date, err := time.Parse(time.RFC3339, attr(timeNode, "datetime")); err == nil {
			post.Date = date
		}
	}
	return post, true
}

// find returns the first element below n matching match, skipping quoted replies.
func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if hasClass(c, "tgme_widget_message_reply") {
			continue
		}
		if match(c) {
			return c
		}
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

func writeText(sb *strings.Builder, n *html.Node) {
	switch {
	case n.Type == html.TextNode:
		sb.WriteString(n.Data)
		return
	case n.Type == html.ElementNode && n.Data == "br":
		sb.WriteString("\n")
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(attr(n, "class")), class)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
