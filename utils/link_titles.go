package utils

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/glow-studio/models"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// maxTitledLinks caps how many citation pages are fetched per scan
const maxTitledLinks = 5

// LinkTitler fills in missing titles of grounding links from the cited page
type LinkTitler struct {
	Client *http.Client
}

// NewLinkTitler creates a LinkTitler with a short timeout that keeps following redirects
func NewLinkTitler() *LinkTitler {
	return &LinkTitler{
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Fill returns links with every URI resolved past redirects and every empty title replaced by
// the page <title>, the host name, or "Ref", in that order of preference.
func (l *LinkTitler) Fill(ctx context.Context, links []models.GroundingLink) []models.GroundingLink {
	out := make([]models.GroundingLink, 0, len(links))
	for i, link := range links {
		if link.URI == "" {
			link.URI = "#"
		}
		if link.Title == "" && link.URI != "#" && i < maxTitledLinks {
			finalURL, title, err := l.fetchTitle(ctx, link.URI)
			if err != nil {
				Log.Debug().Err(err).Str("uri", link.URI).Msg("could not fetch grounding title")
			} else {
				link.URI = finalURL
				link.Title = title
			}
		}
		if link.Title == "" {
			link.Title = hostOf(link.URI)
		}
		if link.Title == "" {
			link.Title = "Ref"
		}
		out = append(out, link)
	}
	return out
}

func (l *LinkTitler) fetchTitle(ctx context.Context, uri string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return uri, "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	res, err := l.Client.Do(req)
	if err != nil {
		return uri, "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return uri, "", fmt.Errorf("status code error: %d %s", res.StatusCode, res.Status)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return uri, "", err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	}
	return res.Request.URL.String(), title, nil
}

func hostOf(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
