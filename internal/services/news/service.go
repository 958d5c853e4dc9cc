// Package news fetches medical headlines from the WHO news feed.
package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"docspace/internal/repositories/cache"
)

const (
	// DefaultFeedURL is the WHO English news RSS feed.
	DefaultFeedURL = "https://www.who.int/rss-feeds/news-english.xml"

	maxItems = 10
	cacheKey = "news:who"
	cacheTTL = 30 * time.Minute
)

// Item is one headline from the feed.
type Item struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	PublishedAt string `json:"published_at"`
}

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

type Service struct {
	feedURL string
	client  *http.Client
	cache   *cache.CacheService
}

func NewService(feedURL string, cacheService *cache.CacheService) *Service {
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}
	return &Service{
		feedURL: feedURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		cache:   cacheService,
	}
}

// Latest returns up to ten recent headlines, served from cache when fresh.
func (s *Service) Latest(ctx context.Context) ([]Item, error) {
	if s.cache != nil {
		var cached []Item
		if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found && len(cached) > 0 {
			return cached, nil
		}
	}

	items, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, cacheKey, items, cacheTTL); err != nil {
			log.Printf("[News] caching feed: %v", err)
		}
	}
	return items, nil
}

func (s *Service) fetch(ctx context.Context) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching news feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	return ParseFeed(body)
}

// ParseFeed decodes an RSS document into at most ten items.
func ParseFeed(data []byte) ([]Item, error) {
	var feed rssFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("parsing news feed: %w", err)
	}

	items := make([]Item, 0, maxItems)
	for _, entry := range feed.Channel.Items {
		if len(items) == maxItems {
			break
		}
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			continue
		}
		items = append(items, Item{
			Title:       title,
			Link:        strings.TrimSpace(entry.Link),
			Description: strings.TrimSpace(entry.Description),
			PublishedAt: normalizeDate(entry.PubDate),
		})
	}
	return items, nil
}

// normalizeDate converts RFC 1123 pub dates to RFC 3339, passing through
// anything it cannot parse.
func normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC1123Z, time.RFC1123} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return raw
}
