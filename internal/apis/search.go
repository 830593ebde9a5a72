// Package apis wraps the external data sources the planner consults. Every
// wrapper degrades to same-shaped mock data instead of returning errors for
// search and scrape, so callers never have to branch on transport failures.
package apis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

// SearchAPI performs web searches, returning result links.
type SearchAPI interface {
	Search(ctx context.Context, query string, numResults int) []string
}

type searchAPI struct {
	httpClient *http.Client
	logger     *slog.Logger
}

func NewSearchAPI(logger *slog.Logger) SearchAPI {
	return &searchAPI{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

var resultLinkPattern = regexp.MustCompile(`/url\?q=(https?://[^&"]+)`)

func (s *searchAPI) Search(ctx context.Context, query string, numResults int) []string {
	links, err := s.fetchLinks(ctx, query, numResults)
	if err != nil || len(links) == 0 {
		s.logger.Error("search failed, using mock results", "query", query, "error", err)
		return mockSearchResults(numResults)
	}
	return links
}

func (s *searchAPI) fetchLinks(ctx context.Context, query string, numResults int) ([]string, error) {
	endpoint := "https://www.google.com/search?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; NoDetours/1.0)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var links []string
	seen := make(map[string]bool)
	for _, match := range resultLinkPattern.FindAllStringSubmatch(string(body), -1) {
		link := match[1]
		if seen[link] {
			continue
		}
		seen[link] = true
		links = append(links, link)
		if len(links) >= numResults {
			break
		}
	}
	return links, nil
}

func mockSearchResults(numResults int) []string {
	results := []string{
		"https://travel.usnews.com/rankings/best-usa-vacations/",
		"https://www.alexinwanderland.com/best-usa-travel-destinations/",
		"https://www.businessinsider.com/most-beautiful-places-to-visit-in-us-2024-1",
	}
	if numResults < len(results) {
		return results[:numResults]
	}
	return results
}
