package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"nodetours/internal/models/agent_models"
	"nodetours/pkg/llm"
)

const featureSystemPrompt = `
You are a feature extraction system for a travel planning assistant.
Your task is to identify and extract key travel information from user input.
Return a JSON object with the following fields:

- place_to_visit: The main travel destination (city, country, or location) - REQUIRED
- duration_days: Length of stay as an integer (e.g., 7) - Optional, can be null
- cuisine_preferences: List of food and drink preferences - Optional, can be null
- place_preferences: List of activity or place preferences (museums, beaches, etc.) - Optional, can be null
- transport_preferences: Preferred mode of transport - Optional, can be null

For any fields not mentioned in the input, use null.
Provide only the JSON, with no additional text.
`

type FeatureServiceInterface interface {
	ExtractFeatures(ctx context.Context, userInput string) agent_models.TripFeatures
}

type FeatureService struct {
	client llm.CompletionClient
	logger *slog.Logger
}

func NewFeatureService(client llm.CompletionClient, logger *slog.Logger) FeatureServiceInterface {
	return &FeatureService{
		client: client,
		logger: logger,
	}
}

// rawFeatures tolerates the loose shapes the model produces: scalars where
// lists belong, floats or digit strings for the duration.
type rawFeatures struct {
	PlaceToVisit         string          `json:"place_to_visit"`
	DurationDays         json.RawMessage `json:"duration_days"`
	CuisinePreferences   json.RawMessage `json:"cuisine_preferences"`
	PlacePreferences     json.RawMessage `json:"place_preferences"`
	TransportPreferences json.RawMessage `json:"transport_preferences"`
}

// ExtractFeatures derives structured trip features from free text. The LLM
// path is tried first; any failure falls back to regex extraction, so this
// method always returns a usable record.
func (f *FeatureService) ExtractFeatures(ctx context.Context, userInput string) agent_models.TripFeatures {
	features, err := f.extractWithLLM(ctx, userInput)
	if err != nil {
		f.logger.Error("LLM feature extraction failed, using fallback", "error", err)
		return f.extractFeaturesFallback(userInput)
	}
	f.logger.Info("extracted features with LLM", "place_to_visit", features.PlaceToVisit)
	return features
}

var jsonObjectPattern = regexp.MustCompile(`(\{[\s\S]*\})`)

func (f *FeatureService) extractWithLLM(ctx context.Context, userInput string) (agent_models.TripFeatures, error) {
	userPrompt := fmt.Sprintf(`
Extract travel features from the following user input:

%s

IMPORTANT: For place_to_visit, this field is REQUIRED. If it is not specified in the user input,
provide a reasonable assumption based on context.
`, userInput)

	response, err := f.client.Complete(ctx, featureSystemPrompt, userPrompt, nil)
	if err != nil {
		return agent_models.TripFeatures{}, err
	}

	var raw rawFeatures
	if err := json.Unmarshal([]byte(response), &raw); err != nil {
		// Salvage a JSON object embedded in surrounding prose.
		if match := jsonObjectPattern.FindString(response); match != "" {
			if err2 := json.Unmarshal([]byte(match), &raw); err2 != nil {
				return agent_models.TripFeatures{}, errors.New("failed to extract features from LLM response")
			}
		} else {
			return agent_models.TripFeatures{}, errors.New("failed to extract features from LLM response")
		}
	}

	return f.validateAndFill(raw, userInput), nil
}

// validateAndFill normalizes the parsed record: the destination falls back to
// regex extraction and finally the unknown sentinel, list fields collapse to
// nil when empty, scalars become single-element lists, and the duration is
// coerced to an integer or re-derived from the input.
func (f *FeatureService) validateAndFill(raw rawFeatures, userInput string) agent_models.TripFeatures {
	features := agent_models.TripFeatures{
		PlaceToVisit: strings.TrimSpace(raw.PlaceToVisit),
	}

	if features.PlaceToVisit == "" {
		f.logger.Warn("place_to_visit missing from LLM output, using fallback")
		features.PlaceToVisit = extractDestination(userInput)
	}

	features.CuisinePreferences = coerceStringList(raw.CuisinePreferences)
	features.PlacePreferences = coerceStringList(raw.PlacePreferences)

	if transports := coerceStringList(raw.TransportPreferences); len(transports) > 0 {
		features.TransportPreferences = transports[0]
	}

	if days, ok := coerceInt(raw.DurationDays); ok {
		features.DurationDays = &days
	} else if days, ok := extractDuration(userInput); ok {
		features.DurationDays = &days
	}

	return features
}

// coerceStringList accepts a JSON array, a bare string, or null, and returns
// nil for anything empty.
func coerceStringList(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return nil
		}
		return list
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return []string{single}
	}
	return nil
}

func coerceInt(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return v, true
		}
	}
	return 0, false
}

var destinationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)to\s+([A-Za-z\s]+)(?:,|\s+in|\s+for|\s+on|\.)`),
	regexp.MustCompile(`(?i)visiting\s+([A-Za-z\s]+)(?:,|\s+in|\s+for|\s+on|\.)`),
	regexp.MustCompile(`(?i)trip\s+to\s+([A-Za-z\s]+)(?:,|\s+in|\s+for|\s+on|\.)`),
	regexp.MustCompile(`(?i)vacation\s+in\s+([A-Za-z\s]+)(?:,|\s+in|\s+for|\s+on|\.)`),
	regexp.MustCompile(`(?i)travel(?:ing)?\s+to\s+([A-Za-z\s]+)(?:,|\s+in|\s+for|\s+on|\.)`),
	regexp.MustCompile(`(?i)itinerary\s+for\s+([A-Za-z\s]+)(?:,|\s+in|\s+for|\s+on|\.)`),
	regexp.MustCompile(`(?i)plan\s+(?:a|my)?\s*(?:trip|visit)\s+(?:to)?\s*([A-Za-z\s]+)(?:,|\s+in|\s+for|\s+on|\.)`),
}

// extractDestination pulls a destination out of common phrasings like
// "trip to X" or "vacation in X".
func extractDestination(userInput string) string {
	for _, pattern := range destinationPatterns {
		if match := pattern.FindStringSubmatch(userInput); match != nil {
			return strings.TrimSpace(match[1])
		}
	}
	return agent_models.UnknownDestination
}

var durationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s+day(?:s)?`),
	regexp.MustCompile(`(?i)(\d+)-day`),
	regexp.MustCompile(`(?i)for\s+(\d+)\s+day(?:s)?`),
	regexp.MustCompile(`(?i)for\s+(\d+)\s+night(?:s)?`),
	regexp.MustCompile(`(?i)for\s+about\s+(\d+)\s+day(?:s)?`),
}

func extractDuration(userInput string) (int, bool) {
	for _, pattern := range durationPatterns {
		if match := pattern.FindStringSubmatch(userInput); match != nil {
			if days, err := strconv.Atoi(match[1]); err == nil {
				return days, true
			}
		}
	}
	return 0, false
}

var cuisineKeywords = []string{
	"food", "cuisine", "restaurant", "dining", "eat", "meal",
	"breakfast", "lunch", "dinner", "snack", "cafe", "wine",
	"beer", "drink", "bar", "pub", "street food", "local food",
	"traditional food", "culinary", "gastronomy", "thai food",
}

var placeKeywords = []string{
	"museum", "art", "history", "beach", "hiking", "nature",
	"shopping", "nightlife", "adventure", "relax", "culture",
	"sightseeing", "tour", "park", "festival", "concert",
	"sport", "outdoor", "photography", "historical", "site",
	"monument", "temple", "church", "cathedral", "palace",
	"castle", "ruin", "ancient", "market", "water sport",
	"water sports", "night market", "activity", "beaches",
}

var transportKeywords = []string{
	"transport", "bus", "train", "subway", "metro", "taxi",
	"car", "rental", "bike", "walking", "public transport",
	"tram", "ferry", "boat", "scooter", "motorcycle",
}

// extractFeaturesFallback builds the whole record from keyword and pattern
// matching when the LLM path is unavailable.
func (f *FeatureService) extractFeaturesFallback(userInput string) agent_models.TripFeatures {
	f.logger.Info("using fallback feature extraction")

	var features agent_models.TripFeatures

	if destination := extractDestination(userInput); destination != agent_models.UnknownDestination {
		features.PlaceToVisit = destination
	}

	if days, ok := extractDuration(userInput); ok {
		features.DurationDays = &days
	}

	features.CuisinePreferences = matchKeywords(userInput, cuisineKeywords)
	features.PlacePreferences = matchKeywords(userInput, placeKeywords)

	for _, keyword := range transportKeywords {
		if keywordPattern(keyword).MatchString(userInput) {
			features.TransportPreferences = keyword
			break
		}
	}

	return features
}

func matchKeywords(userInput string, keywords []string) []string {
	var matches []string
	for _, keyword := range keywords {
		if keywordPattern(keyword).MatchString(userInput) {
			matches = append(matches, keyword)
		}
	}
	return matches
}

func keywordPattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `s?\b`)
}
