package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"nodetours/internal/models/agent_models"
	"nodetours/internal/models/response_models"
	"nodetours/pkg/llm"
	"nodetours/pkg/utils"
)

const (
	defaultDurationDays = 3

	itineraryApology = "I apologize, but I couldn't generate a detailed itinerary. Please try again with more specific information about your trip."
	packingApology   = "I apologize, but I couldn't generate a packing list. Please try again with more specific information about your trip."
	budgetApology    = "I apologize, but I couldn't generate a budget estimate. Please try again with more specific information about your trip."
)

type OutputServiceInterface interface {
	GeneratePlan(ctx context.Context, features agent_models.TripFeatures, bundle agent_models.ContextBundle) response_models.PlanOutput
}

type OutputService struct {
	client llm.CompletionClient
	logger *slog.Logger
	now    func() time.Time
}

func NewOutputService(client llm.CompletionClient, logger *slog.Logger) OutputServiceInterface {
	return &OutputService{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// GeneratePlan produces the itinerary, packing list, and budget estimate.
// Trip details are computed deterministically before any LLM call: the trip
// starts two weeks out and daily dates cover days 1..N. If the itinerary call
// fails the whole output collapses to the apology object with empty trip
// details.
func (o *OutputService) GeneratePlan(ctx context.Context, features agent_models.TripFeatures, bundle agent_models.ContextBundle) response_models.PlanOutput {
	destination := features.PlaceToVisit
	if destination == "" {
		destination = "Your Destination"
	}
	durationDays := features.Duration(defaultDurationDays)

	startDate := utils.TripStartDate(o.now())
	endDate := startDate.AddDate(0, 0, durationDays)

	tripDetails := response_models.TripDetails{
		PlaceToVisit: destination,
		StartDate:    startDate.Format(utils.ISODate),
		EndDate:      endDate.Format(utils.ISODate),
		DurationDays: durationDays,
		DailyDates:   utils.DailyDates(startDate, durationDays),
	}

	o.logger.Info("generating travel itinerary", "destination", destination, "duration_days", durationDays)

	itinerary, err := o.generateItinerary(ctx, features, bundle, destination, durationDays)
	if err != nil {
		o.logger.Error("error generating itinerary", "error", err)
		return response_models.PlanOutput{
			Itinerary: itineraryApology,
		}
	}

	return response_models.PlanOutput{
		Itinerary:       itinerary,
		PackingList:     o.generatePackingList(ctx, features, bundle),
		EstimatedBudget: o.estimateBudget(ctx, features),
		TripDetails:     tripDetails,
	}
}

func (o *OutputService) generateItinerary(ctx context.Context, features agent_models.TripFeatures, bundle agent_models.ContextBundle, destination string, durationDays int) (string, error) {
	systemPrompt := fmt.Sprintf(`
You are a personalized travel planning assistant called NoDetours.
Your goal is to create detailed, personalized travel itineraries based on user preferences,
external data about destinations, and current context (like weather conditions).

You are a TRUE EXPERT on %[1]s and will create a comprehensive travel itinerary.

# %[1]s Travel Itinerary for %[2]d Days

## Overview
Welcome to %[1]s, known for its [specific unique features]. This itinerary covers a %[2]d-day trip and includes the best attractions and experiences this destination has to offer.

## Day 1
- **Morning**:
  - Visit the Museum of Modern Art, known for its extensive collection of contemporary works
  - Take a walking tour through the Historic District, stopping at the Central Market
- **Afternoon**:
  - Enjoy lunch at Riverside Café with views of the harbor
  - Explore the National Gardens and the adjacent Botanical Museum
- **Evening**:
  - Dinner at Giorgio's Restaurant, famous for its local cuisine
  - Attend a show at the Grand Theater or stroll along the illuminated Waterfront Promenade

## Day 2
- **Morning**:
  - Visit the Natural History Museum located in the University District
  - Hike through Evergreen Park and enjoy the scenic overlook
- **Afternoon**:
  - Tour the Metropolitan Cathedral with its famous stained glass windows
  - Visit the City Art Gallery featuring works by local artists
- **Evening**:
  - Enjoy dinner at Blue Waters Seafood Restaurant
  - Experience the local nightlife at Jazz Club 64

[Continue until you create EXACTLY %[2]d days in total]

YOU MUST CREATE EXACTLY %[2]d DAYS IN TOTAL - from Day 1 to Day %[2]d.

VERY IMPORTANT: Use EXACTLY this format: "## Day X" (where X is 1 through %[2]d) without any dates or subtitles.
DO NOT use any special styling, backgrounds, or colors.

At the end, verify that you have created entries for all days from Day 1 through Day %[2]d.

## Accommodation
- **Luxury**: The Grand Hotel %[1]s - $300-400 per night, featuring spa facilities and downtown views
- **Mid-Range**: Parkview Inn - $150-200 per night, centrally located with complimentary breakfast
- **Budget-Friendly**: Traveler's Lodge - $70-100 per night, clean and basic accommodations near public transportation

## Transportation
- The Metro system runs throughout the city with lines 1, 2, and 3 connecting all major attractions
- City Bus routes 10 and 15 provide service to outer neighborhoods
- Ride-sharing services like Uber and Lyft are readily available
- Bicycle rentals available through CityBike at $15 per day

## Dining Recommendations
- Harbor View Restaurant - Seafood - Located in the Marina District
- The Spice Garden - Local Cuisine - Downtown area
- Pasta Heaven - Italian - Near the Metropolitan Cathedral
- Green Leaf Café - Vegetarian - University District
- Night Market Food Stalls - Various cuisines - Open evenings in the Old Quarter

## Estimated Costs
- **Accommodation**: $70-400 per night depending on comfort level
- **Meals**: $15-30 per person for lunch, $25-60 for dinner
- **Attractions**: Most museums cost $10-20 per person
- **Local Transportation**: $5-15 per day using public transit
- **Total Daily Budget**: $100-250 per person per day excluding accommodation

## Tips
- The best time to visit the National Gardens is early morning to avoid crowds
- Most museums are closed on Mondays
- Carry a light raincoat as afternoon showers are common
- Look for the "Local's Menu" at restaurants for authentic and affordable options
- The City Pass ($45) provides entry to 5 major attractions and is worth purchasing

USE THE ABOVE EXAMPLE as a format reference only. You MUST replace ALL content with genuine attractions, restaurants, hotels, and specific details about %[1]s.

EXTREMELY IMPORTANT:
1. NEVER include placeholder text inside square brackets
2. NEVER use text like "[attraction name]" or "famous museum" - always use the ACTUAL NAMES of real places
3. EVERY SINGLE attraction, restaurant, museum, park, and hotel MUST be a real place that exists in %[1]s
4. Include PRECISE price ranges in local currency for all cost estimates
5. BE EXTREMELY SPECIFIC and DETAILED about each attraction and location

The user will immediately reject any itinerary containing placeholders or generic descriptions.
`, destination, durationDays)

	userPrompt := fmt.Sprintf(`
Create a DETAILED and AUTHENTIC travel itinerary for a trip to %[1]s based on the following information:

## My Travel Details
Destination: %[1]s
Duration: %[2]d days
Place Preferences: %[3]s
Cuisine Preferences: %[4]s
Transportation: %[5]s

## Destination Information
%[6]s

## Weather Information
%[7]s

## Location Information
%[8]s

## EXPERT INSTRUCTIONS
You are a travel expert specializing in %[1]s. I need a HIGHLY SPECIFIC itinerary with REAL places and attractions.

1. Each activity MUST reference a REAL attraction, restaurant, or location in %[1]s - use SPECIFIC NAMES
2. ABSOLUTELY NO PLACEHOLDER TEXT like [attraction name] or [local restaurant]
3. Use ONLY the format "## Day 1", "## Day 2" WITHOUT any dates or subtitles
4. I expect detailed morning, afternoon, and evening segments for each day
5. Each day should have a clear theme or focus area
6. Include REAL restaurants with their ACTUAL names and cuisine types
7. Mention SPECIFIC costs in the local currency with realistic price ranges
8. EXTREMELY IMPORTANT: You MUST create an itinerary for EXACTLY %[2]d days - no more, no less
9. You MUST include "## Day 1" through "## Day %[2]d" - all days must be included

IMPORTANT:
- YOU MUST CREATE EXACTLY %[2]d DAYS OF ITINERARY
- DO NOT use colored backgrounds, highlight boxes, or any special formatting for days
- Use ONLY "Day 1", "Day 2", etc. format WITHOUT any dates
- Use simple, plain text formatting throughout the itinerary
- Avoid using any Markdown syntax that might create colored boxes or backgrounds
- DO NOT output the same content twice or include the raw markdown
- VERIFY that you have created entries for Day 1 through Day %[2]d before finishing

I will immediately reject any itinerary that doesn't contain exactly %[2]d days.
`,
		destination,
		durationDays,
		defaultIfEmpty(formatList(features.PlacePreferences), "General sightseeing, popular attractions"),
		defaultIfEmpty(formatList(features.CuisinePreferences), "Local cuisine"),
		defaultIfEmpty(formatValue(features.TransportPreferences), "Public transportation and walking"),
		formatSearchContext(bundle.SearchResults),
		formatWeatherContext(bundle.WeatherInfo),
		formatLocationContext(bundle.MapInfo),
	)

	return o.client.Complete(ctx, systemPrompt, userPrompt, nil)
}

func (o *OutputService) generatePackingList(ctx context.Context, features agent_models.TripFeatures, bundle agent_models.ContextBundle) string {
	o.logger.Info("generating packing list")

	systemPrompt := `
You are a travel planning assistant. Your task is to create a comprehensive
packing list based on the destination, weather conditions, and planned activities.
Be specific and practical.

Format your response in Markdown with clear sections and bullet points.
`

	userPrompt := fmt.Sprintf(`
Please create a packing list for a trip to %s.

Trip details:
- Duration: %s days
- Weather: %s
- Activities: %s
- Food interests: %s
`,
		features.PlaceToVisit,
		formatDuration(features.DurationDays),
		formatWeatherContext(bundle.WeatherInfo),
		formatList(features.PlacePreferences),
		formatList(features.CuisinePreferences),
	)

	packingList, err := o.client.Complete(ctx, systemPrompt, userPrompt, nil)
	if err != nil {
		o.logger.Error("error generating packing list", "error", err)
		return packingApology
	}
	return packingList
}

func (o *OutputService) estimateBudget(ctx context.Context, features agent_models.TripFeatures) string {
	o.logger.Info("generating budget estimate")

	systemPrompt := `
You are a travel budget estimator. Your task is to provide a reasonable
budget estimate based on the destination, accommodation preferences,
activities, and travel style.

Follow this EXACT format for your response:

### Budget Estimate for [Destination]

#### 1. Accommodation:
- **Budget Accommodation:** $XX - $XX per night
- **Mid-Range Accommodation:** $XX - $XX per night
- **Luxury Accommodation:** $XX - $XX per night

#### 2. Transportation:
- **Local Transportation:** $XX - $XX
- **Rental Car (if applicable):** $XX - $XX
- **Flights (if applicable):** $XX - $XX

#### 3. Food and Dining:
- **Budget Meals:** $XX - $XX per meal
- **Mid-Range Restaurants:** $XX - $XX per meal
- **Fine Dining:** $XX - $XX per meal

#### 4. Activities and Attractions:
- **Museum/Attraction Entrance Fees:** $XX - $XX per attraction
- **Tours:** $XX - $XX
- **Entertainment:** $XX - $XX

#### 5. Miscellaneous Expenses:
- **Souvenirs:** $XX - $XX
- **Tips and Gratuities:** $XX - $XX

#### Total Estimated Budget Range:
- **Low End:** $XXX - $XXX
- **Mid Range:** $XXX - $XXX
- **High End:** $XXX - $XXX

*Note: Actual costs may vary based on personal preferences, travel style, and specific requirements.*
`

	userPrompt := fmt.Sprintf(`
Please estimate a budget for a trip to %s.

Trip details:
- Duration: %s days
- Transportation: %s
- Activities: %s
- Food interests: %s

Make sure your output follows EXACTLY the format specified in the system prompt.
`,
		features.PlaceToVisit,
		formatDuration(features.DurationDays),
		defaultIfEmpty(formatValue(features.TransportPreferences), "Public transportation and walking"),
		defaultIfEmpty(formatList(features.PlacePreferences), "General sightseeing"),
		defaultIfEmpty(formatList(features.CuisinePreferences), "Local cuisine"),
	)

	budget, err := o.client.Complete(ctx, systemPrompt, userPrompt, nil)
	if err != nil {
		o.logger.Error("error generating budget estimate", "error", err)
		return budgetApology
	}
	return budget
}

func formatSearchContext(results []agent_models.SearchResult) string {
	if len(results) == 0 {
		return "No search results available."
	}

	var lines []string
	for _, result := range results {
		if len(result.Results) == 0 {
			continue
		}

		if result.FeatureType != "" && result.FeatureValue != "" {
			lines = append(lines, fmt.Sprintf("Information about %s '%s':", result.FeatureType, result.FeatureValue))
		} else {
			lines = append(lines, fmt.Sprintf("Information about: %s", result.Query))
		}

		for _, place := range result.Results {
			lines = append(lines, fmt.Sprintf("- Place Name: %s and Place Description: %s", place.Name, place.Description))
		}
		lines = append(lines, "")
	}

	if len(lines) == 0 {
		return "No search results available."
	}
	return strings.Join(lines, "\n")
}

func formatWeatherContext(weather agent_models.WeatherInfo) string {
	if weather.Location == "" && len(weather.FiveDayForecast) == 0 {
		return "No weather information available."
	}

	lines := []string{fmt.Sprintf("5-Day Weather forecast for %s:", weather.Location)}
	for _, forecast := range weather.FiveDayForecast {
		lines = append(lines, fmt.Sprintf(
			"- Day %d: Min Temp-%s, Max Temp-%s, Feels Like-%s, Description-%s, Wind Speed- %s",
			forecast.Day, forecast.MinTemp, forecast.MaxTemp, forecast.FeelsLike, forecast.Description, forecast.WindSpeed,
		))
	}
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}

func formatLocationContext(mapInfo agent_models.MapInfo) string {
	if mapInfo.FormattedAddress == "" {
		return "No location information available."
	}

	lines := []string{
		fmt.Sprintf("Location: %s", mapInfo.FormattedAddress),
		fmt.Sprintf("Coordinates: %.4f, %.4f", mapInfo.Location.Lat, mapInfo.Location.Lng),
		"",
	}
	return strings.Join(lines, "\n")
}

func defaultIfEmpty(value, fallback string) string {
	if value == "" || value == "Not specified" {
		return fallback
	}
	return value
}
