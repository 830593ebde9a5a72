package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"nodetours/internal/models/agent_models"
	"nodetours/internal/models/response_models"
	"nodetours/pkg/llm"
	"nodetours/pkg/utils"
)

type AgentServiceInterface interface {
	CreatePlan(ctx context.Context, userInput string) (response_models.PlanOutput, error)
	CreatePlanForEval(ctx context.Context, userInput string) (response_models.EvalBundle, error)
	History() []llm.Message
}

// AgentService runs the planning pipeline end to end: guard, feature
// extraction, query generation, context collection, output generation, then
// the post-generation repairs.
type AgentService struct {
	guard    GuardServiceInterface
	features FeatureServiceInterface
	queries  QueryServiceInterface
	context  ContextServiceInterface
	output   OutputServiceInterface
	logger   *slog.Logger

	mu       sync.Mutex
	history  []llm.Message
	maxTurns int
}

// NewAgentService wires the pipeline. maxTurns bounds the retained
// conversation turns (a user/assistant pair); 0 keeps everything.
func NewAgentService(
	guard GuardServiceInterface,
	features FeatureServiceInterface,
	queries QueryServiceInterface,
	contextSvc ContextServiceInterface,
	output OutputServiceInterface,
	maxTurns int,
	logger *slog.Logger,
) AgentServiceInterface {
	return &AgentService{
		guard:    guard,
		features: features,
		queries:  queries,
		context:  contextSvc,
		output:   output,
		maxTurns: maxTurns,
		logger:   logger,
	}
}

// CreatePlan processes the user input and returns the travel plan. The only
// error conditions are empty input and guard rejection; everything else
// degrades inside the pipeline and still yields a plan.
func (a *AgentService) CreatePlan(ctx context.Context, userInput string) (response_models.PlanOutput, error) {
	bundle, err := a.runPipeline(ctx, userInput)
	if err != nil {
		return response_models.PlanOutput{}, err
	}
	return bundle.Output, nil
}

// CreatePlanForEval runs the same pipeline but returns every intermediate
// artifact for offline judging.
func (a *AgentService) CreatePlanForEval(ctx context.Context, userInput string) (response_models.EvalBundle, error) {
	return a.runPipeline(ctx, userInput)
}

func (a *AgentService) runPipeline(ctx context.Context, userInput string) (response_models.EvalBundle, error) {
	if strings.TrimSpace(userInput) == "" {
		return response_models.EvalBundle{}, utils.ErrEmptyInput
	}

	valid, reason := a.guard.ValidateInput(ctx, userInput)
	if !valid {
		a.logger.Warn("input rejected by guard", "reason", reason)
		return response_models.EvalBundle{}, fmt.Errorf("%w: %s", utils.ErrInvalidInput, reason)
	}
	a.logger.Info("validated the user input")

	features := a.features.ExtractFeatures(ctx, userInput)
	a.logger.Info("extracted features", "place_to_visit", features.PlaceToVisit)

	queries := a.queries.GenerateQueries(ctx, features)
	a.logger.Info("generated queries", "count", len(queries))

	contextBundle := a.context.CollectContext(ctx, queries, features)
	a.logger.Info("collected context information")

	output := a.output.GeneratePlan(ctx, features, contextBundle)
	a.logger.Info("generated travel plan output")

	a.fillMissingSections(&output, features)
	a.checkDayCount(output)
	a.repairBudgetHeading(&output)

	a.appendTurn(userInput, output.Itinerary)

	return response_models.EvalBundle{
		Features: features,
		Queries:  queries,
		Context:  contextBundle,
		Output:   output,
	}, nil
}

// fillMissingSections substitutes template content for any section the
// generator left empty, so the plan always has all three parts.
func (a *AgentService) fillMissingSections(output *response_models.PlanOutput, features agent_models.TripFeatures) {
	destination := features.PlaceToVisit
	if destination == "" {
		destination = "your destination"
	}

	if output.Itinerary == "" {
		a.logger.Warn("no itinerary was generated, providing fallback")
		output.Itinerary = fallbackItinerary(destination)
	}
	if output.PackingList == "" {
		a.logger.Warn("no packing list was generated, providing fallback")
		output.PackingList = fallbackPackingList(destination)
	}
	if output.EstimatedBudget == "" {
		a.logger.Warn("no budget estimate was generated, providing fallback")
		output.EstimatedBudget = fallbackBudget(destination)
	}
}

// checkDayCount compares the day headings in the itinerary against the
// requested duration. A shortfall is only logged; the text is returned as
// generated.
func (a *AgentService) checkDayCount(output response_models.PlanOutput) {
	expectedDays := output.TripDetails.DurationDays
	if expectedDays <= 0 || output.Itinerary == "" {
		return
	}

	dayCount := utils.CountDayHeadings(output.Itinerary)
	a.logger.Info("checked itinerary day headings", "expected", expectedDays, "found", dayCount)

	if dayCount < expectedDays {
		a.logger.Warn("itinerary has fewer days than requested", "expected", expectedDays, "found", dayCount)
	}
}

// repairBudgetHeading prepends the budget title when the generator omitted
// it, keeping the section renderable.
func (a *AgentService) repairBudgetHeading(output *response_models.PlanOutput) {
	budget := output.EstimatedBudget
	if budget == "" || strings.Contains(budget, "Budget Estimate") {
		return
	}

	a.logger.Warn("budget estimate is missing a title, adding one")
	destination := output.TripDetails.PlaceToVisit
	if destination == "" {
		destination = "Your Trip"
	}
	output.EstimatedBudget = fmt.Sprintf("### Budget Estimate for %s\n\n%s", destination, budget)
}

func (a *AgentService) appendTurn(userInput, itinerary string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.history = append(a.history,
		llm.Message{Role: "user", Content: userInput},
		llm.Message{Role: "assistant", Content: itinerary},
	)

	if a.maxTurns > 0 && len(a.history) > a.maxTurns*2 {
		a.history = a.history[len(a.history)-a.maxTurns*2:]
	}
}

// History returns a copy of the conversation history.
func (a *AgentService) History() []llm.Message {
	a.mu.Lock()
	defer a.mu.Unlock()

	history := make([]llm.Message, len(a.history))
	copy(history, a.history)
	return history
}

func fallbackItinerary(destination string) string {
	return strings.TrimSpace(fmt.Sprintf(`
# Travel Itinerary for %[1]s

I've prepared a basic itinerary outline for your trip to %[1]s. To create a more detailed plan, I'd need more specific information about your travel dates, preferences, and constraints.

## General Recommendations

- Research the top attractions in %[1]s
- Look for accommodation in central areas for easy access to attractions
- Check the local weather forecast before your trip
- Consider local transportation options
- Research local cuisine and popular restaurants

Please provide more details about your trip for a customized itinerary including day-by-day activities, accommodation recommendations, and local tips.
`, destination))
}

func fallbackPackingList(destination string) string {
	return strings.TrimSpace(fmt.Sprintf(`
# Packing Essentials for %s

Here's a general packing list to help you prepare:

## Documents
- Passport/ID
- Travel insurance information
- Hotel/accommodation confirmations
- Flight/transportation tickets

## Clothing
- Weather-appropriate clothing
- Comfortable walking shoes
- Light jacket or sweater
- Sleepwear

## Toiletries
- Toothbrush and toothpaste
- Shampoo and soap
- Sunscreen
- Personal medications

## Electronics
- Phone and charger
- Camera
- Power adapter if traveling internationally

For a more specific packing list, please provide details about your travel season, planned activities, and any special requirements.
`, destination))
}

func fallbackBudget(destination string) string {
	return strings.TrimSpace(fmt.Sprintf(`
# Budget Estimate for %s

Without specific details about your travel style and preferences, I can only provide a general budget framework:

## Approximate Costs

- **Accommodation**: Varies widely from budget hostels to luxury hotels
- **Transportation**: Consider local public transit, taxis, or rental cars
- **Food**: Budget for meals according to your dining preferences
- **Activities**: Research ticket prices for attractions you wish to visit
- **Miscellaneous**: Include a buffer for souvenirs and unexpected expenses

For a detailed budget estimate, please provide information about your accommodation preferences, dining habits, planned activities, and travel style.
`, destination))
}
