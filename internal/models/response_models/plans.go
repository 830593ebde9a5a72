package response_models

import "nodetours/internal/models/agent_models"

// TripDetails carries the derived trip calendar. DailyDates has exactly
// DurationDays entries keyed 1..N.
type TripDetails struct {
	PlaceToVisit string         `json:"place_to_visit,omitempty"`
	StartDate    string         `json:"start_date,omitempty"`
	EndDate      string         `json:"end_date,omitempty"`
	DurationDays int            `json:"duration_days,omitempty"`
	DailyDates   map[int]string `json:"daily_dates,omitempty"`
}

// PlanOutput is the terminal artifact returned to the caller.
type PlanOutput struct {
	Itinerary       string      `json:"itinerary"`
	PackingList     string      `json:"packing_list"`
	EstimatedBudget string      `json:"estimated_budget"`
	TripDetails     TripDetails `json:"trip_details"`
}

// EvalBundle exposes every intermediate pipeline artifact for offline
// judging. It is produced by the same pipeline run as PlanOutput.
type EvalBundle struct {
	Features agent_models.TripFeatures  `json:"features"`
	Queries  []agent_models.SearchQuery `json:"queries"`
	Context  agent_models.ContextBundle `json:"context"`
	Output   PlanOutput                 `json:"output"`
}
