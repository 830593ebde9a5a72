package request_models

// UserInput is the body of POST /api/plan.
type UserInput struct {
	Text string `json:"text"`
}
