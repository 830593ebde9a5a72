package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"nodetours/internal/models/response_models"
	"nodetours/pkg/llm"
	"nodetours/pkg/utils"
)

type stubAgent struct {
	plan    response_models.PlanOutput
	err     error
	history []llm.Message
}

func (s *stubAgent) CreatePlan(context.Context, string) (response_models.PlanOutput, error) {
	return s.plan, s.err
}

func (s *stubAgent) CreatePlanForEval(context.Context, string) (response_models.EvalBundle, error) {
	return response_models.EvalBundle{Output: s.plan}, s.err
}

func (s *stubAgent) History() []llm.Message {
	return s.history
}

func newTestRouter(agent *stubAgent) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewPlanController(agent, "0.1.0")

	r := gin.New()
	r.POST("/api/plan", controller.CreatePlan)
	r.GET("/api/history", controller.GetHistory)
	r.GET("/api/health", controller.Health)
	return r
}

func TestCreatePlan_ReturnsPlan(t *testing.T) {
	agent := &stubAgent{plan: response_models.PlanOutput{Itinerary: "## Day 1"}}
	router := newTestRouter(agent)

	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{"text": "Plan a trip to Paris."}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp utils.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "success" {
		t.Fatalf("status = %q", resp.Status)
	}
}

func TestCreatePlan_EmptyTextRejected(t *testing.T) {
	router := newTestRouter(&stubAgent{})

	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{"text": "  "}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Input text cannot be empty") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestCreatePlan_MalformedBodyRejected(t *testing.T) {
	router := newTestRouter(&stubAgent{})

	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCreatePlan_GuardRejectionIs400(t *testing.T) {
	agent := &stubAgent{err: fmt.Errorf("%w: Not travel related", utils.ErrInvalidInput)}
	router := newTestRouter(agent)

	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{"text": "Write me a poem"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Not travel related") {
		t.Fatalf("body must carry the guard reason: %s", w.Body.String())
	}
}

func TestGetHistory(t *testing.T) {
	agent := &stubAgent{history: []llm.Message{
		{Role: "user", Content: "Plan a trip to Paris."},
		{Role: "assistant", Content: "## Day 1"},
	}}
	router := newTestRouter(agent)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"history"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&stubAgent{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "0.1.0") {
		t.Fatalf("body = %s", w.Body.String())
	}
}
