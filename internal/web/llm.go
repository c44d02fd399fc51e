package web

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/feature"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/llm"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/logging"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/store"
)

const recentEvents = 50

// ModelCost is one model's usage with its estimated cost.
type ModelCost struct {
	store.ModelUsage
	CostUSD *float64 `json:"cost_usd,omitempty"`
}

// LLMStats is the request log summary served on /llm and the API.
type LLMStats struct {
	Model     string               `json:"model"`
	Available bool                 `json:"available"`
	ByPurpose []store.PurposeUsage `json:"by_purpose"`
	ByModel   []ModelCost          `json:"by_model"`
	TotalCost float64              `json:"total_cost_usd"`
	Unpriced  bool                 `json:"unpriced_models,omitempty"`
}

func (s *Server) llmStats(ctx context.Context) (*LLMStats, error) {
	gw := s.router.Gateway()
	st := &LLMStats{
		Model:     gw.ModelID(),
		Available: gw.Available(),
		ByPurpose: []store.PurposeUsage{},
		ByModel:   []ModelCost{},
	}
	if s.events == nil {
		return st, nil
	}

	purposes, err := s.events.LLMUsageByPurpose(ctx)
	if err != nil {
		return nil, err
	}
	st.ByPurpose = append(st.ByPurpose, purposes...)

	models, err := s.events.LLMUsageByModel(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range models {
		mc := ModelCost{ModelUsage: m}
		if c := llm.LookupCost(m.Model); c != nil {
			cost := c.Cost(m.InputTokens, m.OutputTokens)
			mc.CostUSD = &cost
			st.TotalCost += cost
		} else {
			st.Unpriced = true
		}
		st.ByModel = append(st.ByModel, mc)
	}
	return st, nil
}

type llmView struct {
	Stats  *LLMStats
	Events []store.LLMEvent
	Logged bool
}

func (s *Server) handleLLMEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := s.newPage(feature.KindHome)
	p.Title = "Model Requests"

	stats, err := s.llmStats(ctx)
	if err != nil {
		logging.FromContext(ctx).WithError(err).Error("loading model usage")
		s.renderStatus(w, r, http.StatusInternalServerError, "Could not load the request log.")
		return
	}

	view := llmView{Stats: stats, Logged: s.events != nil}
	if s.events != nil {
		view.Events, err = s.events.QueryLLMEvents(ctx, store.QueryOpts{
			Limit:   recentEvents,
			Purpose: r.URL.Query().Get("purpose"),
		})
		if err != nil {
			logging.FromContext(ctx).WithError(err).Error("querying model requests")
			s.renderStatus(w, r, http.StatusInternalServerError, "Could not load the request log.")
			return
		}
	}
	p.Extra = view
	s.render(w, r, http.StatusOK, "llm", p)
}

func (s *Server) handleLLMEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || s.events == nil {
		s.renderStatus(w, r, http.StatusNotFound, "Request not found.")
		return
	}

	e, err := s.events.GetLLMEvent(ctx, id)
	if err != nil {
		logging.FromContext(ctx).WithError(err).Error("loading model request")
		s.renderStatus(w, r, http.StatusInternalServerError, "Could not load the request.")
		return
	}
	if e == nil {
		s.renderStatus(w, r, http.StatusNotFound, "Request not found.")
		return
	}

	p := s.newPage(feature.KindHome)
	p.Title = "Model Request " + strconv.FormatInt(id, 10)
	p.Extra = e
	s.render(w, r, http.StatusOK, "llm-event", p)
}
