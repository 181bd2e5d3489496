package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rpslab/rps-opponent-go/internal/engine"
	"github.com/rpslab/rps-opponent-go/internal/game"
	"github.com/rpslab/rps-opponent-go/internal/neural"
	"github.com/rpslab/rps-opponent-go/internal/rng"
	"github.com/rpslab/rps-opponent-go/internal/store"
)

// Session construction defaults, matching the original network's constants.
const (
	defaultHiddenSize  = 8
	defaultHistorySize = 3
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	// An empty body means all defaults.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, http.StatusBadRequest, ErrTypeInvalidParams, "invalid request body", nil)
		return
	}

	if req.HiddenSize == 0 {
		req.HiddenSize = defaultHiddenSize
	}
	if req.HistorySize == 0 {
		req.HistorySize = defaultHistorySize
	}
	if req.HiddenSize < 0 || req.HistorySize < 0 {
		s.writeError(w, http.StatusBadRequest, ErrTypeInvalidParams, "sizes must be positive", nil)
		return
	}
	if req.LearningRate <= 0 {
		req.LearningRate = engine.DefaultLearningRate
	}
	if req.Encoder == "" {
		req.Encoder = engine.LayoutMinimal
	}
	if req.Policy == "" {
		req.Policy = engine.PolicyGreedy
	}
	if req.Seed == "" {
		req.Seed = uuid.New().String()
	}

	enc, err := engine.NewEncoder(req.Encoder)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeInvalidParams, err.Error(), nil)
		return
	}
	// The policy draws from its own stream so sampling does not perturb
	// weight initialization for a given seed.
	policyStream := rng.New(req.Seed + "/policy")
	pol, err := engine.NewPolicy(req.Policy, policyStream.Next)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeInvalidParams, err.Error(), nil)
		return
	}

	net, err := neural.New(neural.Config{
		InputSize:   enc.Width(),
		HistorySize: req.HistorySize,
		HiddenSize:  req.HiddenSize,
		OutputSize:  game.NumChoices,
	}, rng.New(req.Seed))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeInvalidParams, err.Error(), nil)
		return
	}

	session := engine.NewSession(enc, pol, req.LearningRate)
	if err := session.Start(net); err != nil {
		s.logger.Printf("session start failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, "failed to start session", nil)
		return
	}

	rec, err := s.db.CreateSession(req.Encoder, req.Policy, req.HiddenSize, req.HistorySize, req.LearningRate, req.Seed)
	if err != nil {
		s.logger.Printf("persist session failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, "failed to persist session", nil)
		return
	}
	s.sessions.Put(rec.ID, session)

	s.writeJSON(w, http.StatusCreated, s.sessionResponse(rec, session))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, ok := s.sessions.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, ErrTypeSessionNotFound, "no live session with that id", map[string]any{"id": id})
		return
	}
	rec, err := s.db.GetSession(id)
	if err != nil {
		s.logger.Printf("get session %s: %v", id, err)
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, "failed to load session", nil)
		return
	}
	s.writeJSON(w, http.StatusOK, s.sessionResponse(rec, session))
}

func (s *Server) sessionResponse(rec store.SessionRecord, session *engine.Session) SessionResponse {
	return SessionResponse{
		ID:            rec.ID,
		Encoder:       rec.Encoder,
		Policy:        rec.Policy,
		HiddenSize:    rec.HiddenSize,
		HistorySize:   rec.HistorySize,
		LearningRate:  rec.LearningRate,
		Seed:          rec.Seed,
		State:         string(session.State()),
		Probabilities: session.Probabilities(),
		CreatedAt:     rec.CreatedAt.Format(time.RFC3339Nano),
	}
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, ok := s.sessions.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, ErrTypeSessionNotFound, "no live session with that id", map[string]any{"id": id})
		return
	}

	var req PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeInvalidParams, "invalid request body", nil)
		return
	}
	choice, err := game.ParseChoice(req.Choice)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeInvalidChoice, err.Error(), map[string]any{"choice": req.Choice})
		return
	}

	res, err := session.Play(choice)
	switch {
	case errors.Is(err, engine.ErrNotReady):
		s.writeError(w, http.StatusConflict, ErrTypeNetworkNotReady, "network not ready", nil)
		return
	case errors.Is(err, engine.ErrUnavailable):
		s.writeError(w, http.StatusServiceUnavailable, ErrTypeUnavailable, err.Error(), nil)
		return
	case err != nil:
		s.writeError(w, http.StatusBadRequest, ErrTypeInvalidChoice, err.Error(), nil)
		return
	}

	// The round already happened and trained the network; a persistence
	// failure is logged, not surfaced as a failed play.
	if err := s.db.AppendRound(id, res.Seq, res.Round); err != nil {
		s.logger.Printf("persist round %d for session %s: %v", res.Seq, id, err)
	}

	dto := roundDTO(res.Seq, res.Round)
	s.hub.Broadcast(id, wsMessage{Type: "round", Payload: dto})

	s.writeJSON(w, http.StatusOK, PlayResponse{
		Round:         dto,
		Probabilities: res.Probs,
	})
}

func roundDTO(seq int, r game.Round) RoundDTO {
	return RoundDTO{
		Seq:      seq,
		Player:   r.Player.String(),
		Computer: r.Computer.String(),
		Outcome:  r.Outcome().String(),
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.db.GetSession(id); err != nil {
		s.writeError(w, http.StatusNotFound, ErrTypeSessionNotFound, "unknown session", map[string]any{"id": id})
		return
	}
	records, err := s.db.ListRounds(id)
	if err != nil {
		s.logger.Printf("list rounds for %s: %v", id, err)
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, "failed to load history", nil)
		return
	}
	rounds := make([]RoundDTO, 0, len(records))
	for _, rec := range records {
		rounds = append(rounds, roundDTO(rec.Seq, rec.Round))
	}
	s.writeJSON(w, http.StatusOK, HistoryResponse{SessionID: id, Rounds: rounds})
}

func (s *Server) handleProbs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, ok := s.sessions.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, ErrTypeSessionNotFound, "no live session with that id", map[string]any{"id": id})
		return
	}
	s.writeJSON(w, http.StatusOK, ProbsResponse{SessionID: id, Probabilities: session.Probabilities()})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.db.GetSession(id); err != nil {
		s.writeError(w, http.StatusNotFound, ErrTypeSessionNotFound, "unknown session", map[string]any{"id": id})
		return
	}
	summary, err := s.db.SessionSummary(id)
	if err != nil {
		s.logger.Printf("summary for %s: %v", id, err)
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, "failed to compute stats", nil)
		return
	}

	resp := StatsResponse{
		SessionID:    id,
		Rounds:       summary.Rounds,
		PlayerWins:   summary.PlayerWins,
		ComputerWins: summary.ComputerWins,
		Draws:        summary.Draws,
	}
	zero := decimal.Zero.StringFixed(4)
	resp.PlayerWinRate, resp.ComputerWinRate, resp.DrawRate = zero, zero, zero
	if summary.Rounds > 0 {
		total := decimal.NewFromInt(int64(summary.Rounds))
		rate := func(n int) string {
			return decimal.NewFromInt(int64(n)).DivRound(total, 4).StringFixed(4)
		}
		resp.PlayerWinRate = rate(summary.PlayerWins)
		resp.ComputerWinRate = rate(summary.ComputerWins)
		resp.DrawRate = rate(summary.Draws)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSaveStrategy(w http.ResponseWriter, r *http.Request) {
	var req SaveStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeInvalidParams, "invalid request body", nil)
		return
	}
	if req.Name == "" || req.Source == "" {
		s.writeError(w, http.StatusBadRequest, ErrTypeInvalidParams, "name and source are required", nil)
		return
	}

	saved, err := s.db.SaveStrategy(req.Name, req.Source)
	if err != nil {
		s.writeError(w, http.StatusConflict, ErrTypeStrategyExists, err.Error(), map[string]any{"name": req.Name})
		return
	}
	s.writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	list, err := s.db.ListStrategies()
	if err != nil {
		s.logger.Printf("list strategies: %v", err)
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, "failed to list strategies", nil)
		return
	}
	if list == nil {
		list = []store.Strategy{}
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetStrategy(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	strat, err := s.db.GetStrategy(name)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, ErrTypeStrategyNotFound, "unknown strategy", map[string]any{"name": name})
		return
	}
	if err != nil {
		s.logger.Printf("get strategy %s: %v", name, err)
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, "failed to load strategy", nil)
		return
	}
	s.writeJSON(w, http.StatusOK, strat)
}
