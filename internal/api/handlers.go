package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"amifi/txn-pipeline/internal/models"
	"amifi/txn-pipeline/internal/pipeline"
	"amifi/txn-pipeline/internal/storage"
)

type processMessageRequest struct {
	Message string `json:"message"`
	Channel string `json:"channel"`
	UserID  string `json:"user_id,omitempty"`
}

type processMessageResponse struct {
	TransactionID  string                      `json:"transaction_id,omitempty"`
	Duplicate      bool                        `json:"duplicate"`
	Fact           models.TransactionFact      `json:"fact"`
	Classification models.ClassificationResult `json:"classification"`
	GoalImpacts    []models.GoalImpact         `json:"goal_impacts"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProcessMessage(w http.ResponseWriter, r *http.Request) {
	var req processMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message must not be empty")
		return
	}
	channel := req.Channel
	if channel == "" {
		channel = models.ChannelSMS
	}

	result, err := s.pipeline.ProcessMessage(r.Context(), req.Message, channel, pipeline.UserMeta(req.UserID))
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrUnparseable):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case channel != models.ChannelSMS && channel != models.ChannelEmail:
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.WithError(err).Error("Failed to process message")
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, processMessageResponse{
		TransactionID:  result.Record.ID,
		Duplicate:      result.Duplicate,
		Fact:           result.Record.Fact,
		Classification: result.Record.Classification,
		GoalImpacts:    impactsOrEmpty(result.Record.Impacts),
	})
}

type processBulkRequest struct {
	Messages []string `json:"messages"`
	Channel  string   `json:"channel"`
}

type processBulkResponse struct {
	pipeline.BulkSummary
	Transactions []processMessageResponse `json:"transactions"`
}

func (s *Server) handleProcessBulk(w http.ResponseWriter, r *http.Request) {
	var req processBulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages must not be empty")
		return
	}
	channel := req.Channel
	if channel == "" {
		channel = models.ChannelSMS
	}
	if channel != models.ChannelSMS && channel != models.ChannelEmail {
		writeError(w, http.StatusBadRequest, "unknown channel "+channel)
		return
	}

	summary, err := s.pipeline.ProcessLines(r.Context(), req.Messages, channel)
	if err != nil {
		s.logger.WithError(err).Error("Bulk processing failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := processBulkResponse{BulkSummary: *summary}
	for _, result := range summary.Results {
		resp.Transactions = append(resp.Transactions, processMessageResponse{
			TransactionID:  result.Record.ID,
			Duplicate:      result.Duplicate,
			Fact:           result.Record.Fact,
			Classification: result.Record.Classification,
			GoalImpacts:    impactsOrEmpty(result.Record.Impacts),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "storage is not configured")
		return
	}

	records, err := s.storage.ListRecords(r.Context(), parseLimit(r))
	if err != nil {
		s.logger.WithError(err).Error("Failed to list transactions")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if records == nil {
		records = []storage.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":        len(records),
		"transactions": records,
	})
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "storage is not configured")
		return
	}

	id := chi.URLParam(r, "id")
	record, err := s.storage.GetRecord(r.Context(), id)
	if err != nil {
		s.logger.WithError(err).WithField("transaction_id", id).Error("Failed to fetch transaction")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleListGoals(w http.ResponseWriter, _ *http.Request) {
	summaries := s.engine.Summaries()
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(summaries),
		"goals": summaries,
	})
}

func impactsOrEmpty(impacts []models.GoalImpact) []models.GoalImpact {
	if impacts == nil {
		return []models.GoalImpact{}
	}
	return impacts
}
