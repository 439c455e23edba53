package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amifi/txn-pipeline/internal/classifier"
	"amifi/txn-pipeline/internal/extractor"
	"amifi/txn-pipeline/internal/goalimpact"
	"amifi/txn-pipeline/internal/logging"
	"amifi/txn-pipeline/internal/models"
	"amifi/txn-pipeline/internal/pipeline"
	"amifi/txn-pipeline/internal/storage"
	"amifi/txn-pipeline/internal/store"
)

const cardSpendMessage = "INR 1,249.00 spent on HDFC Credit Card XX1234 at AMAZON on 23-09-2025 1435."

func newTestServer(t *testing.T) (*Server, *storage.MockStorage) {
	t.Helper()
	logger := logging.NewMockLogger()

	engine, err := goalimpact.New(store.DefaultGoals(), logger)
	require.NoError(t, err)
	engine.WithClock(func() time.Time {
		return time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	})

	st := storage.NewMockStorage()
	p := pipeline.New(
		extractor.New(logger),
		classifier.New(classifier.NewRulePredictor(logger), logger),
		engine,
		st,
		logger,
	)
	return NewServer(p, engine, st, logger), st
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestProcessMessageEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	rec := postJSON(t, router, "/api/v1/process-message", processMessageRequest{
		Message: cardSpendMessage,
		Channel: models.ChannelSMS,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp processMessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.TransactionID)
	assert.False(t, resp.Duplicate)
	assert.Equal(t, models.CategoryShopping, resp.Classification.Category)
	assert.Contains(t, resp.Classification.Subcategories, "online_marketplace")
	assert.NotEmpty(t, resp.GoalImpacts)
}

func TestProcessMessageDuplicate(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	first := postJSON(t, router, "/api/v1/process-message", processMessageRequest{Message: cardSpendMessage})
	require.Equal(t, http.StatusOK, first.Code)

	second := postJSON(t, router, "/api/v1/process-message", processMessageRequest{Message: cardSpendMessage})
	require.Equal(t, http.StatusOK, second.Code)

	var resp processMessageResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.True(t, resp.Duplicate)
}

func TestProcessMessageUnparseable(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	rec := postJSON(t, router, "/api/v1/process-message", processMessageRequest{
		Message: "see you at dinner tonight",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestProcessMessageBadRequests(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process-message", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/api/v1/process-message", processMessageRequest{Message: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/api/v1/process-message", processMessageRequest{
		Message: cardSpendMessage,
		Channel: "pigeon",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessBulkEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	rec := postJSON(t, router, "/api/v1/process-bulk", processBulkRequest{
		Messages: []string{
			cardSpendMessage,
			"not a transaction at all",
		},
		Channel: models.ChannelSMS,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp processBulkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.Processed)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, models.CategoryShopping, resp.Transactions[0].Classification.Category)
}

func TestListTransactionsEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	postJSON(t, router, "/api/v1/process-message", processMessageRequest{Message: cardSpendMessage})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?limit=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count        int              `json:"count"`
		Transactions []storage.Record `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, models.CategoryShopping, resp.Transactions[0].Classification.Category)
}

func TestGetTransactionEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	created := postJSON(t, router, "/api/v1/process-message", processMessageRequest{Message: cardSpendMessage})
	var resp processMessageResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/"+resp.TransactionID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/transactions/no-such-id", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListGoalsEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/goals", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int                      `json:"count"`
		Goals []goalimpact.GoalSummary `json:"goals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, "demo-savings", resp.Goals[0].ID)
}
