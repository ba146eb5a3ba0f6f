package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/flashmath/internal/domain"
	"github.com/phrazzld/flashmath/internal/platform/logger"
	"github.com/phrazzld/flashmath/internal/service/practice"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	log, _ := logger.GetTestLogger(t)
	return req.WithContext(logger.WithLogger(req.Context(), log))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), "body: %s", rr.Body.String())
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	decodeBody(t, rr, &body)
	msg, _ := body["error"].(string)
	return msg
}

func setupView(id uuid.UUID) *practice.SessionView {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &practice.SessionView{
		ID: id,
		Snapshot: domain.Snapshot{
			State:     domain.StateSetup,
			SetupStep: domain.SetupStepOperation,
			Count:     10,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func practiceView(t *testing.T, id uuid.UUID) *practice.SessionView {
	t.Helper()
	q, err := domain.NewQuestion(1, 7, 8, domain.OperationMultiplication, 56)
	require.NoError(t, err)

	view := setupView(id)
	view.State = domain.StatePractice
	view.SetupStep = domain.SetupStepCount
	view.Operation = domain.OperationMultiplication
	view.Difficulty = domain.DifficultyMedium
	view.Count = 5
	view.TotalQuestions = 5
	view.CurrentIndex = 2
	view.Correct = 1
	view.Attempted = 2
	view.Current = &q
	return view
}
