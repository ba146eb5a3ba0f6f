package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashmath/internal/api"
	"github.com/phrazzld/flashmath/internal/config"
	"github.com/phrazzld/flashmath/internal/domain"
	"github.com/phrazzld/flashmath/internal/platform/logger"
	"github.com/phrazzld/flashmath/internal/platform/sqlite"
	"github.com/phrazzld/flashmath/internal/service/practice"
	"github.com/phrazzld/flashmath/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   8080,
			LogLevel:               "debug",
			ShutdownTimeoutSeconds: 1,
		},
		Practice: config.PracticeConfig{
			DefaultCount: 10,
			MinCount:     5,
			MaxCount:     50,
			MaxSessions:  100,
		},
		Database: config.DatabaseConfig{
			DSN: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		},
		Task: config.TaskConfig{
			WorkerCount:    1,
			QueueSize:      10,
			TimeoutSeconds: 5,
		},
	}
}

func newTestApp(t *testing.T) (*application, *sql.DB) {
	t.Helper()

	cfg := testConfig()
	log, _ := logger.GetTestLogger(t)

	db, err := sqlite.OpenAndMigrate(context.Background(), cfg.Database.DSN, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	app, err := newApplication(cfg, log, db)
	require.NoError(t, err)
	t.Cleanup(app.scheduler.Stop)
	t.Cleanup(app.taskRunner.Stop)
	return app, db
}

type client struct {
	t      *testing.T
	server *httptest.Server
}

func (c *client) do(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.server.URL+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.server.Client().Do(req)
	require.NoError(c.t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	if out != nil && len(data) > 0 {
		require.NoError(c.t, json.Unmarshal(data, out), "body: %s", data)
	}
	return resp.StatusCode
}

func newClient(t *testing.T, app *application) *client {
	t.Helper()
	server := httptest.NewServer(app.setupRouter())
	t.Cleanup(server.Close)
	return &client{t: t, server: server}
}

func TestNewApplicationRequiresDependencies(t *testing.T) {
	log, _ := logger.GetTestLogger(t)
	_, err := newApplication(nil, log, nil)
	assert.Error(t, err)
}

// answerAll answers every question of a started run, wrong only at index
// wrongAt (-1 for none), and advances to the summary.
func answerAll(t *testing.T, c *client, base string, session api.SessionResponse, wrongAt int) api.SessionResponse {
	t.Helper()

	for i := 0; i < session.TotalQuestions; i++ {
		require.NotNil(t, session.Current)
		assert.Equal(t, i+1, session.QuestionNumber)
		assert.Nil(t, session.Current.Answer, "answer hidden before an outcome")

		q := session.Current
		want, err := domain.Operation(q.Operation).Apply(q.Operand1, q.Operand2)
		require.NoError(t, err)
		if i == wrongAt {
			want++
		}
		answer := strconv.Itoa(want)

		var result api.AnswerResponse
		require.Equal(t, http.StatusOK, c.do(http.MethodPost, base+"/answer", api.SubmitAnswerRequest{Answer: answer}, &result))
		assert.Equal(t, i != wrongAt, result.Correct)
		require.NotNil(t, result.Session.Current)
		assert.NotNil(t, result.Session.Current.Answer, "answer revealed after an outcome")

		status := c.do(http.MethodPost, base+"/answer", api.SubmitAnswerRequest{Answer: answer}, nil)
		assert.Equal(t, http.StatusConflict, status, "second outcome for one question")

		require.Equal(t, http.StatusOK, c.do(http.MethodPost, base+"/advance", nil, &session))
	}

	require.Equal(t, "summary", session.State)
	return session
}

func TestPracticeSessionEndToEnd(t *testing.T) {
	app, _ := newTestApp(t)
	c := newClient(t, app)

	var session api.SessionResponse
	status := c.do(http.MethodPost, "/api/sessions", api.CreateSessionRequest{
		Operation:  "addition",
		Difficulty: "easy",
	}, &session)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "setup", session.State)
	assert.Equal(t, "count", session.SetupStep)
	assert.Empty(t, session.RunID)

	base := "/api/sessions/" + session.ID

	require.Equal(t, http.StatusOK, c.do(http.MethodPut, base+"/count", api.SelectCountRequest{Count: 5}, &session))
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, base+"/start", nil, &session))
	require.Equal(t, "practice", session.State)
	require.Equal(t, 5, session.TotalQuestions)
	firstRun := session.RunID
	require.NotEmpty(t, firstRun)

	session = answerAll(t, c, base, session, 4)
	assert.Equal(t, firstRun, session.RunID)

	var summary api.SummaryResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, base+"/summary", nil, &summary))
	assert.Equal(t, 4, summary.Correct)
	assert.Equal(t, 5, summary.Attempted)
	assert.Equal(t, 80, summary.Percentage)
	assert.Equal(t, "Great job!", summary.Message)
	assert.Len(t, summary.Questions, 5)

	// Results are recorded by a background worker.
	var results api.ResultListResponse
	require.Eventually(t, func() bool {
		results = api.ResultListResponse{}
		return c.do(http.MethodGet, "/api/results", nil, &results) == http.StatusOK &&
			len(results.Results) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, firstRun, results.Results[0].ID)
	assert.Equal(t, session.ID, results.Results[0].SessionID)
	assert.Equal(t, 80, results.Results[0].Percentage)

	var stored api.ResultResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/results/"+firstRun, nil, &stored))
	assert.Len(t, stored.Questions, 5)

	var reset api.SessionResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, base+"/reset", nil, &reset))
	assert.Equal(t, "setup", reset.State)
	assert.Equal(t, "operation", reset.SetupStep)
	assert.Empty(t, reset.RunID)

	// A second run on the same session is recorded separately.
	require.Equal(t, http.StatusOK, c.do(http.MethodPut, base+"/operation", api.SelectOperationRequest{Operation: "division"}, nil))
	require.Equal(t, http.StatusOK, c.do(http.MethodPut, base+"/difficulty", api.SelectDifficultyRequest{Difficulty: "hard"}, nil))
	require.Equal(t, http.StatusOK, c.do(http.MethodPut, base+"/count", api.SelectCountRequest{Count: 5}, nil))
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, base+"/start", nil, &session))
	secondRun := session.RunID
	require.NotEmpty(t, secondRun)
	assert.NotEqual(t, firstRun, secondRun)

	answerAll(t, c, base, session, -1)

	require.Eventually(t, func() bool {
		results = api.ResultListResponse{}
		return c.do(http.MethodGet, "/api/results", nil, &results) == http.StatusOK &&
			len(results.Results) == 2
	}, 2*time.Second, 10*time.Millisecond)

	var second api.ResultResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/results/"+secondRun, nil, &second))
	assert.Equal(t, "division", second.Operation)
	assert.Equal(t, 100, second.Percentage)
	assert.Equal(t, session.ID, second.SessionID)

	var stats store.ResultStats
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/results/stats", nil, &stats))
	assert.Equal(t, 2, stats.Sessions)
	assert.Equal(t, 4+5, stats.TotalCorrect)

	require.Equal(t, http.StatusNoContent, c.do(http.MethodDelete, base, nil, nil))
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, base, nil, nil))
}

func TestStartWithoutSelectionsReturnsNotice(t *testing.T) {
	app, _ := newTestApp(t)
	c := newClient(t, app)

	var session api.SessionResponse
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/sessions", nil, &session))

	var body struct {
		Error   string          `json:"error"`
		TraceID string          `json:"trace_id"`
		Details practice.Notice `json:"details"`
	}
	status := c.do(http.MethodPost, "/api/sessions/"+session.ID+"/start", nil, &body)

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, practice.SetupIncompleteNotice, body.Details)
	assert.Len(t, body.TraceID, 32)

	var after api.SessionResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/sessions/"+session.ID, nil, &after))
	assert.Equal(t, "setup", after.State)
}

func TestOptionsAndHealth(t *testing.T) {
	app, _ := newTestApp(t)
	c := newClient(t, app)

	var opts practice.Options
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/options", nil, &opts))
	assert.Len(t, opts.Operations, 5)
	assert.Len(t, opts.Difficulties, 3)
	assert.Equal(t, 5, opts.MinCount)

	var health api.HealthResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", nil, &health))
	assert.Equal(t, "ok", health.Status)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	app, _ := newTestApp(t)
	c := newClient(t, app)

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/cards", nil, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, c.do(http.MethodPatch, "/api/options", nil, nil))
}

func TestServeShutsDownOnCancel(t *testing.T) {
	app, db := newTestApp(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, ln, app.setupRouter()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}

	assert.Error(t, db.Ping(), "database should be closed after shutdown")
}
