package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"reddit-graph/backend/internal/graph"
	"reddit-graph/backend/internal/ingest"
	apperrors "reddit-graph/backend/pkg/errors"
)

type stubRunner struct {
	body   string
	report *ingest.Report
	err    error
}

func (s *stubRunner) IngestReader(_ context.Context, src io.Reader) (*ingest.Report, error) {
	data, _ := io.ReadAll(src)
	s.body = string(data)
	return s.report, s.err
}

type stubScorer struct {
	method graph.ScoreMethod
	score  float64
	err    error
}

func (s *stubScorer) ScoreTotalNeighbors(_ context.Context, name1, name2 string, method graph.ScoreMethod) (*graph.NeighborScore, error) {
	s.method = method
	if s.err != nil {
		return nil, s.err
	}
	return &graph.NeighborScore{Name1: name1, Name2: name2, Method: method, Score: s.score}, nil
}

func setupRouter(runner ingestRunner, scorer neighborScorer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return newRouter(zap.NewNop(), runner, scorer)
}

func TestHealthEndpoint(t *testing.T) {
	router := setupRouter(&stubRunner{}, &stubScorer{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
}

func TestIngestEndpoint(t *testing.T) {
	runner := &stubRunner{report: &ingest.Report{RunID: "run-1", Rows: 2}}
	router := setupRouter(runner, &stubScorer{})

	body := "type,username\nPost,alice\n"
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/ingest", bytes.NewBufferString(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, body, runner.body)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "run-1", response["run_id"])
	assert.Equal(t, float64(2), response["rows"])
}

func TestIngestEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing column", apperrors.NewInputMissingColumn("type"), http.StatusBadRequest},
		{"store failure", apperrors.NewGraphQueryFailed("create user", errors.New("down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(&stubRunner{err: tt.err}, &stubScorer{})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/ingest", strings.NewReader(""))
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestNeighborsEndpoint(t *testing.T) {
	scorer := &stubScorer{score: 7}
	router := setupRouter(&stubRunner{}, scorer)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/neighbors?name1=Keanu+Reeves&name2=Carrie-Anne+Moss&mode=cypher", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, graph.ScoreCypher, scorer.method)

	var response graph.NeighborScore
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Keanu Reeves", response.Name1)
	assert.Equal(t, "Carrie-Anne Moss", response.Name2)
	assert.Equal(t, 7.0, response.Score)
}

func TestNeighborsEndpoint_InvalidRequest(t *testing.T) {
	router := setupRouter(&stubRunner{}, &stubScorer{})

	for _, url := range []string{
		"/api/neighbors",
		"/api/neighbors?name1=a",
		"/api/neighbors?name1=a&name2=b&mode=pagerank",
	} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", url, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
	}
}

func TestNeighborsEndpoint_NotFound(t *testing.T) {
	scorer := &stubScorer{err: apperrors.NewGraphNodeNotFound(graph.LabelPerson, "name", "nobody")}
	router := setupRouter(&stubRunner{}, scorer)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/neighbors?name1=nobody&name2=b", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNeighborsEndpoint_AmbiguousName(t *testing.T) {
	scorer := &stubScorer{err: apperrors.NewGraphAmbiguousMatch(graph.LabelPerson, "name", "Tom Hanks", 2)}
	router := setupRouter(&stubRunner{}, scorer)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/neighbors?name1=Tom+Hanks&name2=b", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "2 Person nodes match")
}

func TestPromptNames(t *testing.T) {
	var out bytes.Buffer
	a, b, err := promptNames(strings.NewReader("Keanu Reeves\nHugo Weaving"), &out, "", "")
	require.NoError(t, err)

	assert.Equal(t, "Keanu Reeves", a)
	assert.Equal(t, "Hugo Weaving", b)
	assert.Equal(t, "Enter name 1: Enter name 2: ", out.String())
}

func TestPromptNames_FlagsSkipPrompt(t *testing.T) {
	var out bytes.Buffer
	a, b, err := promptNames(strings.NewReader("Hugo Weaving\n"), &out, "Keanu Reeves", "")
	require.NoError(t, err)

	assert.Equal(t, "Keanu Reeves", a)
	assert.Equal(t, "Hugo Weaving", b)
	assert.Equal(t, "Enter name 2: ", out.String())
}

func TestPromptNames_NoInput(t *testing.T) {
	_, _, err := promptNames(strings.NewReader(""), io.Discard, "", "")
	assert.ErrorIs(t, err, io.EOF)
}

func TestRunNeighbors(t *testing.T) {
	var out bytes.Buffer
	scorer := &stubScorer{score: 11.6}

	err := runNeighbors(context.Background(), scorer, &out, "Tom Hanks", "Meg Ryan", graph.ScoreGDS)
	require.NoError(t, err)
	assert.Equal(t, "Tom Hanks and Meg Ryan have 12 total neighbors\n", out.String())
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["ingest"])
	assert.True(t, names["neighbors"])
	assert.True(t, names["serve"])
}

func TestIngestCommand_DocumentsIntegerCounts(t *testing.T) {
	cmd := newIngestCmd()

	for _, column := range []string{"followers", "user_karma", "subscribers", "post_karma", "comment_karma"} {
		assert.Contains(t, cmd.Long, column)
	}
	assert.Contains(t, cmd.Long, "aborts the run")
}
