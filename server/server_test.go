package server

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MananGandhi1810/multi-llm-website-generator/generator"
	"github.com/MananGandhi1810/multi-llm-website-generator/orchestrator"
	"github.com/MananGandhi1810/multi-llm-website-generator/publisher"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	cfg := publisher.Config{
		OutputPath: filepath.Join(dir, "index.html"),
		AssetsDir:  filepath.Join(dir, "static"),
	}
	pool, err := generator.NewWorkerPoolFromClients([]generator.LLMClient{generator.MockLLM{}})
	require.NoError(t, err)
	agent, err := generator.NewAgent(generator.MockLLM{}, pool, generator.AgentOptions{})
	require.NoError(t, err)
	pub, err := publisher.New(cfg, nil, false, log.New(&bytes.Buffer{}, "", 0))
	require.NoError(t, err)
	orch, err := orchestrator.New(agent, pub, false, log.New(&bytes.Buffer{}, "", 0))
	require.NoError(t, err)
	srv, err := New(orch, dir)
	require.NoError(t, err)
	return srv
}

func postGeneration(t *testing.T, h http.Handler, prompt string) generationResp {
	t.Helper()
	body, _ := json.Marshal(generationCreateReq{Prompt: prompt})
	req := httptest.NewRequest(http.MethodPost, "/api/generations", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp generationResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func getGeneration(t *testing.T, h http.Handler, id string) generationResp {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/generations/"+id, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp generationResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func waitForCompletion(t *testing.T, h http.Handler, id string) generationResp {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp := getGeneration(t, h, id)
		if resp.Status != StatusWorking {
			return resp
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("generation did not finish in time")
	return generationResp{}
}

func TestCreatePollReportRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Routes()

	created := postGeneration(t, h, "a demo page")
	require.NotEmpty(t, created.GenerationID)
	assert.Equal(t, StatusWorking, created.Status)

	done := waitForCompletion(t, h, created.GenerationID)
	require.Equal(t, StatusComplete, done.Status, done.Error)
	require.NotNil(t, done.Result)
	assert.Equal(t, []string{"hero", "footer"}, done.Result.Sections)

	req := httptest.NewRequest(http.MethodGet, "/api/generations/"+created.GenerationID+"/report", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<h1")
	assert.Contains(t, w.Body.String(), "hero")
}

func TestCreateRejectsEmptyPrompt(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Routes()

	body, _ := json.Marshal(generationCreateReq{Prompt: "   "})
	req := httptest.NewRequest(http.MethodPost, "/api/generations", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownGenerationIs404(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Routes()

	req := httptest.NewRequest(http.MethodGet, "/api/generations/nope", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportBeforeCompletionConflicts(t *testing.T) {
	srv := newTestServer(t)
	// Seed a run that is still working.
	srv.store.set("busy", &run{ID: "busy", Status: StatusWorking})

	req := httptest.NewRequest(http.MethodGet, "/api/generations/busy/report", nil)
	w := httptest.NewRecorder()
	srv.Routes().ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestIndexPageIsServed(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.Routes().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Website Generator"))
}
