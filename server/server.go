package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/yuin/goldmark"

	"github.com/MananGandhi1810/multi-llm-website-generator/orchestrator"
)

//go:embed web/dist web/dist/*
var embeddedStatic embed.FS

// Status of one generation run.
type Status string

const (
	StatusWorking  Status = "working"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
)

type Server struct {
	orch     *orchestrator.Orchestrator
	siteDir  http.Handler
	store    *runStore
	staticFS http.Handler

	// runTimeout bounds one whole pipeline run in web mode.
	runTimeout time.Duration
}

type run struct {
	ID      string
	Prompt  string
	Status  Status
	Error   string
	Result  orchestrator.RunResult
	Started time.Time
}

type runStore struct {
	mu   sync.Mutex
	runs map[string]*run
}

func newStore() *runStore {
	return &runStore{runs: make(map[string]*run)}
}

func (s *runStore) set(id string, r *run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[id] = r
}

func (s *runStore) get(id string) (run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[id]
	if !ok {
		return run{}, false
	}
	return *r, true
}

func (s *runStore) update(id string, fn func(*run)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.runs[id]; ok {
		fn(r)
	}
}

func New(orch *orchestrator.Orchestrator, siteDir string) (*Server, error) {
	if orch == nil {
		return nil, errors.New("orchestrator required")
	}

	sub, err := fs.Sub(embeddedStatic, "web/dist")
	if err != nil {
		return nil, err
	}

	return &Server{
		orch:       orch,
		siteDir:    http.StripPrefix("/site/", http.FileServer(http.Dir(siteDir))),
		store:      newStore(),
		staticFS:   http.FileServer(http.FS(sub)),
		runTimeout: 10 * time.Minute,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generations", s.handleGenerationCreate)
	mux.HandleFunc("/api/generations/", s.handleGenerationByID)
	mux.Handle("/site/", s.siteDir)
	mux.Handle("/", s.staticHandler())
	return mux
}

func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upath := r.URL.Path
		if upath == "/" || !strings.HasPrefix(upath, "/api/") {
			p := upath
			if p == "/" {
				p = "/index.html"
			}
			r.URL.Path = p
			s.staticFS.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// --- Handlers ---

type generationCreateReq struct {
	Prompt string `json:"prompt"`
}

type generationResp struct {
	GenerationID string                  `json:"generation_id"`
	Status       Status                  `json:"status"`
	Error        string                  `json:"error,omitempty"`
	Result       *orchestrator.RunResult `json:"result,omitempty"`
}

func (s *Server) handleGenerationCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req generationCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}

	id := newRunID()
	s.store.set(id, &run{ID: id, Prompt: req.Prompt, Status: StatusWorking, Started: time.Now()})

	// A full pipeline run takes minutes; run it detached and let the client
	// poll.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
		defer cancel()
		result, err := s.orch.Run(ctx, req.Prompt)
		s.store.update(id, func(r *run) {
			r.Result = result
			if err != nil {
				r.Status = StatusFailed
				r.Error = err.Error()
				return
			}
			r.Status = StatusComplete
		})
	}()

	writeJSON(w, generationResp{GenerationID: id, Status: StatusWorking})
}

func (s *Server) handleGenerationByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/generations/")
	if rest == "" {
		http.NotFound(w, r)
		return
	}
	id, sub, _ := strings.Cut(rest, "/")
	rn, ok := s.store.get(id)
	if !ok {
		http.Error(w, "generation not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch sub {
	case "":
		resp := generationResp{GenerationID: rn.ID, Status: rn.Status, Error: rn.Error}
		if rn.Status == StatusComplete {
			resp.Result = &rn.Result
		}
		writeJSON(w, resp)
	case "report":
		if rn.Status != StatusComplete {
			http.Error(w, "report not ready", http.StatusConflict)
			return
		}
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(orchestrator.BuildReport(rn.Result)), &buf); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	default:
		http.NotFound(w, r)
	}
}

// --- Helpers ---

func newRunID() string {
	return strings.ReplaceAll(time.Now().Format("20060102T150405.000000000"), ".", "")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
