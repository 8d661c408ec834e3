// Package publisher owns configuration and everything that leaves the
// process: the assembled document, the run report, and the generated image
// files.
package publisher

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the run settings. Non-secret fields come from an optional
// JSON file; credentials come only from the environment (after an optional
// .env load).
type Config struct {
	PlannerModel   string `json:"planner_model,omitempty"`
	WorkerModel    string `json:"worker_model,omitempty"`
	BaseURL        string `json:"base_url,omitempty"`
	PoolSize       int    `json:"pool_size,omitempty"`
	MaxConcurrent  int    `json:"max_concurrent,omitempty"`
	RequestTimeout int    `json:"request_timeout_seconds,omitempty"`
	OutputPath     string `json:"output_path,omitempty"`
	AssetsDir      string `json:"assets_dir,omitempty"`
	ImageModel     string `json:"image_model,omitempty"`
	ImageBaseURL   string `json:"image_base_url,omitempty"`
	ServerAddr     string `json:"server_addr,omitempty"`

	PlannerAPIKey  string   `json:"-"`
	WorkerAPIKeys  []string `json:"-"`
	ImageAccountID string   `json:"-"`
	ImageAPIToken  string   `json:"-"`
}

// LoadConfig reads the optional JSON config and the required environment
// credentials. A missing planner or worker credential is fatal here, before
// any remote call is made; missing image credentials only disable the image
// phase.
func LoadConfig(path string) (Config, error) {
	godotenv.Load()

	cfg := Config{
		PlannerModel:   "gpt-4o",
		WorkerModel:    "gpt-4o-mini",
		PoolSize:       10,
		MaxConcurrent:  8,
		RequestTimeout: 120,
		OutputPath:     "index.html",
		AssetsDir:      "static",
		ImageModel:     "@cf/black-forest-labs/flux-1-schnell",
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	cfg.PlannerAPIKey = os.Getenv("LLM_API_KEY")
	if cfg.PlannerAPIKey == "" {
		return Config{}, errors.New("LLM_API_KEY is not set")
	}
	for i := 0; ; i++ {
		key := os.Getenv(fmt.Sprintf("LLM_API_KEY_%d", i))
		if key == "" {
			break
		}
		cfg.WorkerAPIKeys = append(cfg.WorkerAPIKeys, key)
	}
	if len(cfg.WorkerAPIKeys) == 0 {
		return Config{}, errors.New("no worker credentials set (expected LLM_API_KEY_0, LLM_API_KEY_1, ...)")
	}
	cfg.ImageAccountID = os.Getenv("IMAGE_ACCOUNT_ID")
	cfg.ImageAPIToken = os.Getenv("IMAGE_API_TOKEN")

	return cfg, nil
}

// ImagesEnabled reports whether the optional image credentials are present.
func (c Config) ImagesEnabled() bool {
	return c.ImageAPIToken != "" && (c.ImageAccountID != "" || c.ImageBaseURL != "")
}

// Publisher writes run artifacts and drives the image batch.
type Publisher struct {
	cfg     Config
	client  *http.Client
	verbose bool
	logger  *log.Logger
}

func New(cfg Config, client *http.Client, verbose bool, logger *log.Logger) (*Publisher, error) {
	if cfg.OutputPath == "" || cfg.AssetsDir == "" {
		return nil, errors.New("config must include output_path and assets_dir")
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Publisher{cfg: cfg, client: client, verbose: verbose, logger: logger}, nil
}

func (p *Publisher) infof(format string, args ...interface{}) {
	if !p.verbose {
		return
	}
	p.logger.Printf("[INFO] "+format, args...)
}

// WriteDocument writes the fully assembled document in one shot. It is only
// ever called with a complete document; a failed assembly never reaches
// this point, so no partial file can appear at the output path.
func (p *Publisher) WriteDocument(doc string) error {
	if dir := filepath.Dir(p.cfg.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(p.cfg.OutputPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	p.infof("Wrote document to %s", p.cfg.OutputPath)
	return nil
}

// WriteReport stores the Markdown run report next to the document.
func (p *Publisher) WriteReport(report string) (string, error) {
	path := filepath.Join(filepath.Dir(p.cfg.OutputPath), "report.md")
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	p.infof("Wrote report to %s", path)
	return path, nil
}

// OutputPath returns where the assembled document lands.
func (p *Publisher) OutputPath() string { return p.cfg.OutputPath }

// AssetsDir returns the directory image files are written to.
func (p *Publisher) AssetsDir() string { return p.cfg.AssetsDir }
