package publisher

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/MananGandhi1810/multi-llm-website-generator/generator"
)

const imageRunURLFmt = "https://api.cloudflare.com/client/v4/accounts/%s/ai/run/%s"

type imageRunPayload struct {
	Prompt string `json:"prompt"`
}

type imageRunResp struct {
	Success bool `json:"success"`
	Result  struct {
		Image string `json:"image"`
	} `json:"result"`
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// ImageOutcome records what happened to one requested image.
type ImageOutcome struct {
	Filename string
	Path     string
	Err      string
}

// GenerateImages runs the whole image batch: one concurrent call per
// prompt, all sharing the publisher's HTTP client, each failure caught,
// logged, and recorded without touching its siblings. Filenames must be
// bare names; duplicates are logged and resolved last write wins, matching
// how same-named assets can be deliberately shared between sections.
func (p *Publisher) GenerateImages(ctx context.Context, prompts []generator.ImagePrompt) []ImageOutcome {
	if len(prompts) == 0 {
		return nil
	}
	if !p.cfg.ImagesEnabled() {
		p.logger.Printf("[WARN] image credentials not set; skipping %d image(s)", len(prompts))
		return nil
	}
	if err := os.MkdirAll(p.cfg.AssetsDir, 0o755); err != nil {
		p.logger.Printf("[WARN] cannot create assets dir %s: %v; skipping images", p.cfg.AssetsDir, err)
		return nil
	}

	seen := make(map[string]bool, len(prompts))
	for _, ip := range prompts {
		if seen[ip.Filename] {
			p.logger.Printf("[WARN] image filename %q requested by more than one section; last write wins", ip.Filename)
		}
		seen[ip.Filename] = true
	}

	outcomes := make([]ImageOutcome, len(prompts))
	var g errgroup.Group
	for i, ip := range prompts {
		g.Go(func() error {
			outcomes[i] = p.generateImage(ctx, ip)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func (p *Publisher) generateImage(ctx context.Context, ip generator.ImagePrompt) ImageOutcome {
	out := ImageOutcome{Filename: ip.Filename}
	fail := func(err error) ImageOutcome {
		p.logger.Printf("[WARN] image %q not generated: %v", ip.Filename, err)
		out.Err = err.Error()
		return out
	}

	name, err := safeFilename(ip.Filename)
	if err != nil {
		return fail(err)
	}

	data, err := fetchImage(ctx, p.client, p.cfg, ip.Prompt)
	if err != nil {
		return fail(err)
	}

	path := filepath.Join(p.cfg.AssetsDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fail(err)
	}
	p.infof("Wrote image %s (%d bytes)", path, len(data))
	out.Path = path
	return out
}

func fetchImage(ctx context.Context, client *http.Client, cfg Config, prompt string) ([]byte, error) {
	body, err := json.Marshal(imageRunPayload{Prompt: prompt})
	if err != nil {
		return nil, err
	}

	url := cfg.ImageBaseURL
	if url == "" {
		url = fmt.Sprintf(imageRunURLFmt, cfg.ImageAccountID, cfg.ImageModel)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.ImageAPIToken)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var data imageRunResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	if !data.Success || data.Result.Image == "" {
		if len(data.Errors) > 0 {
			return nil, fmt.Errorf("image call failed: %d %s", data.Errors[0].Code, data.Errors[0].Message)
		}
		return nil, fmt.Errorf("image call failed: status %d", resp.StatusCode)
	}
	return base64.StdEncoding.DecodeString(data.Result.Image)
}

// safeFilename accepts only a bare file name. Anything that resolves
// outside the assets directory is rejected.
func safeFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("empty filename")
	}
	if name != filepath.Base(name) || name == ".." || name == "." ||
		strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("filename %q is not a simple file name", name)
	}
	return name, nil
}
