package generator

import (
	"context"
	"encoding/json"
)

// MockLLM is a local stand-in that never calls a real backend. It keys off
// the prompt's schema name, returning a tiny fixed plan for planning
// requests and a minimal section for worker requests.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	switch prompt.SchemaName {
	case "planning_response":
		plan := Plan{
			ThemeContext:  "Dark background, neon accents, Inter font.",
			SharedContext: "A single-page demo site generated locally without a model.",
			Prompts: []SectionPrompt{
				{SectionName: "hero", Prompt: "A hero section with a headline."},
				{SectionName: "footer", Prompt: "A footer with a copyright line."},
			},
			Skeleton: `<html><head><title>Demo</title></head><body><div id="hero"></div><div id="footer"></div></body></html>`,
		}
		b, err := json.Marshal(plan)
		return string(b), err
	default:
		res := SectionResult{
			HTML: "<section><h1>Generated locally</h1></section>",
			CSS:  "section{padding:2rem}",
		}
		b, err := json.Marshal(res)
		return string(b), err
	}
}

// ScriptedLLM returns canned responses in order and is used by tests that
// need per-call control.
type ScriptedLLM struct {
	CompleteFunc func(ctx context.Context, prompt Prompt) (string, error)
}

func (s *ScriptedLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	return s.CompleteFunc(ctx, prompt)
}
