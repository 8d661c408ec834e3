package generator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// GenerateSection runs one worker call. workerIndex pins the call to
// pool.Select(workerIndex), which spreads a plan's sections evenly over the
// credentials no matter which calls finish first.
func (a *Agent) GenerateSection(ctx context.Context, p SectionPrompt, sharedContext, themeContext string, workerIndex int) (SectionResult, error) {
	worker := a.pool.Select(workerIndex)

	callCtx, cancel := a.callContext(ctx)
	defer cancel()

	raw, err := worker.Complete(callCtx, BuildSectionPrompt(p, sharedContext, themeContext))
	if err != nil {
		return SectionResult{}, fmt.Errorf("section %q call failed: %w", p.SectionName, err)
	}
	res, err := ParseSectionResult(raw, p.SectionName)
	if err != nil {
		return SectionResult{}, err
	}
	a.infof("Section %q generated (css=%t js=%t images=%d)",
		p.SectionName, res.CSS != "", res.JS != "", len(res.ImagePrompts))
	return res, nil
}

// GenerateSections fans out one call per planned section and collects every
// result in dispatch order. A failing section does not sink its siblings:
// it is replaced by a placeholder fragment, logged, and reported in the
// returned failed list. Results are correlated by slot, never by completion
// order.
func (a *Agent) GenerateSections(ctx context.Context, plan Plan) ([]SectionResult, []string, error) {
	results := make([]SectionResult, len(plan.Prompts))

	g, gctx := errgroup.WithContext(ctx)
	if a.maxConcurrent > 0 {
		g.SetLimit(a.maxConcurrent)
	}
	for i, p := range plan.Prompts {
		g.Go(func() error {
			res, err := a.GenerateSection(gctx, p, plan.SharedContext, plan.ThemeContext, i)
			if err != nil {
				a.logger.Printf("[WARN] %v; rendering placeholder", err)
				res = PlaceholderResult(p.SectionName, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var failed []string
	for _, r := range results {
		if r.Failed {
			failed = append(failed, r.SectionName)
		}
	}
	return results, failed, nil
}
