// Package orchestrator runs the whole pipeline: one planning call, a
// parallel fan-out of section calls, then document assembly and the image
// batch side by side.
package orchestrator

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MananGandhi1810/multi-llm-website-generator/assembler"
	"github.com/MananGandhi1810/multi-llm-website-generator/generator"
	"github.com/MananGandhi1810/multi-llm-website-generator/publisher"
)

type Orchestrator struct {
	agent   *generator.Agent
	pub     *publisher.Publisher
	verbose bool
	logger  *log.Logger
}

// RunResult summarizes one completed run.
type RunResult struct {
	Request        string
	ThemeContext   string
	Sections       []string
	FailedSections []string
	Images         []publisher.ImageOutcome
	OutputPath     string
	Duration       time.Duration
}

func New(agent *generator.Agent, pub *publisher.Publisher, verbose bool, logger *log.Logger) (*Orchestrator, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}
	if pub == nil {
		return nil, errors.New("publisher required")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{agent: agent, pub: pub, verbose: verbose, logger: logger}, nil
}

// Run executes one request end to end. The section fan-out is one barrier:
// assembly starts only once every section is in. The image batch and the
// document write then run concurrently; Run returns only after both are
// done. Planning and assembly errors are fatal and leave no output file;
// image errors never are.
func (o *Orchestrator) Run(ctx context.Context, userRequest string) (RunResult, error) {
	start := time.Now()
	result := RunResult{Request: userRequest, OutputPath: o.pub.OutputPath()}

	plan, err := o.agent.Plan(ctx, userRequest)
	if err != nil {
		return result, err
	}
	result.ThemeContext = plan.ThemeContext
	for _, p := range plan.Prompts {
		result.Sections = append(result.Sections, p.SectionName)
	}

	sections, failed, err := o.agent.GenerateSections(ctx, plan)
	if err != nil {
		return result, err
	}
	result.FailedSections = failed
	if o.verbose {
		o.logger.Printf("[INFO] %d/%d sections generated", len(sections)-len(failed), len(sections))
	}

	var imagePrompts []generator.ImagePrompt
	for _, s := range sections {
		imagePrompts = append(imagePrompts, s.ImagePrompts...)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc, err := assembler.Assemble(plan.Skeleton, sections)
		if err != nil {
			return err
		}
		return o.pub.WriteDocument(doc)
	})
	g.Go(func() error {
		result.Images = o.pub.GenerateImages(gctx, imagePrompts)
		return nil
	})
	if err := g.Wait(); err != nil {
		return result, err
	}

	result.Duration = time.Since(start)
	if _, err := o.pub.WriteReport(BuildReport(result)); err != nil {
		o.logger.Printf("[WARN] %v", err)
	}
	return result, nil
}
