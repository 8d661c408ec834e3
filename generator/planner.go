package generator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Agent coordinates the planning call and the section fan-out.
type Agent struct {
	planner       LLMClient
	pool          *WorkerPool
	maxConcurrent int
	callTimeout   time.Duration
	verbose       bool
	logger        *log.Logger
}

type AgentOptions struct {
	// MaxConcurrent caps in-flight section calls; <=0 means unbounded.
	MaxConcurrent int
	// CallTimeout bounds every individual remote call; <=0 disables it.
	CallTimeout time.Duration
	Verbose     bool
	Logger      *log.Logger
}

func NewAgent(planner LLMClient, pool *WorkerPool, opts AgentOptions) (*Agent, error) {
	if planner == nil {
		return nil, errors.New("planner llm client is required")
	}
	if pool == nil {
		return nil, errors.New("worker pool is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Agent{
		planner:       planner,
		pool:          pool,
		maxConcurrent: opts.MaxConcurrent,
		callTimeout:   opts.CallTimeout,
		verbose:       opts.Verbose,
		logger:        logger,
	}, nil
}

func (a *Agent) infof(format string, args ...interface{}) {
	if !a.verbose {
		return
	}
	a.logger.Printf("[INFO] "+format, args...)
}

// Plan issues the single planning call and validates the result. There is
// no retry and no fallback plan: any failure here aborts the run before
// anything is written.
func (a *Agent) Plan(ctx context.Context, userRequest string) (Plan, error) {
	if strings.TrimSpace(userRequest) == "" {
		return Plan{}, errors.New("user request is empty")
	}

	callCtx, cancel := a.callContext(ctx)
	defer cancel()

	raw, err := a.planner.Complete(callCtx, BuildPlanPrompt(userRequest))
	if err != nil {
		return Plan{}, fmt.Errorf("planning call failed: %w", err)
	}
	plan, err := ParsePlan(raw)
	if err != nil {
		return Plan{}, fmt.Errorf("planning failed: %w", err)
	}
	if err := ValidatePlan(plan); err != nil {
		return Plan{}, fmt.Errorf("planning failed: %w", err)
	}
	a.infof("Planned %d sections", len(plan.Prompts))
	return plan, nil
}

func (a *Agent) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.callTimeout)
}

// ValidatePlan rejects a plan whose prompts reference ids the skeleton does
// not carry (or carries more than once). Catching the disagreement here
// keeps it out of assembly, where it would otherwise surface after all the
// section calls were already paid for.
func ValidatePlan(plan Plan) error {
	ids, err := skeletonIDs(plan.Skeleton)
	if err != nil {
		return fmt.Errorf("skeleton does not parse: %w", err)
	}
	seen := make(map[string]bool, len(plan.Prompts))
	for _, p := range plan.Prompts {
		if seen[p.SectionName] {
			return fmt.Errorf("plan names section %q twice", p.SectionName)
		}
		seen[p.SectionName] = true
		switch ids[p.SectionName] {
		case 0:
			return fmt.Errorf("plan names section %q but the skeleton has no element with that id", p.SectionName)
		case 1:
		default:
			return fmt.Errorf("skeleton has %d elements with id %q", ids[p.SectionName], p.SectionName)
		}
	}
	return nil
}

func skeletonIDs(skeleton string) (map[string]int, error) {
	doc, err := html.Parse(strings.NewReader(skeleton))
	if err != nil {
		return nil, err
	}
	ids := make(map[string]int)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if attr.Key == "id" {
					ids[attr.Val]++
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return ids, nil
}
