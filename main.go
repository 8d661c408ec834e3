package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/MananGandhi1810/multi-llm-website-generator/generator"
	"github.com/MananGandhi1810/multi-llm-website-generator/orchestrator"
	"github.com/MananGandhi1810/multi-llm-website-generator/publisher"
	"github.com/MananGandhi1810/multi-llm-website-generator/server"
)

var verbose bool

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	configPath := flag.String("config", "config/config.json", "path to config.json")
	prompt := flag.String("prompt", "", "page request (read from stdin when empty)")
	out := flag.String("out", "", "output document path (overrides config.output_path)")
	assets := flag.String("assets", "", "static assets directory (overrides config.assets_dir)")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	mock := flag.Bool("mock", false, "use the local mock model instead of a remote backend")
	flag.BoolVar(&verbose, "v", false, "enable info logs")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *mock)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *out != "" {
		cfg.OutputPath = *out
	}
	if *assets != "" {
		cfg.AssetsDir = *assets
	}

	orch, err := buildOrchestrator(cfg, *mock)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *serve {
		srv, err := server.New(orch, ".")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		if listen == "" {
			listen = ":8080"
		}
		log.Printf("Starting web server on %s", listen)
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	request := *prompt
	if request == "" {
		fmt.Print(" > ")
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			fmt.Fprintln(os.Stderr, "no request given")
			os.Exit(1)
		}
		request = scanner.Text()
	}

	start := time.Now()
	result, err := orch.Run(context.Background(), request)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log.Printf("[cli] generated %d sections (failed: %d, images: %d) in %s",
		len(result.Sections), len(result.FailedSections), len(result.Images), time.Since(start).Round(time.Millisecond))
	fmt.Println(result.OutputPath)
}

func loadConfig(path string, mock bool) (publisher.Config, error) {
	if mock {
		// Mock runs never touch a backend, so skip the credential checks.
		os.Setenv("LLM_API_KEY", "mock")
		os.Setenv("LLM_API_KEY_0", "mock")
	}
	return publisher.LoadConfig(path)
}

func buildOrchestrator(cfg publisher.Config, mock bool) (*orchestrator.Orchestrator, error) {
	planner, pool, err := buildLLM(cfg, mock)
	if err != nil {
		return nil, err
	}
	agent, err := generator.NewAgent(planner, pool, generator.AgentOptions{
		MaxConcurrent: cfg.MaxConcurrent,
		CallTimeout:   time.Duration(cfg.RequestTimeout) * time.Second,
		Verbose:       verbose,
		Logger:        log.Default(),
	})
	if err != nil {
		return nil, err
	}
	pub, err := publisher.New(cfg, nil, verbose, log.Default())
	if err != nil {
		return nil, err
	}
	return orchestrator.New(agent, pub, verbose, log.Default())
}

func buildLLM(cfg publisher.Config, mock bool) (generator.LLMClient, *generator.WorkerPool, error) {
	if mock {
		pool, err := generator.NewWorkerPoolFromClients([]generator.LLMClient{generator.MockLLM{}})
		if err != nil {
			return nil, nil, err
		}
		return generator.MockLLM{}, pool, nil
	}

	planner, err := generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
		Provider: "openai",
		Model:    cfg.PlannerModel,
		APIKey:   cfg.PlannerAPIKey,
		BaseURL:  cfg.BaseURL,
	})
	if err != nil {
		return nil, nil, err
	}
	pool, err := generator.NewWorkerPool(cfg.PoolSize, cfg.WorkerAPIKeys, func(apiKey string) (generator.LLMClient, error) {
		return generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
			Provider: "openai",
			Model:    cfg.WorkerModel,
			APIKey:   apiKey,
			BaseURL:  cfg.BaseURL,
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return planner, pool, nil
}
