package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wikicrawl"
	"github.com/fwojciec/wikicrawl/gemini"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Configuration files searched in order; the first one found is loaded.
	ConfigPaths []string

	// Classifier overrides the Gemini classifier used by "filter --llm".
	Classifier wikicrawl.Classifier
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPaths: DefaultConfigPaths(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:        ctx,
		Stdout:     stdout,
		Stderr:     stderr,
		Classifier: m.Classifier,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wikicrawl"),
		kong.Description("Crawl encyclopedia articles breadth-first from seed URLs into text artifacts and a deduplicating catalog."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Configuration(YAMLConfig, existing(m.ConfigPaths)...),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no seed URLs given. Run 'wikicrawl --help' for usage")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Debug {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	if strings.HasPrefix(kongCtx.Command(), "filter") && cli.Filter.LLM && deps.Classifier == nil {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		classifier := gemini.NewClassifier(client, cli.Filter.Model, cli.Filter.Topic)
		classifier.SetBatchSize(cli.Filter.BatchSize)
		deps.Classifier = classifier
	}

	return kongCtx.Run(deps)
}

// existing returns at most one path: the first that exists.
func existing(paths []string) []string {
	if p := FindConfigFile(paths...); p != "" {
		return []string{p}
	}
	return nil
}
