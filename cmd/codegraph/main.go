package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dusk-indust/codegraph/internal/analyzer"
	"github.com/dusk-indust/codegraph/internal/config"
	"github.com/dusk-indust/codegraph/internal/export"
	"github.com/dusk-indust/codegraph/internal/mcptools"
)

// CLI flags parsed from command line.
type cliFlags struct {
	ProjectRoot string
	Output      string
	ServeMCP    bool
	HTTPAddr    string
	Version     bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("codegraph", flag.ContinueOnError)
	fs.StringVar(&flags.ProjectRoot, "project-root", ".", "path to the project to analyze")
	fs.StringVar(&flags.Output, "output", "summary", "output format: summary, json, or mermaid")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server on stdio")
	fs.StringVar(&flags.HTTPAddr, "http", "", "serve MCP over HTTP on this address instead of stdio")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(flags.ProjectRoot)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	engine := analyzer.NewEngine(
		analyzer.NewTreeSitterParser(),
		analyzer.DefaultRules(cfg.RuleThresholds()),
	)
	defer engine.Close()

	svc := mcptools.NewService(engine)

	if flags.ServeMCP || flags.HTTPAddr != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if flags.HTTPAddr != "" {
			return mcptools.RunHTTP(ctx, svc, flags.HTTPAddr)
		}
		return mcptools.RunStdio(ctx, mcptools.NewCodeGraphMCPServer(svc))
	}

	files, err := mcptools.CollectFiles(flags.ProjectRoot, cfg.Languages, cfg.ExcludeDirs)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no supported source files under %s", flags.ProjectRoot)
	}

	snap, err := engine.Analyze(context.Background(), files)
	if err != nil {
		return err
	}

	switch flags.Output {
	case "summary":
		data, err := json.MarshalIndent(snap.Summary(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "json":
		data, err := export.MarshalSnapshot(snap)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "mermaid":
		fmt.Print(export.GenerateMermaid(snap))
	default:
		return fmt.Errorf("unknown output format: %s", flags.Output)
	}
	return nil
}
