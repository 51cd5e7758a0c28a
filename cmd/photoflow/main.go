// Package main provides the CLI entry point for photoflow.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/TsoliasPN/photo-library-workflow/internal/config"
	"github.com/TsoliasPN/photo-library-workflow/internal/orchestrator"
	"github.com/TsoliasPN/photo-library-workflow/internal/output"
	"github.com/TsoliasPN/photo-library-workflow/internal/watcher"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := &cli.Command{
		Name:  "photoflow",
		Usage: "Normalize media-event folders with chronological prefixes and category tags",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "photoflow.json",
				Sources: cli.EnvVars("PHOTOFLOW_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "apply",
				Usage: "Execute renames (default is preview)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Report every decision, including skips",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "prefix",
				Usage:  "Prepend the oldest file date as a \"YYYY-MM - \" prefix to each folder",
				Action: runPrefix,
			},
			{
				Name:   "tag",
				Usage:  "Append a category tag to each date-prefixed folder",
				Action: runTag,
			},
			{
				Name:   "run",
				Usage:  "Run the prefix pass, then the tag pass",
				Action: runBoth,
			},
			{
				Name:   "watch",
				Usage:  "Watch the library root and re-run both passes when new folders arrive",
				Action: runWatch,
			},
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the orchestrator for a command.
func setup(cmd *cli.Command) (*orchestrator.Orchestrator, *config.Configuration, *output.Output, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, nil, nil, err
	}

	outCfg := output.DefaultConfig()
	outCfg.Verbose = cmd.Bool("verbose")
	out := output.New(outCfg)

	mode := orchestrator.ModePreview
	if cmd.Bool("apply") {
		mode = orchestrator.ModeApply
	}

	orch, err := orchestrator.New(cfg, out, mode)
	if err != nil {
		return nil, nil, nil, err
	}
	return orch, cfg, out, nil
}

func runPrefix(ctx context.Context, cmd *cli.Command) error {
	orch, _, out, err := setup(cmd)
	if err != nil {
		return err
	}
	defer orch.Close()

	return runPasses(out, orch.RunPrefixPass)
}

func runTag(ctx context.Context, cmd *cli.Command) error {
	orch, _, out, err := setup(cmd)
	if err != nil {
		return err
	}
	defer orch.Close()

	return runPasses(out, orch.RunTagPass)
}

func runBoth(ctx context.Context, cmd *cli.Command) error {
	orch, _, out, err := setup(cmd)
	if err != nil {
		return err
	}
	defer orch.Close()

	return runPasses(out, orch.RunPrefixPass, orch.RunTagPass)
}

// runPasses executes the given passes in order, printing each summary.
// A pass with per-folder errors still lets later passes run; the error is
// reported at the end via the exit code.
func runPasses(out *output.Output, passes ...func() (*orchestrator.Summary, error)) error {
	hadErrors := false
	for _, pass := range passes {
		summary, err := pass()
		if err != nil {
			return err
		}
		out.Info("%s", summary.String())
		if summary.HasErrors() {
			hadErrors = true
		}
	}
	if hadErrors {
		return fmt.Errorf("some folders could not be processed")
	}
	return nil
}

func runWatch(ctx context.Context, cmd *cli.Command) error {
	orch, cfg, out, err := setup(cmd)
	if err != nil {
		return err
	}
	defer orch.Close()

	// Initial full run, then react to arrivals.
	if err := runPasses(out, orch.RunPrefixPass, orch.RunTagPass); err != nil {
		out.Error("%v", err)
	}

	watchCfg := watcher.DefaultConfig()
	if cfg.Watch != nil {
		if cfg.Watch.DebounceSeconds > 0 {
			watchCfg.DebounceSeconds = cfg.Watch.DebounceSeconds
		}
		if len(cfg.Watch.IgnorePatterns) > 0 {
			watchCfg.IgnorePatterns = cfg.Watch.IgnorePatterns
		}
	}

	w := watcher.New(watchCfg, func(path string) error {
		out.Info("new folder detected: %s", path)
		orch.ResetCache()
		return runPasses(out, orch.RunPrefixPass, orch.RunTagPass)
	})

	if err := w.Start(cfg.LibraryRoot); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	out.Info("watching %s (Ctrl-C to stop)", cfg.LibraryRoot)

	<-ctx.Done()

	summary := w.Stop()
	out.Info("watch session: %d folders seen, %d ignored, %d errors (%s)",
		summary.FoldersSeen, summary.FoldersIgnored, summary.Errors, summary.Duration.Round(time.Second))
	return nil
}
