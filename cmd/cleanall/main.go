// Package main implements cleanall, which finds project directories below a
// root and runs a cleanup command in each of them.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/cleanall/internal/logger"
	"github.com/taigrr/cleanall/internal/report"
	"github.com/taigrr/cleanall/internal/sweep"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(resolveVersion()),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "cleanall [root]",
		Short: "Clean every project below a directory",
		Long: `cleanall scans a directory tree in parallel for project directories,
identified by a marker file (Cargo.toml by default), and runs a cleanup
command (cargo clean by default) inside each one.

Failures to read a directory or to clean a project are reported and the
scan carries on. Only configuration errors stop a run before it starts.`,
		Example: `cleanall ~/code
cleanall --max-depth 2 ~/code
cleanall --marker package.json --command "npm run clean" ~/web
cleanall --dry-run --exclude node_modules .`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, args, f)
		},
	}

	f.register(cmd)
	cmd.AddCommand(newMCPCmd(f))

	return cmd
}

func runClean(cmd *cobra.Command, args []string, f *flags) error {
	root, err := rootPath(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, f, root)
	if err != nil {
		return err
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	log := newLogger(cmd, f)
	log.Debugf("root=%s marker=%s depth=%s workers=%d jobs=%d dry-run=%t",
		root, cfg.Marker, depthString(cfg.MaxDepth), p.walker.Workers(), cfg.Jobs, cfg.DryRun)
	if len(cfg.Exclude) > 0 {
		log.Debugf("excluding %v", cfg.Exclude)
	}

	printer := report.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), useColor(cmd, f))
	printer.DryRun = cfg.DryRun

	start := time.Now()
	svc := sweep.New(p.walker, p.cleaner, sweep.Options{Jobs: cfg.Jobs})
	summary := svc.Run(cmd.Context(), root, printer.Print)
	printer.Summary(summary)

	log.Debugf("finished in %s", time.Since(start).Round(time.Millisecond))
	if summary.Failures() > 0 {
		log.Warnf("%d of %d projects or directories failed", summary.Failures(), summary.Failures()+summary.Cleaned)
	}

	return nil
}

func newLogger(cmd *cobra.Command, f *flags) *logger.ConsoleLogger {
	level := logger.LevelWarn
	if f.verbose {
		level = logger.LevelDebug
	}
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), level)
	if f.noColor {
		log.SetColor(false)
	}
	return log
}

func useColor(cmd *cobra.Command, f *flags) bool {
	return !f.noColor && logger.IsTerminal(cmd.OutOrStdout())
}

func rootPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return wd, nil
}

func depthString(depth *int) string {
	if depth == nil {
		return "unlimited"
	}
	return fmt.Sprint(*depth)
}
