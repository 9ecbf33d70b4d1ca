package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/taigrr/cleanall/internal/config"
	"github.com/taigrr/cleanall/internal/sweep"
	"github.com/taigrr/cleanall/internal/types"
	"github.com/taigrr/cleanall/internal/walker"
)

// toolServer answers MCP tool calls for directories below root.
type toolServer struct {
	root string
	cfg  config.Config
}

func newToolServer(root string, cfg config.Config) (*toolServer, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}
	return &toolServer{root: absRoot, cfg: cfg}, nil
}

func newMCPCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp [root]",
		Short: "Serve find and clean tools over MCP on stdio",
		Long: `mcp runs a Model Context Protocol server on stdin/stdout exposing the
find_projects and clean_projects tools. Tool paths are resolved relative to
root and may not leave it.`,
		Example: `cleanall mcp ~/code`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := rootPath(args)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, f, root)
			if err != nil {
				return err
			}
			ts, err := newToolServer(root, cfg)
			if err != nil {
				return err
			}

			server := mcp.NewServer(&mcp.Implementation{
				Name:    "cleanall",
				Version: resolveVersion(),
			}, nil)
			registerTools(server, ts)

			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				return fmt.Errorf("error running server: %w", err)
			}
			return nil
		},
	}
}

// resolvePath resolves a path relative to the server root and rejects
// anything outside it.
func (s *toolServer) resolvePath(relativePath string) (string, error) {
	relativePath = strings.TrimSpace(relativePath)
	relativePath = strings.TrimPrefix(relativePath, "/")

	absPath, err := filepath.Abs(filepath.Join(s.root, relativePath))
	if err != nil {
		return "", err
	}

	relPath, err := filepath.Rel(s.root, absPath)
	if err != nil {
		return "", err
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal not allowed: %s", relativePath)
	}

	return absPath, nil
}

// display returns path relative to the server root, slash separated.
func (s *toolServer) display(path string) string {
	if path == "" {
		return ""
	}
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (s *toolServer) configFor(maxDepth *int, markerName string, dryRun bool) (config.Config, error) {
	cfg := s.cfg
	if maxDepth != nil {
		depth := *maxDepth
		cfg.MaxDepth = &depth
	}
	if name := strings.TrimSpace(markerName); name != "" {
		cfg.Marker = name
	}
	cfg.DryRun = cfg.DryRun || dryRun
	return cfg, cfg.Validate()
}

func (s *toolServer) failure(r types.Report) Failure {
	kind := "cleanup failed"
	if r.Kind == types.ReportScanError {
		kind = walker.Classify(r.Err).String()
	}
	message := ""
	if r.Err != nil {
		message = r.Err.Error()
	}
	return Failure{Path: s.display(r.Path), Kind: kind, Message: message}
}

func (s *toolServer) handleFind(ctx context.Context, req *mcp.CallToolRequest, input FindInput) (*mcp.CallToolResult, FindOutput, error) {
	dir, err := s.resolvePath(input.Path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, FindOutput{}, err
	}

	cfg, err := s.configFor(input.MaxDepth, input.Marker, true)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, FindOutput{}, err
	}
	p, err := buildPipeline(cfg)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, FindOutput{}, err
	}

	output := FindOutput{Projects: []string{}, Errors: []Failure{}}
	for outcome := range p.walker.Scan(ctx, dir).All() {
		if outcome.IsMatch() {
			output.Projects = append(output.Projects, s.display(outcome.Path))
			continue
		}
		output.Errors = append(output.Errors, s.failure(sweep.FromScan(outcome)))
	}

	sort.Strings(output.Projects)
	sortFailures(output.Errors)

	return nil, output, nil
}

func (s *toolServer) handleClean(ctx context.Context, req *mcp.CallToolRequest, input CleanInput) (*mcp.CallToolResult, CleanOutput, error) {
	if !input.DryRun && input.Confirm != "yes" {
		return &mcp.CallToolResult{IsError: true}, CleanOutput{},
			fmt.Errorf("cleanup not confirmed: set confirm='yes' to proceed")
	}

	dir, err := s.resolvePath(input.Path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, CleanOutput{}, err
	}

	cfg, err := s.configFor(input.MaxDepth, input.Marker, input.DryRun)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, CleanOutput{}, err
	}
	p, err := buildPipeline(cfg)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, CleanOutput{}, err
	}

	output := CleanOutput{Cleaned: []string{}, Failures: []Failure{}}
	svc := sweep.New(p.walker, p.cleaner, sweep.Options{Jobs: cfg.Jobs})
	output.Summary = svc.Run(ctx, dir, func(r types.Report) {
		if r.Failed() {
			output.Failures = append(output.Failures, s.failure(r))
			return
		}
		output.Cleaned = append(output.Cleaned, s.display(r.Path))
	})

	sort.Strings(output.Cleaned)
	sortFailures(output.Failures)

	return nil, output, nil
}

func sortFailures(failures []Failure) {
	sort.Slice(failures, func(i, j int) bool {
		return failures[i].Path < failures[j].Path
	})
}
