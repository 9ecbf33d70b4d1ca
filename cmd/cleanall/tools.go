package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taigrr/cleanall/internal/types"
)

type (
	// FindInput contains parameters for finding projects.
	FindInput struct {
		Path     string `json:"path,omitempty" jsonschema:"Directory to scan, relative to the server root (default: root)"`
		MaxDepth *int   `json:"maxDepth,omitempty" jsonschema:"Maximum depth below path to scan (default: configured depth)"`
		Marker   string `json:"marker,omitempty" jsonschema:"Marker file name identifying a project (default: configured marker)"`
	}

	// FindOutput lists the projects found and the directories that could not be read.
	FindOutput struct {
		Projects []string  `json:"projects"`
		Errors   []Failure `json:"errors"`
	}

	// CleanInput contains parameters for cleaning projects.
	CleanInput struct {
		Path     string `json:"path,omitempty" jsonschema:"Directory to scan, relative to the server root (default: root)"`
		MaxDepth *int   `json:"maxDepth,omitempty" jsonschema:"Maximum depth below path to scan (default: configured depth)"`
		Marker   string `json:"marker,omitempty" jsonschema:"Marker file name identifying a project (default: configured marker)"`
		DryRun   bool   `json:"dryRun,omitempty" jsonschema:"Report what would be cleaned without running the cleanup command"`
		Confirm  string `json:"confirm,omitempty" jsonschema:"Must be set to 'yes' unless dryRun is true"`
	}

	// CleanOutput contains the per-project results of a cleanup run.
	CleanOutput struct {
		Cleaned  []string      `json:"cleaned"`
		Failures []Failure     `json:"failures"`
		Summary  types.Summary `json:"summary"`
	}

	// Failure describes a directory that could not be scanned or cleaned.
	Failure struct {
		Path    string `json:"path"`
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}
)

func registerTools(server *mcp.Server, ts *toolServer) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_projects",
		Description: "Scan a directory tree for project directories (those containing the marker file) without changing anything. Also reports directories that could not be read.",
	}, ts.handleFind)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clean_projects",
		Description: "Run the cleanup command in every project directory below a path. Requires confirm='yes' unless dryRun is set. Failures are reported per directory and never stop the run.",
	}, ts.handleClean)
}
