// MCP Server for assertfix - exposes assertion repair tools to LLMs
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"assertfix/rewrite"
	"assertfix/scanner"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Input types for tools
type SourceInput struct {
	Source   string `json:"source" jsonschema:"Full source text to repair"`
	Families string `json:"families,omitempty" jsonschema:"Comma-separated rule families to apply (default: all)"`
}

type FixFilesInput struct {
	Path     string `json:"path" jsonschema:"Path to the directory to fix"`
	Ext      string `json:"ext,omitempty" jsonschema:"Target file extension (default: .cs)"`
	Write    bool   `json:"write,omitempty" jsonschema:"Write repaired files back in place (default: preview only)"`
	Families string `json:"families,omitempty" jsonschema:"Comma-separated rule families to apply (default: all)"`
}

type ListInput struct {
	Path string `json:"path" jsonschema:"Path to the directory to scan"`
	Ext  string `json:"ext,omitempty" jsonschema:"Target file extension (default: .cs)"`
}

type StatusInput struct{}

func main() {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "assertfix",
		Version: "1.0.0",
	}, nil)

	// Tool: fix_source - Repair a source snippet without touching disk
	mcp.AddTool(server, &mcp.Tool{
		Name:        "fix_source",
		Description: "Repair malformed fluent assertion expressions in the given source text. Returns the repaired text and whether anything changed. Unrecognized text is returned untouched.",
	}, handleFixSource)

	// Tool: fix_files - Walk a directory and repair matching files
	mcp.AddTool(server, &mcp.Tool{
		Name:        "fix_files",
		Description: "Walk a directory, repair malformed assertions in every matching file and report per-file outcomes. Writes files in place only when write is true; otherwise it is a preview.",
	}, handleFixFiles)

	// Tool: list_targets - Show which files a run would touch
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_targets",
		Description: "List the files a fix_files run would consider, honoring .gitignore and ignored build directories.",
	}, handleListTargets)

	// Tool: status - Verify MCP connection
	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Check assertfix MCP server status. Returns version and the available rule families.",
	}, handleStatus)

	// Run server on stdio
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Printf("Server error: %v", err)
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}

func newRewriter(families string) (*rewrite.Rewriter, error) {
	fams, err := rewrite.ParseFamilies(families)
	if err != nil {
		return nil, err
	}
	return rewrite.New(rewrite.Options{Families: fams}), nil
}

func handleFixSource(ctx context.Context, req *mcp.CallToolRequest, input SourceInput) (*mcp.CallToolResult, any, error) {
	rw, err := newRewriter(input.Families)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	fixed, changed, err := rw.Transform(input.Source)
	if err != nil {
		return errorResult("Transform error: " + err.Error()), nil, nil
	}
	if !changed {
		return textResult("No malformed assertions found; source unchanged."), nil, nil
	}
	return textResult(fixed), nil, nil
}

func handleFixFiles(ctx context.Context, req *mcp.CallToolRequest, input FixFilesInput) (*mcp.CallToolResult, any, error) {
	rw, err := newRewriter(input.Families)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	files, err := scanTargets(input.Path, input.Ext)
	if err != nil {
		return errorResult("Scan error: " + err.Error()), nil, nil
	}

	var sb strings.Builder
	modified, failed := 0, 0
	for _, f := range files {
		full := filepath.Join(input.Path, f.Path)
		data, err := os.ReadFile(full)
		if err != nil {
			failed++
			fmt.Fprintf(&sb, "✗ %s (%v)\n", f.Path, err)
			continue
		}
		fixed, changed, err := rw.Transform(string(data))
		if err != nil {
			failed++
			fmt.Fprintf(&sb, "✗ %s (%v)\n", f.Path, err)
			continue
		}
		if !changed {
			continue
		}
		modified++
		if input.Write {
			if err := os.WriteFile(full, []byte(fixed), 0644); err != nil {
				failed++
				fmt.Fprintf(&sb, "✗ %s (%v)\n", f.Path, err)
				continue
			}
			fmt.Fprintf(&sb, "✎ %s\n", f.Path)
		} else {
			fmt.Fprintf(&sb, "✎ %s (would change)\n", f.Path)
		}
	}

	fmt.Fprintf(&sb, "\n%d file(s) scanned, %d modified, %d failed", len(files), modified, failed)
	if !input.Write {
		sb.WriteString(" (preview, nothing written)")
	}
	return textResult(sb.String()), nil, nil
}

func handleListTargets(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, any, error) {
	files, err := scanTargets(input.Path, input.Ext)
	if err != nil {
		return errorResult("Scan error: " + err.Error()), nil, nil
	}
	if len(files) == 0 {
		return textResult("No matching files."), nil, nil
	}

	var sb strings.Builder
	for _, f := range files {
		fmt.Fprintf(&sb, "%s (%d bytes)\n", f.Path, f.Size)
	}
	return textResult(sb.String()), nil, nil
}

func handleStatus(ctx context.Context, req *mcp.CallToolRequest, input StatusInput) (*mcp.CallToolResult, any, error) {
	var sb strings.Builder
	sb.WriteString("assertfix MCP server 1.0.0\nRule families:\n")
	for _, f := range rewrite.AllFamilies() {
		fmt.Fprintf(&sb, "  %s\n", f)
	}
	return textResult(sb.String()), nil, nil
}

func scanTargets(root, ext string) ([]scanner.FileInfo, error) {
	if ext == "" {
		ext = ".cs"
	}
	gitignore := scanner.LoadGitignore(root)
	return scanner.ScanFiles(root, gitignore, func(path string) bool {
		return strings.HasSuffix(path, ext)
	})
}
