package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"assertfix/render"
	"assertfix/rewrite"
	"assertfix/scanner"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Report what would change without writing files")
	diffMode := flag.Bool("diff", false, "Only fix files changed vs main (or use --ref to specify branch)")
	diffRef := flag.String("ref", "main", "Branch/ref to compare against (use with --diff)")
	extFlag := flag.String("ext", ".cs", "File extension to fix")
	familiesFlag := flag.String("families", "", "Comma-separated rule families to apply (default: all)")
	jsonMode := flag.Bool("json", false, "Output the run report as JSON")
	progressMode := flag.Bool("progress", false, "Show a live progress line while fixing")
	debugMode := flag.Bool("debug", false, "Show debug info (gitignore loading, selected files, etc.)")
	helpMode := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *helpMode {
		fmt.Println("assertfix - Repair malformed fluent assertion expressions in test sources")
		fmt.Println()
		fmt.Println("Usage: assertfix [options] [path]")
		fmt.Println()
		fmt.Println("Options:")
		fmt.Println("  --help           Show this help message")
		fmt.Println("  --dry-run        Report what would change without writing")
		fmt.Println("  --diff           Only fix files changed vs main")
		fmt.Println("  --ref <branch>   Branch to compare against (default: main)")
		fmt.Println("  --ext <ext>      File extension to fix (default: .cs)")
		fmt.Println("  --families <fs>  Comma-separated rule families (default: all)")
		fmt.Println("  --json           Output the run report as JSON")
		fmt.Println("  --progress       Show a live progress line")
		fmt.Println()
		fmt.Println("Rule families:")
		for _, f := range rewrite.AllFamilies() {
			fmt.Printf("  %s\n", f)
		}
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  assertfix .                      # Fix all .cs files under cwd")
		fmt.Println("  assertfix --dry-run tests/       # Preview without writing")
		fmt.Println("  assertfix --diff --ref develop   # Fix only files changed vs develop")
		fmt.Println("  assertfix --families containment # Run a single rule family")
		os.Exit(0)
	}

	root := flag.Arg(0)
	if root == "" {
		root = "."
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting absolute path: %v\n", err)
		os.Exit(1)
	}

	families, err := rewrite.ParseFamilies(*familiesFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rw := rewrite.New(rewrite.Options{Families: families})
	if len(families) == 0 {
		families = rewrite.AllFamilies()
	}

	gitignore := scanner.LoadGitignore(root)

	if *debugMode {
		fmt.Fprintf(os.Stderr, "[debug] Root path: %s\n", root)
		fmt.Fprintf(os.Stderr, "[debug] Absolute path: %s\n", absRoot)
		fmt.Fprintf(os.Stderr, "[debug] Gitignore loaded: %v\n", gitignore != nil)
		fmt.Fprintf(os.Stderr, "[debug] Families: %v\n", families)
	}

	ext := *extFlag
	match := func(path string) bool { return strings.HasSuffix(path, ext) }

	files, err := scanner.ScanFiles(root, gitignore, match)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking tree: %v\n", err)
		os.Exit(1)
	}

	var activeDiffRef string
	if *diffMode {
		diffInfo, err := scanner.GitDiffInfo(absRoot, *diffRef)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting git diff: %v\n", err)
			fmt.Fprintf(os.Stderr, "Make sure '%s' is a valid branch/ref\n", *diffRef)
			os.Exit(1)
		}
		files = scanner.FilterToChangedWithInfo(files, diffInfo)
		activeDiffRef = *diffRef
	}

	if *debugMode {
		for _, f := range files {
			fmt.Fprintf(os.Stderr, "[debug] Selected: %s\n", f.Path)
		}
	}

	report := scanner.Report{
		Root:     absRoot,
		Families: familyNames(families),
		DiffRef:  activeDiffRef,
		DryRun:   *dryRun,
	}

	write := !*dryRun
	if *progressMode && !*jsonMode {
		err = render.Progress(len(files), func(send func(scanner.FixResult)) {
			for _, f := range files {
				res := fixFile(root, f.Path, rw, write)
				report.Results = append(report.Results, res)
				send(res)
			}
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running progress display: %v\n", err)
			os.Exit(1)
		}
	} else {
		for _, f := range files {
			report.Results = append(report.Results, fixFile(root, f.Path, rw, write))
		}
	}
	report.Tally()

	if *jsonMode {
		json.NewEncoder(os.Stdout).Encode(report)
	} else {
		render.Summary(report)
	}

	if report.Failed > 0 {
		os.Exit(1)
	}
}

// fixFile reads one file, transforms it and writes the result back in place
// when it changed and write is set. Errors are captured per file so one bad
// document never stops the run.
func fixFile(root, rel string, rw *rewrite.Rewriter, write bool) scanner.FixResult {
	res := scanner.FixResult{Path: rel}
	full := filepath.Join(root, rel)

	data, err := os.ReadFile(full)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	fixed, changed, err := rw.Transform(string(data))
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Changed = changed

	if changed && write {
		mode := fs.FileMode(0644)
		if info, err := os.Stat(full); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(full, []byte(fixed), mode); err != nil {
			res.Error = err.Error()
			return res
		}
		res.Written = true
	}
	return res
}

func familyNames(families []rewrite.Family) []string {
	names := make([]string, len(families))
	for i, f := range families {
		names[i] = string(f)
	}
	return names
}
