package scanner

import (
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoredDirs are directories never worth scanning for test sources:
// VCS metadata, editor state and build output (bin/obj for .NET projects).
var IgnoredDirs = map[string]bool{
	".git":         true,
	".svn":         true,
	".idea":        true,
	".vs":          true,
	".vscode":      true,
	"bin":          true,
	"obj":          true,
	"packages":     true,
	"TestResults":  true,
	"node_modules": true,
	"vendor":       true,
	"build":        true,
	"dist":         true,
}

// LoadGitignore loads .gitignore from root if it exists
func LoadGitignore(root string) *ignore.GitIgnore {
	gitignorePath := filepath.Join(root, ".gitignore")

	if _, err := os.Stat(gitignorePath); err == nil {
		if gitignore, err := ignore.CompileIgnoreFile(gitignorePath); err == nil {
			return gitignore
		}
	}

	return nil
}

// ScanFiles walks the tree under root and returns every file accepted by the
// caller's match predicate, honoring IgnoredDirs and the repo's .gitignore.
func ScanFiles(root string, gitignore *ignore.GitIgnore, match func(path string) bool) ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if info.IsDir() {
			if IgnoredDirs[info.Name()] {
				return filepath.SkipDir
			}
			if gitignore != nil && gitignore.MatchesPath(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if gitignore != nil && gitignore.MatchesPath(relPath) {
			return nil
		}

		if match != nil && !match(relPath) {
			return nil
		}

		files = append(files, FileInfo{
			Path: relPath,
			Size: info.Size(),
			Ext:  filepath.Ext(path),
		})

		return nil
	})

	return files, err
}
