package scaffold

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/navtoc/internal/config"
	"github.com/jorge-barreto/navtoc/internal/doctor"
	"github.com/jorge-barreto/navtoc/internal/ux"
)

var configTemplate = `source:
  # directory holding the <table>.js navigation tables
  dir: %q
  # entry table, without .js
  root: %q
  strict: false

server:
  listen: 127.0.0.1:8088

logging:
  console:
    level: normal
  file:
    level: none
`

// tablesDir is where webhelp output keeps its navigation tables.
var tablesDir = filepath.Join("nav-links", "json")

const maxSearchDepth = 4

// Init writes a starter config file into targetDir. It points the source at
// a nav-links/json directory below targetDir when one exists and fills in
// the root table when it can be inferred.
func Init(targetDir string, w io.Writer) error {
	path := filepath.Join(targetDir, config.FileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, targetDir)
	}

	dir, root := ".", ""
	if found, ok := findTablesDir(targetDir); ok {
		dir = found
		if scan, err := doctor.ScanDir(os.DirFS(filepath.Join(targetDir, found))); err == nil {
			if roots := scan.Roots(); len(roots) == 1 {
				root = roots[0]
			}
		}
	}

	content := fmt.Sprintf(configTemplate, filepath.ToSlash(dir), root)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", config.FileName, err)
	}

	fmt.Fprintf(w, "\n%s%s✓ Initialized %s%s\n\n", ux.Bold, ux.Green, config.FileName, ux.Reset)
	fmt.Fprintf(w, "  Source:  %s%s%s\n", ux.Cyan, dir, ux.Reset)
	if root != "" {
		fmt.Fprintf(w, "  Root:    %s%s%s\n\n", ux.Cyan, root, ux.Reset)
	} else {
		fmt.Fprintf(w, "  Root:    %s(not found, set source.root)%s\n\n", ux.Yellow, ux.Reset)
	}
	fmt.Fprintf(w, "  Next steps:\n")
	fmt.Fprintf(w, "    1. Check %s%s%s\n", ux.Cyan, config.FileName, ux.Reset)
	fmt.Fprintf(w, "    2. Run %snavtoc doctor%s to verify the tables\n", ux.Cyan, ux.Reset)
	fmt.Fprintf(w, "    3. Run %snavtoc tree --depth 2%s to browse\n\n", ux.Cyan, ux.Reset)
	return nil
}

// findTablesDir returns the first nav-links/json directory below base,
// relative to base.
func findTablesDir(base string) (string, bool) {
	var found string
	filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		rel, _ := filepath.Rel(base, p)
		if strings.Count(rel, string(filepath.Separator)) >= maxSearchDepth {
			return fs.SkipDir
		}
		if strings.HasPrefix(d.Name(), ".") && rel != "." {
			return fs.SkipDir
		}
		if rel == tablesDir || strings.HasSuffix(rel, string(filepath.Separator)+tablesDir) {
			found = rel
			return fs.SkipAll
		}
		return nil
	})
	return found, found != ""
}
