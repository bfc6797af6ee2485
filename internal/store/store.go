/*
PURPOSE:
  Collects the results of every report under a directory tree that the
  user's condition set selects.

REQUIREMENTS:
  User-specified:
  - Depth-first walk; names are filtered before any content is read.
  - Results are keyed by base name; a later duplicate replaces an earlier one.

  Implementation-discovered:
  - Walk order is lexical (filepath.WalkDir), which makes the duplicate
    rule deterministic.
  - Symbolic links to files and directories are followed. Each resolved
    directory is walked at most once so link cycles terminate.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/condition, internal/report, internal/output (logging)

ERROR HANDLING:
  - Unreadable files are logged and recorded in Failures; the walk goes on.
  - Only an unreadable root aborts Ingest.

USAGE:
  st, err := store.Ingest(dir, set)
*/

package store

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/daryltucker/asmgraph/internal/condition"
	"github.com/daryltucker/asmgraph/internal/model"
	"github.com/daryltucker/asmgraph/internal/output"
	"github.com/daryltucker/asmgraph/internal/report"
)

// Store holds parsed results keyed by report base name.
type Store struct {
	results map[string]*model.Result

	// Failures records per-path errors met while scanning.
	Failures map[string]error
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		results:  make(map[string]*model.Result),
		Failures: make(map[string]error),
	}
}

// Ingest walks root, keeps the files whose names pass set and parses them.
// Symbolic links are followed; a directory reached twice is walked once.
func Ingest(root string, set condition.Set) (*Store, error) {
	st := New()

	w := &walker{store: st, set: set, visited: make(map[string]bool)}
	if err := w.walk(root); err != nil {
		return nil, errors.Wrapf(err, "cannot scan %s", root)
	}

	output.Logger.Info("Scan complete", "root", root, "results", st.Len(), "failures", len(st.Failures))
	return st, nil
}

type walker struct {
	store   *Store
	set     condition.Set
	visited map[string]bool
}

// walk scans dir depth-first. Only an error on dir itself is returned.
func (w *walker) walk(dir string) error {
	if real, err := filepath.EvalSymlinks(dir); err == nil {
		w.visited[real] = true
	}

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			w.fail(path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		switch {
		case d.IsDir():
			return nil
		case d.Type()&fs.ModeSymlink != 0:
			w.follow(path, d.Name())
		case d.Type().IsRegular():
			w.visit(path, d.Name())
		}
		return nil
	})
}

// follow resolves a symbolic link found during the walk.
func (w *walker) follow(path, name string) {
	info, err := os.Stat(path)
	if err != nil {
		if w.set.Passes(name) {
			w.fail(path, err)
		} else {
			output.Logger.Debug("Skipping broken link", "path", path, "error", err)
		}
		return
	}

	if !info.IsDir() {
		if info.Mode().IsRegular() {
			w.visit(path, name)
		}
		return
	}

	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		w.fail(path, err)
		return
	}
	if w.visited[real] {
		output.Logger.Debug("Skipping directory already scanned", "path", path, "target", real)
		return
	}
	if err := w.walk(real); err != nil {
		w.fail(path, err)
	}
}

func (w *walker) visit(path, name string) {
	if !w.set.Passes(name) {
		output.Logger.Debug("Skipping file (condition)", "file", path)
		return
	}

	res, err := report.ParseFile(path)
	if err != nil {
		output.Logger.Error("Failed to parse report", "file", path, "error", err)
		w.store.Failures[path] = err
		return
	}
	w.store.Add(name, res)
}

func (w *walker) fail(path string, err error) {
	output.Logger.Error("Cannot read path", "path", path, "error", err)
	w.store.Failures[path] = err
}

// Add stores res under name, replacing any earlier result of that name.
func (s *Store) Add(name string, res *model.Result) {
	if prev, ok := s.results[name]; ok {
		output.Logger.Warn("Duplicate run name, keeping the later file",
			"name", name, "previous", prev.SourcePath, "current", res.SourcePath)
	}
	s.results[name] = res
}

// Get returns the result stored under name.
func (s *Store) Get(name string) (*model.Result, bool) {
	res, ok := s.results[name]
	return res, ok
}

// Len is the number of stored results.
func (s *Store) Len() int {
	return len(s.results)
}

// Names returns the stored names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.results))
	for n := range s.results {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Results returns the stored results ordered by name.
func (s *Store) Results() []*model.Result {
	names := s.Names()
	out := make([]*model.Result, len(names))
	for i, n := range names {
		out[i] = s.results[n]
	}
	return out
}
