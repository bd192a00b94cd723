package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/trebuchet-org/solart/internal/domain"
	"github.com/trebuchet-org/solart/internal/usecase"
)

const solidityExt = ".sol"

// SourceFinderAdapter resolves build inputs on the local file system
type SourceFinderAdapter struct{}

// NewSourceFinderAdapter creates a new source finder
func NewSourceFinderAdapter() *SourceFinderAdapter {
	return &SourceFinderAdapter{}
}

// Find keeps files as given and expands directories into the solidity files
// they contain, descending into subdirectories only when recursive is set.
// Inputs that do not exist are reported in Missing.
func (f *SourceFinderAdapter) Find(ctx context.Context, inputs []string, recursive bool) (*usecase.SourceSet, error) {
	set := &usecase.SourceSet{Files: []string{}, Missing: []string{}}
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			set.Files = append(set.Files, path)
		}
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				set.Missing = append(set.Missing, input)
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w: %w", input, domain.ErrIO, err)
		}

		if !info.IsDir() {
			add(input)
			continue
		}

		files, err := findSources(input, recursive)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w: %w", input, domain.ErrIO, err)
		}
		for _, file := range files {
			add(file)
		}
	}

	return set, nil
}

func findSources(dir string, recursive bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && (!recursive || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && strings.HasSuffix(d.Name(), solidityExt) {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// Ensure the adapter implements the interface
var _ usecase.SourceFinder = (*SourceFinderAdapter)(nil)
