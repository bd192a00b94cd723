package interactive

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/solart/internal/domain/config"
	"github.com/trebuchet-org/solart/internal/usecase"
)

// SelectorAdapter handles interactive artifact selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectArtifact prompts for one of the given artifact files
func (s *SelectorAdapter) SelectArtifact(ctx context.Context, paths []string) (string, error) {
	if s.config.NonInteractive {
		return "", fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(paths) == 0 {
		return "", fmt.Errorf("no artifacts provided for selection")
	}

	if len(paths) == 1 {
		return paths[0], nil
	}

	options := formatArtifactOptions(paths)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             "Select an artifact",
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(artifactNames(paths)),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}

	return paths[index], nil
}

// formatArtifactOptions renders "Name (dir/Name.json)" for each path
func formatArtifactOptions(paths []string) []string {
	options := make([]string, len(paths))
	for i, path := range paths {
		name := color.New(color.FgWhite, color.Bold).Sprint(artifactName(path))
		options[i] = fmt.Sprintf("%s (%s)", name, color.New(color.FgBlue).Sprint(path))
	}
	return options
}

func artifactNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = artifactName(path)
	}
	return names
}

func artifactName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var _ usecase.ArtifactSelector = (*SelectorAdapter)(nil)
