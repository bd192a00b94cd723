package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/trebuchet-org/solart/internal/domain"
	"github.com/trebuchet-org/solart/internal/domain/models"
	"github.com/trebuchet-org/solart/internal/usecase"
)

const artifactExt = ".json"

// ArtifactStoreAdapter stores contract documents as JSON files
type ArtifactStoreAdapter struct {
	log *slog.Logger
}

// NewArtifactStoreAdapter creates a new artifact store
func NewArtifactStoreAdapter(log *slog.Logger) *ArtifactStoreAdapter {
	return &ArtifactStoreAdapter{
		log: log.With("component", "ArtifactStore"),
	}
}

// Write stores the contract as <dir>/<Name>.json, creating dir if needed
func (s *ArtifactStoreAdapter) Write(ctx context.Context, dir string, contract *models.Contract, pretty bool) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory %s: %w: %w", dir, domain.ErrIO, err)
	}

	path := filepath.Join(dir, contract.Name()+artifactExt)
	if err := s.saveFile(path, contract, pretty); err != nil {
		return "", err
	}
	s.log.Debug("wrote artifact", "contract", contract.Name(), "path", path)
	return path, nil
}

// Save overwrites an existing artifact file
func (s *ArtifactStoreAdapter) Save(ctx context.Context, path string, contract *models.Contract) error {
	return s.saveFile(path, contract, true)
}

// Read loads a contract document
func (s *ArtifactStoreAdapter) Read(ctx context.Context, path string) (*models.Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("artifact %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read artifact %s: %w: %w", path, domain.ErrIO, err)
	}

	contract, err := models.ParseContract(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return contract, nil
}

// List returns the artifact files in dir, sorted by name
func (s *ArtifactStoreAdapter) List(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list artifacts in %s: %w: %w", dir, domain.ErrIO, err)
	}

	paths := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), artifactExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *ArtifactStoreAdapter) saveFile(path string, contract *models.Contract, pretty bool) error {
	var data []byte
	var err error
	if pretty {
		data, err = contract.SerializePretty()
	} else {
		data, err = contract.Serialize()
	}
	if err != nil {
		return err
	}

	// Write to temp file first
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w: %w", path, domain.ErrIO, err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w: %w", path, domain.ErrIO, err)
	}
	return nil
}

// Ensure the adapter implements the interface
var _ usecase.ArtifactStore = (*ArtifactStoreAdapter)(nil)
