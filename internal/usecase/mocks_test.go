package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/solart/internal/domain"
	"github.com/trebuchet-org/solart/internal/domain/models"
	"github.com/trebuchet-org/solart/internal/usecase"
)

// MockCompiler is a mock implementation of Compiler
type MockCompiler struct {
	mock.Mock
}

func (m *MockCompiler) Compile(ctx context.Context, input domain.CompilerInput, kinds domain.OutputKinds) (*domain.CompilerOutput, error) {
	args := m.Called(ctx, input, kinds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompilerOutput), args.Error(1)
}

func (m *MockCompiler) Version(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockOutputParser is a mock implementation of OutputParser
type MockOutputParser struct {
	mock.Mock
}

func (m *MockOutputParser) Parse(output string, kinds domain.OutputKinds) ([]*models.Contract, error) {
	args := m.Called(output, kinds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Contract), args.Error(1)
}

// MockSourceFinder is a mock implementation of SourceFinder
type MockSourceFinder struct {
	mock.Mock
}

func (m *MockSourceFinder) Find(ctx context.Context, inputs []string, recursive bool) (*usecase.SourceSet, error) {
	args := m.Called(ctx, inputs, recursive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SourceSet), args.Error(1)
}

// MockArtifactStore is a mock implementation of ArtifactStore
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Write(ctx context.Context, dir string, contract *models.Contract, pretty bool) (string, error) {
	args := m.Called(ctx, dir, contract, pretty)
	return args.String(0), args.Error(1)
}

func (m *MockArtifactStore) Save(ctx context.Context, path string, contract *models.Contract) error {
	args := m.Called(ctx, path, contract)
	return args.Error(0)
}

func (m *MockArtifactStore) Read(ctx context.Context, path string) (*models.Contract, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

func (m *MockArtifactStore) List(ctx context.Context, dir string) ([]string, error) {
	args := m.Called(ctx, dir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockContractSelector is a mock implementation of ContractSelector
type MockContractSelector struct {
	mock.Mock
}

func (m *MockContractSelector) SelectContracts(ctx context.Context, contracts []*models.Contract) ([]*models.Contract, error) {
	args := m.Called(ctx, contracts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Contract), args.Error(1)
}

// MockArtifactSelector is a mock implementation of ArtifactSelector
type MockArtifactSelector struct {
	mock.Mock
}

func (m *MockArtifactSelector) SelectArtifact(ctx context.Context, paths []string) (string, error) {
	args := m.Called(ctx, paths)
	return args.String(0), args.Error(1)
}

// MockSelectorResolver is a mock implementation of SelectorResolver
type MockSelectorResolver struct {
	mock.Mock
}

func (m *MockSelectorResolver) Resolve(ctx context.Context, contract *models.Contract) ([]models.Selector, error) {
	args := m.Called(ctx, contract)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Selector), args.Error(1)
}

// MockProgressSink records progress events and messages
type MockProgressSink struct {
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string) {
	m.infos = append(m.infos, message)
}

func (m *MockProgressSink) Error(message string) {
	m.errors = append(m.errors, message)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newContract(t *testing.T, name string) *models.Contract {
	t.Helper()
	c, err := models.NewContract(name, nil, "6080")
	require.NoError(t, err)
	return c
}
