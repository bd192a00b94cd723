package interactive

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/trebuchet-org/solart/internal/domain/models"
	"github.com/trebuchet-org/solart/internal/usecase"
)

// multiSelectModel is the bubbletea model for picking contracts to write
type multiSelectModel struct {
	contracts []*models.Contract
	cursor    int
	selected  map[int]bool
	title     string
	done      bool
	cancelled bool
}

func initialMultiSelectModel(contracts []*models.Contract, title string) multiSelectModel {
	return multiSelectModel{
		contracts: contracts,
		selected:  make(map[int]bool, len(contracts)),
		title:     title,
	}
}

// Init is the initial command for bubbletea
func (m multiSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.done = true
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.contracts)-1 {
			m.cursor++
		}
	case " ":
		m.selected[m.cursor] = !m.selected[m.cursor]
	case "a":
		all := len(m.indices()) < len(m.contracts)
		for i := range m.contracts {
			m.selected[i] = all
		}
	case "enter":
		if len(m.indices()) > 0 {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the UI
func (m multiSelectModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(color.New(color.FgCyan, color.Bold).Sprintf("%s\n\n", m.title))

	for i, contract := range m.contracts {
		cursor := " "
		if m.cursor == i {
			cursor = color.New(color.FgCyan).Sprint("▸")
		}

		checkbox := color.New(color.FgWhite).Sprint("○")
		if m.selected[i] {
			checkbox = color.New(color.FgGreen).Sprint("✓")
		}

		name := color.New(color.FgWhite).Sprint(contract.Name())
		entries := color.New(color.FgYellow).Sprintf("(%d abi entries)", len(contract.ABI()))

		fmt.Fprintf(&b, "%s %s %s %s\n", cursor, checkbox, name, entries)
	}

	b.WriteString("\n")
	b.WriteString(color.New(color.FgYellow).Sprint("↑/↓: move  Space: toggle  a: all  Enter: confirm  q: quit\n"))

	return b.String()
}

// indices returns the selected positions in display order
func (m multiSelectModel) indices() []int {
	var out []int
	for i := range m.contracts {
		if m.selected[i] {
			out = append(out, i)
		}
	}
	return out
}

// ContractPicker lets the user choose which compiled contracts to keep
type ContractPicker struct{}

// NewContractPicker creates a new bubbletea contract picker
func NewContractPicker() *ContractPicker {
	return &ContractPicker{}
}

// SelectContracts shows a multi-select interface and returns the chosen contracts
func (p *ContractPicker) SelectContracts(ctx context.Context, contracts []*models.Contract) ([]*models.Contract, error) {
	if len(contracts) == 0 {
		return nil, fmt.Errorf("no contracts to select")
	}

	program := tea.NewProgram(initialMultiSelectModel(contracts, "Select contracts to write"), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("multi-select failed: %w", err)
	}

	return pickedContracts(finalModel.(multiSelectModel))
}

func pickedContracts(m multiSelectModel) ([]*models.Contract, error) {
	if !m.done || m.cancelled {
		return nil, fmt.Errorf("selection cancelled")
	}

	indices := m.indices()
	if len(indices) == 0 {
		return nil, fmt.Errorf("no contracts selected")
	}

	picked := make([]*models.Contract, 0, len(indices))
	for _, i := range indices {
		picked = append(picked, m.contracts[i])
	}
	return picked, nil
}

var _ usecase.ContractSelector = (*ContractPicker)(nil)
