package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/solart/internal/domain"
	"github.com/trebuchet-org/solart/internal/domain/models"
)

// ManageNetworks registers and looks up deployment addresses on artifacts
type ManageNetworks struct {
	store ArtifactStore
}

// NewManageNetworks creates a new ManageNetworks use case
func NewManageNetworks(store ArtifactStore) *ManageNetworks {
	return &ManageNetworks{store: store}
}

// Set records address as the deployment of the artifact on networkID,
// replacing a previous address, and saves the artifact.
func (uc *ManageNetworks) Set(ctx context.Context, path, networkID, address string) (*models.Contract, error) {
	if strings.TrimSpace(networkID) == "" {
		return nil, fmt.Errorf("network id must not be empty")
	}
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, address)
	}

	contract, err := uc.store.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	contract.AddNetwork(networkID, common.HexToAddress(address))

	if err := uc.store.Save(ctx, path, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// Get returns the address the artifact is deployed at on networkID
func (uc *ManageNetworks) Get(ctx context.Context, path, networkID string) (common.Address, error) {
	contract, err := uc.store.Read(ctx, path)
	if err != nil {
		return common.Address{}, err
	}
	address, ok := contract.Address(networkID)
	if !ok {
		return common.Address{}, fmt.Errorf("network %s for %s: %w", networkID, contract.Name(), domain.ErrNotFound)
	}
	return address, nil
}
