package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/bugtrack/internal/domain"
)

// InitRepoInput contains the input parameters for InitRepo.
type InitRepoInput struct {
	DataDir string // Path to the data directory
}

// InitRepoOutput contains the output from InitRepo.
type InitRepoOutput struct {
	DataDir            string
	AlreadyInitialized bool // True if the data directory already existed
}

// InitRepo prepares the data directory and the configured store.
type InitRepo struct {
	storeInit domain.StoreInitializer
}

// NewInitRepo creates a new InitRepo use case.
func NewInitRepo(storeInit domain.StoreInitializer) *InitRepo {
	return &InitRepo{storeInit: storeInit}
}

// Execute creates the data and logs directories and initializes the store.
// Running it again is safe.
func (uc *InitRepo) Execute(_ context.Context, in InitRepoInput) (*InitRepoOutput, error) {
	_, statErr := os.Stat(in.DataDir)
	alreadyInitialized := statErr == nil

	if err := os.MkdirAll(filepath.Join(in.DataDir, "logs"), 0o750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	if err := uc.storeInit.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	return &InitRepoOutput{
		DataDir:            in.DataDir,
		AlreadyInitialized: alreadyInitialized,
	}, nil
}
