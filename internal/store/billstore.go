package store

import (
	"context"
	"fmt"

	"billed/internal/bills"
	"billed/internal/storage"
	"billed/internal/utils"
	"billed/pkg/types"

	"github.com/sirupsen/logrus"
)

// BillStore composes the bill repository and the receipt storage into the
// store collaborator the bill components consume. Create is the two-phase
// protocol's first half: upload the receipt, then insert the draft row whose
// ID becomes the update key.
type BillStore struct {
	repo    *BillRepository
	storage storage.Storage
	logger  logrus.FieldLogger
}

func NewBillStore(repo *BillRepository, storage storage.Storage, logger logrus.FieldLogger) *BillStore {
	return &BillStore{
		repo:    repo,
		storage: storage,
		logger:  logger,
	}
}

func (s *BillStore) List(ctx context.Context, email string) ([]*types.Bill, error) {
	return s.repo.BillsByEmail(ctx, email)
}

func (s *BillStore) Create(ctx context.Context, email string, file bills.FileUpload) (*bills.CreateResult, error) {

	id := utils.NanoID()
	path := fmt.Sprintf("receipts/%s/%s", id, file.Name)

	fileURL, err := s.storage.Upload(ctx, path, file.Content, file.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload receipt: %w", err)
	}

	draft := &types.Bill{
		ID:       id,
		Email:    email,
		FileURL:  &fileURL,
		FileName: &file.Name,
	}

	if err := s.repo.CreateDraft(ctx, draft); err != nil {
		// The row is the source of truth; an orphaned object is only noise.
		if delErr := s.storage.Delete(ctx, path); delErr != nil {
			s.logger.WithError(delErr).WithField("path", path).Warn("failed to remove orphaned receipt")
		}
		return nil, err
	}

	return &bills.CreateResult{
		FileURL: fileURL,
		Key:     id,
	}, nil
}

func (s *BillStore) Update(ctx context.Context, id string, bill *types.Bill) (*types.Bill, error) {

	if err := s.repo.UpdateBill(ctx, id, bill); err != nil {
		return nil, err
	}

	return s.repo.Bill(ctx, id)
}
