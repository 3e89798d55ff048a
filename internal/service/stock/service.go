// Package stock manages sellable chicken units inside stock batches.
package stock

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/agripoulet/internal/domain/apperrors"
	"github.com/mamadbah2/agripoulet/internal/domain/models"
	"github.com/mamadbah2/agripoulet/internal/service/production"
	"github.com/mamadbah2/agripoulet/internal/store"
)

// Service mutates stock batches through the document store.
type Service struct {
	store  *store.Store
	logger *zap.Logger
}

// NewService wires a stock service.
func NewService(st *store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, logger: logger}
}

// List returns all stock batches.
func (s *Service) List() []models.StockBatch {
	var out []models.StockBatch
	s.store.View(func(doc *models.Document) {
		out = make([]models.StockBatch, len(doc.StockBatches))
		for i, b := range doc.StockBatches {
			out[i] = b.Clone()
		}
	})
	return out
}

// Get returns one stock batch by id.
func (s *Service) Get(id string) (models.StockBatch, error) {
	var (
		out   models.StockBatch
		found bool
	)
	s.store.View(func(doc *models.Document) {
		if b := doc.StockBatch(id); b != nil {
			out = b.Clone()
			found = true
		}
	})
	if !found {
		return models.StockBatch{}, fmt.Errorf("stock batch %s: %w", id, apperrors.ErrNotFound)
	}
	return out, nil
}

// CreateBatch opens a stock batch with no production backing, carrying its
// own initial cost (imported birds bought ready for sale).
func (s *Service) CreateBatch(name string, pricePerKg, initialCost float64) (models.StockBatch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.StockBatch{}, fmt.Errorf("stock batch name is required: %w", apperrors.ErrInvalid)
	}

	batch := models.StockBatch{
		ID:          uuid.NewString(),
		Letter:      production.NameLetter(name),
		Name:        name,
		PricePerKg:  pricePerKg,
		InitialCost: initialCost,
		Chickens:    []models.Chicken{},
	}

	err := s.store.Update(func(doc *models.Document) error {
		doc.StockBatches = append(doc.StockBatches, batch)
		return nil
	})
	if err != nil {
		return models.StockBatch{}, err
	}

	s.logger.Info("stock batch created", zap.String("stock_batch_id", batch.ID), zap.String("name", name))
	return batch, nil
}

// AddChicken appends an unsold unit. Tag numbers are not required to be
// unique within a batch.
func (s *Service) AddChicken(batchID, tagNo string, weightKg, price float64) (models.StockBatch, error) {
	tagNo = strings.TrimSpace(tagNo)
	if tagNo == "" {
		return models.StockBatch{}, fmt.Errorf("chicken tag number is required: %w", apperrors.ErrInvalid)
	}

	var updated models.StockBatch
	err := s.store.Update(func(doc *models.Document) error {
		batch := doc.StockBatch(batchID)
		if batch == nil {
			return fmt.Errorf("stock batch %s: %w", batchID, apperrors.ErrNotFound)
		}
		if batch.IsFinalized {
			return fmt.Errorf("stock batch %s is finalized: %w", batchID, apperrors.ErrPrecondition)
		}

		batch.Chickens = append(batch.Chickens, models.Chicken{
			ID:       uuid.NewString(),
			TagNo:    tagNo,
			WeightKg: weightKg,
			Price:    price,
		})

		updated = batch.Clone()
		return nil
	})
	if err != nil {
		return models.StockBatch{}, err
	}
	return updated, nil
}

// RemoveChicken deletes an unsold unit from the batch. Sold units are part of
// a sale's history and can never be removed.
func (s *Service) RemoveChicken(batchID, chickenID string) (models.StockBatch, error) {
	var updated models.StockBatch
	err := s.store.Update(func(doc *models.Document) error {
		batch := doc.StockBatch(batchID)
		if batch == nil {
			return fmt.Errorf("stock batch %s: %w", batchID, apperrors.ErrNotFound)
		}
		if batch.IsFinalized {
			return fmt.Errorf("stock batch %s is finalized: %w", batchID, apperrors.ErrPrecondition)
		}

		for i, c := range batch.Chickens {
			if c.ID != chickenID {
				continue
			}
			if c.Sold {
				return fmt.Errorf("chicken %s is already sold: %w", chickenID, apperrors.ErrPrecondition)
			}
			batch.Chickens = append(batch.Chickens[:i], batch.Chickens[i+1:]...)
			updated = batch.Clone()
			return nil
		}
		return fmt.Errorf("chicken %s: %w", chickenID, apperrors.ErrNotFound)
	})
	if err != nil {
		return models.StockBatch{}, err
	}
	return updated, nil
}

// DeleteBatch removes a stock batch entirely. Finalized batches are locked
// reporting history and cannot be deleted.
func (s *Service) DeleteBatch(batchID string) error {
	err := s.store.Update(func(doc *models.Document) error {
		for i, b := range doc.StockBatches {
			if b.ID != batchID {
				continue
			}
			if b.IsFinalized {
				return fmt.Errorf("stock batch %s is finalized: %w", batchID, apperrors.ErrPrecondition)
			}
			doc.StockBatches = append(doc.StockBatches[:i], doc.StockBatches[i+1:]...)
			return nil
		}
		return fmt.Errorf("stock batch %s: %w", batchID, apperrors.ErrNotFound)
	})
	if err != nil {
		return err
	}

	s.logger.Info("stock batch deleted", zap.String("stock_batch_id", batchID))
	return nil
}

// Finalize locks the batch once every unit is sold. The latch is one-way and
// the finished precondition is enforced here, not left to callers.
func (s *Service) Finalize(batchID string) (models.StockBatch, error) {
	var updated models.StockBatch
	err := s.store.Update(func(doc *models.Document) error {
		batch := doc.StockBatch(batchID)
		if batch == nil {
			return fmt.Errorf("stock batch %s: %w", batchID, apperrors.ErrNotFound)
		}
		if batch.IsFinalized {
			return fmt.Errorf("stock batch %s is already finalized: %w", batchID, apperrors.ErrPrecondition)
		}
		if len(batch.Chickens) == 0 {
			return fmt.Errorf("stock batch %s has no units: %w", batchID, apperrors.ErrPrecondition)
		}
		for _, c := range batch.Chickens {
			if !c.Sold {
				return fmt.Errorf("stock batch %s still has unsold units: %w", batchID, apperrors.ErrPrecondition)
			}
		}

		batch.IsFinalized = true
		updated = batch.Clone()
		return nil
	})
	if err != nil {
		return models.StockBatch{}, err
	}

	s.logger.Info("stock batch finalized", zap.String("stock_batch_id", batchID))
	return updated, nil
}
