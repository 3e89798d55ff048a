// Package production evolves production batches through data entry and their
// terminal transition into sellable stock.
package production

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/agripoulet/internal/domain/apperrors"
	"github.com/mamadbah2/agripoulet/internal/domain/models"
	"github.com/mamadbah2/agripoulet/internal/store"
)

const dateLayout = "2006-01-02"

// DefaultPricePerKg is the sale price seeded into a stock batch created from
// a closed production batch, pending manual adjustment.
const DefaultPricePerKg = 2500

// Service mutates production batches through the document store.
type Service struct {
	store  *store.Store
	logger *zap.Logger
}

// NewService wires a batch lifecycle service.
func NewService(st *store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, logger: logger}
}

// DayInput is one daily observation as entered on the follow-up form.
type DayInput struct {
	Date        string
	Deaths      int
	FeedGrams   float64
	FeedKg      float64
	WeightGrams float64
	Note        string
}

// List returns all production batches.
func (s *Service) List() []models.ProductionBatch {
	var out []models.ProductionBatch
	s.store.View(func(doc *models.Document) {
		out = make([]models.ProductionBatch, len(doc.ProductionBatches))
		for i, b := range doc.ProductionBatches {
			out[i] = b.Clone()
		}
	})
	return out
}

// Get returns one production batch by id.
func (s *Service) Get(id string) (models.ProductionBatch, error) {
	var (
		out   models.ProductionBatch
		found bool
	)
	s.store.View(func(doc *models.Document) {
		if b := doc.ProductionBatch(id); b != nil {
			out = b.Clone()
			found = true
		}
	})
	if !found {
		return models.ProductionBatch{}, fmt.Errorf("production batch %s: %w", id, apperrors.ErrNotFound)
	}
	return out, nil
}

// CreateBatch starts a new cohort. Every batch gets its own copy of the
// vaccination programme so completion flags stay independent.
func (s *Service) CreateBatch(name, startDate string, chicks int, chickPrice float64) (models.ProductionBatch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ProductionBatch{}, fmt.Errorf("batch name is required: %w", apperrors.ErrInvalid)
	}
	if _, err := time.Parse(dateLayout, startDate); err != nil {
		return models.ProductionBatch{}, fmt.Errorf("invalid start date %q: %w", startDate, apperrors.ErrInvalid)
	}
	if chicks <= 0 {
		return models.ProductionBatch{}, fmt.Errorf("initial chick count must be positive: %w", apperrors.ErrInvalid)
	}

	batch := models.ProductionBatch{
		ID:            uuid.NewString(),
		Name:          name,
		StartDate:     startDate,
		InitialChicks: chicks,
		ChickPrice:    chickPrice,
		DailyRecords:  []models.DailyRecord{},
		Expenses:      []models.Expense{},
		Vaccinations:  models.VaccinationProgramme(),
		Status:        models.BatchActive,
	}

	err := s.store.Update(func(doc *models.Document) error {
		doc.ProductionBatches = append(doc.ProductionBatches, batch)
		return nil
	})
	if err != nil {
		return models.ProductionBatch{}, err
	}

	s.logger.Info("production batch created",
		zap.String("batch_id", batch.ID), zap.String("name", name), zap.Int("chicks", chicks))
	return batch, nil
}

// RecordDay appends one daily observation. The batch day is derived from the
// record date relative to the batch start (dates before the start yield zero
// or negative days). Records stay sorted by date; several records may share a
// date, observations are never merged.
func (s *Service) RecordDay(batchID string, in DayInput) (models.ProductionBatch, error) {
	if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return models.ProductionBatch{}, fmt.Errorf("invalid record date %q: %w", in.Date, apperrors.ErrInvalid)
	}

	var updated models.ProductionBatch
	err := s.store.Update(func(doc *models.Document) error {
		batch := doc.ProductionBatch(batchID)
		if batch == nil {
			return fmt.Errorf("production batch %s: %w", batchID, apperrors.ErrNotFound)
		}
		if batch.Closed() {
			return fmt.Errorf("batch %s is closed: %w", batchID, apperrors.ErrPrecondition)
		}

		record := models.DailyRecord{
			Date:        in.Date,
			BatchDay:    BatchDay(batch.StartDate, in.Date),
			Deaths:      in.Deaths,
			FeedGrams:   in.FeedGrams,
			FeedKg:      in.FeedKg,
			WeightGrams: in.WeightGrams,
			Note:        strings.TrimSpace(in.Note),
		}

		batch.DailyRecords = append(batch.DailyRecords, record)
		sort.SliceStable(batch.DailyRecords, func(i, j int) bool {
			return batch.DailyRecords[i].Date < batch.DailyRecords[j].Date
		})

		updated = batch.Clone()
		return nil
	})
	if err != nil {
		return models.ProductionBatch{}, err
	}
	return updated, nil
}

// RecordExpense appends an expense entry with a fresh identity.
func (s *Service) RecordExpense(batchID, label string, amount float64, date string) (models.ProductionBatch, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return models.ProductionBatch{}, fmt.Errorf("expense label is required: %w", apperrors.ErrInvalid)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return models.ProductionBatch{}, fmt.Errorf("invalid expense date %q: %w", date, apperrors.ErrInvalid)
	}

	var updated models.ProductionBatch
	err := s.store.Update(func(doc *models.Document) error {
		batch := doc.ProductionBatch(batchID)
		if batch == nil {
			return fmt.Errorf("production batch %s: %w", batchID, apperrors.ErrNotFound)
		}
		if batch.Closed() {
			return fmt.Errorf("batch %s is closed: %w", batchID, apperrors.ErrPrecondition)
		}

		batch.Expenses = append(batch.Expenses, models.Expense{
			ID:     uuid.NewString(),
			Label:  label,
			Amount: amount,
			Date:   date,
		})

		updated = batch.Clone()
		return nil
	})
	if err != nil {
		return models.ProductionBatch{}, err
	}
	return updated, nil
}

// ToggleVaccination flips the completion flag of one programme step, stamping
// the effective date on completion and clearing it when unticked.
func (s *Service) ToggleVaccination(batchID string, index int) (models.ProductionBatch, error) {
	var updated models.ProductionBatch
	err := s.store.Update(func(doc *models.Document) error {
		batch := doc.ProductionBatch(batchID)
		if batch == nil {
			return fmt.Errorf("production batch %s: %w", batchID, apperrors.ErrNotFound)
		}
		if batch.Closed() {
			return fmt.Errorf("batch %s is closed: %w", batchID, apperrors.ErrPrecondition)
		}
		if index < 0 || index >= len(batch.Vaccinations) {
			return fmt.Errorf("vaccination index %d out of range: %w", index, apperrors.ErrInvalid)
		}

		v := &batch.Vaccinations[index]
		v.Done = !v.Done
		if v.Done {
			v.EffectiveDate = time.Now().Format(dateLayout)
		} else {
			v.EffectiveDate = ""
		}

		updated = batch.Clone()
		return nil
	})
	if err != nil {
		return models.ProductionBatch{}, err
	}
	return updated, nil
}

// CloseAndTransfer closes the batch and opens an empty stock batch backed by
// it. The transition is one-way; restocking individual chickens is a manual
// follow-up step. A non-positive price falls back to DefaultPricePerKg.
func (s *Service) CloseAndTransfer(batchID string, pricePerKg float64) (models.ProductionBatch, models.StockBatch, error) {
	if pricePerKg <= 0 {
		pricePerKg = DefaultPricePerKg
	}

	var (
		closed models.ProductionBatch
		stock  models.StockBatch
	)
	err := s.store.Update(func(doc *models.Document) error {
		batch := doc.ProductionBatch(batchID)
		if batch == nil {
			return fmt.Errorf("production batch %s: %w", batchID, apperrors.ErrNotFound)
		}
		if batch.Closed() {
			return fmt.Errorf("batch %s is already closed: %w", batchID, apperrors.ErrPrecondition)
		}

		batch.Status = models.BatchClosed

		stock = models.StockBatch{
			ID:                uuid.NewString(),
			ProductionBatchID: batch.ID,
			Letter:            NameLetter(batch.Name),
			Name:              batch.Name,
			PricePerKg:        pricePerKg,
			InitialCost:       0,
			Chickens:          []models.Chicken{},
		}
		doc.StockBatches = append(doc.StockBatches, stock)

		closed = batch.Clone()
		return nil
	})
	if err != nil {
		return models.ProductionBatch{}, models.StockBatch{}, err
	}

	s.logger.Info("production batch closed and transferred to stock",
		zap.String("batch_id", batchID), zap.String("stock_batch_id", stock.ID))
	return closed, stock, nil
}

// GrowthPoint is one day of the growth curve: the recorded weight, if any,
// next to the breed reference weight.
type GrowthPoint struct {
	Day         int     `json:"jour"`
	WeightGrams float64 `json:"poidsReel,omitempty"`
	Reference   float64 `json:"poidsTheorique,omitempty"`
}

// GrowthCurve plots recorded weights against the reference table, covering at
// least the first week.
func (s *Service) GrowthCurve(batchID string) ([]GrowthPoint, error) {
	batch, err := s.Get(batchID)
	if err != nil {
		return nil, err
	}

	maxDay := 7
	for _, r := range batch.DailyRecords {
		if r.BatchDay > maxDay {
			maxDay = r.BatchDay
		}
	}

	points := make([]GrowthPoint, 0, maxDay)
	for day := 1; day <= maxDay; day++ {
		p := GrowthPoint{Day: day, Reference: models.ReferenceWeightGrams[day]}
		for _, r := range batch.DailyRecords {
			if r.BatchDay == day {
				p.WeightGrams = r.WeightGrams
				break
			}
		}
		points = append(points, p)
	}
	return points, nil
}

// BatchDay derives the one-based day index of a date relative to the batch
// start. Dates before the start yield zero or negative indices.
func BatchDay(startDate, date string) int {
	start, err1 := time.Parse(dateLayout, startDate)
	target, err2 := time.Parse(dateLayout, date)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(target.Sub(start)/(24*time.Hour)) + 1
}

// LivingCount is the initial chick count minus all recorded deaths. It is
// intentionally not clamped; adversarial entries may drive it negative.
func LivingCount(b models.ProductionBatch) int {
	alive := b.InitialChicks
	for _, r := range b.DailyRecords {
		alive -= r.Deaths
	}
	return alive
}

// TotalInvested is the chick purchase cost plus every recorded expense.
func TotalInvested(b models.ProductionBatch) float64 {
	total := float64(b.InitialChicks) * b.ChickPrice
	for _, e := range b.Expenses {
		total += e.Amount
	}
	return total
}

// NameLetter is the tag of a stock batch: the uppercased first character of
// its name.
func NameLetter(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return ""
	}
	return strings.ToUpper(string(runes[0]))
}
