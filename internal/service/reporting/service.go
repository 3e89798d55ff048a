// Package reporting derives per-batch financial summaries. It is pure: every
// read recomputes from the current document and nothing here mutates state.
package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/agripoulet/internal/domain/apperrors"
	"github.com/mamadbah2/agripoulet/internal/domain/models"
	"github.com/mamadbah2/agripoulet/internal/repository/sheets"
	"github.com/mamadbah2/agripoulet/internal/service/production"
	"github.com/mamadbah2/agripoulet/internal/store"
)

const summaryRange = "Bilans!A:J"

// Summary is the financial picture of one stock batch, joined to its
// originating production batch when there is one.
type Summary struct {
	StockBatch   models.StockBatch       `json:"stockBatch"`
	Production   *models.ProductionBatch `json:"productionBatch,omitempty"`
	TotalRevenue float64                 `json:"totalRevenue"`
	TotalCost    float64                 `json:"totalCost"`
	Profit       float64                 `json:"profit"`
	IsFinished   bool                    `json:"isFinished"`
	Mortality    int                     `json:"mortality"`
	InitialCount int                     `json:"initialCount"`
	SoldCount    int                     `json:"soldCount"`
	Sales        []models.Sale           `json:"sales"`
	Notes        []string                `json:"notes,omitempty"`
}

// Service computes summaries and exports them.
type Service struct {
	store    *store.Store
	exporter sheets.Repository // nil when export is not configured
	logger   *zap.Logger
}

// NewService wires a reporting service. exporter may be nil.
func NewService(st *store.Store, exporter sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, exporter: exporter, logger: logger}
}

// Summaries recomputes the financial summary of every stock batch. The
// dataset is small (tens to low hundreds of records), so a full recompute per
// read is the simplest correct approach.
func (s *Service) Summaries() []Summary {
	var out []Summary
	s.store.View(func(doc *models.Document) {
		out = make([]Summary, 0, len(doc.StockBatches))
		for i := range doc.StockBatches {
			out = append(out, summarize(doc, &doc.StockBatches[i]))
		}
	})
	return out
}

// Summary computes the financial summary of a single stock batch.
func (s *Service) Summary(stockBatchID string) (Summary, error) {
	var (
		out   Summary
		found bool
	)
	s.store.View(func(doc *models.Document) {
		if sb := doc.StockBatch(stockBatchID); sb != nil {
			out = summarize(doc, sb)
			found = true
		}
	})
	if !found {
		return Summary{}, fmt.Errorf("stock batch %s: %w", stockBatchID, apperrors.ErrNotFound)
	}
	return out, nil
}

func summarize(doc *models.Document, sb *models.StockBatch) Summary {
	sum := Summary{
		StockBatch:   sb.Clone(),
		InitialCount: len(sb.Chickens),
		Sales:        []models.Sale{},
	}

	unitIDs := make(map[string]struct{}, len(sb.Chickens))
	for _, c := range sb.Chickens {
		unitIDs[c.ID] = struct{}{}
		if c.Sold {
			sum.SoldCount++
		}
	}

	for _, sale := range doc.Sales {
		for _, id := range sale.ChickenIDs {
			if _, ok := unitIDs[id]; ok {
				sum.Sales = append(sum.Sales, sale.Clone())
				sum.TotalRevenue += sale.Total
				break
			}
		}
	}

	if prod := doc.ProductionBatch(sb.ProductionBatchID); prod != nil {
		clone := prod.Clone()
		sum.Production = &clone
		sum.TotalCost = production.TotalInvested(clone)
		sum.InitialCount = clone.InitialChicks
		for _, r := range clone.DailyRecords {
			sum.Mortality += r.Deaths
			if r.Note != "" {
				sum.Notes = append(sum.Notes, r.Note)
			}
		}
	} else {
		sum.TotalCost = sb.InitialCost
	}

	sum.Profit = sum.TotalRevenue - sum.TotalCost
	sum.IsFinished = len(sb.Chickens) > 0 && sum.SoldCount == len(sb.Chickens)
	return sum
}

// ExportToSheet appends one row per summary to the configured spreadsheet.
func (s *Service) ExportToSheet(ctx context.Context) (int, error) {
	if s.exporter == nil {
		return 0, fmt.Errorf("sheet export is not configured: %w", apperrors.ErrPrecondition)
	}

	summaries := s.Summaries()
	exportedAt := time.Now().Format("2006-01-02 15:04")

	for _, sum := range summaries {
		origin := "import"
		if sum.Production != nil {
			origin = "production"
		}
		status := "actif"
		if sum.StockBatch.IsFinalized {
			status = "cloture"
		}

		row := []interface{}{
			exportedAt,
			sum.StockBatch.Name,
			origin,
			status,
			sum.InitialCount,
			sum.Mortality,
			sum.SoldCount,
			sum.TotalCost,
			sum.TotalRevenue,
			sum.Profit,
		}
		if err := s.exporter.AppendRow(ctx, summaryRange, row); err != nil {
			return 0, fmt.Errorf("export summary for %s: %w", sum.StockBatch.Name, err)
		}
	}

	s.logger.Info("financial summaries exported", zap.Int("rows", len(summaries)))
	return len(summaries), nil
}
