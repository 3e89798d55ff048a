// Package sales records client sales with all-or-nothing stock effects and
// manages the client base and credit follow-up.
package sales

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/agripoulet/internal/domain/apperrors"
	"github.com/mamadbah2/agripoulet/internal/domain/models"
	"github.com/mamadbah2/agripoulet/internal/store"
)

const dateLayout = "2006-01-02"

// DefaultReminderWindow is how far ahead a credit due date triggers a
// reminder.
const DefaultReminderWindow = 48 * time.Hour

// Service mutates clients and sales through the document store.
type Service struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a sales service.
func NewService(st *store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, logger: logger, now: time.Now}
}

// ListClients returns the client base.
func (s *Service) ListClients() []models.Client {
	var out []models.Client
	s.store.View(func(doc *models.Document) {
		out = append([]models.Client(nil), doc.Clients...)
	})
	return out
}

// CreateClient registers a buyer. Address is optional.
func (s *Service) CreateClient(name, address, phone string) (models.Client, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return models.Client{}, fmt.Errorf("client name is required: %w", apperrors.ErrInvalid)
	}
	if phone == "" {
		return models.Client{}, fmt.Errorf("client phone is required: %w", apperrors.ErrInvalid)
	}

	client := models.Client{
		ID:      uuid.NewString(),
		Name:    name,
		Address: strings.TrimSpace(address),
		Phone:   phone,
	}

	err := s.store.Update(func(doc *models.Document) error {
		doc.Clients = append(doc.Clients, client)
		return nil
	})
	if err != nil {
		return models.Client{}, err
	}
	return client, nil
}

// DeleteClient removes a buyer. Past sales keep the name snapshot they took
// at sale time, so history survives the deletion.
func (s *Service) DeleteClient(id string) error {
	return s.store.Update(func(doc *models.Document) error {
		for i, c := range doc.Clients {
			if c.ID == id {
				doc.Clients = append(doc.Clients[:i], doc.Clients[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("client %s: %w", id, apperrors.ErrNotFound)
	})
}

// ListSales returns all sales, most recent first (creation order).
func (s *Service) ListSales() []models.Sale {
	var out []models.Sale
	s.store.View(func(doc *models.Document) {
		out = make([]models.Sale, len(doc.Sales))
		for i, sale := range doc.Sales {
			out[i] = sale.Clone()
		}
	})
	return out
}

// SaleInput is a sale as submitted by the sale form.
type SaleInput struct {
	ClientID   string
	ChickenIDs []string
	IsCredit   bool
	DueDate    string // required iff IsCredit
}

// RecordSale sells a set of chickens to a client in one atomic step: the
// client must exist and every requested chicken must currently be unsold
// somewhere across the stock batches. On success all requested units flip to
// sold and the sale is recorded with the total snapshotted from their prices;
// on any unmet precondition nothing changes.
func (s *Service) RecordSale(in SaleInput) (models.Sale, error) {
	ids := dedupe(in.ChickenIDs)
	if len(ids) == 0 {
		return models.Sale{}, fmt.Errorf("at least one chicken must be selected: %w", apperrors.ErrInvalid)
	}
	if in.IsCredit {
		if _, err := time.Parse(dateLayout, in.DueDate); err != nil {
			return models.Sale{}, fmt.Errorf("credit sale requires a valid due date: %w", apperrors.ErrInvalid)
		}
	}

	var sale models.Sale
	err := s.store.Update(func(doc *models.Document) error {
		client := doc.Client(in.ClientID)
		if client == nil {
			return fmt.Errorf("client %s: %w", in.ClientID, apperrors.ErrNotFound)
		}

		// Locate every requested unit before touching anything.
		type located struct{ batch, chicken int }
		positions := make(map[string]located, len(ids))
		for bi := range doc.StockBatches {
			for ci, c := range doc.StockBatches[bi].Chickens {
				positions[c.ID] = located{batch: bi, chicken: ci}
			}
		}

		total := 0.0
		for _, id := range ids {
			pos, ok := positions[id]
			if !ok {
				return fmt.Errorf("chicken %s: %w", id, apperrors.ErrNotFound)
			}
			unit := doc.StockBatches[pos.batch].Chickens[pos.chicken]
			if unit.Sold {
				return fmt.Errorf("chicken %s is already sold: %w", id, apperrors.ErrPrecondition)
			}
			total += unit.Price
		}

		for _, id := range ids {
			pos := positions[id]
			doc.StockBatches[pos.batch].Chickens[pos.chicken].Sold = true
		}

		sale = models.Sale{
			ID:         uuid.NewString(),
			ClientID:   client.ID,
			ClientName: client.Name,
			ChickenIDs: ids,
			Total:      total,
			IsCredit:   in.IsCredit,
			IsPaid:     !in.IsCredit,
			SoldAt:     s.now().Format(time.RFC3339),
		}
		if in.IsCredit {
			sale.DueDate = in.DueDate
		}

		doc.Sales = append([]models.Sale{sale}, doc.Sales...)
		return nil
	})
	if err != nil {
		return models.Sale{}, err
	}

	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID),
		zap.String("client", sale.ClientName),
		zap.Int("units", len(sale.ChickenIDs)),
		zap.Float64("total", sale.Total),
		zap.Bool("credit", sale.IsCredit))
	return sale, nil
}

// MarkCreditPaid settles a credit sale. Settling an already paid credit is a
// no-op; cash sales are born paid and cannot be settled again.
func (s *Service) MarkCreditPaid(saleID string) (models.Sale, error) {
	var out models.Sale
	err := s.store.Update(func(doc *models.Document) error {
		sale := doc.Sale(saleID)
		if sale == nil {
			return fmt.Errorf("sale %s: %w", saleID, apperrors.ErrNotFound)
		}
		if !sale.IsCredit {
			return fmt.Errorf("sale %s is not a credit sale: %w", saleID, apperrors.ErrPrecondition)
		}
		sale.IsPaid = true
		out = sale.Clone()
		return nil
	})
	if err != nil {
		return models.Sale{}, err
	}
	return out, nil
}

// DueCredits lists unpaid credit sales whose due date falls within the given
// window from now (overdue ones included).
func (s *Service) DueCredits(window time.Duration) []models.Sale {
	limit := s.now().Add(window)

	var out []models.Sale
	s.store.View(func(doc *models.Document) {
		for _, sale := range doc.Sales {
			if !sale.IsCredit || sale.IsPaid || sale.DueDate == "" {
				continue
			}
			due, err := time.Parse(dateLayout, sale.DueDate)
			if err != nil {
				continue
			}
			if !due.After(limit) {
				out = append(out, sale.Clone())
			}
		}
	})
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
