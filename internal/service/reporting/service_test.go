package reporting

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/mamadbah2/agripoulet/internal/domain/apperrors"
	filerepo "github.com/mamadbah2/agripoulet/internal/repository/file"
	productionsvc "github.com/mamadbah2/agripoulet/internal/service/production"
	salessvc "github.com/mamadbah2/agripoulet/internal/service/sales"
	stocksvc "github.com/mamadbah2/agripoulet/internal/service/stock"
	"github.com/mamadbah2/agripoulet/internal/store"
)

type fakeExporter struct {
	rows [][]interface{}
	err  error
}

func (f *fakeExporter) AppendRow(_ context.Context, _ string, values []interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, values)
	return nil
}

type fixture struct {
	store      *store.Store
	production *productionsvc.Service
	stock      *stocksvc.Service
	sales      *salessvc.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	repo, err := filerepo.New(filepath.Join(t.TempDir(), "doc.json"), zap.NewNop())
	if err != nil {
		t.Fatalf("file repository: %v", err)
	}
	st, err := store.Open(context.Background(), repo, 0, zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(st.Close)

	return fixture{
		store:      st,
		production: productionsvc.NewService(st, zap.NewNop()),
		stock:      stocksvc.NewService(st, zap.NewNop()),
		sales:      salessvc.NewService(st, zap.NewNop()),
	}
}

// sellUnits records one sale per chicken id so revenue attribution is easy to
// follow in assertions.
func (f fixture) sellUnits(t *testing.T, clientID string, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if _, err := f.sales.RecordSale(salessvc.SaleInput{ClientID: clientID, ChickenIDs: []string{id}}); err != nil {
			t.Fatalf("sell %s: %v", id, err)
		}
	}
}

func TestSummaryProductionBackedBatch(t *testing.T) {
	f := newFixture(t)

	batch, err := f.production.CreateBatch("Bande A", "2025-01-01", 100, 500)
	if err != nil {
		t.Fatalf("create production batch: %v", err)
	}
	if _, err := f.production.RecordDay(batch.ID, productionsvc.DayInput{Date: "2025-01-05", Deaths: 3, Note: "chaleur"}); err != nil {
		t.Fatalf("record day: %v", err)
	}
	if _, err := f.production.RecordDay(batch.ID, productionsvc.DayInput{Date: "2025-01-09", Deaths: 2}); err != nil {
		t.Fatalf("record day: %v", err)
	}
	if _, err := f.production.RecordExpense(batch.ID, "Aliment", 12000, "2025-01-10"); err != nil {
		t.Fatalf("record expense: %v", err)
	}

	_, sb, err := f.production.CloseAndTransfer(batch.ID, 2500)
	if err != nil {
		t.Fatalf("close and transfer: %v", err)
	}
	sb, err = f.stock.AddChicken(sb.ID, "001", 2.0, 3000)
	if err != nil {
		t.Fatalf("add chicken: %v", err)
	}
	sb, err = f.stock.AddChicken(sb.ID, "002", 2.2, 3300)
	if err != nil {
		t.Fatalf("add chicken: %v", err)
	}

	client, err := f.sales.CreateClient("Jean Dupont", "", "620000000")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	f.sellUnits(t, client.ID, sb.Chickens[0].ID)

	svc := NewService(f.store, nil, zap.NewNop())
	sum, err := svc.Summary(sb.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if sum.Production == nil || sum.Production.ID != batch.ID {
		t.Fatal("summary must join the originating production batch")
	}
	if sum.TotalCost != 62000 {
		t.Fatalf("cost = %v, want 62000 (chicks + expenses)", sum.TotalCost)
	}
	if sum.TotalRevenue != 3000 {
		t.Fatalf("revenue = %v, want 3000", sum.TotalRevenue)
	}
	if sum.Profit != -59000 {
		t.Fatalf("profit = %v, want -59000", sum.Profit)
	}
	if sum.InitialCount != 100 {
		t.Fatalf("initial count = %d, want the production chick count", sum.InitialCount)
	}
	if sum.Mortality != 5 {
		t.Fatalf("mortality = %d, want 5", sum.Mortality)
	}
	if sum.SoldCount != 1 || sum.IsFinished {
		t.Fatalf("sold = %d finished = %v, want 1/false", sum.SoldCount, sum.IsFinished)
	}
	if len(sum.Notes) != 1 || sum.Notes[0] != "chaleur" {
		t.Fatalf("notes = %v", sum.Notes)
	}
	if len(sum.Sales) != 1 {
		t.Fatalf("sales = %d, want 1", len(sum.Sales))
	}
}

func TestSummaryImportedBatch(t *testing.T) {
	f := newFixture(t)

	sb, err := f.stock.CreateBatch("Import Mars", 2800, 15000)
	if err != nil {
		t.Fatalf("create stock batch: %v", err)
	}
	sb, err = f.stock.AddChicken(sb.ID, "001", 2.0, 5600)
	if err != nil {
		t.Fatalf("add chicken: %v", err)
	}
	sb, err = f.stock.AddChicken(sb.ID, "002", 2.5, 7000)
	if err != nil {
		t.Fatalf("add chicken: %v", err)
	}

	client, err := f.sales.CreateClient("Aissatou Barry", "", "621111111")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	f.sellUnits(t, client.ID, sb.Chickens[0].ID, sb.Chickens[1].ID)

	svc := NewService(f.store, nil, zap.NewNop())
	sum, err := svc.Summary(sb.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if sum.Production != nil {
		t.Fatal("imported batch must not join a production batch")
	}
	if sum.TotalCost != 15000 {
		t.Fatalf("cost = %v, want the batch initial cost", sum.TotalCost)
	}
	if sum.TotalRevenue != 12600 || sum.Profit != -2400 {
		t.Fatalf("revenue = %v profit = %v", sum.TotalRevenue, sum.Profit)
	}
	if sum.InitialCount != 2 {
		t.Fatalf("initial count = %d, want the unit count", sum.InitialCount)
	}
	if sum.Mortality != 0 {
		t.Fatalf("mortality = %d, want 0", sum.Mortality)
	}
	if !sum.IsFinished {
		t.Fatal("every unit sold, summary must report finished")
	}
}

func TestSummaryAttributesSalesToTheirBatch(t *testing.T) {
	f := newFixture(t)

	first, err := f.stock.CreateBatch("Bande A", 2500, 0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	first, err = f.stock.AddChicken(first.ID, "001", 2.0, 3000)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := f.stock.CreateBatch("Bande B", 2500, 0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err = f.stock.AddChicken(second.ID, "001", 2.0, 4000)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	client, err := f.sales.CreateClient("Jean Dupont", "", "620000000")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	f.sellUnits(t, client.ID, first.Chickens[0].ID, second.Chickens[0].ID)

	svc := NewService(f.store, nil, zap.NewNop())

	sumA, err := svc.Summary(first.ID)
	if err != nil {
		t.Fatalf("summary A: %v", err)
	}
	if sumA.TotalRevenue != 3000 {
		t.Fatalf("batch A revenue = %v, want only its own sale", sumA.TotalRevenue)
	}
	sumB, err := svc.Summary(second.ID)
	if err != nil {
		t.Fatalf("summary B: %v", err)
	}
	if sumB.TotalRevenue != 4000 {
		t.Fatalf("batch B revenue = %v, want only its own sale", sumB.TotalRevenue)
	}
}

func TestSummaryNotFound(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.store, nil, zap.NewNop())

	if _, err := svc.Summary("missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestExportToSheet(t *testing.T) {
	f := newFixture(t)

	if _, err := f.stock.CreateBatch("Bande A", 2500, 1000); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.stock.CreateBatch("Import Mars", 2800, 2000); err != nil {
		t.Fatalf("create: %v", err)
	}

	exporter := &fakeExporter{}
	svc := NewService(f.store, exporter, zap.NewNop())

	n, err := svc.ExportToSheet(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if n != 2 || len(exporter.rows) != 2 {
		t.Fatalf("exported %d rows, recorded %d, want 2", n, len(exporter.rows))
	}
	if len(exporter.rows[0]) != 10 {
		t.Fatalf("row width = %d, want 10 columns", len(exporter.rows[0]))
	}
}

func TestExportToSheetUnconfigured(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.store, nil, zap.NewNop())

	if _, err := svc.ExportToSheet(context.Background()); !errors.Is(err, apperrors.ErrPrecondition) {
		t.Fatalf("err = %v, want ErrPrecondition", err)
	}
}
