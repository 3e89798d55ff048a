package reporting

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"
)

// StatementPDF renders the financial statement of one stock batch.
func (s *Service) StatementPDF(stockBatchID string) ([]byte, error) {
	sum, err := s.Summary(stockBatchID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "AgriPoulet Pro - Bilan Financier", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Genere: %s", time.Now().Format("02-Jan-2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Lot", "1", 1, "L", true, 0, "")

	origin := "Stock Importe"
	if sum.Production != nil {
		origin = "Production Interne"
	}
	status := "ACTIF"
	if sum.StockBatch.IsFinalized {
		status = "CLOTURE"
	}

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Nom: %s", sum.StockBatch.Name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Origine: %s", origin), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Statut: %s", status), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Prix/kg: %.0f F", sum.StockBatch.PricePerKg), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Effectifs", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 7, fmt.Sprintf("Quantite initiale: %d", sum.InitialCount), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(63, 7, fmt.Sprintf("Mortalite: %d", sum.Mortality), "B", 0, "L", false, 0, "")
	pdf.CellFormat(64, 7, fmt.Sprintf("Vendus: %d", sum.SoldCount), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Resultat", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 7, fmt.Sprintf("Investi: %.0f F", sum.TotalCost), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(63, 7, fmt.Sprintf("Recettes: %.0f F", sum.TotalRevenue), "B", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(64, 7, fmt.Sprintf("Profit: %.0f F", sum.Profit), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	if len(sum.Sales) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Ventes", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(55, 7, "Client", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Date", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 7, "Poulets", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Total", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Paiement", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, sale := range sum.Sales {
			date := sale.SoldAt
			if t, err := time.Parse(time.RFC3339, sale.SoldAt); err == nil {
				date = t.Format("02/01/2006")
			}
			payment := "Comptant"
			if sale.IsCredit {
				if sale.IsPaid {
					payment = "Credit paye"
				} else {
					payment = "Credit en cours"
				}
			}
			name := sale.ClientName
			if len(name) > 28 {
				name = name[:25] + "..."
			}
			pdf.CellFormat(55, 6, name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, date, "1", 0, "C", false, 0, "")
			pdf.CellFormat(25, 6, fmt.Sprintf("%d", len(sale.ChickenIDs)), "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 6, fmt.Sprintf("%.0f F", sale.Total), "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, payment, "1", 1, "C", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render statement pdf: %w", err)
	}
	return buf.Bytes(), nil
}
