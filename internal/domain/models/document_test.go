package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeFillsMissingSettings(t *testing.T) {
	doc := Document{
		ProductionBatches: []ProductionBatch{},
		StockBatches:      []StockBatch{},
		Clients:           []Client{},
		Sales:             []Sale{},
	}

	if changed := doc.Normalize(); !changed {
		t.Fatal("expected Normalize to report a change")
	}
	if doc.Settings.AdminSecretHash != DefaultAdminSecret {
		t.Fatalf("settings secret = %q, want default", doc.Settings.AdminSecretHash)
	}

	if changed := doc.Normalize(); changed {
		t.Fatal("second Normalize should be a no-op")
	}
}

func TestNormalizeFillsNilCollections(t *testing.T) {
	var doc Document
	doc.Normalize()

	if doc.ProductionBatches == nil || doc.StockBatches == nil || doc.Clients == nil || doc.Sales == nil {
		t.Fatal("expected all collections to be non-nil after Normalize")
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := Document{
		ProductionBatches: []ProductionBatch{{
			ID:            "pb1",
			Name:          "Bande A",
			StartDate:     "2025-01-01",
			InitialChicks: 100,
			ChickPrice:    500,
			DailyRecords: []DailyRecord{
				{Date: "2025-01-02", BatchDay: 2, Deaths: 3, FeedGrams: 40, FeedKg: 4, WeightGrams: 71, Note: "ras"},
			},
			Expenses:     []Expense{{ID: "e1", Label: "Aliment", Amount: 12000, Date: "2025-01-03"}},
			Vaccinations: VaccinationProgramme(),
			Status:       BatchActive,
		}},
		StockBatches: []StockBatch{{
			ID:         "sb1",
			Letter:     "B",
			Name:       "Bande A",
			PricePerKg: 2500,
			Chickens:   []Chicken{{ID: "c1", TagNo: "001", WeightKg: 2.1, Price: 3000, Sold: true}},
		}},
		Clients: []Client{{ID: "cl1", Name: "Jean Dupont", Address: "Ratoma", Phone: "620000000"}},
		Sales: []Sale{{
			ID: "s1", ClientID: "cl1", ClientName: "Jean Dupont",
			ChickenIDs: []string{"c1"}, Total: 3000,
			IsCredit: true, DueDate: "2025-02-01", SoldAt: "2025-01-10T10:00:00Z",
		}},
		Settings: AppSettings{AdminSecretHash: "$2a$10$abcdefghijklmnopqrstuv"},
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Document
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(doc, got) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, doc)
	}
}

func TestVaccinationProgrammeCopiesAreIndependent(t *testing.T) {
	first := VaccinationProgramme()
	second := VaccinationProgramme()

	first[0].Done = true
	first[0].Days[0] = 99
	first[0].Products[0] = "changed"

	if second[0].Done {
		t.Fatal("completion flag leaked between programme copies")
	}
	if second[0].Days[0] == 99 || second[0].Products[0] == "changed" {
		t.Fatal("slice contents leaked between programme copies")
	}
}

func TestDocumentCloneIsDeep(t *testing.T) {
	doc := Default()
	doc.ProductionBatches = append(doc.ProductionBatches, ProductionBatch{
		ID:           "pb1",
		Vaccinations: VaccinationProgramme(),
		DailyRecords: []DailyRecord{{Date: "2025-01-01", BatchDay: 1}},
	})
	doc.Sales = append(doc.Sales, Sale{ID: "s1", ChickenIDs: []string{"c1"}})

	clone := doc.Clone()
	clone.ProductionBatches[0].DailyRecords[0].Deaths = 42
	clone.ProductionBatches[0].Vaccinations[0].Done = true
	clone.Sales[0].ChickenIDs[0] = "other"

	if doc.ProductionBatches[0].DailyRecords[0].Deaths != 0 {
		t.Fatal("daily records shared between clone and original")
	}
	if doc.ProductionBatches[0].Vaccinations[0].Done {
		t.Fatal("vaccinations shared between clone and original")
	}
	if doc.Sales[0].ChickenIDs[0] != "c1" {
		t.Fatal("sale chicken ids shared between clone and original")
	}
}
