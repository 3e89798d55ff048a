package models

// StockBatch is a sellable pool of individually tracked chickens, either
// derived from a closed production batch or imported directly.
type StockBatch struct {
	ID                string    `json:"id" bson:"id"`
	ProductionBatchID string    `json:"productionBatchId,omitempty" bson:"productionBatchId,omitempty"`
	Letter            string    `json:"lettre" bson:"lettre"`
	Name              string    `json:"nom" bson:"nom"`
	PricePerKg        float64   `json:"prixKg" bson:"prixKg"`
	InitialCost       float64   `json:"coutInitial" bson:"coutInitial"` // used only when no production batch backs it
	Chickens          []Chicken `json:"poulets" bson:"poulets"`
	IsFinalized       bool      `json:"isFinalized" bson:"isFinalized"`
}

// Chicken is one sellable unit. Sold flips exactly once, as part of a sale.
type Chicken struct {
	ID       string  `json:"id" bson:"id"`
	TagNo    string  `json:"numero" bson:"numero"`
	WeightKg float64 `json:"poids" bson:"poids"`
	Price    float64 `json:"prix" bson:"prix"`
	Sold     bool    `json:"vendu" bson:"vendu"`
}

// Clone returns a deep copy of the stock batch.
func (s StockBatch) Clone() StockBatch {
	out := s
	out.Chickens = append([]Chicken(nil), s.Chickens...)
	return out
}
