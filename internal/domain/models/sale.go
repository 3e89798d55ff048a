package models

// Client is a buyer known to the farm.
type Client struct {
	ID      string `json:"id" bson:"id"`
	Name    string `json:"nom" bson:"nom"`
	Address string `json:"adresse" bson:"adresse"`
	Phone   string `json:"tel" bson:"tel"`
}

// Sale records a completed transaction. ClientName and Total are snapshots
// taken at sale time; later client edits never propagate back into a sale.
type Sale struct {
	ID         string   `json:"id" bson:"id"`
	ClientID   string   `json:"clientId" bson:"clientId"`
	ClientName string   `json:"clientNom" bson:"clientNom"`
	ChickenIDs []string `json:"pouletIds" bson:"pouletIds"`
	Total      float64  `json:"total" bson:"total"`
	IsCredit   bool     `json:"isCredit" bson:"isCredit"`
	DueDate    string   `json:"dueDate,omitempty" bson:"dueDate,omitempty"` // set iff credit
	IsPaid     bool     `json:"isPaid" bson:"isPaid"`
	SoldAt     string   `json:"dateVente" bson:"dateVente"` // RFC3339
}

// Clone returns a deep copy of the sale.
func (s Sale) Clone() Sale {
	out := s
	out.ChickenIDs = append([]string(nil), s.ChickenIDs...)
	return out
}
