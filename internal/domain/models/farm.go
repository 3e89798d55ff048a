package models

// BatchStatus is the lifecycle state of a production batch.
type BatchStatus string

const (
	BatchActive BatchStatus = "active"
	BatchClosed BatchStatus = "cloturee"
)

// ProductionBatch is a cohort of chicks raised together from a common start date.
// Field tags keep the wire shape of the legacy application document, so stored
// blobs and the SPA keep working unchanged.
type ProductionBatch struct {
	ID            string        `json:"id" bson:"id"`
	Name          string        `json:"nom" bson:"nom"`
	StartDate     string        `json:"dateMisePlace" bson:"dateMisePlace"` // ISO date, YYYY-MM-DD
	InitialChicks int           `json:"nbPoussinsInitial" bson:"nbPoussinsInitial"`
	ChickPrice    float64       `json:"prixAchatPoussin" bson:"prixAchatPoussin"`
	DailyRecords  []DailyRecord `json:"suiviQuotidien" bson:"suiviQuotidien"`
	Expenses      []Expense     `json:"depenses" bson:"depenses"`
	Vaccinations  []Vaccination `json:"vaccinations" bson:"vaccinations"`
	Status        BatchStatus   `json:"statut" bson:"statut"`
}

// Closed reports whether the batch reached its terminal state.
func (b *ProductionBatch) Closed() bool { return b.Status == BatchClosed }

// DailyRecord is one observation entry of a production batch. BatchDay is
// derived from the record date and the batch start date, never set directly.
type DailyRecord struct {
	Date        string  `json:"date" bson:"date"`
	BatchDay    int     `json:"jourDeBande" bson:"jourDeBande"`
	Deaths      int     `json:"mort" bson:"mort"`
	FeedGrams   float64 `json:"conso" bson:"conso"`
	FeedKg      float64 `json:"quantite" bson:"quantite"`
	WeightGrams float64 `json:"poidsReel" bson:"poidsReel"`
	Note        string  `json:"note,omitempty" bson:"note,omitempty"`
}

// Expense is a pure value record of money spent on a batch.
type Expense struct {
	ID     string  `json:"id" bson:"id"`
	Label  string  `json:"libelle" bson:"libelle"`
	Amount float64 `json:"montant" bson:"montant"`
	Date   string  `json:"date" bson:"date"`
}

// Vaccination is one step of the treatment programme. Every batch owns an
// independent copy so completion flags never leak between batches.
type Vaccination struct {
	Days          []int    `json:"jours" bson:"jours"`
	Treatment     string   `json:"traitement" bson:"traitement"`
	Products      []string `json:"produits" bson:"produits"`
	Done          bool     `json:"effectuee" bson:"effectuee"`
	EffectiveDate string   `json:"dateEffective,omitempty" bson:"dateEffective,omitempty"`
}

// Clone returns a deep copy of the vaccination entry.
func (v Vaccination) Clone() Vaccination {
	out := v
	out.Days = append([]int(nil), v.Days...)
	out.Products = append([]string(nil), v.Products...)
	return out
}

// Clone returns a deep copy of the production batch.
func (b ProductionBatch) Clone() ProductionBatch {
	out := b
	out.DailyRecords = append([]DailyRecord(nil), b.DailyRecords...)
	out.Expenses = append([]Expense(nil), b.Expenses...)
	out.Vaccinations = make([]Vaccination, len(b.Vaccinations))
	for i, v := range b.Vaccinations {
		out.Vaccinations[i] = v.Clone()
	}
	return out
}
