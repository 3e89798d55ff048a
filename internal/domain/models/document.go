package models

// DefaultAdminSecret is the secret seeded into brand new documents and into
// legacy documents that predate the settings field. It is stored hashed; the
// plaintext only exists here so first-run installs have a known unlock code.
const DefaultAdminSecret = "1234"

// AppSettings carries the shared administrator secret. The legacy field name
// is kept even though the value is now always a bcrypt hash.
type AppSettings struct {
	AdminSecretHash string `json:"adminPasswordHash" bson:"adminPasswordHash"`
}

// Document is the root of the whole application state. It exclusively owns
// every collection; entities reference each other by identity only.
type Document struct {
	ProductionBatches []ProductionBatch `json:"productionBatches" bson:"productionBatches"`
	StockBatches      []StockBatch      `json:"stockBatches" bson:"stockBatches"`
	Clients           []Client          `json:"clients" bson:"clients"`
	Sales             []Sale            `json:"sales" bson:"sales"`
	Settings          AppSettings       `json:"settings" bson:"settings"`
}

// Default returns the empty document a fresh or unreadable store falls back to.
func Default() Document {
	return Document{
		ProductionBatches: []ProductionBatch{},
		StockBatches:      []StockBatch{},
		Clients:           []Client{},
		Sales:             []Sale{},
		Settings:          AppSettings{AdminSecretHash: DefaultAdminSecret},
	}
}

// Normalize fills the gaps of documents written by older versions. It returns
// true when anything was changed.
func (d *Document) Normalize() bool {
	changed := false
	if d.Settings.AdminSecretHash == "" {
		d.Settings.AdminSecretHash = DefaultAdminSecret
		changed = true
	}
	if d.ProductionBatches == nil {
		d.ProductionBatches = []ProductionBatch{}
		changed = true
	}
	if d.StockBatches == nil {
		d.StockBatches = []StockBatch{}
		changed = true
	}
	if d.Clients == nil {
		d.Clients = []Client{}
		changed = true
	}
	if d.Sales == nil {
		d.Sales = []Sale{}
		changed = true
	}
	return changed
}

// Clone returns a deep copy of the document, safe to hand to the persistence
// layer while mutations continue on the original.
func (d Document) Clone() Document {
	out := d
	out.ProductionBatches = make([]ProductionBatch, len(d.ProductionBatches))
	for i, b := range d.ProductionBatches {
		out.ProductionBatches[i] = b.Clone()
	}
	out.StockBatches = make([]StockBatch, len(d.StockBatches))
	for i, b := range d.StockBatches {
		out.StockBatches[i] = b.Clone()
	}
	out.Clients = append([]Client(nil), d.Clients...)
	out.Sales = make([]Sale, len(d.Sales))
	for i, s := range d.Sales {
		out.Sales[i] = s.Clone()
	}
	return out
}

// ProductionBatch returns a pointer into the document's batch slice, or nil.
func (d *Document) ProductionBatch(id string) *ProductionBatch {
	for i := range d.ProductionBatches {
		if d.ProductionBatches[i].ID == id {
			return &d.ProductionBatches[i]
		}
	}
	return nil
}

// StockBatch returns a pointer into the document's stock slice, or nil.
func (d *Document) StockBatch(id string) *StockBatch {
	for i := range d.StockBatches {
		if d.StockBatches[i].ID == id {
			return &d.StockBatches[i]
		}
	}
	return nil
}

// Client returns a pointer into the document's client slice, or nil.
func (d *Document) Client(id string) *Client {
	for i := range d.Clients {
		if d.Clients[i].ID == id {
			return &d.Clients[i]
		}
	}
	return nil
}

// Sale returns a pointer into the document's sale slice, or nil.
func (d *Document) Sale(id string) *Sale {
	for i := range d.Sales {
		if d.Sales[i].ID == id {
			return &d.Sales[i]
		}
	}
	return nil
}
