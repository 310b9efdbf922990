package domain

// Payer identifies who is paying. Identity is by ID; Name is display only.
type Payer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PayerStore persists the payer roster across restarts.
type PayerStore interface {
	SavePayers(payers []Payer) error
	LoadPayers() ([]Payer, error)
}
