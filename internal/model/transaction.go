package model

import "github.com/hospitalms/admin-console/internal/resource"

// Transaction is a billing ledger row, backed by the in-memory adapter.
type Transaction struct {
	ID     string  `json:"id"`
	User   string  `json:"user" validate:"required"`
	Type   string  `json:"type" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Date   string  `json:"date" validate:"required"`
}

func (t Transaction) RecordID() string { return t.ID }

// TransactionSchema configures the engine for the transactions screen.
func TransactionSchema() resource.Schema[Transaction] {
	return resource.Schema[Transaction]{
		Name:       "transaction",
		Collection: "transactions",
		KeyField:   "id",
		Searchable: []string{"user", "type"},
		Empty:      func() Transaction { return Transaction{} },
		Fields: []resource.Field[Transaction]{
			strField("id", false,
				func(t Transaction) string { return t.ID },
				func(t *Transaction, v string) { t.ID = v }),
			strField("user", true,
				func(t Transaction) string { return t.User },
				func(t *Transaction, v string) { t.User = v }),
			strField("type", true,
				func(t Transaction) string { return t.Type },
				func(t *Transaction, v string) { t.Type = v }),
			floatField("amount", true,
				func(t Transaction) float64 { return t.Amount },
				func(t *Transaction, v float64) { t.Amount = v }),
			strField("date", true,
				func(t Transaction) string { return t.Date },
				func(t *Transaction, v string) { t.Date = v }),
		},
	}
}

// SeedTransactions returns the sample ledger the screen starts with.
func SeedTransactions() []Transaction {
	return []Transaction{
		{ID: "1", User: "John Doe", Type: "Deposit", Amount: 200, Date: "2024-03-20"},
		{ID: "2", User: "Alice Smith", Type: "Withdrawal", Amount: 150, Date: "2024-03-21"},
		{ID: "3", User: "Bob Johnson", Type: "Deposit", Amount: 300, Date: "2024-03-22"},
	}
}
