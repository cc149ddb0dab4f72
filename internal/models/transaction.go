package models

// Transaction types
const (
	TypeCredit = "credit"
	TypeDebit  = "debit"
)

// Transaction represents a single financial transaction
type Transaction struct {
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Type     string  `json:"type"`
	Category string  `json:"category"`
}

// Profile represents the user's financial profile
type Profile struct {
	Name        string  `json:"name,omitempty"`
	Email       string  `json:"email,omitempty"`
	Goal        string  `json:"goal,omitempty"`
	SavingsGoal float64 `json:"savings_goal,omitempty"`
	Currency    string  `json:"currency,omitempty"`
}

// CurrencyOrDefault returns the profile currency, USD when unset
func (p Profile) CurrencyOrDefault() string {
	if p.Currency == "" {
		return "USD"
	}
	return p.Currency
}
