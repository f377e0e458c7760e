package domain

import "github.com/shopspring/decimal"

// Portfolio is the set of a user's holdings with totals per currency,
// valued at average purchase price.
type Portfolio struct {
	UserID   string                     `json:"userID"`
	Holdings []Holding                  `json:"holdings"`
	Totals   map[string]decimal.Decimal `json:"totals"`
}

// NewPortfolio builds a Portfolio and its per-currency totals.
func NewPortfolio(userID string, holdings []Holding) Portfolio {
	p := Portfolio{UserID: userID, Holdings: holdings, Totals: make(map[string]decimal.Decimal)}
	if p.Holdings == nil {
		p.Holdings = []Holding{}
	}
	for _, h := range holdings {
		p.Totals[h.Currency] = p.Totals[h.Currency].Add(h.Value())
	}
	return p
}
