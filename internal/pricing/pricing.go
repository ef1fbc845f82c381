// Package pricing is the single source of truth for the party-size banded
// reservation handling fee. The old front end defined this table in three
// separate places; everything here (resolver, /api/price-plans, seed data)
// reads the one table below.
package pricing

import (
	"errors"
	"fmt"
)

// MaxAutomatedPartySize is the largest party the paid flow accepts. Larger
// parties up to MaxSelectablePartySize go through the manual-request path;
// beyond that the guest must call the restaurant directly.
const (
	MaxAutomatedPartySize  = 12
	MaxSelectablePartySize = 20
)

var (
	// ErrNoPlan means the party size falls outside every band and must be
	// routed to the manual-request flow, never to payment.
	ErrNoPlan = errors.New("no price plan for party size")

	ErrInvalidPartySize = errors.New("party size must be at least 1")
)

// PricePlan is a flat handling fee bucketed by an inclusive party-size range
type PricePlan struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"` // JPY
	MinParty    int    `json:"min_party"`
	MaxParty    int    `json:"max_party"`
	Description string `json:"description"`
}

var plans = []PricePlan{
	{
		ID:          "standard",
		Name:        "Standard",
		Price:       1000,
		MinParty:    1,
		MaxParty:    4,
		Description: "Handling fee for parties of 1 to 4 guests",
	},
	{
		ID:          "group",
		Name:        "Group",
		Price:       2000,
		MinParty:    5,
		MaxParty:    8,
		Description: "Handling fee for parties of 5 to 8 guests",
	},
	{
		ID:          "large-group",
		Name:        "Large group",
		Price:       3000,
		MinParty:    9,
		MaxParty:    12,
		Description: "Handling fee for parties of 9 to 12 guests",
	},
}

// Plans returns a copy of the plan table for listing endpoints
func Plans() []PricePlan {
	out := make([]PricePlan, len(plans))
	copy(out, plans)
	return out
}

// Resolve maps a party size to its plan. Bands are disjoint and exhaustive
// over [1, MaxAutomatedPartySize]; anything above resolves to ErrNoPlan.
func Resolve(partySize int) (*PricePlan, error) {
	if partySize < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPartySize, partySize)
	}

	if partySize > MaxAutomatedPartySize {
		return nil, ErrNoPlan
	}

	for i := range plans {
		if partySize >= plans[i].MinParty && partySize <= plans[i].MaxParty {
			plan := plans[i]
			return &plan, nil
		}
	}

	// Unreachable while the table covers [1,12]; guarded by tests
	return nil, ErrNoPlan
}
