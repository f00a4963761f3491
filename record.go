package captable

import (
	"fmt"

	"github.com/google/uuid"
)

// newRecordID assigns a record identity at insert time.
func newRecordID() string { return uuid.NewString() }

// InvestorType identifies the kind of investor behind a record.
type InvestorType string

// Closed set of investor types.
const (
	Angel         InvestorType = "angel"
	VC            InvestorType = "vc"
	Corporate     InvestorType = "corporate"
	FamilyOffice  InvestorType = "family-office"
	Accelerator   InvestorType = "accelerator"
	OtherInvestor InvestorType = "other"
)

// ParseInvestorType parses a string into an InvestorType.
func ParseInvestorType(s string) (InvestorType, error) {
	switch InvestorType(s) {
	case Angel, VC, Corporate, FamilyOffice, Accelerator, OtherInvestor:
		return InvestorType(s), nil
	default:
		return "", fmt.Errorf("unknown investor type: %q", s)
	}
}

// RoundType identifies the financing instrument of a record.
type RoundType string

// Closed set of round types.
const (
	EquityRound RoundType = "equity"
	DebtRound   RoundType = "debt"
	GrantRound  RoundType = "grant"
)

// ParseRoundType parses a string into a RoundType.
func ParseRoundType(s string) (RoundType, error) {
	switch RoundType(s) {
	case EquityRound, DebtRound, GrantRound:
		return RoundType(s), nil
	default:
		return "", fmt.Errorf("unknown round type: %q", s)
	}
}

// InvestmentRecord is one financing event in a company's equity ledger.
//
// PostMoneyValuation is computed once at insert time when absent and is
// never re-derived retroactively: the stored value always wins.
type InvestmentRecord struct {
	ID           string       `json:"id"`
	Date         Date         `json:"date"`
	InvestorType InvestorType `json:"investorType"`
	RoundType    RoundType    `json:"roundType"`
	InvestorName string       `json:"investorName"`
	// InvestorCode cross-references an external investor identity; not
	// owned here.
	InvestorCode       string  `json:"investorCode,omitempty"`
	Amount             Money   `json:"amount"`
	EquityAllocated    Percent `json:"equityAllocatedPercent"`
	PostMoneyValuation Money   `json:"postMoneyValuation"`
	// ProofRef is an opaque reference into the file-storage collaborator.
	ProofRef string `json:"proofRef,omitempty"`
}

// maxRecordAgeYears bounds how far in the past a record date may lie.
const maxRecordAgeYears = 50

// Validate checks a draft record before any write. The identity and the
// derived post-money valuation are not required: they are assigned by
// the store at insert time.
func (r InvestmentRecord) Validate(today Date) error {
	if r.Date.IsZero() {
		return invalidf("date", "date is required")
	}
	if r.Date.After(today) {
		return invalidf("date", "date %s is in the future", r.Date)
	}
	if r.Date.Before(today.AddYears(-maxRecordAgeYears)) {
		return invalidf("date", "date %s is more than %d years in the past", r.Date, maxRecordAgeYears)
	}
	if _, err := ParseInvestorType(string(r.InvestorType)); err != nil {
		return invalidf("investorType", "%v", err)
	}
	if _, err := ParseRoundType(string(r.RoundType)); err != nil {
		return invalidf("roundType", "%v", err)
	}
	if r.InvestorName == "" {
		return invalidf("investorName", "investor name is required")
	}
	if !r.Amount.IsPositive() {
		return invalidf("amount", "amount must be positive, got %s", r.Amount)
	}
	if r.EquityAllocated < 0 || r.EquityAllocated > 100 {
		return invalidf("equityAllocatedPercent", "equity must be within [0,100], got %s", r.EquityAllocated)
	}
	if r.PostMoneyValuation.IsNegative() {
		return invalidf("postMoneyValuation", "valuation must be positive, got %s", r.PostMoneyValuation)
	}
	if r.PostMoneyValuation.IsZero() && !DerivePostMoney(r.Amount, r.EquityAllocated).IsPositive() {
		return invalidf("postMoneyValuation", "valuation is neither supplied nor derivable from amount and equity")
	}
	return nil
}

// Founder of a company. Founder equity is always derived as the residual
// of the ledger, never stored.
type Founder struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ShareConfiguration holds the company's share structure. There is one
// per company; PricePerShare is recomputed from the current ledger state
// on every read, never cached.
type ShareConfiguration struct {
	TotalShares int64 `json:"totalShares"`
}

// Validate rejects a negative share count. It deliberately does not
// check against the reserved ESOP shares: shrinking totalShares below
// the reserve is accepted at this layer, the guard sits on the
// reserved-shares edit.
func (c ShareConfiguration) Validate() error {
	if c.TotalShares < 0 {
		return invalidf("totalShares", "total shares must not be negative, got %d", c.TotalShares)
	}
	return nil
}

// EsopPool holds the shares reserved for future employee grants. One per
// company; derived values are recomputed on every read.
type EsopPool struct {
	ReservedShares int64 `json:"reservedShares"`
}

// Validate checks the reserve against the current total share count.
func (p EsopPool) Validate(totalShares int64) error {
	if p.ReservedShares < 0 {
		return invalidf("reservedShares", "reserved shares must not be negative, got %d", p.ReservedShares)
	}
	if p.ReservedShares > totalShares {
		return invalidf("reservedShares", "reserved shares %d exceed total shares %d", p.ReservedShares, totalShares)
	}
	return nil
}

// FundraisingRound is the company's solicitation of investment at a
// target value and equity. At most one round per company; the last write
// replaces it. Active and ValidationRequested are orthogonal flags, not
// states: a round can toggle back to inactive.
type FundraisingRound struct {
	Active              bool      `json:"active"`
	Type                RoundType `json:"type"`
	TargetValue         Money     `json:"targetValue"`
	TargetEquity        Percent   `json:"targetEquityPercent"`
	ValidationRequested bool      `json:"validationRequested"`
}

// Validate checks a round draft.
func (f FundraisingRound) Validate() error {
	if _, err := ParseRoundType(string(f.Type)); err != nil {
		return invalidf("type", "%v", err)
	}
	if !f.TargetValue.IsPositive() {
		return invalidf("value", "target value must be positive, got %s", f.TargetValue)
	}
	if f.TargetEquity <= 0 || f.TargetEquity > 100 {
		return invalidf("equityPercent", "target equity must be within (0,100], got %s", f.TargetEquity)
	}
	return nil
}

// Company is the registry row every ledger entity hangs off: the
// incrementally maintained total-funding aggregate and the last known
// static valuation used as fallback when the ledger is empty.
type Company struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	TotalFunding    Money  `json:"totalFunding"`
	StaticValuation Money  `json:"staticValuation"`
}
