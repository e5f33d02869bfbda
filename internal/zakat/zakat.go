// Package zakat assesses the annual Zakat due on zakatable wealth.
package zakat

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Standard selects the metal the Nisab threshold is measured in.
type Standard string

const (
	StandardGold   Standard = "gold"
	StandardSilver Standard = "silver"
)

var (
	// Rate is the share of net zakatable wealth due each lunar year.
	Rate = decimal.RequireFromString("0.025")

	GoldNisabGrams   = decimal.NewFromInt(85)
	SilverNisabGrams = decimal.NewFromInt(595)
)

// ParseStandard defaults to silver, the threshold most scholars recommend
// because it favours the poor.
func ParseStandard(s string) (Standard, error) {
	switch Standard(strings.ToLower(strings.TrimSpace(s))) {
	case "", StandardSilver:
		return StandardSilver, nil
	case StandardGold:
		return StandardGold, nil
	default:
		return "", fmt.Errorf("unknown nisab standard %q", s)
	}
}

// Assets are the holdings of one person at the end of their Zakat year.
type Assets struct {
	Cash              decimal.Decimal
	GoldGrams         decimal.Decimal
	SilverGrams       decimal.Decimal
	Investments       decimal.Decimal
	BusinessInventory decimal.Decimal
	Receivables       decimal.Decimal
	// Liabilities due within the year are deducted.
	Liabilities decimal.Decimal
}

// Prices are metal prices per gram in Currency.
type Prices struct {
	Currency      string
	GoldPerGram   decimal.Decimal
	SilverPerGram decimal.Decimal
}

type Assessment struct {
	Currency    string
	Standard    Standard
	GoldValue   decimal.Decimal
	SilverValue decimal.Decimal
	NetWealth   decimal.Decimal
	Nisab       decimal.Decimal
	AboveNisab  bool
	Due         decimal.Decimal
}

// InputError names the field that made an assessment impossible.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("zakat: %s %s", e.Field, e.Reason)
}

// Calculate values the assets, compares them to the Nisab and returns the
// amount due. Money values are rounded to two places.
func Calculate(a Assets, p Prices, standard Standard) (Assessment, error) {
	if err := a.validate(); err != nil {
		return Assessment{}, err
	}
	if !p.GoldPerGram.IsPositive() {
		return Assessment{}, &InputError{Field: "gold_per_gram", Reason: "must be positive"}
	}
	if !p.SilverPerGram.IsPositive() {
		return Assessment{}, &InputError{Field: "silver_per_gram", Reason: "must be positive"}
	}

	var nisab decimal.Decimal
	switch standard {
	case StandardGold:
		nisab = GoldNisabGrams.Mul(p.GoldPerGram)
	case StandardSilver:
		nisab = SilverNisabGrams.Mul(p.SilverPerGram)
	default:
		return Assessment{}, &InputError{Field: "standard", Reason: fmt.Sprintf("%q is not supported", standard)}
	}

	gold := a.GoldGrams.Mul(p.GoldPerGram)
	silver := a.SilverGrams.Mul(p.SilverPerGram)
	net := decimal.Sum(a.Cash, gold, silver, a.Investments, a.BusinessInventory, a.Receivables).
		Sub(a.Liabilities)

	out := Assessment{
		Currency:    p.Currency,
		Standard:    standard,
		GoldValue:   gold.Round(2),
		SilverValue: silver.Round(2),
		NetWealth:   net.Round(2),
		Nisab:       nisab.Round(2),
		Due:         decimal.Zero,
	}
	if net.GreaterThanOrEqual(nisab) {
		out.AboveNisab = true
		out.Due = net.Mul(Rate).Round(2)
	}
	return out, nil
}

func (a Assets) validate() error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"cash", a.Cash},
		{"gold_grams", a.GoldGrams},
		{"silver_grams", a.SilverGrams},
		{"investments", a.Investments},
		{"business_inventory", a.BusinessInventory},
		{"receivables", a.Receivables},
		{"liabilities", a.Liabilities},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return &InputError{Field: f.name, Reason: "must not be negative"}
		}
	}
	return nil
}
