package model

import "github.com/shopspring/decimal"

type InheritanceRequest struct {
	TenantID string      `json:"tenant_id"`
	Heirs    []HeirInput `json:"heirs"`
}

type HeirInput struct {
	ID       string `json:"id"`
	Relation string `json:"relation"`
	Count    int    `json:"count"`
}

type ZakatRequest struct {
	TenantID string `json:"tenant_id"`
	Currency string `json:"currency"`
	// Standard is "gold" or "silver"; empty means silver.
	Standard string      `json:"standard"`
	Assets   ZakatAssets `json:"assets"`
	// Prices overrides the price feed when set.
	Prices *ZakatPrices `json:"prices,omitempty"`
}

type ZakatAssets struct {
	Cash              decimal.Decimal `json:"cash"`
	GoldGrams         decimal.Decimal `json:"gold_grams"`
	SilverGrams       decimal.Decimal `json:"silver_grams"`
	Investments       decimal.Decimal `json:"investments"`
	BusinessInventory decimal.Decimal `json:"business_inventory"`
	Receivables       decimal.Decimal `json:"receivables"`
	Liabilities       decimal.Decimal `json:"liabilities"`
}

type ZakatPrices struct {
	GoldPerGram   decimal.Decimal `json:"gold_per_gram"`
	SilverPerGram decimal.Decimal `json:"silver_per_gram"`
}
