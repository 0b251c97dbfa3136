package models

import "time"

// Requests for the rates HTTP endpoints. Defined in domain for consistency and reuse.

type HistoryRequest struct {
	Code    string `query:"code" json:"code" validate:"required"`
	Days    int    `query:"days" json:"days" default:"30" validate:"gte=1,lte=365"`
	Refresh bool   `query:"refresh" json:"refresh"`
}

type ForecastRequest struct {
	Code    string `query:"code" json:"code" validate:"required"`
	Days    int    `query:"days" json:"days" default:"30" validate:"gte=1,lte=365"`
	Horizon int    `query:"horizon" json:"horizon" default:"7" validate:"gte=1,lte=90"`
	Refresh bool   `query:"refresh" json:"refresh"`
}

type ConvertRequest struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from" validate:"required"`
	To     string  `json:"to" validate:"required"`
}

type MarginRequest struct {
	UnitCost  float64 `json:"unit_cost" validate:"required,gt=0"`
	SellPrice float64 `json:"sell_price"`
	Markup    float64 `json:"markup" default:"1.3" validate:"gt=0"`
	// Code selects the rate currency when Rate is not supplied.
	Code string `json:"code" default:"USD"`
	// Rate overrides the stored latest rate when positive.
	Rate float64 `json:"rate"`
}

type RefreshRequest struct {
	Force bool `query:"force" json:"force" default:"true"`
}

// Responses.

type RateSnapshot struct {
	Currency  Currency  `json:"currency"`
	Name      string    `json:"name"`
	Rate      float64   `json:"rate"`
	Date      time.Time `json:"date"`
	ChangePct float64   `json:"change_pct"`
}

type HistoryResponse struct {
	Currency Currency    `json:"currency"`
	Base     Currency    `json:"base"`
	Quotes   QuoteSeries `json:"quotes"`
}

type ForecastResponse struct {
	Currency Currency        `json:"currency"`
	Base     Currency        `json:"base"`
	Horizon  int             `json:"horizon"`
	Points   []ForecastPoint `json:"points"`
}

type ConvertResult struct {
	Amount    float64  `json:"amount"`
	From      Currency `json:"from"`
	To        Currency `json:"to"`
	Converted float64  `json:"converted"`
	// Rate is the applied cross rate: converted units of To per unit of From.
	Rate float64 `json:"rate"`
}

type MarginResult struct {
	Currency   Currency `json:"currency"`
	Rate       float64  `json:"rate"`
	LandedCost float64  `json:"landed_cost"`
	MarginPct  float64  `json:"margin_pct"`
}

type RefreshResult struct {
	Refreshed []Currency `json:"refreshed"`
	Failed    []Currency `json:"failed,omitempty"`
}
