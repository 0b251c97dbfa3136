package usecase

import (
	"fmt"

	"FXPulse/internal/domain/models"
	drepo "FXPulse/internal/domain/repository"
)

// Converter converts amounts between supported currencies using the
// most recent stored rates, triangulating through the base currency.
// Triangulation through one base assumes every non-base rate is quoted
// against that same base.
type Converter struct {
	store drepo.QuoteStore
}

func NewConverter(store drepo.QuoteStore) *Converter {
	return &Converter{store: store}
}

// Convert applies, in order: identity, from-base, to-base, then
// triangulation. Every referenced currency must have a stored rate or
// the conversion fails with ErrMissingRate.
func (c *Converter) Convert(amount float64, from, to models.Currency) (models.ConvertResult, error) {
	res := models.ConvertResult{Amount: amount, From: from, To: to}

	if from == to {
		res.Converted = amount
		res.Rate = 1
		return res, nil
	}

	if from.IsBase() {
		toRate, err := c.latestRate(to)
		if err != nil {
			return models.ConvertResult{}, err
		}
		res.Converted = amount / toRate
		res.Rate = 1 / toRate
		return res, nil
	}

	if to.IsBase() {
		fromRate, err := c.latestRate(from)
		if err != nil {
			return models.ConvertResult{}, err
		}
		res.Converted = amount * fromRate
		res.Rate = fromRate
		return res, nil
	}

	fromRate, err := c.latestRate(from)
	if err != nil {
		return models.ConvertResult{}, err
	}
	toRate, err := c.latestRate(to)
	if err != nil {
		return models.ConvertResult{}, err
	}
	res.Converted = amount * fromRate / toRate
	res.Rate = fromRate / toRate
	return res, nil
}

func (c *Converter) latestRate(currency models.Currency) (float64, error) {
	q, err := c.store.Latest(currency)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", models.ErrMissingRate, currency)
	}
	return q.Rate, nil
}
