package usecase

import (
	"errors"
	"math"
	"testing"
	"time"

	"FXPulse/internal/domain/models"
	"FXPulse/internal/repository"
)

func storeWithRates(t *testing.T, rates map[models.Currency]float64) *repository.MemoryQuoteStore {
	t.Helper()
	date, err := time.Parse("2006-01-02", "2025-08-22")
	if err != nil {
		t.Fatalf("bad date: %v", err)
	}
	store := repository.NewMemoryQuoteStore()
	for currency, rate := range rates {
		store.Put(currency, models.QuoteSeries{{Date: date, Rate: rate}})
	}
	return store
}

func TestConvertIdentity(t *testing.T) {
	c := NewConverter(repository.NewMemoryQuoteStore())

	// Identity needs no stored rate and accepts any amount.
	for _, amount := range []float64{100, 0, -42.5} {
		res, err := c.Convert(amount, models.USD, models.USD)
		if err != nil {
			t.Fatalf("identity convert: %v", err)
		}
		if res.Converted != amount {
			t.Fatalf("expected %v, got %v", amount, res.Converted)
		}
		if res.Rate != 1 {
			t.Fatalf("expected rate 1, got %v", res.Rate)
		}
	}
}

func TestConvertFromBase(t *testing.T) {
	c := NewConverter(storeWithRates(t, map[models.Currency]float64{models.USD: 1300}))

	res, err := c.Convert(13000, models.KRW, models.USD)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if math.Abs(res.Converted-10) > 1e-9 {
		t.Fatalf("expected 10 USD, got %v", res.Converted)
	}
}

func TestConvertToBase(t *testing.T) {
	c := NewConverter(storeWithRates(t, map[models.Currency]float64{models.USD: 1300}))

	res, err := c.Convert(10, models.USD, models.KRW)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if math.Abs(res.Converted-13000) > 1e-9 {
		t.Fatalf("expected 13000 KRW, got %v", res.Converted)
	}
	if res.Rate != 1300 {
		t.Fatalf("expected rate 1300, got %v", res.Rate)
	}
}

func TestConvertTriangulation(t *testing.T) {
	c := NewConverter(storeWithRates(t, map[models.Currency]float64{
		models.USD: 1300,
		models.EUR: 1450,
	}))

	res, err := c.Convert(145, models.USD, models.EUR)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if math.Abs(res.Converted-130) > 1e-9 {
		t.Fatalf("expected 130 EUR, got %v", res.Converted)
	}

	// Round trip through the base recovers the original amount.
	back, err := c.Convert(res.Converted, models.EUR, models.USD)
	if err != nil {
		t.Fatalf("convert back: %v", err)
	}
	if math.Abs(back.Converted-145) > 1e-9 {
		t.Fatalf("round trip drifted: got %v", back.Converted)
	}
}

func TestConvertMissingRate(t *testing.T) {
	c := NewConverter(storeWithRates(t, map[models.Currency]float64{models.USD: 1300}))

	if _, err := c.Convert(100, models.USD, models.EUR); !errors.Is(err, models.ErrMissingRate) {
		t.Fatalf("expected ErrMissingRate, got %v", err)
	}
	if _, err := c.Convert(100, models.EUR, models.KRW); !errors.Is(err, models.ErrMissingRate) {
		t.Fatalf("expected ErrMissingRate, got %v", err)
	}
}
