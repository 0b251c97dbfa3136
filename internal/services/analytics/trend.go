package analytics

import (
	"fmt"
	"time"

	"FXPulse/internal/domain/models"
	"FXPulse/pkg/util"
)

// TrendForecaster extrapolates a quote series with an ordinary
// least-squares line fitted over day offsets from the series' first
// date. Dates are mapped to a contiguous integer domain before fitting
// so absolute timestamps never enter the regression.
type TrendForecaster struct{}

func NewTrendForecaster() *TrendForecaster {
	return &TrendForecaster{}
}

// Forecast re-emits the observed points unchanged and appends one
// forecast point per consecutive calendar day after the last observed
// date. A single-sample series extrapolates flat: its slope is
// undefined, not zero, so the guard is explicit.
func (f *TrendForecaster) Forecast(series models.QuoteSeries, horizonDays int) ([]models.ForecastPoint, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("%w: horizon must be positive, got %d", models.ErrInvalidInput, horizonDays)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: empty series", models.ErrInvalidInput)
	}

	minDate := series.MinDate()
	slope, intercept := fitLine(series, minDate)

	points := make([]models.ForecastPoint, 0, len(series)+horizonDays)
	for _, q := range series {
		points = append(points, models.ForecastPoint{
			Date:   q.Date,
			Rate:   q.Rate,
			Origin: models.OriginObserved,
		})
	}

	lastDate := series.MaxDate()
	for i := 1; i <= horizonDays; i++ {
		date := lastDate.AddDate(0, 0, i)
		offset := float64(util.DayOffset(minDate, date))
		points = append(points, models.ForecastPoint{
			Date:   date,
			Rate:   intercept + slope*offset,
			Origin: models.OriginForecast,
		})
	}

	return points, nil
}

// fitLine computes the least-squares slope and intercept of rate over
// day offset. A degenerate x-domain (one sample) yields a flat line
// through the mean.
func fitLine(series models.QuoteSeries, minDate time.Time) (slope, intercept float64) {
	n := float64(len(series))

	var sumX, sumY float64
	for _, q := range series {
		sumX += float64(util.DayOffset(minDate, q.Date))
		sumY += q.Rate
	}
	meanX := sumX / n
	meanY := sumY / n

	var num, den float64
	for _, q := range series {
		dx := float64(util.DayOffset(minDate, q.Date)) - meanX
		num += dx * (q.Rate - meanY)
		den += dx * dx
	}

	if den == 0 {
		return 0, meanY
	}
	slope = num / den
	intercept = meanY - slope*meanX
	return slope, intercept
}
