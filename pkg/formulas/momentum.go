// Package formulas provides technical indicator helpers shared by the
// history and trending views.
package formulas

import (
	"github.com/markcheno/go-talib"
)

// PriceMomentum returns the percent distance of the latest close from its
// simple moving average over the given period, or nil when there is not
// enough data.
//
// A positive value means the price trades above its recent average.
func PriceMomentum(closes []float64, period int) *float64 {
	if len(closes) < period || period <= 0 {
		return nil
	}

	sma := talib.Sma(closes, period)
	if len(sma) == 0 {
		return nil
	}

	avg := sma[len(sma)-1]
	if isNaN(avg) || avg == 0 {
		return nil
	}

	latest := closes[len(closes)-1]
	result := (latest - avg) / avg * 100
	return &result
}

// PriceChange returns the percent change between the last two closes, or
// nil with fewer than two data points.
func PriceChange(closes []float64) *float64 {
	if len(closes) < 2 {
		return nil
	}
	previous := closes[len(closes)-2]
	if previous == 0 {
		return nil
	}
	latest := closes[len(closes)-1]
	result := (latest - previous) / previous * 100
	return &result
}

// isNaN checks if a float64 is NaN
func isNaN(f float64) bool {
	return f != f
}
