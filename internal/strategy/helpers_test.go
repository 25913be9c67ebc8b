package strategy

import (
	"time"

	"ReboundScout/internal/model"
)

var seriesStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// zigzag builds a wickless daily series that walks linearly between anchors, steps bars
// per leg. Every interior anchor becomes a pivot at depth 3 when steps >= 3.
func zigzag(steps int, anchors ...float64) []model.OHLCV {
	prices := []float64{anchors[0]}
	for i := 1; i < len(anchors); i++ {
		start, end := anchors[i-1], anchors[i]
		for j := 1; j <= steps; j++ {
			prices = append(prices, start+(end-start)*float64(j)/float64(steps))
		}
	}
	return flatBars(prices...)
}

func flatBars(prices ...float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(prices))
	for i, p := range prices {
		bars[i] = model.OHLCV{
			Time:   seriesStart.AddDate(0, 0, i),
			Open:   p,
			High:   p,
			Low:    p,
			Close:  p,
			Volume: 1000,
		}
	}
	return bars
}

func withClose(bars []model.OHLCV, c float64) []model.OHLCV {
	out := append([]model.OHLCV(nil), bars...)
	out[len(out)-1].Close = c
	return out
}

func pivotPrices(pivots []model.Pivot) []float64 {
	out := make([]float64, len(pivots))
	for i, p := range pivots {
		out[i] = p.Price
	}
	return out
}
