package calculator

import (
	"errors"

	"ReboundScout/internal/model"
)

// ChangePercent returns the percentage move of the last close against the close before it.
func ChangePercent(bars []model.OHLCV) (float64, error) {
	if len(bars) < 2 {
		return 0, errors.New("need at least two bars for change percent")
	}
	prev := bars[len(bars)-2].Close
	if prev == 0 {
		return 0, errors.New("previous close is zero")
	}
	return (bars[len(bars)-1].Close - prev) / prev * 100, nil
}

// LastBar returns the most recent bar of a series.
func LastBar(bars []model.OHLCV) (model.OHLCV, error) {
	if len(bars) == 0 {
		return model.OHLCV{}, errors.New("no bars provided")
	}
	return bars[len(bars)-1], nil
}
