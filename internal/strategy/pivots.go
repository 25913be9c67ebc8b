package strategy

import "ReboundScout/internal/model"

// DefaultDepth is the half-width of the window a pivot must dominate.
const DefaultDepth = 3

// FindPivots returns the alternating sequence of local highs and lows in bars.
// Bar i is a HIGH candidate when no bar within depth on either side has a strictly
// greater high, and a LOW candidate when none has a strictly lower low. A flat bar can
// be both; HIGH is emitted first.
func FindPivots(bars []model.OHLCV, depth int) []model.Pivot {
	if depth < 0 || depth >= len(bars) {
		return nil
	}

	var raw []model.Pivot
	for i := depth; i < len(bars)-depth; i++ {
		isHigh, isLow := true, true
		for k := 1; k <= depth; k++ {
			if bars[i-k].High > bars[i].High || bars[i+k].High > bars[i].High {
				isHigh = false
			}
			if bars[i-k].Low < bars[i].Low || bars[i+k].Low < bars[i].Low {
				isLow = false
			}
			if !isHigh && !isLow {
				break
			}
		}

		if isHigh {
			raw = append(raw, model.Pivot{Index: i, Price: bars[i].High, Type: model.PivotHigh, Time: bars[i].Time})
		}
		if isLow {
			raw = append(raw, model.Pivot{Index: i, Price: bars[i].Low, Type: model.PivotLow, Time: bars[i].Time})
		}
	}

	return ensureAlternation(raw)
}

// ensureAlternation folds runs of same-type pivots into their most extreme member.
func ensureAlternation(raw []model.Pivot) []model.Pivot {
	if len(raw) == 0 {
		return nil
	}

	clean := make([]model.Pivot, 0, len(raw))
	pending := raw[0]
	for _, p := range raw[1:] {
		if p.Type != pending.Type {
			clean = append(clean, pending)
			pending = p
			continue
		}
		if moreExtreme(p, pending) {
			pending = p
		}
	}
	return append(clean, pending)
}

// moreExtreme reports whether a beats b within a same-type run. Ties keep b.
func moreExtreme(a, b model.Pivot) bool {
	if a.Type == model.PivotHigh {
		return a.Price > b.Price
	}
	return a.Price < b.Price
}
