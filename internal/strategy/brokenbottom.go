package strategy

import (
	"fmt"
	"math"

	"ReboundScout/internal/model"
)

const (
	// MinBars is the shortest series Analyze will look at.
	MinBars = 20
	// MinPivots is the fewest pivots that can hold a P0..P4 structure.
	MinPivots = 5
	// RetestTolerance is the band around support, as a fraction of it, that counts as a retest.
	RetestTolerance = 0.02
)

// expectedTypes is the H-L-H-L-H shape of P0..P4.
var expectedTypes = [...]model.PivotType{
	model.PivotHigh, model.PivotLow, model.PivotHigh, model.PivotLow, model.PivotHigh,
}

// Analyze checks whether bars currently form a 2B broken-bottom setup:
// P0(H) -> P1(L, support) -> P2(H) -> P3(L, below P1) -> P4(H, above P1), with price
// now back near P1. When the last pivot is a low it is taken as P5 and must also sit on
// support. Rejections are returned as reasons on an unmatched result, never as errors.
func Analyze(symbol string, bars []model.OHLCV) model.ScreenResult {
	result := model.ScreenResult{Symbol: symbol, Reasons: []string{}}
	reject := func(format string, args ...any) model.ScreenResult {
		result.Reasons = append(result.Reasons, fmt.Sprintf(format, args...))
		return result
	}

	if len(bars) < MinBars {
		return reject("Not enough data (have %d bars, need %d)", len(bars), MinBars)
	}

	roles, reason := assignRoles(FindPivots(bars, DefaultDepth))
	if reason != "" {
		return reject("%s", reason)
	}

	p1, p3, p4 := roles[1], roles[3], roles[4]
	support := p1.Price
	tolerance := support * RetestTolerance
	current := bars[len(bars)-1].Close

	if p3.Price >= support {
		return reject("No fake breakout: P3(%g) >= P1(%g)", p3.Price, support)
	}
	if p4.Price <= support {
		return reject("Weak rebound: P4(%g) did not reclaim P1(%g)", p4.Price, support)
	}
	if current >= p4.Price {
		return reject("Price too high (chasing): current(%g) >= P4(%g)", current, p4.Price)
	}
	if math.Abs(current-support) > tolerance {
		if current < support {
			return reject("Price failed support again: current(%g) below P1(%g)", current, support)
		}
		return reject("Price not close enough to support: current(%g) above P1(%g)", current, support)
	}
	if len(roles) == 6 {
		p5 := roles[5]
		if math.Abs(p5.Price-support) > tolerance {
			return reject("P5 low not touching support: P5(%g) vs P1(%g)", p5.Price, support)
		}
	}

	result.Matched = true
	result.Debug = &model.DebugInfo{
		Pivots:       append([]model.Pivot(nil), roles...),
		CurrentPrice: current,
		Support:      support,
		FakeBreakout: p3.Price,
		Rebound:      p4.Price,
	}
	return result
}

// SupportOverlayFor returns the support line of a matched result, drawn from the P1
// pivot to the last bar.
func SupportOverlayFor(result model.ScreenResult, bars []model.OHLCV) (model.SupportOverlay, bool) {
	if !result.Matched || result.Debug == nil || len(result.Debug.Pivots) < 2 || len(bars) == 0 {
		return model.SupportOverlay{}, false
	}
	return model.SupportOverlay{
		Price: result.Debug.Support,
		From:  result.Debug.Pivots[1].Time,
		To:    bars[len(bars)-1].Time,
	}, true
}

// assignRoles maps the trailing pivots onto P0..P4, or P0..P5 when the last pivot is a
// low, and checks their H-L-H-L-H shape. A non-empty reason means the structure is unusable.
func assignRoles(pivots []model.Pivot) ([]model.Pivot, string) {
	if len(pivots) < MinPivots {
		return nil, fmt.Sprintf("Not enough pivots identified (%d)", len(pivots))
	}

	// Count back from the last pivot: a trailing HIGH is P4, a trailing LOW is P5.
	var roles []model.Pivot
	if pivots[len(pivots)-1].Type == model.PivotHigh {
		roles = pivots[len(pivots)-5:]
	} else {
		if len(pivots) < 6 {
			return nil, fmt.Sprintf("Not enough pivots for P5-ending pattern (%d)", len(pivots))
		}
		roles = pivots[len(pivots)-6:]
	}

	for i, want := range expectedTypes {
		if roles[i].Type != want {
			return nil, fmt.Sprintf("Pivot types mismatch (expect H-L-H-L-H): P%d is %s", i, roles[i].Type)
		}
	}
	return roles, ""
}
