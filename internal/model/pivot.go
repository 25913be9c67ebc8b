package model

import "time"

// PivotType tags a pivot as a local high or a local low.
type PivotType string

const (
	PivotHigh PivotType = "HIGH"
	PivotLow  PivotType = "LOW"
)

// Pivot is a local turning point taken from one bar of a series.
type Pivot struct {
	Index int       `json:"index"`
	Price float64   `json:"price"`
	Type  PivotType `json:"type"`
	Time  time.Time `json:"timestamp"`
}
