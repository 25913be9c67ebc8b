package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ReboundScout/internal/model"
)

func TestSelectTickers(t *testing.T) {
	universe := []model.Ticker{
		{Symbol: "AAPL", Market: model.MarketUS, Active: true},
		{Symbol: "2330.TW", Market: model.MarketTWSE, Active: true},
	}
	got := selectTickers(universe, []string{"2330.TW", "NEW"})

	assert.Len(t, got, 2)
	assert.Equal(t, model.MarketTWSE, got[0].Market)
	assert.Equal(t, "NEW", got[1].Symbol)
	assert.True(t, got[1].Active)
}
