package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// MarketType identifies the venue a ticker trades on.
type MarketType string

const (
	MarketUS     MarketType = "US"
	MarketTWSE   MarketType = "TW_SE"  // Taiwan Stock Exchange (listed)
	MarketTWOTC  MarketType = "TW_OTC" // Taipei Exchange (OTC)
	MarketCrypto MarketType = "CRYPTO"
)

// Ticker is one member of the screening universe.
type Ticker struct {
	Symbol    string     `json:"symbol" yaml:"symbol"`
	Name      string     `json:"name" yaml:"name"`
	Market    MarketType `json:"market" yaml:"market"`
	Sector    string     `json:"sector,omitempty" yaml:"sector,omitempty"`
	Active    bool       `json:"is_active" yaml:"-"`
	UpdatedAt time.Time  `json:"last_updated_at" yaml:"-"`
}
