package models

import (
	"strings"
	"time"

	"reactive-dashboard/src/helpers"
)

// Sentiment is the market mood attached to a dashboard record.
type Sentiment string

const (
	Bullish Sentiment = "Bullish"
	Bearish Sentiment = "Bearish"
	Neutral Sentiment = "Neutral"
)

// Sentiments lists every valid sentiment, in generator order.
var Sentiments = []Sentiment{Bullish, Bearish, Neutral}

func (s Sentiment) IsValid() bool {
	switch s {
	case Bullish, Bearish, Neutral:
		return true
	}
	return false
}

// -----------------------------------------------------------------------------

// MStockInfo is one combined dashboard record.
type MStockInfo struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Sentiment Sentiment `json:"sentiment"`
	Time      time.Time `json:"time"`
}

// NewStockInfo validates and completes a dashboard record.
// An empty sentiment becomes Neutral and a zero time becomes now.
func NewStockInfo(symbol string, price float64, sentiment Sentiment, ts time.Time) (MStockInfo, error) {
	if strings.TrimSpace(symbol) == "" {
		return MStockInfo{}, helpers.NewValidationError("Symbol cannot be blank")
	}
	if price < 0 {
		return MStockInfo{}, helpers.NewValidationError("Price cannot be negative")
	}
	if sentiment == "" {
		sentiment = Neutral
	}
	if !sentiment.IsValid() {
		return MStockInfo{}, helpers.NewValidationError("Unknown sentiment: " + string(sentiment))
	}
	if ts.IsZero() {
		ts = time.Now()
	}
	return MStockInfo{Symbol: symbol, Price: price, Sentiment: sentiment, Time: ts}, nil
}
