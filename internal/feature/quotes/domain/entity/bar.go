package entity

import "time"

// Bar represents OHLCV (Open, High, Low, Close, Volume) data
// for one time interval of a symbol's price history.
type Bar struct {
	Time   time.Time // Start of the bar's interval
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64 // 0 when the provider reports no volume
}
