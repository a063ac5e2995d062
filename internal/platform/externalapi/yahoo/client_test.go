package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMarket はハンドラー関数を返すテストサーバーに向けたYahooMarketを生成します。
func newTestMarket(t *testing.T, handler http.HandlerFunc) *YahooMarket {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := Config{BaseURL: srv.URL, Timeout: 5 * time.Second}
	return NewYahooMarket(cfg, srv.Client())
}

// TestYahooMarket_History はチャートレスポンスのパースとクエリパラメータを検証します。
// closeがnullのバーはスキップされ、volumeがnullの場合は0になります。
func TestYahooMarket_History(t *testing.T) {
	t.Parallel()

	const body = `{"chart":{"result":[{
		"meta":{"symbol":"AAPL","regularMarketPrice":185.5},
		"timestamp":[1704067200,1704153600,1704240000],
		"indicators":{"quote":[{
			"open":[180.0,null,184.0],
			"high":[186.0,null,187.0],
			"low":[179.0,null,183.0],
			"close":[185.0,null,185.5],
			"volume":[1000,null,null]
		}]}
	}],"error":null}}`

	var gotPath, gotRange, gotInterval, gotPrePost, gotUA string
	market := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRange = r.URL.Query().Get("range")
		gotInterval = r.URL.Query().Get("interval")
		gotPrePost = r.URL.Query().Get("includePrePost")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})

	bars, err := market.History(context.Background(), "AAPL", "5d", "1d", true)
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/AAPL", gotPath)
	assert.Equal(t, "5d", gotRange)
	assert.Equal(t, "1d", gotInterval)
	assert.Equal(t, "true", gotPrePost)
	assert.NotContains(t, gotUA, "Go-http-client", "Yahoo rejects the default Go user agent")

	require.Len(t, bars, 2, "bars with a null close are skipped")
	assert.Equal(t, time.Unix(1704067200, 0).UTC(), bars[0].Time)
	assert.Equal(t, 180.0, bars[0].Open)
	assert.Equal(t, 186.0, bars[0].High)
	assert.Equal(t, 179.0, bars[0].Low)
	assert.Equal(t, 185.0, bars[0].Close)
	assert.Equal(t, int64(1000), bars[0].Volume)
	assert.Equal(t, 185.5, bars[1].Close)
	assert.Zero(t, bars[1].Volume, "null volume becomes 0")
}

// TestYahooMarket_History_Errors はエラー応答の各形がエラーとして報告されることを
// テーブル駆動テストで検証します。
func TestYahooMarket_History_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{
			name:   "api error envelope",
			status: http.StatusOK,
			body:   `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`,
		},
		{
			name:   "empty result",
			status: http.StatusOK,
			body:   `{"chart":{"result":[],"error":null}}`,
		},
		{
			name:   "http error status",
			status: http.StatusNotFound,
			body:   `{}`,
		},
		{
			name:   "malformed json",
			status: http.StatusOK,
			body:   `{"chart":`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			market := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			bars, err := market.History(context.Background(), "BOGUS123", "5d", "1d", false)

			assert.Error(t, err)
			assert.Nil(t, bars)
		})
	}
}

// TestYahooMarket_Quote はクオートレスポンスのパースを検証します。
// 無いフィールドはnilのままです。
func TestYahooMarket_Quote(t *testing.T) {
	t.Parallel()

	const body = `{"quoteResponse":{"result":[{
		"symbol":"AAPL",
		"shortName":"Apple Inc.",
		"longName":"Apple Inc.",
		"fiftyTwoWeekHigh":237.49,
		"fiftyTwoWeekLow":164.08,
		"trailingPE":30.5,
		"preMarketPrice":186.2
	}],"error":null}}`

	var gotSymbols string
	market := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		gotSymbols = r.URL.Query().Get("symbols")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})

	facts, err := market.Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", gotSymbols)
	assert.Equal(t, "Apple Inc.", facts.ShortName)
	require.NotNil(t, facts.Week52High)
	assert.Equal(t, 237.49, *facts.Week52High)
	require.NotNil(t, facts.TrailingPE)
	assert.Equal(t, 30.5, *facts.TrailingPE)
	assert.Nil(t, facts.ForwardPE)
	require.NotNil(t, facts.PreMarketPrice)
	assert.Equal(t, 186.2, *facts.PreMarketPrice)
	assert.Nil(t, facts.PostMarketPrice)
}

// TestYahooMarket_Quote_NoResult は該当銘柄が無い場合にエラーを返すことを検証します。
func TestYahooMarket_Quote_NoResult(t *testing.T) {
	t.Parallel()

	market := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"quoteResponse":{"result":[],"error":null}}`))
	})

	_, err := market.Quote(context.Background(), "BOGUS123")

	assert.Error(t, err)
}

// TestYahooMarket_Search は検索レスポンスのパース、名称のフォールバック、
// シンボルを持たないマッチのスキップを検証します。
func TestYahooMarket_Search(t *testing.T) {
	t.Parallel()

	const body = `{"quotes":[
		{"symbol":"AAPL","shortname":"Apple Inc.","longname":"Apple Inc.","exchange":"NMS","quoteType":"EQUITY"},
		{"symbol":"APLE","longname":"Apple Hospitality REIT","exchange":"NYQ","quoteType":"EQUITY"},
		{"shortname":"not a ticker"}
	]}`

	var gotQuery, gotCount string
	market := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotCount = r.URL.Query().Get("quotesCount")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})

	results, err := market.Search(context.Background(), "apple", 10)
	require.NoError(t, err)

	assert.Equal(t, "apple", gotQuery)
	assert.Equal(t, "10", gotCount)
	require.Len(t, results, 2, "matches without a symbol are skipped")
	assert.Equal(t, "AAPL", results[0].Ticker)
	assert.Equal(t, "Apple Inc.", results[0].Name)
	assert.Equal(t, "NMS", results[0].Exchange)
	assert.Equal(t, "EQUITY", results[0].Type)
	assert.Equal(t, "Apple Hospitality REIT", results[1].Name, "name falls back to the long name")
}
