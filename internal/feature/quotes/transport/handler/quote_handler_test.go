package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	qentity "market_dashboard/internal/feature/quotes/domain/entity"
	wlentity "market_dashboard/internal/feature/watchlist/domain/entity"
	wlusecase "market_dashboard/internal/feature/watchlist/usecase"
)

// mockQuotesUsecase はQuotesUsecaseインターフェースのモック実装です。
type mockQuotesUsecase struct {
	GetBulkQuotesFunc func(ctx context.Context, tickers []string) map[string]qentity.Quote
	GetChartDataFunc  func(ctx context.Context, ticker, period, interval string) []qentity.Bar
	SearchTickersFunc func(ctx context.Context, query string) []qentity.SearchResult
}

func (m *mockQuotesUsecase) GetBulkQuotes(ctx context.Context, tickers []string) map[string]qentity.Quote {
	if m.GetBulkQuotesFunc != nil {
		return m.GetBulkQuotesFunc(ctx, tickers)
	}
	return map[string]qentity.Quote{}
}

func (m *mockQuotesUsecase) GetChartData(ctx context.Context, ticker, period, interval string) []qentity.Bar {
	if m.GetChartDataFunc != nil {
		return m.GetChartDataFunc(ctx, ticker, period, interval)
	}
	return nil
}

func (m *mockQuotesUsecase) SearchTickers(ctx context.Context, query string) []qentity.SearchResult {
	if m.SearchTickersFunc != nil {
		return m.SearchTickersFunc(ctx, query)
	}
	return nil
}

// mockWatchlistReader はWatchlistReaderインターフェースのモック実装です。
type mockWatchlistReader struct {
	ResolveTabIDFunc func(ctx context.Context, id uint) (uint, error)
	ListEntriesFunc  func(ctx context.Context, tabID uint) ([]wlentity.WatchlistEntry, error)
}

func (m *mockWatchlistReader) ResolveTabID(ctx context.Context, id uint) (uint, error) {
	if m.ResolveTabIDFunc != nil {
		return m.ResolveTabIDFunc(ctx, id)
	}
	return id, nil
}

func (m *mockWatchlistReader) ListEntries(ctx context.Context, tabID uint) ([]wlentity.WatchlistEntry, error) {
	if m.ListEntriesFunc != nil {
		return m.ListEntriesFunc(ctx, tabID)
	}
	return nil, nil
}

// newQuoteRouter はQuoteHandlerの全ルートを登録したテスト用ルーターを生成します。
func newQuoteRouter(uc *mockQuotesUsecase, wl *mockWatchlistReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewQuoteHandler(uc, wl)
	r := gin.New()
	r.GET("/api/quotes", h.Bulk)
	r.GET("/api/quote/:ticker", h.Single)
	r.GET("/api/chart/:ticker", h.Chart)
	r.GET("/api/search", h.Search)
	return r
}

// simpleQuote はエンリッチメント無しのテスト用クオートを生成します。
func simpleQuote(ticker string) qentity.Quote {
	return qentity.Quote{
		Ticker:    ticker,
		Name:      "Apple",
		LongName:  "Apple Inc.",
		Price:     185.5,
		Change:    5.5,
		ChangePct: 3.06,
		PrevClose: 180,
		High:      186.5,
		Low:       184.5,
		Volume:    2000,
		Updated:   time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC),
	}
}

const simpleQuoteJSON = `{
	"ticker": "AAPL",
	"name": "Apple",
	"long_name": "Apple Inc.",
	"price": 185.5,
	"change": 5.5,
	"change_pct": 3.06,
	"prev_close": 180,
	"high": 186.5,
	"low": 184.5,
	"volume": 2000,
	"week52_high": null,
	"week52_low": null,
	"pe_ratio": null,
	"pre_market_price": null,
	"pre_market_change": null,
	"pre_market_change_pct": null,
	"post_market_price": null,
	"post_market_change": null,
	"post_market_change_pct": null,
	"updated": "2025-03-14 15:30:00"
}`

// TestQuoteHandler_Bulk はタブ解決からウォッチリスト全体のクオート返却までを検証します。
func TestQuoteHandler_Bulk(t *testing.T) {
	t.Parallel()

	t.Run("success: resolves tab and returns quote map", func(t *testing.T) {
		t.Parallel()

		var gotTickers []string
		uc := &mockQuotesUsecase{
			GetBulkQuotesFunc: func(ctx context.Context, tickers []string) map[string]qentity.Quote {
				gotTickers = tickers
				return map[string]qentity.Quote{"AAPL": simpleQuote("AAPL")}
			},
		}
		wl := &mockWatchlistReader{
			ResolveTabIDFunc: func(ctx context.Context, id uint) (uint, error) {
				assert.Equal(t, uint(2), id)
				return 2, nil
			},
			ListEntriesFunc: func(ctx context.Context, tabID uint) ([]wlentity.WatchlistEntry, error) {
				return []wlentity.WatchlistEntry{
					{ID: 1, TabID: 2, Ticker: "AAPL"},
					{ID: 2, TabID: 2, Ticker: "BADTICK"},
				}, nil
			},
		}
		r := newQuoteRouter(uc, wl)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/quotes?tab_id=2", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"AAPL", "BADTICK"}, gotTickers)
		assert.JSONEq(t, `{"AAPL": `+simpleQuoteJSON+`}`, w.Body.String())
	})

	t.Run("failure: non-numeric tab_id yields 400", func(t *testing.T) {
		t.Parallel()

		resolved := false
		wl := &mockWatchlistReader{
			ResolveTabIDFunc: func(ctx context.Context, id uint) (uint, error) {
				resolved = true
				return id, nil
			},
		}
		r := newQuoteRouter(&mockQuotesUsecase{}, wl)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/quotes?tab_id=abc", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"invalid id"}`, w.Body.String())
		assert.False(t, resolved)
	})

	t.Run("success: no tabs yields empty object", func(t *testing.T) {
		t.Parallel()

		wl := &mockWatchlistReader{
			ResolveTabIDFunc: func(ctx context.Context, id uint) (uint, error) {
				return 0, wlusecase.ErrNoTabs
			},
		}
		r := newQuoteRouter(&mockQuotesUsecase{}, wl)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/quotes", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{}`, w.Body.String())
	})

	t.Run("success: empty watchlist skips the provider", func(t *testing.T) {
		t.Parallel()

		called := false
		uc := &mockQuotesUsecase{
			GetBulkQuotesFunc: func(ctx context.Context, tickers []string) map[string]qentity.Quote {
				called = true
				return map[string]qentity.Quote{}
			},
		}
		wl := &mockWatchlistReader{
			ListEntriesFunc: func(ctx context.Context, tabID uint) ([]wlentity.WatchlistEntry, error) {
				return []wlentity.WatchlistEntry{}, nil
			},
		}
		r := newQuoteRouter(uc, wl)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/quotes?tab_id=1", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{}`, w.Body.String())
		assert.False(t, called)
	})
}

// TestQuoteHandler_Single は単一ティッカーのクオート返却と、取得失敗時の404を検証します。
func TestQuoteHandler_Single(t *testing.T) {
	t.Parallel()

	t.Run("success: returns the quote", func(t *testing.T) {
		t.Parallel()

		uc := &mockQuotesUsecase{
			GetBulkQuotesFunc: func(ctx context.Context, tickers []string) map[string]qentity.Quote {
				assert.Equal(t, []string{"AAPL"}, tickers)
				return map[string]qentity.Quote{"AAPL": simpleQuote("AAPL")}
			},
		}
		r := newQuoteRouter(uc, &mockWatchlistReader{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/quote/aapl", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, simpleQuoteJSON, w.Body.String())
	})

	t.Run("failure: unresolvable ticker yields 404", func(t *testing.T) {
		t.Parallel()

		uc := &mockQuotesUsecase{
			GetBulkQuotesFunc: func(ctx context.Context, tickers []string) map[string]qentity.Quote {
				return map[string]qentity.Quote{}
			},
		}
		r := newQuoteRouter(uc, &mockWatchlistReader{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/quote/NOPE", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Ticker not found"}`, w.Body.String())
	})
}

// TestQuoteHandler_Chart はOHLCVバーの返却とクエリのデフォルト値を検証します。
func TestQuoteHandler_Chart(t *testing.T) {
	t.Parallel()

	t.Run("success: returns bars with epoch times", func(t *testing.T) {
		t.Parallel()

		uc := &mockQuotesUsecase{
			GetChartDataFunc: func(ctx context.Context, ticker, period, interval string) []qentity.Bar {
				assert.Equal(t, "AAPL", ticker)
				assert.Equal(t, "3mo", period)
				assert.Equal(t, "1wk", interval)
				return []qentity.Bar{
					{Time: time.Unix(1741924800, 0), Open: 180, High: 186.5, Low: 179.2, Close: 185.5, Volume: 1200},
				}
			},
		}
		r := newQuoteRouter(uc, &mockWatchlistReader{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/chart/AAPL?period=3mo&interval=1wk", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"time":1741924800,"open":180,"high":186.5,"low":179.2,"close":185.5,"volume":1200}]`, w.Body.String())
	})

	t.Run("success: missing query falls back to 1mo and 1d", func(t *testing.T) {
		t.Parallel()

		uc := &mockQuotesUsecase{
			GetChartDataFunc: func(ctx context.Context, ticker, period, interval string) []qentity.Bar {
				assert.Equal(t, "1mo", period)
				assert.Equal(t, "1d", interval)
				return nil
			},
		}
		r := newQuoteRouter(uc, &mockWatchlistReader{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/chart/AAPL", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

// TestQuoteHandler_Search はティッカー検索の返却と、空クエリのショートカットを検証します。
func TestQuoteHandler_Search(t *testing.T) {
	t.Parallel()

	t.Run("success: returns matches", func(t *testing.T) {
		t.Parallel()

		uc := &mockQuotesUsecase{
			SearchTickersFunc: func(ctx context.Context, query string) []qentity.SearchResult {
				assert.Equal(t, "apple", query)
				return []qentity.SearchResult{
					{Ticker: "AAPL", Name: "Apple", LongName: "Apple Inc.", Exchange: "NMS", Type: "EQUITY"},
				}
			},
		}
		r := newQuoteRouter(uc, &mockWatchlistReader{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/search?q=apple", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"ticker":"AAPL","name":"Apple","long_name":"Apple Inc.","exchange":"NMS","type":"EQUITY"}]`, w.Body.String())
	})

	t.Run("success: empty query skips the provider", func(t *testing.T) {
		t.Parallel()

		called := false
		uc := &mockQuotesUsecase{
			SearchTickersFunc: func(ctx context.Context, query string) []qentity.SearchResult {
				called = true
				return nil
			},
		}
		r := newQuoteRouter(uc, &mockWatchlistReader{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/search", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
		assert.False(t, called)
	})
}
