// Package handler はquotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	qentity "market_dashboard/internal/feature/quotes/domain/entity"
	"market_dashboard/internal/feature/quotes/transport/http/dto"
	wlentity "market_dashboard/internal/feature/watchlist/domain/entity"
	wlusecase "market_dashboard/internal/feature/watchlist/usecase"
)

// QuotesUsecase は株価データ集約のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type QuotesUsecase interface {
	GetBulkQuotes(ctx context.Context, tickers []string) map[string]qentity.Quote
	GetChartData(ctx context.Context, ticker, period, interval string) []qentity.Bar
	SearchTickers(ctx context.Context, query string) []qentity.SearchResult
}

// WatchlistReader はタブ解決とウォッチリスト読み取りのインターフェースを定義します。
// /api/quotes がタブのティッカー一覧を取得するために使用します。
type WatchlistReader interface {
	ResolveTabID(ctx context.Context, id uint) (uint, error)
	ListEntries(ctx context.Context, tabID uint) ([]wlentity.WatchlistEntry, error)
}

// QuoteHandler はクオート・チャート・検索のHTTPリクエストを処理します。
type QuoteHandler struct {
	uc        QuotesUsecase
	watchlist WatchlistReader
}

// NewQuoteHandler は指定されたusecaseでQuoteHandlerの新しいインスタンスを生成します。
func NewQuoteHandler(uc QuotesUsecase, watchlist WatchlistReader) *QuoteHandler {
	return &QuoteHandler{uc: uc, watchlist: watchlist}
}

// Bulk はタブのウォッチリスト全体のクオートをティッカーをキーとするマップで返します。
// tab_idが0または未指定の場合は先頭タブを対象とし、数値でない場合は400を返します。
// 取得に失敗したティッカーはマップから除外されます。
//
// エンドポイント例:
// GET /api/quotes?tab_id=2
func (h *QuoteHandler) Bulk(c *gin.Context) {
	tabID64, err := strconv.ParseUint(c.DefaultQuery("tab_id", "0"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx := c.Request.Context()
	tabID, err := h.watchlist.ResolveTabID(ctx, uint(tabID64))
	if err != nil {
		// タブが無ければクオートも無い
		if errors.Is(err, wlusecase.ErrNoTabs) {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.watchlist.ListEntries(ctx, tabID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	tickers := make([]string, 0, len(entries))
	for _, e := range entries {
		tickers = append(tickers, e.Ticker)
	}

	out := make(map[string]dto.QuoteResponse, len(tickers))
	if len(tickers) > 0 {
		for ticker, q := range h.uc.GetBulkQuotes(ctx, tickers) {
			out[ticker] = dto.FromQuote(q)
		}
	}
	c.JSON(http.StatusOK, out)
}

// Single は1ティッカーのクオートを返します。取得できない場合は404を返します。
//
// エンドポイント例:
// GET /api/quote/AAPL
func (h *QuoteHandler) Single(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))

	quotes := h.uc.GetBulkQuotes(c.Request.Context(), []string{ticker})
	q, ok := quotes[ticker]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticker not found"})
		return
	}
	c.JSON(http.StatusOK, dto.FromQuote(q))
}

// Chart は指定された期間と時間足のOHLCVバーを返します。
// 取得に失敗した場合は空のリストを返します。
//
// エンドポイント例:
// GET /api/chart/AAPL?period=1mo&interval=1d
func (h *QuoteHandler) Chart(c *gin.Context) {
	ticker := c.Param("ticker")
	// 未指定の場合はデフォルト値を使用
	period := c.DefaultQuery("period", "1mo")
	interval := c.DefaultQuery("interval", "1d")

	bars := h.uc.GetChartData(c.Request.Context(), ticker, period, interval)

	out := make([]dto.BarResponse, 0, len(bars))
	for _, b := range bars {
		out = append(out, dto.BarResponse{
			Time:   b.Time.Unix(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Search はフリーテキストのティッカー検索結果を返します。
// クエリが空の場合は検索せずに空のリストを返します。
//
// エンドポイント例:
// GET /api/search?q=apple
func (h *QuoteHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if len(query) < 1 {
		c.JSON(http.StatusOK, []dto.SearchItem{})
		return
	}

	results := h.uc.SearchTickers(c.Request.Context(), query)

	out := make([]dto.SearchItem, 0, len(results))
	for _, r := range results {
		out = append(out, dto.SearchItem{
			Ticker:   r.Ticker,
			Name:     r.Name,
			LongName: r.LongName,
			Exchange: r.Exchange,
			Type:     r.Type,
		})
	}
	c.JSON(http.StatusOK, out)
}
