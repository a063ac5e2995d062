// Package handler はダッシュボードページのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	qentity "market_dashboard/internal/feature/quotes/domain/entity"
	wlentity "market_dashboard/internal/feature/watchlist/domain/entity"
)

// WatchlistUsecase はページ描画に必要なタブとウォッチリストの読み取りインターフェースです。
type WatchlistUsecase interface {
	ListTabs(ctx context.Context) ([]wlentity.Tab, error)
	ListEntries(ctx context.Context, tabID uint) ([]wlentity.WatchlistEntry, error)
}

// QuotesUsecase はページ描画に必要なクオート取得のインターフェースです。
type QuotesUsecase interface {
	GetBulkQuotes(ctx context.Context, tickers []string) map[string]qentity.Quote
}

// DashboardHandler はダッシュボードHTMLページを描画します。
type DashboardHandler struct {
	watchlist WatchlistUsecase
	quotes    QuotesUsecase
}

// NewDashboardHandler は指定されたusecaseでDashboardHandlerの新しいインスタンスを生成します。
func NewDashboardHandler(watchlist WatchlistUsecase, quotes QuotesUsecase) *DashboardHandler {
	return &DashboardHandler{watchlist: watchlist, quotes: quotes}
}

// Dashboard はアクティブなタブのウォッチリストとクオートでダッシュボードを描画します。
// クエリパラメータtabが0または存在しないタブを指す場合は先頭タブを表示します。
//
// エンドポイント例:
// GET /?tab=2
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	tabs, err := h.watchlist.ListTabs(ctx)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load tabs: %v", err)
		return
	}
	if len(tabs) == 0 {
		c.String(http.StatusInternalServerError, "no tabs exist")
		return
	}

	requested, _ := strconv.ParseUint(c.DefaultQuery("tab", "0"), 10, 32)
	activeTabID := tabs[0].ID
	if requested > 0 {
		for _, t := range tabs {
			if t.ID == uint(requested) {
				activeTabID = t.ID
				break
			}
		}
	}

	entries, err := h.watchlist.ListEntries(ctx, activeTabID)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load watchlist: %v", err)
		return
	}

	tickers := make([]string, 0, len(entries))
	for _, e := range entries {
		tickers = append(tickers, e.Ticker)
	}
	quotes := map[string]qentity.Quote{}
	if len(tickers) > 0 {
		quotes = h.quotes.GetBulkQuotes(ctx, tickers)
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"tabs":          tabs,
		"active_tab_id": activeTabID,
		"watchlist":     entries,
		"quotes":        quotes,
	})
}
