package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	dashhandler "market_dashboard/internal/feature/dashboard/transport/handler"
	quotehandler "market_dashboard/internal/feature/quotes/transport/handler"
	wlhandler "market_dashboard/internal/feature/watchlist/transport/handler"
	"market_dashboard/internal/platform/http/handler"
)

// NewRouter はダッシュボードとAPIの全ルートを組み立てます。
// templatesGlobが空の場合はHTMLテンプレートを読み込みません（テスト用）。
func NewRouter(templatesGlob string, dashboard *dashhandler.DashboardHandler,
	tabs *wlhandler.TabHandler, watchlist *wlhandler.WatchlistHandler,
	quotes *quotehandler.QuoteHandler) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	if templatesGlob != "" {
		r.LoadHTMLGlob(templatesGlob)
	}
	r.Static("/static", "./web/static")

	// 導通確認用
	r.GET("/healthz", handler.Health)

	// ダッシュボードページ
	r.GET("/", dashboard.Dashboard)

	api := r.Group("/api")
	{
		// タブ
		api.GET("/tabs", tabs.List)
		api.POST("/tabs", tabs.Create)
		api.PUT("/tabs/:id", tabs.Rename)
		api.DELETE("/tabs/:id", tabs.Delete)

		// クオート・チャート・検索
		api.GET("/quotes", quotes.Bulk)
		api.GET("/quote/:ticker", quotes.Single)
		api.GET("/chart/:ticker", quotes.Chart)
		api.GET("/search", quotes.Search)

		// ウォッチリスト（タブ単位）
		api.GET("/watchlist/:tab_id", watchlist.List)
		api.POST("/watchlist/:tab_id/:ticker", watchlist.Add)
		api.PUT("/watchlist/:tab_id/reorder", watchlist.Reorder)
		api.DELETE("/watchlist/:tab_id/:ticker", watchlist.Remove)
	}

	return r
}
