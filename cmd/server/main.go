package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"market_dashboard/internal/app/di"
	"market_dashboard/internal/app/router"
	dashhandler "market_dashboard/internal/feature/dashboard/transport/handler"
	quotehandler "market_dashboard/internal/feature/quotes/transport/handler"
	quoteusecase "market_dashboard/internal/feature/quotes/usecase"
	wladapters "market_dashboard/internal/feature/watchlist/adapters"
	wlhandler "market_dashboard/internal/feature/watchlist/transport/handler"
	wlusecase "market_dashboard/internal/feature/watchlist/usecase"
	infradb "market_dashboard/internal/platform/db"
	infraredis "market_dashboard/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// db
	db := infradb.OpenDB(infradb.LoadConfig())

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	store := wladapters.NewStoreRepository(db)
	market := di.NewMarket(rdb)

	// 初回起動時のみデフォルトのタブとウォッチリストを投入
	if err := store.SeedIfEmpty(context.Background()); err != nil {
		log.Fatalf("failed to seed default watchlist: %v", err)
	}

	// Usecase
	watchlistUC := wlusecase.NewWatchlistUsecase(store)
	quotesUC := quoteusecase.NewQuotesUsecase(market)

	// Handler
	tabH := wlhandler.NewTabHandler(watchlistUC)
	watchlistH := wlhandler.NewWatchlistHandler(watchlistUC)
	quoteH := quotehandler.NewQuoteHandler(quotesUC, watchlistUC)
	dashboardH := dashhandler.NewDashboardHandler(watchlistUC, quotesUC)

	// ルータ生成
	r := router.NewRouter("web/templates/*.html", dashboardH, tabH, watchlistH, quoteH)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8050"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
