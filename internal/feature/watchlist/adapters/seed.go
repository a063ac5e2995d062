package adapters

import (
	"context"

	"gorm.io/gorm"

	"market_dashboard/internal/feature/watchlist/domain/entity"
)

// seedTicker はシード用のティッカーと表示名のペアです。
type seedTicker struct {
	Ticker string
	Name   string
}

// defaultTabs は初回起動時に作成されるタブです。
var defaultTabs = []entity.Tab{
	{Name: "Main", SortOrder: 0},
	{Name: "MAG7", SortOrder: 1},
	{Name: "AA", SortOrder: 2},
	{Name: "US Sectors", SortOrder: 3},
}

// defaultWatchlist はタブ名ごとの初期ティッカーです。
var defaultWatchlist = map[string][]seedTicker{
	"Main": {
		{"AEM", "Agnico Eagle Mines"},
		{"TLT", "20+ Year Treasury ETF"},
		{"VTI", "Total Stock Market ETF"},
		{"FSAGX", "Fidelity Gold Fund"},
	},
	"MAG7": {
		{"AAPL", "Apple Inc."},
		{"AMZN", "Amazon.com Inc."},
		{"GOOG", "Alphabet Inc."},
		{"META", "Meta Platforms Inc."},
		{"TSLA", "Tesla Inc."},
		{"MSFT", "Microsoft Corporation"},
		{"NVDA", "NVIDIA Corporation"},
		{"MAGS", "Roundhill Magnificent Seven ETF"},
	},
	"AA": {
		{"ACWI", "iShares MSCI ACWI ETF"},
		{"EFA", "iShares MSCI EAFE ETF"},
		{"EEM", "iShares MSCI Emerging Markets ETF"},
		{"BCOM.XA", "Bloomberg Commodity Index"},
		{"GLD", "SPDR Gold Shares"},
		{"SLV", "iShares Silver Trust"},
		{"SPY", "SPDR S&P 500 ETF"},
		{"IWM", "iShares Russell 2000 ETF"},
	},
	"US Sectors": {
		{"XLK", "Technology"},
		{"XLF", "Financials"},
		{"XLV", "Health Care"},
		{"XLY", "Consumer Discretionary"},
		{"XLC", "Communication Services"},
		{"XLI", "Industrials"},
		{"XLP", "Consumer Staples"},
		{"XLE", "Energy"},
		{"XLU", "Utilities"},
		{"XLRE", "Real Estate"},
		{"XLB", "Materials"},
	},
}

// SeedIfEmpty はストアが空の場合にデフォルトのタブとウォッチリストを投入します。
// タブが1つでも存在する場合は何もしないため、冪等に呼び出せます。
// プロセス起動時に明示的に1回呼び出すことを想定しています。
func (r *storeSQLite) SeedIfEmpty(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Tab{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		for _, def := range defaultTabs {
			tab := def
			if err := tx.Create(&tab).Error; err != nil {
				return err
			}
			for i, st := range defaultWatchlist[tab.Name] {
				entry := entity.WatchlistEntry{
					TabID:     tab.ID,
					Ticker:    st.Ticker,
					Name:      st.Name,
					SortOrder: i,
				}
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
