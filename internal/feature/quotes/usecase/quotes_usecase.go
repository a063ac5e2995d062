// Package usecase は外部プロバイダーからの株価データ集約のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"market_dashboard/internal/feature/quotes/domain/entity"
)

const (
	// DefaultPeriod はチャートクエリのデフォルト期間です。
	DefaultPeriod = "1mo"
	// DefaultInterval はチャートクエリのデフォルト時間間隔です。
	DefaultInterval = "1d"
	// DefaultMaxWorkers は一括取得の同時実行数の上限です。
	DefaultMaxWorkers = 8
	// MaxSearchResults は検索結果の最大件数です。
	MaxSearchResults = 10

	// quoteHistoryRange はクオート算出に使用する直近の日足の範囲です。
	quoteHistoryRange = "5d"
)

// intradayIntervals はプレ・ポストマーケットのバーを含めて取得する時間足です。
var intradayIntervals = map[string]struct{}{
	"1m": {}, "2m": {}, "5m": {}, "15m": {}, "30m": {}, "60m": {}, "90m": {}, "1h": {},
}

// MarketRepository は外部マーケットデータプロバイダーを抽象化します。
// Quoteはベストエフォートの補足データ用で、失敗してもクオート全体は失敗しません。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketRepository interface {
	History(ctx context.Context, symbol, rng, interval string, includePrePost bool) ([]entity.Bar, error)
	Quote(ctx context.Context, symbol string) (entity.QuoteFacts, error)
	Search(ctx context.Context, query string, limit int) ([]entity.SearchResult, error)
}

// QuotesUsecase はティッカー集合をクオートデータへ対応付けるユースケースを提供します。
type QuotesUsecase struct {
	market     MarketRepository
	maxWorkers int
}

// NewQuotesUsecase は指定されたリポジトリでQuotesUsecaseの新しいインスタンスを生成します。
func NewQuotesUsecase(market MarketRepository) *QuotesUsecase {
	return &QuotesUsecase{market: market, maxWorkers: DefaultMaxWorkers}
}

// fetchQuote は1ティッカー分のクオートを組み立てます。
// 直近5日分の日足から現在値と前日比を導出し、プロバイダーのクオート情報で
// ベストエフォートの補足（名称、52週高安、PER、時間外価格）を行います。
func (u *QuotesUsecase) fetchQuote(ctx context.Context, ticker string) (entity.Quote, error) {
	code := strings.ToUpper(strings.TrimSpace(ticker))

	bars, err := u.market.History(ctx, code, quoteHistoryRange, "1d", false)
	if err != nil {
		return entity.Quote{}, err
	}
	if len(bars) == 0 {
		return entity.Quote{}, fmt.Errorf("no price history for %s", code)
	}

	last := bars[len(bars)-1]
	price := last.Close
	prevClose := price
	if len(bars) >= 2 {
		prevClose = bars[len(bars)-2].Close
	}
	change := price - prevClose
	changePct := 0.0
	if prevClose != 0 {
		changePct = change / prevClose * 100
	}

	q := entity.Quote{
		Ticker:    code,
		Name:      code,
		LongName:  code,
		Price:     round2(price),
		Change:    round2(change),
		ChangePct: round2(changePct),
		PrevClose: round2(prevClose),
		High:      round2(last.High),
		Low:       round2(last.Low),
		Volume:    last.Volume,
		Updated:   time.Now(),
	}

	// 補足データの取得失敗はクオート全体を失敗させない
	facts, err := u.market.Quote(ctx, code)
	if err != nil {
		slog.Debug("quote enrichment failed", "ticker", code, "error", err)
		return q, nil
	}
	if facts.ShortName != "" {
		q.Name = facts.ShortName
	}
	if facts.LongName != "" {
		q.LongName = facts.LongName
	} else {
		q.LongName = q.Name
	}
	q.Week52High = round2Ptr(facts.Week52High)
	q.Week52Low = round2Ptr(facts.Week52Low)
	if facts.TrailingPE != nil {
		q.PERatio = round2Ptr(facts.TrailingPE)
	} else {
		q.PERatio = round2Ptr(facts.ForwardPE)
	}

	// 時間外価格は正の値が得られた場合のみ設定し、変化は通常セッションの現在値との差
	if facts.PreMarketPrice != nil && *facts.PreMarketPrice > 0 {
		q.PreMarketPrice, q.PreMarketChange, q.PreMarketChangePct =
			extendedHours(*facts.PreMarketPrice, price)
	}
	if facts.PostMarketPrice != nil && *facts.PostMarketPrice > 0 {
		q.PostMarketPrice, q.PostMarketChange, q.PostMarketChangePct =
			extendedHours(*facts.PostMarketPrice, price)
	}
	return q, nil
}

// GetBulkQuotes は複数ティッカーのクオートを同時取得し、成功した分だけをマップで返します。
// 同時実行数はmaxWorkersで制限され、1ティッカーの失敗は他のティッカーに影響しません。
// リトライは行わず、失敗したティッカーは結果から単に除外されます。
func (u *QuotesUsecase) GetBulkQuotes(ctx context.Context, tickers []string) map[string]entity.Quote {
	results := make(map[string]entity.Quote, len(tickers))

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, u.maxWorkers)

	for _, t := range tickers {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			q, err := u.fetchQuote(ctx, ticker)
			if err != nil {
				slog.Debug("quote fetch failed", "ticker", ticker, "error", err)
				return
			}
			mu.Lock()
			results[q.Ticker] = q
			mu.Unlock()
		}(t)
	}
	wg.Wait()
	return results
}

// GetChartData は指定された期間と時間足のOHLCVバーを返します。
// 時間足がイントラデイ（1時間以下）の場合はプレ・ポストマーケットのバーも要求します。
// 取得に失敗した場合は空のスライスを返し、エラーにはしません。
func (u *QuotesUsecase) GetChartData(ctx context.Context, ticker, period, interval string) []entity.Bar {
	code := strings.ToUpper(strings.TrimSpace(ticker))
	if period == "" {
		period = DefaultPeriod
	}
	if interval == "" {
		interval = DefaultInterval
	}
	_, includePrePost := intradayIntervals[interval]

	bars, err := u.market.History(ctx, code, period, interval, includePrePost)
	if err != nil {
		slog.Warn("chart fetch failed", "ticker", code, "period", period, "interval", interval, "error", err)
		return []entity.Bar{}
	}
	out := make([]entity.Bar, 0, len(bars))
	for _, b := range bars {
		out = append(out, entity.Bar{
			Time:   b.Time,
			Open:   round2(b.Open),
			High:   round2(b.High),
			Low:    round2(b.Low),
			Close:  round2(b.Close),
			Volume: b.Volume,
		})
	}
	return out
}

// SearchTickers はフリーテキスト検索をプロバイダーに委譲し、最大10件を返します。
// 取得に失敗した場合は空のスライスを返します。
func (u *QuotesUsecase) SearchTickers(ctx context.Context, query string) []entity.SearchResult {
	results, err := u.market.Search(ctx, query, MaxSearchResults)
	if err != nil {
		slog.Warn("ticker search failed", "query", query, "error", err)
		return []entity.SearchResult{}
	}
	if len(results) > MaxSearchResults {
		results = results[:MaxSearchResults]
	}
	return results
}

// extendedHours は時間外価格と通常セッション現在値から価格・変化・変化率を算出します。
func extendedHours(extPrice, regularPrice float64) (*float64, *float64, *float64) {
	p := round2(extPrice)
	c := round2(extPrice - regularPrice)
	pct := 0.0
	if regularPrice != 0 {
		pct = (extPrice - regularPrice) / regularPrice * 100
	}
	pctR := round2(pct)
	return &p, &c, &pctR
}

// round2 は小数第2位に丸めます。
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round2Ptr はnilを保ったまま小数第2位に丸めます。
func round2Ptr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round2(*v)
	return &r
}
