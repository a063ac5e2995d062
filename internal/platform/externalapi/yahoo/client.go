package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"market_dashboard/internal/feature/quotes/domain/entity"
	"market_dashboard/internal/feature/quotes/usecase"
	"market_dashboard/internal/platform/externalapi/yahoo/dto"
)

// userAgent はYahooがデフォルトのGoクライアントUAを拒否するため必須です。
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// YahooMarket はYahoo Finance APIから株価データを取得するMarketRepository実装です。
type YahooMarket struct {
	cfg    Config
	client *http.Client
}

// YahooMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*YahooMarket)(nil)

// NewYahooMarket は指定された設定とHTTPクライアントでYahooMarketの新しいインスタンスを生成します。
func NewYahooMarket(cfg Config, client *http.Client) *YahooMarket {
	return &YahooMarket{cfg: cfg, client: client}
}

// getJSON はGETリクエストを実行し、JSONレスポンスをoutにデコードします。
func (y *YahooMarket) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := y.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("yahoo http %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// History はv8/finance/chartエンドポイントから時系列データを取得し、
// entity.Barのスライスとして返します。closeがnullのバー（Yahooが
// 休場時間帯を埋めるパディング）はスキップされます。
func (y *YahooMarket) History(ctx context.Context, symbol, rng, interval string, includePrePost bool) ([]entity.Bar, error) {
	q := url.Values{}
	q.Set("range", rng)
	q.Set("interval", interval)
	q.Set("includePrePost", strconv.FormatBool(includePrePost))

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	var body dto.ChartResponse
	if err := y.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}
	if body.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo: %s", body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 || len(body.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: empty chart result for %s", symbol)
	}

	result := body.Chart.Result[0]
	prices := result.Indicators.Quote[0]

	bars := make([]entity.Bar, 0, len(result.Timestamps))
	for i, ts := range result.Timestamps {
		if i >= len(prices.Close) || prices.Close[i] == nil {
			continue
		}
		c := *prices.Close[i]
		bar := entity.Bar{
			Time:  time.Unix(ts, 0).UTC(),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
		if i < len(prices.Open) && prices.Open[i] != nil {
			bar.Open = *prices.Open[i]
		}
		if i < len(prices.High) && prices.High[i] != nil {
			bar.High = *prices.High[i]
		}
		if i < len(prices.Low) && prices.Low[i] != nil {
			bar.Low = *prices.Low[i]
		}
		if i < len(prices.Volume) && prices.Volume[i] != nil {
			bar.Volume = *prices.Volume[i]
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

// Quote はv7/finance/quoteエンドポイントから1銘柄の補足データを取得します。
func (y *YahooMarket) Quote(ctx context.Context, symbol string) (entity.QuoteFacts, error) {
	q := url.Values{}
	q.Set("symbols", symbol)

	u := fmt.Sprintf("%s/v7/finance/quote?%s", y.cfg.BaseURL, q.Encode())

	var body dto.QuoteResponse
	if err := y.getJSON(ctx, u, &body); err != nil {
		return entity.QuoteFacts{}, err
	}
	if body.QuoteResponse.Error != nil {
		return entity.QuoteFacts{}, fmt.Errorf("yahoo: %s", body.QuoteResponse.Error.Description)
	}
	if len(body.QuoteResponse.Result) == 0 {
		return entity.QuoteFacts{}, fmt.Errorf("yahoo: no quote for %s", symbol)
	}

	item := body.QuoteResponse.Result[0]
	return entity.QuoteFacts{
		ShortName:       item.ShortName,
		LongName:        item.LongName,
		Week52High:      item.FiftyTwoWeekHigh,
		Week52Low:       item.FiftyTwoWeekLow,
		TrailingPE:      item.TrailingPE,
		ForwardPE:       item.ForwardPE,
		PreMarketPrice:  item.PreMarketPrice,
		PostMarketPrice: item.PostMarketPrice,
	}, nil
}

// Search はv1/finance/searchエンドポイントでフリーテキスト検索を行います。
// シンボルを持たないマッチ（ニュースなど）はスキップされます。
func (y *YahooMarket) Search(ctx context.Context, query string, limit int) ([]entity.SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("quotesCount", strconv.Itoa(limit))
	q.Set("newsCount", "0")

	u := fmt.Sprintf("%s/v1/finance/search?%s", y.cfg.BaseURL, q.Encode())

	var body dto.SearchResponse
	if err := y.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}

	results := make([]entity.SearchResult, 0, len(body.Quotes))
	for _, item := range body.Quotes {
		if item.Symbol == "" {
			continue
		}
		name := item.ShortName
		if name == "" {
			name = item.LongName
		}
		longName := item.LongName
		if longName == "" {
			longName = item.ShortName
		}
		results = append(results, entity.SearchResult{
			Ticker:   item.Symbol,
			Name:     name,
			LongName: longName,
			Exchange: item.Exchange,
			Type:     item.QuoteType,
		})
	}
	return results, nil
}
