// Package marketdata implements the MarketData collaborator against a
// Yahoo-style chart API, with a cache in front and a token-bucket rate
// limit on the upstream.
package marketdata

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"SignalDesk/internal/domain/models"
	"SignalDesk/internal/domain/repository"
	"SignalDesk/internal/indicator"
	"SignalDesk/internal/service/ratelimit"
	"SignalDesk/pkg/cache"
	phttp "SignalDesk/pkg/http"
	"SignalDesk/pkg/logger"
	xutil "SignalDesk/pkg/util"
)

// Config configures the chart client.
type Config struct {
	BaseURL    string
	VIXSymbol  string
	GEXURL     string
	Timeout    time.Duration
	HistoryTTL time.Duration
	ContextTTL time.Duration
	RateCap    float64
	RatePerSec float64
}

// Client fetches candle history and market context over HTTP.
type Client struct {
	cfg     Config
	http    *phttp.Client
	cache   cache.Service
	limiter *ratelimit.Limiter
	log     *logger.Logger
}

func New(cfg Config, cacheSvc cache.Service, log *logger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	}
	if cfg.VIXSymbol == "" {
		cfg.VIXSymbol = "^VIX"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.HistoryTTL == 0 {
		cfg.HistoryTTL = 2 * time.Minute
	}
	if cfg.ContextTTL == 0 {
		cfg.ContextTTL = 5 * time.Minute
	}
	if cfg.RateCap == 0 {
		cfg.RateCap = 5
	}
	if cfg.RatePerSec == 0 {
		cfg.RatePerSec = 2
	}
	return &Client{
		cfg:     cfg,
		http:    phttp.NewClient(phttp.WithTimeout(cfg.Timeout)),
		cache:   cacheSvc,
		limiter: ratelimit.New(),
		log:     log,
	}
}

// chartResponse mirrors the chart API payload; quote arrays may carry
// nulls which decode to zero.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History fetches an ascending candle series for symbol. Bars with a
// zero close (nulls upstream) are dropped.
func (c *Client) History(ctx context.Context, symbol string, tf repository.Timeframe, days int) ([]models.Candle, error) {
	if days <= 0 {
		days = repository.LookbackDays(tf)
	}
	key := cache.Key("candles", symbol, tf, days)
	if c.cache != nil {
		var cached []models.Candle
		if err := c.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	candles, err := c.fetchChart(ctx, symbol, string(tf), days)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateSeries(candles); err != nil {
		return nil, fmt.Errorf("history %s %s: %w", symbol, tf, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, candles, c.cfg.HistoryTTL); err != nil {
			c.log.Warn("history cache set failed", logger.String("key", key), logger.Error(err))
		}
	}
	return candles, nil
}

// Context fetches market-wide state: the VIX level with its derived
// reversion stats, and (when a GEX endpoint is configured) the dealer
// gamma estimate. Missing pieces degrade to zero values.
func (c *Client) Context(ctx context.Context) (models.MarketContext, error) {
	key := cache.Key("market", "context")
	if c.cache != nil {
		var cached models.MarketContext
		if err := c.cache.Get(ctx, key, &cached); err == nil && cached.VIX > 0 {
			return cached, nil
		}
	}

	var mkt models.MarketContext
	vix, err := c.fetchChart(ctx, c.cfg.VIXSymbol, "1d", 30)
	if err != nil {
		return mkt, fmt.Errorf("vix history: %w", err)
	}
	if len(vix) > 0 {
		closes := models.Closes(vix)
		mkt.VIX = closes[len(closes)-1]
		mkt.VIXSMA10 = indicator.SMA(closes, 10)
		mkt.VIXRSI5 = indicator.RSI(closes, 5)
	}

	if c.cfg.GEXURL != "" {
		if gex, zeroGamma, err := c.fetchGEX(ctx); err != nil {
			c.log.Warn("gex fetch failed", logger.Error(err))
		} else {
			mkt.GEX = gex
			mkt.ZeroGamma = zeroGamma
		}
	}

	if c.cache != nil {
		_ = c.cache.Set(ctx, key, mkt, c.cfg.ContextTTL)
	}
	return mkt, nil
}

// chartRange turns a lookback in days into an explicit period1/period2
// window, with both ends snapped to the interval's bucket so repeated
// fetches within the same bar hit the cacheable URL.
func chartRange(now time.Time, days int, interval string) (int64, int64) {
	from, to := xutil.AlignFromTo(now.AddDate(0, 0, -days), now, interval)
	return from.Unix(), to.Unix()
}

func (c *Client) fetchChart(ctx context.Context, symbol, interval string, days int) ([]models.Candle, error) {
	if err := c.waitForToken(ctx, "chart"); err != nil {
		return nil, err
	}

	period1, period2 := chartRange(time.Now().UTC(), days, interval)
	var resp chartResponse
	err := c.http.SendAndParse(ctx, &phttp.RequestOptions{
		Method: phttp.MethodGet,
		URL:    fmt.Sprintf("%s/%s", c.cfg.BaseURL, symbol),
		QueryParams: map[string][]string{
			"interval": {interval},
			"period1":  {strconv.FormatInt(period1, 10)},
			"period2":  {strconv.FormatInt(period2, 10)},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("%w: chart %s: %v", repository.ErrUpstream, symbol, err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart %s: %s (%s)", symbol, resp.Chart.Error.Description, resp.Chart.Error.Code)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart %s: empty result", symbol)
	}

	result := resp.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	candles := make([]models.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == 0 {
			continue
		}
		candles = append(candles, models.Candle{
			Timestamp: time.Unix(ts, 0).UTC(),
			Open:      quote.Open[i],
			High:      quote.High[i],
			Low:       quote.Low[i],
			Close:     quote.Close[i],
			Volume:    quote.Volume[i],
		})
	}
	return candles, nil
}

type gexResponse struct {
	GEX       float64 `json:"gex"`
	ZeroGamma float64 `json:"zeroGamma"`
}

func (c *Client) fetchGEX(ctx context.Context) (float64, float64, error) {
	if err := c.waitForToken(ctx, "gex"); err != nil {
		return 0, 0, err
	}
	var resp gexResponse
	err := c.http.SendAndParse(ctx, &phttp.RequestOptions{
		Method: phttp.MethodGet,
		URL:    c.cfg.GEXURL,
	}, &resp)
	if err != nil {
		return 0, 0, err
	}
	return resp.GEX, resp.ZeroGamma, nil
}

// waitForToken polls the token bucket until a slot frees or ctx ends.
func (c *Client) waitForToken(ctx context.Context, key string) error {
	for !c.limiter.Allow(key, c.cfg.RateCap, c.cfg.RatePerSec) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
	return nil
}
