package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"idx-market-intel/internal/analyzer/config"
	"idx-market-intel/internal/entity"
	"idx-market-intel/internal/signal/fundamental"
	"idx-market-intel/pkg/logger"
	"idx-market-intel/pkg/utils"
)

const (
	fundamentalModules = "price,summaryDetail,defaultKeyStatistics,financialData,assetProfile"
	analystModules     = "recommendationTrend,financialData"
	statementModules   = "price,financialData,incomeStatementHistoryQuarterly,balanceSheetHistoryQuarterly,cashflowStatementHistoryQuarterly"
	userAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

var errUnauthorized = errors.New("unauthorized")

// MarketDataRepository reads prices, fundamentals and analyst ratings.
type MarketDataRepository interface {
	GetPriceHistory(ctx context.Context, symbol, period, interval string) ([]entity.PriceBar, error)
	GetFundamentals(ctx context.Context, symbol string) (fundamental.Profile, error)
	GetAnalystRatings(ctx context.Context, symbol string) (entity.AnalystRatings, error)
	GetFinancialStatements(ctx context.Context, symbol string) (entity.FinancialStatements, error)
}

type yahooFinanceRepository struct {
	cfg            config.YahooFinance
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter

	mu    sync.Mutex
	crumb string
}

// NewYahooFinanceRepository creates a Yahoo Finance backed MarketDataRepository.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) MarketDataRepository {
	yc := cfg.YahooFinance
	perMinute := yc.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	timeout := yc.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	secondsPerRequest := time.Minute / time.Duration(perMinute)
	jar, _ := cookiejar.New(nil)

	return &yahooFinanceRepository{
		cfg: yc,
		log: log,
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

func (r *yahooFinanceRepository) GetPriceHistory(ctx context.Context, symbol, period, interval string) ([]entity.PriceBar, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s&includePrePost=false",
		r.cfg.BaseURL, url.PathEscape(symbol), url.QueryEscape(period), url.QueryEscape(interval))

	body, err := r.sendRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var resp yahooChartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode chart response: %w", err)
	}
	if resp.Chart.Error != nil {
		if resp.Chart.Error.Code == "Not Found" {
			return nil, fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
		}
		return nil, fmt.Errorf("yahoo chart error: %s", resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoData)
	}

	result := resp.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	at := func(s []*float64, i int) (float64, bool) {
		if i >= len(s) || s[i] == nil {
			return 0, false
		}
		return *s[i], true
	}

	loc := utils.GetWibTimeLocation()
	byDate := make(map[string]entity.PriceBar, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, okO := at(quote.Open, i)
		h, okH := at(quote.High, i)
		l, okL := at(quote.Low, i)
		c, okC := at(quote.Close, i)
		v, okV := at(quote.Volume, i)
		// a row with any missing field is dropped whole
		if !okO || !okH || !okL || !okC || !okV {
			continue
		}

		t := time.Unix(ts, 0).In(loc)
		if interval == "1d" || interval == "1wk" || interval == "1mo" {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		}
		byDate[t.Format(time.RFC3339)] = entity.PriceBar{Date: t, Open: o, High: h, Low: l, Close: c, Volume: v}
	}

	bars := make([]entity.PriceBar, 0, len(byDate))
	for _, b := range byDate {
		bars = append(bars, b)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	r.log.DebugContext(ctx, "Fetched price history",
		logger.StringField("symbol", symbol),
		logger.StringField("period", period),
		logger.StringField("interval", interval),
		logger.IntField("bars", len(bars)),
	)
	return bars, nil
}

func (r *yahooFinanceRepository) GetFundamentals(ctx context.Context, symbol string) (fundamental.Profile, error) {
	qs, err := r.quoteSummary(ctx, symbol, fundamentalModules)
	if err != nil {
		return fundamental.Profile{}, err
	}

	p := fundamental.Profile{Symbol: symbol}
	if qs.Price != nil {
		p.Price = qs.Price.RegularMarketPrice.Raw
	}
	if qs.AssetProfile != nil {
		p.Sector = qs.AssetProfile.Sector
	}
	if qs.SummaryDetail != nil {
		p.Ratios.PER = qs.SummaryDetail.TrailingPE.Raw
		p.Ratios.DivYieldPct = scale(qs.SummaryDetail.DividendYield.Raw, 100)
	}
	if qs.DefaultKeyStatistics != nil {
		p.Ratios.PBV = qs.DefaultKeyStatistics.PriceToBook.Raw
	}
	if qs.FinancialData != nil {
		if p.Price == nil {
			p.Price = qs.FinancialData.CurrentPrice.Raw
		}
		// Yahoo reports debt-to-equity in percent and ROE as a fraction.
		p.Ratios.DER = scale(qs.FinancialData.DebtToEquity.Raw, 0.01)
		p.Ratios.ROEPct = scale(qs.FinancialData.ReturnOnEquity.Raw, 100)
	}

	if p.Price == nil {
		bars, err := r.GetPriceHistory(ctx, symbol, "5d", "1d")
		if err == nil && len(bars) > 0 {
			p.Price = utils.ToPointer(bars[len(bars)-1].Close)
		}
	}
	return p, nil
}

func (r *yahooFinanceRepository) GetAnalystRatings(ctx context.Context, symbol string) (entity.AnalystRatings, error) {
	qs, err := r.quoteSummary(ctx, symbol, analystModules)
	if err != nil {
		return entity.AnalystRatings{}, err
	}

	var ratings entity.AnalystRatings
	if qs.RecommendationTrend == nil || len(qs.RecommendationTrend.Trend) == 0 {
		return ratings, fmt.Errorf("%s recommendation trend: %w", symbol, ErrNoData)
	}
	t := qs.RecommendationTrend.Trend[0]
	for _, candidate := range qs.RecommendationTrend.Trend {
		if candidate.Period == "0m" {
			t = candidate
			break
		}
	}
	ratings.StrongBuy, ratings.Buy, ratings.Hold, ratings.Sell, ratings.StrongSell = t.StrongBuy, t.Buy, t.Hold, t.Sell, t.StrongSell

	if qs.FinancialData != nil {
		ratings.TargetPrice = qs.FinancialData.TargetMeanPrice.Raw
		ratings.CurrentPrice = qs.FinancialData.CurrentPrice.Raw
	}
	return ratings, nil
}

func (r *yahooFinanceRepository) GetFinancialStatements(ctx context.Context, symbol string) (entity.FinancialStatements, error) {
	qs, err := r.quoteSummary(ctx, symbol, statementModules)
	if err != nil {
		return entity.FinancialStatements{}, err
	}

	st := entity.FinancialStatements{FinancialCurrency: "IDR", PriceCurrency: "IDR"}
	if qs.Price != nil && qs.Price.Currency != "" {
		st.PriceCurrency = qs.Price.Currency
	}
	if qs.FinancialData != nil && qs.FinancialData.FinancialCurrency != "" {
		st.FinancialCurrency = qs.FinancialData.FinancialCurrency
	}

	if m := qs.IncomeStatementHistoryQuarterly; m != nil {
		for _, s := range m.Statements {
			if s.EndDate.Raw == nil {
				continue
			}
			st.Income = append(st.Income, entity.IncomeStatement{
				EndDate:   endDate(s.EndDate),
				Revenue:   s.TotalRevenue.Raw,
				NetIncome: s.NetIncome.Raw,
			})
		}
		sort.Slice(st.Income, func(i, j int) bool { return st.Income[i].EndDate.Before(st.Income[j].EndDate) })
	}
	if m := qs.BalanceSheetHistoryQuarterly; m != nil {
		for _, s := range m.Statements {
			if s.EndDate.Raw == nil {
				continue
			}
			st.Balance = append(st.Balance, entity.BalanceSheet{
				EndDate:          endDate(s.EndDate),
				TotalAssets:      s.TotalAssets.Raw,
				TotalLiabilities: s.TotalLiab.Raw,
			})
		}
		sort.Slice(st.Balance, func(i, j int) bool { return st.Balance[i].EndDate.Before(st.Balance[j].EndDate) })
	}
	if m := qs.CashflowStatementHistoryQuarterly; m != nil {
		for _, s := range m.Statements {
			if s.EndDate.Raw == nil {
				continue
			}
			st.Cashflow = append(st.Cashflow, entity.CashflowStatement{
				EndDate:   endDate(s.EndDate),
				Operating: s.Operating.Raw,
				Investing: s.Investing.Raw,
				Financing: s.Financing.Raw,
			})
		}
		sort.Slice(st.Cashflow, func(i, j int) bool { return st.Cashflow[i].EndDate.Before(st.Cashflow[j].EndDate) })
	}

	if len(st.Income) == 0 && len(st.Balance) == 0 && len(st.Cashflow) == 0 {
		return st, fmt.Errorf("%s financial statements: %w", symbol, ErrNoData)
	}
	return st, nil
}

func (r *yahooFinanceRepository) quoteSummary(ctx context.Context, symbol, modules string) (*yahooQuoteSummary, error) {
	body, err := r.quoteSummaryBody(ctx, symbol, modules, false)
	if errors.Is(err, errUnauthorized) {
		body, err = r.quoteSummaryBody(ctx, symbol, modules, true)
	}
	if err != nil {
		return nil, err
	}

	var resp yahooQuoteSummaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode quoteSummary response: %w", err)
	}
	if resp.QuoteSummary.Error != nil {
		if resp.QuoteSummary.Error.Code == "Not Found" {
			return nil, fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
		}
		return nil, fmt.Errorf("yahoo quoteSummary error: %s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoData)
	}
	return &resp.QuoteSummary.Result[0], nil
}

func (r *yahooFinanceRepository) quoteSummaryBody(ctx context.Context, symbol, modules string, refresh bool) ([]byte, error) {
	crumb, err := r.getCrumb(ctx, refresh)
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s&crumb=%s",
		r.cfg.BaseURL, url.PathEscape(symbol), url.QueryEscape(modules), url.QueryEscape(crumb))
	return r.sendRequest(ctx, endpoint)
}

// getCrumb primes the cookie jar and fetches the crumb quoteSummary requires.
func (r *yahooFinanceRepository) getCrumb(ctx context.Context, refresh bool) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.crumb != "" && !refresh {
		return r.crumb, nil
	}

	if r.cfg.CookieURL != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.CookieURL, nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("User-Agent", userAgent)
		resp, err := r.httpClient.Do(req)
		if err != nil {
			r.log.WarnContext(ctx, "Failed to prime Yahoo cookie", logger.ErrorField(err))
		} else {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}
	}

	body, err := r.sendRequest(ctx, r.cfg.BaseURL+"/v1/test/getcrumb")
	if err != nil {
		return "", fmt.Errorf("failed to get crumb: %w", err)
	}
	crumb := strings.TrimSpace(string(body))
	if crumb == "" || strings.HasPrefix(crumb, "{") {
		return "", errors.New("failed to get crumb: empty crumb")
	}
	r.crumb = crumb
	return crumb, nil
}

func (r *yahooFinanceRepository) sendRequest(ctx context.Context, endpoint string) ([]byte, error) {
	fields := []zap.Field{
		zap.String("url", endpoint),
		zap.Int("max_request_per_minute", r.cfg.MaxRequestPerMinute),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to create new http request", fields...)
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to Yahoo Finance API", fields...)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to read response body from Yahoo Finance API", fields...)
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		// chart and quoteSummary still carry a JSON error body on 404
		if len(body) > 0 && body[0] == '{' {
			return body, nil
		}
		return nil, ErrSymbolNotFound
	case resp.StatusCode != http.StatusOK:
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.ErrorContext(ctx, "Received non-OK response from Yahoo Finance API", fields...)
		return nil, fmt.Errorf("yahoo finance: unexpected status %d", resp.StatusCode)
	}
	return body, nil
}

// endDate converts a quoteSummary epoch-seconds date to midnight UTC.
func endDate(v yahooValue) time.Time {
	return time.Unix(int64(*v.Raw), 0).UTC().Truncate(24 * time.Hour)
}

func scale(v *float64, factor float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v * factor
	return &out
}
