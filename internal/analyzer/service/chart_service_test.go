package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idx-market-intel/internal/analyzer/repository"
	"idx-market-intel/internal/entity"
	"idx-market-intel/pkg/cache"
	"idx-market-intel/pkg/logger"
)

func TestIsSuspended(t *testing.T) {
	tests := []struct {
		name    string
		volumes []float64
		want    bool
	}{
		{name: "no history", volumes: nil, want: true},
		{name: "last five sessions without volume", volumes: []float64{100, 0, 0, 0, 0, 0}, want: true},
		{name: "trading in the last five sessions", volumes: []float64{0, 0, 0, 0, 10}, want: false},
		{name: "short history without volume", volumes: []float64{0, 0}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSuspended(volumeBars(tt.volumes...)))
		})
	}
}

func TestBuildChart(t *testing.T) {
	bars := volumeBars(10, 20, 30)
	bars[0].Close, bars[1].Close, bars[2].Close = 100, 110, 121.456

	resp := BuildChart("BBCA.JK", bars, true)

	assert.Equal(t, "BBCA.JK", resp.Ticker)
	assert.True(t, resp.Syariah)
	assert.False(t, resp.Suspend)
	require.Len(t, resp.Data, 3)

	first := resp.Data[0]
	assert.Equal(t, "2024-01-01", first.Date)
	assert.Equal(t, 100.0, first.EMA20)
	assert.Equal(t, 100.0, first.EMA50)

	last := resp.Data[2]
	assert.Equal(t, 121.46, last.Close)
	assert.Equal(t, last.Close, last.Price)
	assert.Equal(t, int64(30), last.Volume)
	// bias-corrected EMA stays between the first and last close
	assert.Greater(t, last.EMA20, 100.0)
	assert.Less(t, last.EMA20, 121.46)
	assert.Greater(t, last.EMA20, last.EMA50)
}

func TestBuildChart_Empty(t *testing.T) {
	resp := BuildChart("XXXX.JK", nil, false)
	assert.True(t, resp.Suspend)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
}

func TestChartService_Chart(t *testing.T) {
	market := &fakeMarketRepo{bars: trendBars(30)}
	mem := cache.NewMemory(time.Minute, time.Minute)
	svc := NewChartService(testConfig(), logger.NewNop(), market, fakeSyariahRepo{"TLKM.JK": true}, mem)

	resp, err := svc.Chart(context.Background(), "tlkm")
	require.NoError(t, err)
	assert.Equal(t, "TLKM.JK", resp.Ticker)
	assert.True(t, resp.Syariah)
	assert.Len(t, resp.Data, 30)
	assert.Equal(t, "1y", market.lastPeriod.Load())

	_, err = svc.Chart(context.Background(), "TLKM.JK")
	require.NoError(t, err)
	assert.Equal(t, int32(1), market.historyCalls.Load())
	assert.Equal(t, 1, mem.ItemCount())
}

func TestChartService_Chart_NoData(t *testing.T) {
	svc := NewChartService(testConfig(), logger.NewNop(), &fakeMarketRepo{barsErr: repository.ErrNoData}, fakeSyariahRepo{}, nil)

	resp, err := svc.Chart(context.Background(), "ABCD")
	require.NoError(t, err)
	assert.True(t, resp.Suspend)
	assert.Empty(t, resp.Data)
}

func TestChartService_Chart_UpstreamError(t *testing.T) {
	svc := NewChartService(testConfig(), logger.NewNop(), &fakeMarketRepo{barsErr: errors.New("boom")}, fakeSyariahRepo{}, nil)

	_, err := svc.Chart(context.Background(), "ABCD")
	assert.Error(t, err)
}

func quarterlyStatements(currency string) entity.FinancialStatements {
	q := func(m time.Month) time.Time { return time.Date(2024, m, 30, 0, 0, 0, 0, time.UTC) }
	return entity.FinancialStatements{
		FinancialCurrency: currency,
		PriceCurrency:     "IDR",
		Income: []entity.IncomeStatement{
			{EndDate: q(time.June), Revenue: ptr(100), NetIncome: ptr(10)},
			{EndDate: q(time.September), Revenue: ptr(110), NetIncome: ptr(12)},
		},
		Balance: []entity.BalanceSheet{
			{EndDate: q(time.September), TotalAssets: ptr(300), TotalLiabilities: ptr(100)},
		},
		Cashflow: []entity.CashflowStatement{
			{EndDate: q(time.June), Operating: ptr(50), Investing: ptr(-10), Financing: ptr(-5)},
			{EndDate: q(time.September), Operating: ptr(60), Investing: ptr(-20), Financing: ptr(5)},
		},
	}
}

func TestChartService_Fundamental(t *testing.T) {
	market := &fakeMarketRepo{statements: quarterlyStatements("IDR")}
	mem := cache.NewMemory(time.Minute, time.Minute)
	svc := NewChartService(testConfig(), logger.NewNop(), market, nil, mem)

	resp, err := svc.Fundamental(context.Background(), "bbca")
	require.NoError(t, err)
	assert.Equal(t, "BBCA.JK", resp.Ticker)
	assert.Equal(t, "IDR", resp.Currency)
	assert.False(t, resp.Converted)
	assert.Equal(t, 1.0, resp.FXRate)
	require.Len(t, resp.Chart, 2)
	assert.Equal(t, 10.0, resp.Analytics.RevenueGrowth)
	assert.Equal(t, 20.0, resp.Analytics.ProfitGrowth)
	assert.Equal(t, 90, resp.Score.Score)

	_, err = svc.Fundamental(context.Background(), "BBCA.JK")
	require.NoError(t, err)
	assert.Equal(t, int32(1), market.stmtCalls.Load())
	assert.Equal(t, int32(0), market.historyCalls.Load())
}

func TestChartService_ConvertsUSDReports(t *testing.T) {
	fx := volumeBars(1, 1)
	fx[0].Close, fx[1].Close = 15900, 16250.504
	market := &fakeMarketRepo{statements: quarterlyStatements("USD"), fxBars: fx}
	mem := cache.NewMemory(time.Minute, time.Minute)
	svc := NewChartService(testConfig(), logger.NewNop(), market, nil, mem)

	balance, err := svc.Balance(context.Background(), "ADRO")
	require.NoError(t, err)
	assert.True(t, balance.Converted)
	assert.Equal(t, "USD", balance.FinancialCurrency)
	assert.Equal(t, "IDR", balance.Currency)
	assert.Equal(t, 16250.5, balance.FXRate)
	require.Len(t, balance.Chart, 1)
	assert.Equal(t, int64(300*16250.5), balance.Chart[0].TotalAssets)
	assert.Equal(t, "SEHAT", balance.Score.Status)

	cashflow, err := svc.Cashflow(context.Background(), "ADRO")
	require.NoError(t, err)
	assert.Equal(t, 16250.5, cashflow.FXRate)
	assert.Equal(t, 80, cashflow.Score.Score)

	// the rate is fetched once and shared through the cache
	assert.Equal(t, int32(1), market.historyCalls.Load())
}

func TestChartService_StatementErrors(t *testing.T) {
	t.Run("no statements", func(t *testing.T) {
		market := &fakeMarketRepo{stmtErr: repository.ErrNoData}
		svc := NewChartService(testConfig(), logger.NewNop(), market, nil, nil)

		_, err := svc.Balance(context.Background(), "ABCD")
		assert.ErrorIs(t, err, repository.ErrNoData)
	})

	t.Run("no usable income quarter", func(t *testing.T) {
		st := quarterlyStatements("IDR")
		st.Income = []entity.IncomeStatement{{EndDate: time.Now(), Revenue: ptr(0), NetIncome: ptr(5)}}
		mem := cache.NewMemory(time.Minute, time.Minute)
		svc := NewChartService(testConfig(), logger.NewNop(), &fakeMarketRepo{statements: st}, nil, mem)

		_, err := svc.Fundamental(context.Background(), "ABCD")
		assert.ErrorIs(t, err, repository.ErrNoData)
		assert.Equal(t, 0, mem.ItemCount())
	})

	t.Run("missing fx rate", func(t *testing.T) {
		svc := NewChartService(testConfig(), logger.NewNop(), &fakeMarketRepo{statements: quarterlyStatements("USD")}, nil, nil)

		_, err := svc.Cashflow(context.Background(), "ADRO")
		assert.ErrorIs(t, err, repository.ErrNoData)
	})
}
