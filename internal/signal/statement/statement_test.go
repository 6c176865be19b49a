package statement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idx-market-intel/internal/entity"
	"idx-market-intel/pkg/utils"
)

func f(v float64) *float64 { return utils.ToPointer(v) }

func quarter(i int) time.Time {
	return time.Date(2024, time.Month(3*i+4), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

func incomeQuarters() []entity.IncomeStatement {
	return []entity.IncomeStatement{
		{EndDate: quarter(0), Revenue: f(100), NetIncome: f(10)},
		{EndDate: quarter(1), Revenue: nil, NetIncome: f(11)},
		{EndDate: quarter(2), Revenue: f(0), NetIncome: f(1)},
		{EndDate: quarter(3), Revenue: f(110), NetIncome: f(12)},
		{EndDate: quarter(4), Revenue: f(121), NetIncome: f(15)},
	}
}

func TestIncome(t *testing.T) {
	points, growth, ok := Income(incomeQuarters(), 1)
	require.True(t, ok)
	require.Len(t, points, 3)

	assert.Equal(t, "2024-03-31", points[0].Date)
	assert.Equal(t, int64(100), points[0].Revenue)
	assert.Equal(t, 10.0, points[0].NetMargin)
	assert.Equal(t, 10.91, points[1].NetMargin)
	assert.Equal(t, 12.4, points[2].NetMargin)

	assert.Equal(t, 10.0, growth.RevenueGrowth)
	assert.Equal(t, 25.0, growth.ProfitGrowth)
	assert.Equal(t, 11.1, growth.AvgMargin)
	assert.Equal(t, 3, growth.PositiveProfit)
}

func TestIncome_ConvertsAmountsNotMargins(t *testing.T) {
	points, growth, ok := Income(incomeQuarters(), 16000)
	require.True(t, ok)

	assert.Equal(t, int64(1_936_000), points[2].Revenue)
	assert.Equal(t, int64(240_000), points[2].NetIncome)
	assert.Equal(t, 12.4, points[2].NetMargin)
	assert.Equal(t, 10.0, growth.RevenueGrowth)
}

func TestIncome_GrowthNeedsNonZeroPrevious(t *testing.T) {
	stmts := []entity.IncomeStatement{
		{EndDate: quarter(0), Revenue: f(100), NetIncome: f(10)},
		{EndDate: quarter(1), Revenue: f(100), NetIncome: f(0)},
		{EndDate: quarter(2), Revenue: f(120), NetIncome: f(5)},
	}

	_, growth, ok := Income(stmts, 1)
	require.True(t, ok)
	assert.Equal(t, 20.0, growth.RevenueGrowth)
	assert.Equal(t, 0.0, growth.ProfitGrowth)
	assert.Equal(t, 2, growth.PositiveProfit)
}

func TestIncome_NothingUsable(t *testing.T) {
	_, _, ok := Income([]entity.IncomeStatement{{EndDate: quarter(0), Revenue: f(0), NetIncome: f(5)}}, 1)
	assert.False(t, ok)

	_, _, ok = Income(nil, 1)
	assert.False(t, ok)
}

func TestScoreIncome(t *testing.T) {
	tests := []struct {
		name    string
		growth  Growth
		score   int
		verdict string
		notes   []string
	}{
		{
			name:    "growing and consistent",
			growth:  Growth{RevenueGrowth: 10, ProfitGrowth: 25, AvgMargin: 11.1, PositiveProfit: 3},
			score:   100,
			verdict: VerdictHealthy,
			notes:   []string{"Revenue bertumbuh", "Laba bertumbuh", "Margin sehat", "Profit konsisten"},
		},
		{
			name:    "revenue up profit down",
			growth:  Growth{RevenueGrowth: 6, ProfitGrowth: 3, AvgMargin: 12, PositiveProfit: 2},
			score:   50,
			verdict: VerdictNeutral,
			notes:   []string{"Revenue bertumbuh", "Laba melemah", "Margin sehat"},
		},
		{
			name:    "five percent is not growth",
			growth:  Growth{RevenueGrowth: 5, ProfitGrowth: 5, AvgMargin: 10},
			score:   0,
			verdict: VerdictPoor,
			notes:   []string{"Revenue stagnan", "Laba melemah", "Margin tipis"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ScoreIncome(tt.growth)
			assert.Equal(t, tt.score, v.Score)
			assert.Equal(t, tt.verdict, v.Verdict)
			assert.Equal(t, tt.notes, v.Notes)
		})
	}
}

func TestBalance(t *testing.T) {
	points := Balance([]entity.BalanceSheet{
		{EndDate: quarter(0), TotalAssets: f(300), TotalLiabilities: f(100)},
		{EndDate: quarter(1), TotalAssets: nil, TotalLiabilities: f(100)},
		{EndDate: quarter(2), TotalAssets: f(100), TotalLiabilities: f(100)},
	}, 2)

	require.Len(t, points, 2)
	assert.Equal(t, BalancePoint{Date: "2024-03-31", TotalAssets: 600, TotalLiabilities: 200, Equity: 400, DebtEquityRatio: 0.5}, points[0])
	assert.Equal(t, UnboundedDER, points[1].DebtEquityRatio)
	assert.Equal(t, int64(0), points[1].Equity)
}

func TestScoreBalance(t *testing.T) {
	tests := []struct {
		name   string
		latest BalancePoint
		score  int
		status string
		notes  []string
	}{
		{
			name:   "low leverage",
			latest: BalancePoint{TotalAssets: 300, TotalLiabilities: 100, Equity: 200, DebtEquityRatio: 0.5},
			score:  100,
			status: StatusHealthy,
			notes:  []string{"DER sehat (<1)", "Ekuitas positif", "Aset > Liabilitas"},
		},
		{
			name:   "moderate leverage",
			latest: BalancePoint{TotalAssets: 200, TotalLiabilities: 100, Equity: 100, DebtEquityRatio: 1},
			score:  80,
			status: StatusHealthy,
			notes:  []string{"DER moderat (1-2)", "Ekuitas positif", "Aset > Liabilitas"},
		},
		{
			name:   "high leverage",
			latest: BalancePoint{TotalAssets: 130, TotalLiabilities: 100, Equity: 30, DebtEquityRatio: 3.33},
			score:  50,
			status: StatusCaution,
			notes:  []string{"DER tinggi (>2)", "Ekuitas positif", "Aset > Liabilitas"},
		},
		{
			name:   "zero equity",
			latest: BalancePoint{TotalAssets: 100, TotalLiabilities: 100, DebtEquityRatio: UnboundedDER},
			score:  0,
			status: StatusDanger,
			notes:  []string{"DER tinggi (>2)", "Ekuitas negatif"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := ScoreBalance(tt.latest)
			assert.Equal(t, tt.score, st.Score)
			assert.Equal(t, tt.status, st.Status)
			assert.Equal(t, tt.notes, st.Notes)
		})
	}
}

func TestCashflow(t *testing.T) {
	points := Cashflow([]entity.CashflowStatement{
		{EndDate: quarter(0), Operating: f(100), Investing: f(-50), Financing: f(-20)},
		{EndDate: quarter(1), Operating: f(90), Investing: nil, Financing: f(-20)},
		{EndDate: quarter(2), Operating: f(150), Investing: f(-30), Financing: f(-10)},
	}, 1)

	require.Len(t, points, 2)
	assert.Equal(t, "2024-09-30", points[1].Date)

	st := ScoreCashflow(points)
	assert.Equal(t, 100, st.Score)
	assert.Equal(t, StatusHealthy, st.Status)
	assert.Equal(t, []string{"OCF positif", "OCF bertumbuh", "Investasi ekspansi (CFI negatif)", "Pelunasan utang/dividen"}, st.Notes)
}

func TestScoreCashflow_SingleWeakQuarter(t *testing.T) {
	st := ScoreCashflow([]CashflowPoint{{Operating: -10, Investing: 5, Financing: 5}})

	assert.Equal(t, 0, st.Score)
	assert.Equal(t, StatusDanger, st.Status)
	assert.Equal(t, []string{"OCF negatif", "Minim investasi", "Penambahan utang / right issue"}, st.Notes)
}
