// Package statement turns quarterly financial statements into chart series and health scores.
// Amounts are converted to IDR with the supplied rate before they are published.
package statement

import (
	"github.com/shopspring/decimal"

	"idx-market-intel/internal/entity"
)

const (
	dateLayout = "2006-01-02"

	VerdictHealthy = "SEHAT"
	VerdictNeutral = "NETRAL"
	VerdictPoor    = "BURUK"

	StatusHealthy = "SEHAT"
	StatusCaution = "WASPADA"
	StatusDanger  = "BAHAYA"

	// UnboundedDER is reported when equity is exactly zero.
	UnboundedDER = 99.0
)

// IncomePoint is one quarter of revenue and profit.
type IncomePoint struct {
	Date      string  `json:"date"`
	Revenue   int64   `json:"revenue"`
	NetIncome int64   `json:"net_income"`
	NetMargin float64 `json:"net_margin"`
}

// Growth summarises the income series. Growth figures compare the last two quarters.
type Growth struct {
	RevenueGrowth  float64 `json:"rev_growth"`
	ProfitGrowth   float64 `json:"profit_growth"`
	AvgMargin      float64 `json:"avg_margin"`
	PositiveProfit int     `json:"positive_profit"`
}

// Verdict is the income health score.
type Verdict struct {
	Score   int      `json:"score"`
	Verdict string   `json:"verdict"`
	Notes   []string `json:"notes"`
}

// BalancePoint is one quarter of the balance sheet.
type BalancePoint struct {
	Date             string  `json:"date"`
	TotalAssets      int64   `json:"total_assets"`
	TotalLiabilities int64   `json:"total_liabilities"`
	Equity           int64   `json:"equity"`
	DebtEquityRatio  float64 `json:"debt_equity_ratio"`
}

// CashflowPoint is one quarter of operating, investing and financing cash flow.
type CashflowPoint struct {
	Date      string `json:"date"`
	Operating int64  `json:"operating"`
	Investing int64  `json:"investing"`
	Financing int64  `json:"financing"`
}

// Status is the balance sheet or cash flow health score.
type Status struct {
	Score  int      `json:"score"`
	Status string   `json:"status"`
	Notes  []string `json:"notes"`
}

// Income builds the revenue/profit series. Quarters missing revenue or net income, or with
// zero revenue, are skipped. ok is false when nothing is left.
func Income(stmts []entity.IncomeStatement, fxRate float64) (points []IncomePoint, growth Growth, ok bool) {
	var (
		margins                 []float64
		prevRev, prevProfit     float64
		revGrowth, profitGrowth float64
	)
	for _, s := range stmts {
		if s.Revenue == nil || s.NetIncome == nil || *s.Revenue == 0 {
			continue
		}
		revenue := *s.Revenue * fxRate
		profit := *s.NetIncome * fxRate
		margin := round2(*s.NetIncome / *s.Revenue * 100)
		margins = append(margins, margin)
		if profit > 0 {
			growth.PositiveProfit++
		}

		revGrowth, profitGrowth = 0, 0
		if prevRev != 0 {
			revGrowth = (revenue - prevRev) / prevRev * 100
		}
		if prevProfit != 0 {
			profitGrowth = (profit - prevProfit) / prevProfit * 100
		}
		prevRev, prevProfit = revenue, profit

		points = append(points, IncomePoint{
			Date:      s.EndDate.Format(dateLayout),
			Revenue:   int64(revenue),
			NetIncome: int64(profit),
			NetMargin: margin,
		})
	}
	if len(points) == 0 {
		return nil, Growth{}, false
	}

	sum := 0.0
	for _, m := range margins {
		sum += m
	}
	growth.RevenueGrowth = round2(revGrowth)
	growth.ProfitGrowth = round2(profitGrowth)
	growth.AvgMargin = round2(sum / float64(len(margins)))
	return points, growth, true
}

// ScoreIncome rates revenue growth, profit growth, margin and profit consistency.
func ScoreIncome(g Growth) Verdict {
	v := Verdict{Notes: []string{}}

	if g.RevenueGrowth > 5 {
		v.Score += 30
		v.Notes = append(v.Notes, "Revenue bertumbuh")
	} else {
		v.Notes = append(v.Notes, "Revenue stagnan")
	}
	if g.ProfitGrowth > 5 {
		v.Score += 40
		v.Notes = append(v.Notes, "Laba bertumbuh")
	} else {
		v.Notes = append(v.Notes, "Laba melemah")
	}
	if g.AvgMargin > 10 {
		v.Score += 20
		v.Notes = append(v.Notes, "Margin sehat")
	} else {
		v.Notes = append(v.Notes, "Margin tipis")
	}
	if g.PositiveProfit >= 3 {
		v.Score += 10
		v.Notes = append(v.Notes, "Profit konsisten")
	}

	switch {
	case v.Score >= 70:
		v.Verdict = VerdictHealthy
	case v.Score >= 40:
		v.Verdict = VerdictNeutral
	default:
		v.Verdict = VerdictPoor
	}
	return v
}

// Balance builds the asset/liability series. Quarters missing either total are skipped.
func Balance(stmts []entity.BalanceSheet, fxRate float64) []BalancePoint {
	var points []BalancePoint
	for _, s := range stmts {
		if s.TotalAssets == nil || s.TotalLiabilities == nil {
			continue
		}
		assets := *s.TotalAssets * fxRate
		liab := *s.TotalLiabilities * fxRate
		equity := assets - liab

		der := UnboundedDER
		if equity != 0 {
			der = round2(liab / equity)
		}
		points = append(points, BalancePoint{
			Date:             s.EndDate.Format(dateLayout),
			TotalAssets:      int64(assets),
			TotalLiabilities: int64(liab),
			Equity:           int64(equity),
			DebtEquityRatio:  der,
		})
	}
	return points
}

// ScoreBalance rates the latest quarter on leverage, equity and asset cover.
func ScoreBalance(latest BalancePoint) Status {
	st := Status{Notes: []string{}}

	switch der := latest.DebtEquityRatio; {
	case der < 1:
		st.Score += 50
		st.Notes = append(st.Notes, "DER sehat (<1)")
	case der < 2:
		st.Score += 30
		st.Notes = append(st.Notes, "DER moderat (1-2)")
	default:
		st.Notes = append(st.Notes, "DER tinggi (>2)")
	}
	if latest.Equity > 0 {
		st.Score += 30
		st.Notes = append(st.Notes, "Ekuitas positif")
	} else {
		st.Notes = append(st.Notes, "Ekuitas negatif")
	}
	if latest.TotalAssets > latest.TotalLiabilities {
		st.Score += 20
		st.Notes = append(st.Notes, "Aset > Liabilitas")
	}

	st.Status = statusFor(st.Score)
	return st
}

// Cashflow builds the cash flow series. Quarters missing any of the three flows are skipped.
func Cashflow(stmts []entity.CashflowStatement, fxRate float64) []CashflowPoint {
	var points []CashflowPoint
	for _, s := range stmts {
		if s.Operating == nil || s.Investing == nil || s.Financing == nil {
			continue
		}
		points = append(points, CashflowPoint{
			Date:      s.EndDate.Format(dateLayout),
			Operating: int64(*s.Operating * fxRate),
			Investing: int64(*s.Investing * fxRate),
			Financing: int64(*s.Financing * fxRate),
		})
	}
	return points
}

// ScoreCashflow rates the latest quarter: positive and growing OCF, investing outflow,
// financing outflow. points must not be empty.
func ScoreCashflow(points []CashflowPoint) Status {
	st := Status{Notes: []string{}}
	last := points[len(points)-1]

	if last.Operating > 0 {
		st.Score += 40
		st.Notes = append(st.Notes, "OCF positif")
	} else {
		st.Notes = append(st.Notes, "OCF negatif")
	}
	if len(points) > 1 && last.Operating > points[len(points)-2].Operating {
		st.Score += 20
		st.Notes = append(st.Notes, "OCF bertumbuh")
	}
	if last.Investing < 0 {
		st.Score += 20
		st.Notes = append(st.Notes, "Investasi ekspansi (CFI negatif)")
	} else {
		st.Notes = append(st.Notes, "Minim investasi")
	}
	if last.Financing < 0 {
		st.Score += 20
		st.Notes = append(st.Notes, "Pelunasan utang/dividen")
	} else {
		st.Notes = append(st.Notes, "Penambahan utang / right issue")
	}

	st.Status = statusFor(st.Score)
	return st
}

func statusFor(score int) string {
	switch {
	case score >= 70:
		return StatusHealthy
	case score >= 40:
		return StatusCaution
	default:
		return StatusDanger
	}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
