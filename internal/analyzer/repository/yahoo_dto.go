package repository

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string   `json:"symbol"`
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// yahooValue is the {"raw": 1.23, "fmt": "1.23"} wrapper used by quoteSummary.
type yahooValue struct {
	Raw *float64 `json:"raw"`
}

type yahooQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []yahooQuoteSummary `json:"result"`
		Error  *yahooError         `json:"error"`
	} `json:"quoteSummary"`
}

type yahooQuoteSummary struct {
	Price *struct {
		RegularMarketPrice yahooValue `json:"regularMarketPrice"`
		Currency           string     `json:"currency"`
	} `json:"price"`
	SummaryDetail *struct {
		TrailingPE    yahooValue `json:"trailingPE"`
		DividendYield yahooValue `json:"dividendYield"`
	} `json:"summaryDetail"`
	DefaultKeyStatistics *struct {
		PriceToBook yahooValue `json:"priceToBook"`
	} `json:"defaultKeyStatistics"`
	FinancialData *struct {
		CurrentPrice    yahooValue `json:"currentPrice"`
		TargetMeanPrice yahooValue `json:"targetMeanPrice"`
		DebtToEquity    yahooValue `json:"debtToEquity"`
		ReturnOnEquity  yahooValue `json:"returnOnEquity"`

		FinancialCurrency string `json:"financialCurrency"`
	} `json:"financialData"`
	AssetProfile *struct {
		Sector string `json:"sector"`
	} `json:"assetProfile"`
	RecommendationTrend *struct {
		Trend []struct {
			Period     string `json:"period"`
			StrongBuy  int    `json:"strongBuy"`
			Buy        int    `json:"buy"`
			Hold       int    `json:"hold"`
			Sell       int    `json:"sell"`
			StrongSell int    `json:"strongSell"`
		} `json:"trend"`
	} `json:"recommendationTrend"`
	IncomeStatementHistoryQuarterly *struct {
		Statements []struct {
			EndDate      yahooValue `json:"endDate"`
			TotalRevenue yahooValue `json:"totalRevenue"`
			NetIncome    yahooValue `json:"netIncome"`
		} `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistoryQuarterly"`
	BalanceSheetHistoryQuarterly *struct {
		Statements []struct {
			EndDate     yahooValue `json:"endDate"`
			TotalAssets yahooValue `json:"totalAssets"`
			TotalLiab   yahooValue `json:"totalLiab"`
		} `json:"balanceSheetStatements"`
	} `json:"balanceSheetHistoryQuarterly"`
	CashflowStatementHistoryQuarterly *struct {
		Statements []struct {
			EndDate   yahooValue `json:"endDate"`
			Operating yahooValue `json:"totalCashFromOperatingActivities"`
			Investing yahooValue `json:"totalCashflowsFromInvestingActivities"`
			Financing yahooValue `json:"totalCashFromFinancingActivities"`
		} `json:"cashflowStatements"`
	} `json:"cashflowStatementHistoryQuarterly"`
}
