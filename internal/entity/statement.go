package entity

import "time"

// IncomeStatement is one quarterly income statement. Nil fields were not reported.
type IncomeStatement struct {
	EndDate   time.Time
	Revenue   *float64
	NetIncome *float64
}

// BalanceSheet is one quarterly balance sheet.
type BalanceSheet struct {
	EndDate          time.Time
	TotalAssets      *float64
	TotalLiabilities *float64
}

// CashflowStatement is one quarterly cash flow statement.
type CashflowStatement struct {
	EndDate   time.Time
	Operating *float64
	Investing *float64
	Financing *float64
}

// FinancialStatements holds the quarterly statements of a symbol, oldest first,
// in the reporting currency.
type FinancialStatements struct {
	FinancialCurrency string
	PriceCurrency     string
	Income            []IncomeStatement
	Balance           []BalanceSheet
	Cashflow          []CashflowStatement
}
