package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RetainedEarningsName is the synthetic equity line carrying net income on
// the balance sheet.
const RetainedEarningsName = "Retained Earnings"

// AccountBalanceRow is one balance sheet row: an account with its balance
// over the three canonical reporting windows derived from a single asOf date.
type AccountBalanceRow struct {
	AccountName   string          `json:"accountName"`
	CurrentMonth  decimal.Decimal `json:"currentMonth"`
	PreviousMonth decimal.Decimal `json:"previousMonth"`
	LastYearEnd   decimal.Decimal `json:"lastYearEnd"`
}

// CategoryGroup is an insertion-ordered group of rows under one category name.
type CategoryGroup struct {
	CategoryName string              `json:"categoryName"`
	Rows         []AccountBalanceRow `json:"rows"`
}

// BalanceSheet is the statement output. IsBalanced is recomputed on every
// generation, never cached.
type BalanceSheet struct {
	AsOfDate         time.Time       `json:"asOfDate"`
	CurrencyCode     string          `json:"currencyCode"`
	Assets           []CategoryGroup `json:"assets"`
	Liabilities      []CategoryGroup `json:"liabilities"`
	Equity           []CategoryGroup `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	IsBalanced       bool            `json:"isBalanced"`
}

// CategoryAmount is a per-category total on the income statement.
type CategoryAmount struct {
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
}

// IncomeStatement summarizes revenue and expenses over a period.
type IncomeStatement struct {
	PeriodStart        time.Time        `json:"periodStart"`
	PeriodEnd          time.Time        `json:"periodEnd"`
	CurrencyCode       string           `json:"currencyCode"`
	TotalRevenue       decimal.Decimal  `json:"totalRevenue"`
	TotalExpenses      decimal.Decimal  `json:"totalExpenses"`
	NetIncome          decimal.Decimal  `json:"netIncome"`
	RevenueByCategory  []CategoryAmount `json:"revenueByCategory"`
	ExpensesByCategory []CategoryAmount `json:"expensesByCategory"`
	TransactionCount   int              `json:"transactionCount"`
}

// GroupSummary aggregates one group of transactions along a single dimension.
// Count is always > 0: empty groups are never materialized.
type GroupSummary struct {
	Key           string          `json:"key"`
	Count         int             `json:"count"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AverageAmount decimal.Decimal `json:"averageAmount"`
	Percentage    decimal.Decimal `json:"percentage"`
}

// MonthGroupSummary carries the first-of-month date so callers can sort
// chronologically without relying on the yyyy-MM key's lexical order.
type MonthGroupSummary struct {
	GroupSummary
	FirstOfMonth time.Time `json:"firstOfMonth"`
}

// FinancialGrouping is the multidimensional aggregation output.
type FinancialGrouping struct {
	PeriodStart      time.Time           `json:"periodStart"`
	PeriodEnd        time.Time           `json:"periodEnd"`
	ByCategory       []GroupSummary      `json:"byCategory"`
	ByDepartment     []GroupSummary      `json:"byDepartment"`
	ByFund           []GroupSummary      `json:"byFund"`
	ByType           []GroupSummary      `json:"byType"`
	ByMonth          []MonthGroupSummary `json:"byMonth"`
	GrandTotal       decimal.Decimal     `json:"grandTotal"`
	TransactionCount int                 `json:"transactionCount"`
}

// PeriodBalances holds one filter's balance over the three reporting windows
// derived from a single asOf date.
type PeriodBalances struct {
	CurrentMonth  Money `json:"currentMonth"`
	PreviousMonth Money `json:"previousMonth"`
	LastYearEnd   Money `json:"lastYearEnd"`
}

// CategoryAccount pairs a leaf category with its linked account for
// statement section bucketing.
type CategoryAccount struct {
	CategoryID   string      `json:"categoryID"`
	CategoryName string      `json:"categoryName"`
	AccountID    string      `json:"accountID"`
	AccountName  string      `json:"accountName"`
	AccountType  AccountType `json:"accountType"`
}
