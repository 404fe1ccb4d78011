package dto

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountBalanceRowResponse is one balance sheet row with its three-period
// balances.
type AccountBalanceRowResponse struct {
	AccountName   string          `json:"accountName"`
	CurrentMonth  decimal.Decimal `json:"currentMonth"`
	PreviousMonth decimal.Decimal `json:"previousMonth"`
	LastYearEnd   decimal.Decimal `json:"lastYearEnd"`
}

// CategoryGroupResponse groups rows under one category name, insertion-ordered.
type CategoryGroupResponse struct {
	CategoryName string                      `json:"categoryName"`
	Rows         []AccountBalanceRowResponse `json:"rows"`
}

// BalanceSheetResponse represents the balance sheet report response.
type BalanceSheetResponse struct {
	AsOf        string                  `json:"asOf"`
	Currency    string                  `json:"currency"`
	Assets      []CategoryGroupResponse `json:"assets"`
	Liabilities []CategoryGroupResponse `json:"liabilities"`
	Equity      []CategoryGroupResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
		IsBalanced       bool            `json:"isBalanced"`
	} `json:"summary"`
}

// CategoryAmountResponse is a per-category total on the income statement.
type CategoryAmountResponse struct {
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
}

// IncomeStatementResponse represents the income statement report response.
type IncomeStatementResponse struct {
	FromDate           string                   `json:"fromDate"`
	ToDate             string                   `json:"toDate"`
	Currency           string                   `json:"currency"`
	RevenueByCategory  []CategoryAmountResponse `json:"revenueByCategory"`
	ExpensesByCategory []CategoryAmountResponse `json:"expensesByCategory"`
	Summary            struct {
		TotalRevenue     decimal.Decimal `json:"totalRevenue"`
		TotalExpenses    decimal.Decimal `json:"totalExpenses"`
		NetIncome        decimal.Decimal `json:"netIncome"`
		TransactionCount int             `json:"transactionCount"`
	} `json:"summary"`
}

// GroupSummaryResponse aggregates one group along a single dimension.
type GroupSummaryResponse struct {
	Key           string          `json:"key"`
	Count         int             `json:"count"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AverageAmount decimal.Decimal `json:"averageAmount"`
	Percentage    decimal.Decimal `json:"percentage"`
}

// MonthGroupSummaryResponse adds the first-of-month date for chronological
// sorting.
type MonthGroupSummaryResponse struct {
	GroupSummaryResponse
	FirstOfMonth string `json:"firstOfMonth"`
}

// FinancialGroupingResponse represents the multidimensional grouping report.
type FinancialGroupingResponse struct {
	FromDate         string                      `json:"fromDate"`
	ToDate           string                      `json:"toDate"`
	ByCategory       []GroupSummaryResponse      `json:"byCategory"`
	ByDepartment     []GroupSummaryResponse      `json:"byDepartment"`
	ByFund           []GroupSummaryResponse      `json:"byFund"`
	ByType           []GroupSummaryResponse      `json:"byType"`
	ByMonth          []MonthGroupSummaryResponse `json:"byMonth"`
	GrandTotal       decimal.Decimal             `json:"grandTotal"`
	TransactionCount int                         `json:"transactionCount"`
}

// ToBalanceSheetResponse converts a domain.BalanceSheet to a DTO.
func ToBalanceSheetResponse(sheet *domain.BalanceSheet) BalanceSheetResponse {
	resp := BalanceSheetResponse{
		AsOf:        sheet.AsOfDate.Format("2006-01-02"),
		Currency:    sheet.CurrencyCode,
		Assets:      toCategoryGroupResponses(sheet.Assets),
		Liabilities: toCategoryGroupResponses(sheet.Liabilities),
		Equity:      toCategoryGroupResponses(sheet.Equity),
	}
	resp.Summary.TotalAssets = sheet.TotalAssets
	resp.Summary.TotalLiabilities = sheet.TotalLiabilities
	resp.Summary.TotalEquity = sheet.TotalEquity
	resp.Summary.IsBalanced = sheet.IsBalanced
	return resp
}

func toCategoryGroupResponses(groups []domain.CategoryGroup) []CategoryGroupResponse {
	out := make([]CategoryGroupResponse, len(groups))
	for i, g := range groups {
		rows := make([]AccountBalanceRowResponse, len(g.Rows))
		for j, r := range g.Rows {
			rows[j] = AccountBalanceRowResponse{
				AccountName:   r.AccountName,
				CurrentMonth:  r.CurrentMonth,
				PreviousMonth: r.PreviousMonth,
				LastYearEnd:   r.LastYearEnd,
			}
		}
		out[i] = CategoryGroupResponse{CategoryName: g.CategoryName, Rows: rows}
	}
	return out
}

// ToIncomeStatementResponse converts a domain.IncomeStatement to a DTO.
func ToIncomeStatementResponse(stmt *domain.IncomeStatement) IncomeStatementResponse {
	resp := IncomeStatementResponse{
		FromDate:           stmt.PeriodStart.Format("2006-01-02"),
		ToDate:             stmt.PeriodEnd.Format("2006-01-02"),
		Currency:           stmt.CurrencyCode,
		RevenueByCategory:  toCategoryAmountResponses(stmt.RevenueByCategory),
		ExpensesByCategory: toCategoryAmountResponses(stmt.ExpensesByCategory),
	}
	resp.Summary.TotalRevenue = stmt.TotalRevenue
	resp.Summary.TotalExpenses = stmt.TotalExpenses
	resp.Summary.NetIncome = stmt.NetIncome
	resp.Summary.TransactionCount = stmt.TransactionCount
	return resp
}

func toCategoryAmountResponses(amounts []domain.CategoryAmount) []CategoryAmountResponse {
	out := make([]CategoryAmountResponse, len(amounts))
	for i, a := range amounts {
		out[i] = CategoryAmountResponse{CategoryName: a.CategoryName, Amount: a.Amount}
	}
	return out
}

// ToFinancialGroupingResponse converts a domain.FinancialGrouping to a DTO.
func ToFinancialGroupingResponse(g *domain.FinancialGrouping) FinancialGroupingResponse {
	months := make([]MonthGroupSummaryResponse, len(g.ByMonth))
	for i, m := range g.ByMonth {
		months[i] = MonthGroupSummaryResponse{
			GroupSummaryResponse: toGroupSummaryResponse(m.GroupSummary),
			FirstOfMonth:         m.FirstOfMonth.Format("2006-01-02"),
		}
	}
	return FinancialGroupingResponse{
		FromDate:         g.PeriodStart.Format("2006-01-02"),
		ToDate:           g.PeriodEnd.Format("2006-01-02"),
		ByCategory:       toGroupSummaryResponses(g.ByCategory),
		ByDepartment:     toGroupSummaryResponses(g.ByDepartment),
		ByFund:           toGroupSummaryResponses(g.ByFund),
		ByType:           toGroupSummaryResponses(g.ByType),
		ByMonth:          months,
		GrandTotal:       g.GrandTotal,
		TransactionCount: g.TransactionCount,
	}
}

func toGroupSummaryResponse(s domain.GroupSummary) GroupSummaryResponse {
	return GroupSummaryResponse{
		Key:           s.Key,
		Count:         s.Count,
		TotalAmount:   s.TotalAmount,
		AverageAmount: s.AverageAmount,
		Percentage:    s.Percentage,
	}
}

func toGroupSummaryResponses(summaries []domain.GroupSummary) []GroupSummaryResponse {
	out := make([]GroupSummaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = toGroupSummaryResponse(s)
	}
	return out
}

// MoneyResponse is an amount paired with its currency code.
type MoneyResponse struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// PeriodBalancesResponse carries the three canonical reporting windows
// derived from a single asOf date.
type PeriodBalancesResponse struct {
	CurrentMonth  MoneyResponse `json:"currentMonth"`
	PreviousMonth MoneyResponse `json:"previousMonth"`
	LastYearEnd   MoneyResponse `json:"lastYearEnd"`
}

// ToMoneyResponse converts a domain.Money to its DTO.
func ToMoneyResponse(m domain.Money) MoneyResponse {
	return MoneyResponse{
		Amount:       m.Amount,
		CurrencyCode: m.CurrencyCode,
	}
}

// ToPeriodBalancesResponse converts domain.PeriodBalances to its DTO.
func ToPeriodBalancesResponse(pb *domain.PeriodBalances) PeriodBalancesResponse {
	return PeriodBalancesResponse{
		CurrentMonth:  ToMoneyResponse(pb.CurrentMonth),
		PreviousMonth: ToMoneyResponse(pb.PreviousMonth),
		LastYearEnd:   ToMoneyResponse(pb.LastYearEnd),
	}
}
