// Package financial provides ready-made financial report templates.
package financial

import (
	"github.com/goliatone/go-sheet/sheet"
)

// Options configures an income statement template.
type Options struct {
	Title  string
	Period string
	// Currency is the ISO code used for the value column format.
	Currency string
}

const (
	// tableName is the data binding key of the statement table.
	tableName = "income_statement"
	// SheetName is the sheet the statement renders on.
	SheetName = "Income Statement"
)

// Section keys for binding line items.
const (
	SectionGrossRevenue     = "gross_revenue"
	SectionDeductions       = "deductions"
	SectionNetRevenue       = "net_revenue"
	SectionCostOfSales      = "cost_of_sales"
	SectionGrossProfit      = "gross_profit"
	SectionOperatingExpense = "operating_expenses"
	SectionOperatingProfit  = "operating_profit"
	SectionFinancialResult  = "financial_result"
	SectionPretaxProfit     = "pretax_profit"
	SectionTaxes            = "taxes"
	SectionNetProfit        = "net_profit"
)

// NewTemplate builds a complete income statement layout: sectioned line
// items, styled subtotal rows, currency and percent formats, and red
// highlighting on negative amounts.
func NewTemplate(opts Options) *sheet.SpreadsheetTemplate {
	if opts.Title == "" {
		opts.Title = "INCOME STATEMENT"
	}
	title := opts.Title
	if opts.Period != "" {
		title += " " + opts.Period
	}

	headerStyle := &sheet.CellStyle{
		Font:      &sheet.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      sheet.SolidFill("4472C4"),
		Alignment: &sheet.Alignment{Horizontal: sheet.AlignCenter, Vertical: sheet.AlignMiddle},
		Border:    sheet.BorderAll(sheet.BorderThin, ""),
	}
	sectionStyle := &sheet.CellStyle{
		Font:      &sheet.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      sheet.SolidFill("70AD47"),
		Alignment: &sheet.Alignment{Horizontal: sheet.AlignLeft, Vertical: sheet.AlignMiddle},
		Border:    sheet.BorderAll(sheet.BorderThin, ""),
	}
	totalStyle := &sheet.CellStyle{
		Font:      &sheet.Font{Bold: true, Size: 11},
		Fill:      sheet.SolidFill("D9E1F2"),
		Alignment: &sheet.Alignment{Horizontal: sheet.AlignLeft, Vertical: sheet.AlignMiddle},
		Border:    sheet.BorderAll(sheet.BorderMedium, ""),
	}
	rightAligned := &sheet.CellStyle{
		Alignment: &sheet.Alignment{Horizontal: sheet.AlignRight},
	}

	table := &sheet.TableTemplate{
		Name:        tableName,
		Title:       title,
		TitleStyle:  sheet.TitleStyle(),
		HeaderStyle: headerStyle,
		Columns: []sheet.ColumnDefinition{
			{Key: "account", Label: "Account", Width: 40},
			{Key: "value", Label: "Amount", Width: 20, NumberFormat: sheet.CurrencyFormat(opts.Currency), Style: rightAligned},
			{Key: "percent", Label: "% of Revenue", Width: 15, NumberFormat: sheet.NumFmtPercent2, Style: rightAligned},
		},
		Sections: []sheet.SectionDefinition{
			{Key: SectionGrossRevenue, Label: "GROSS REVENUE", Style: sectionStyle},
			{Key: SectionDeductions, Label: "(-) REVENUE DEDUCTIONS", Style: sectionStyle},
			{Key: SectionNetRevenue, Label: "= NET REVENUE", Style: totalStyle, IsTotal: true},
			{Key: SectionCostOfSales, Label: "(-) COST OF SALES", Style: sectionStyle},
			{Key: SectionGrossProfit, Label: "= GROSS PROFIT", Style: totalStyle, IsTotal: true},
			{Key: SectionOperatingExpense, Label: "(-) OPERATING EXPENSES", Style: sectionStyle},
			{Key: SectionOperatingProfit, Label: "= OPERATING PROFIT", Style: totalStyle, IsTotal: true},
			{Key: SectionFinancialResult, Label: "FINANCIAL RESULT", Style: sectionStyle},
			{Key: SectionPretaxProfit, Label: "= PRE-TAX PROFIT", Style: totalStyle, IsTotal: true},
			{Key: SectionTaxes, Label: "(-) TAXES ON PROFIT", Style: sectionStyle},
			{Key: SectionNetProfit, Label: "= NET PROFIT", Style: totalStyle, IsTotal: true},
		},
		Rules:         []sheet.ConditionalRule{sheet.NegativeRule(sheet.NegativeStyle())},
		FreezeHeaders: true,
	}

	return &sheet.SpreadsheetTemplate{Sheets: []*sheet.SheetTemplate{{
		Name:   SheetName,
		Tables: []*sheet.TableTemplate{table},
	}}}
}

// LineItem is one account line of the statement.
type LineItem struct {
	Account string
	Value   float64
}

// Statement carries the line items feeding an income statement.
type Statement struct {
	Revenue         []LineItem
	Deductions      []LineItem
	CostOfSales     []LineItem
	Expenses        []LineItem
	FinancialResult []LineItem
	Taxes           []LineItem
}

// Data binds a statement's line items, deriving subtotal lines and the
// percent-of-gross-revenue column.
func (s Statement) Data() *sheet.SpreadsheetData {
	gross := sumItems(s.Revenue)

	table := sheet.NewTableData()
	table.AddSectionRows(SectionGrossRevenue, itemRows(s.Revenue, gross))
	table.AddSectionRows(SectionDeductions, itemRows(s.Deductions, gross))

	netRevenue := gross + sumItems(s.Deductions)
	table.AddSectionRows(SectionNetRevenue, totalRows("Net Revenue", netRevenue, gross))

	table.AddSectionRows(SectionCostOfSales, itemRows(s.CostOfSales, gross))
	grossProfit := netRevenue + sumItems(s.CostOfSales)
	table.AddSectionRows(SectionGrossProfit, totalRows("Gross Profit", grossProfit, gross))

	table.AddSectionRows(SectionOperatingExpense, itemRows(s.Expenses, gross))
	operatingProfit := grossProfit + sumItems(s.Expenses)
	table.AddSectionRows(SectionOperatingProfit, totalRows("Operating Profit", operatingProfit, gross))

	table.AddSectionRows(SectionFinancialResult, itemRows(s.FinancialResult, gross))
	pretax := operatingProfit + sumItems(s.FinancialResult)
	table.AddSectionRows(SectionPretaxProfit, totalRows("Pre-Tax Profit", pretax, gross))

	table.AddSectionRows(SectionTaxes, itemRows(s.Taxes, gross))
	net := pretax + sumItems(s.Taxes)
	table.AddSectionRows(SectionNetProfit, totalRows("Net Profit", net, gross))

	sheetData := sheet.NewSheetData()
	sheetData.AddTable(tableName, table)

	data := sheet.NewSpreadsheetData()
	data.AddSheet(SheetName, sheetData)
	return data
}

// SampleStatement returns example figures for demos and tests.
func SampleStatement() Statement {
	return Statement{
		Revenue: []LineItem{
			{Account: "Product Sales", Value: 1000000},
			{Account: "Service Sales", Value: 500000},
		},
		Deductions: []LineItem{
			{Account: "Sales Taxes", Value: -150000},
			{Account: "Returns", Value: -50000},
		},
		CostOfSales: []LineItem{
			{Account: "Cost of Goods Sold", Value: -600000},
			{Account: "Cost of Services", Value: -200000},
		},
		Expenses: []LineItem{
			{Account: "Administrative Expenses", Value: -150000},
			{Account: "Selling Expenses", Value: -100000},
			{Account: "Personnel Expenses", Value: -80000},
		},
		FinancialResult: []LineItem{
			{Account: "Financial Income", Value: 20000},
			{Account: "Financial Expenses", Value: -30000},
		},
		Taxes: []LineItem{
			{Account: "Income Tax", Value: -54400},
		},
	}
}

func sumItems(items []LineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Value
	}
	return total
}

func itemRows(items []LineItem, gross float64) []sheet.Row {
	rows := make([]sheet.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, sheet.Row{
			"account": sheet.Text(item.Account),
			"value":   sheet.Number(item.Value),
			"percent": sheet.Number(percentOf(item.Value, gross)),
		})
	}
	return rows
}

func totalRows(label string, value, gross float64) []sheet.Row {
	return []sheet.Row{{
		"account": sheet.Text(label),
		"value":   sheet.Number(value),
		"percent": sheet.Number(percentOf(value, gross)),
	}}
}

func percentOf(value, gross float64) float64 {
	if gross == 0 {
		return 0
	}
	return value / gross
}
