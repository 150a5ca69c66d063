package dto

import "github.com/shopspring/decimal"

// MonthlyBucket is one calendar month of the dense trailing revenue series.
// Months with no sales are present with zero values.
type MonthlyBucket struct {
	Label   string          `json:"label"` // "Jan 2026"
	Revenue decimal.Decimal `json:"revenue"`
	Count   int64           `json:"count"`
}

type PaymentMethodBucket struct {
	PaymentMethod string `json:"payment_method"`
	Count         int64  `json:"count"`
}

// DashboardSummary is the card payload the dashboard renders.
type DashboardSummary struct {
	AvailableVehicles int64           `json:"available_vehicles"`
	SoldVehicles      int64           `json:"sold_vehicles"`
	TotalClients      int64           `json:"total_clients"`
	RevenueSixMonths  decimal.Decimal `json:"revenue_six_months"`
	ProfitSixMonths   decimal.Decimal `json:"profit_six_months"`
	SalesSixMonths    int64           `json:"sales_six_months"`
	AgedInventory     int             `json:"aged_inventory"`
	Currency          string          `json:"currency"`
	RevenueFormatted  string          `json:"revenue_formatted"`
	MonthlyRevenue    []MonthlyBucket `json:"monthly_revenue"`
}
