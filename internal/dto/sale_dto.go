package dto

import (
	"time"

	"carhub/internal/model"

	"github.com/shopspring/decimal"
)

type CreateSaleRequest struct {
	VehicleID string          `json:"vehicle_id" validate:"required,uuid"`
	ClientID  string          `json:"client_id" validate:"required,uuid"`
	SalePrice decimal.Decimal `json:"sale_price" validate:"required,gt=0"`
	// InvoiceNumber is optional; when empty the engine generates one.
	InvoiceNumber   string           `json:"invoice_number" validate:"omitempty,max=20"`
	PaymentMethod   string           `json:"payment_method" validate:"omitempty,oneof=CASH CREDIT_CARD BANK_TRANSFER FINANCING TRADE_IN CHECK"`
	PaymentStatus   string           `json:"payment_status" validate:"omitempty,oneof=PENDING PARTIAL COMPLETED CANCELLED REFUNDED"`
	DownPayment     decimal.Decimal  `json:"down_payment"`
	FinancingAmount decimal.Decimal  `json:"financing_amount"`
	MonthlyPayment  decimal.Decimal  `json:"monthly_payment"`
	LoanTermMonths  int              `json:"loan_term_months" validate:"gte=0"`
	SaleDate        *time.Time       `json:"sale_date"`
	DeliveryDate    *time.Time       `json:"delivery_date"`
	WarrantyMonths  *int             `json:"warranty_months" validate:"omitempty,gte=0"`
	DiscountAmount  decimal.Decimal  `json:"discount_amount"`
	TaxAmount       decimal.Decimal  `json:"tax_amount"`
	Notes           *string          `json:"notes"`
}

type UpdateSaleRequest struct {
	SalePrice       *decimal.Decimal `json:"sale_price" validate:"omitempty,gt=0"`
	PaymentMethod   string           `json:"payment_method" validate:"omitempty,oneof=CASH CREDIT_CARD BANK_TRANSFER FINANCING TRADE_IN CHECK"`
	PaymentStatus   string           `json:"payment_status" validate:"omitempty,oneof=PENDING PARTIAL COMPLETED CANCELLED REFUNDED"`
	DownPayment     *decimal.Decimal `json:"down_payment"`
	FinancingAmount *decimal.Decimal `json:"financing_amount"`
	MonthlyPayment  *decimal.Decimal `json:"monthly_payment"`
	LoanTermMonths  *int             `json:"loan_term_months" validate:"omitempty,gte=0"`
	DeliveryDate    *time.Time       `json:"delivery_date"`
	WarrantyMonths  *int             `json:"warranty_months" validate:"omitempty,gte=0"`
	DiscountAmount  *decimal.Decimal `json:"discount_amount"`
	TaxAmount       *decimal.Decimal `json:"tax_amount"`
	Notes           *string          `json:"notes"`
}

type SaleFilter struct {
	From          string `form:"from"`
	To            string `form:"to"`
	ClientID      string `form:"client_id"`
	AdminID       string `form:"admin_id"`
}

type SaleResponse struct {
	ID              string           `json:"id"`
	InvoiceNumber   string           `json:"invoice_number"`
	VehicleID       string           `json:"vehicle_id"`
	Vehicle         string           `json:"vehicle,omitempty"`
	ClientID        string           `json:"client_id"`
	Client          string           `json:"client,omitempty"`
	AdminID         string           `json:"admin_id"`
	SalePrice       decimal.Decimal  `json:"sale_price"`
	Profit          *decimal.Decimal `json:"profit,omitempty"`
	PaymentMethod   string           `json:"payment_method"`
	PaymentStatus   string           `json:"payment_status"`
	DownPayment     decimal.Decimal  `json:"down_payment"`
	FinancingAmount decimal.Decimal  `json:"financing_amount"`
	MonthlyPayment  decimal.Decimal  `json:"monthly_payment"`
	LoanTermMonths  int              `json:"loan_term_months"`
	SaleDate        time.Time        `json:"sale_date"`
	DeliveryDate    *time.Time       `json:"delivery_date,omitempty"`
	WarrantyMonths  int              `json:"warranty_months"`
	DiscountAmount  decimal.Decimal  `json:"discount_amount"`
	TaxAmount       decimal.Decimal  `json:"tax_amount"`
	TotalAmount     decimal.Decimal  `json:"total_amount"`
	Notes           *string          `json:"notes,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

func SaleToResponse(s *model.Sale) *SaleResponse {
	resp := &SaleResponse{
		ID:              s.ID.String(),
		InvoiceNumber:   s.InvoiceNumber,
		VehicleID:       s.VehicleID.String(),
		ClientID:        s.ClientID.String(),
		AdminID:         s.AdminID.String(),
		SalePrice:       s.SalePrice,
		Profit:          s.Profit,
		PaymentMethod:   string(s.PaymentMethod),
		PaymentStatus:   string(s.PaymentStatus),
		DownPayment:     s.DownPayment,
		FinancingAmount: s.FinancingAmount,
		MonthlyPayment:  s.MonthlyPayment,
		LoanTermMonths:  s.LoanTermMonths,
		SaleDate:        s.SaleDate,
		DeliveryDate:    s.DeliveryDate,
		WarrantyMonths:  s.WarrantyMonths,
		DiscountAmount:  s.DiscountAmount,
		TaxAmount:       s.TaxAmount,
		TotalAmount:     s.TotalAmount,
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
	}
	if s.Vehicle != nil {
		resp.Vehicle = s.Vehicle.DisplayName()
	}
	if s.Client != nil {
		resp.Client = s.Client.FullName()
	}
	return resp
}
