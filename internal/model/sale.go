package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentFinancing    PaymentMethod = "FINANCING"
	PaymentTradeIn      PaymentMethod = "TRADE_IN"
	PaymentCheck        PaymentMethod = "CHECK"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentPartial   PaymentStatus = "PARTIAL"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentCancelled PaymentStatus = "CANCELLED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// Sale links one vehicle, one client and one issuing admin.
//
// Profit and TotalAmount are derived at save time:
//   profit      = salePrice - vehicle.costPrice (unset when costPrice unknown)
//   totalAmount = salePrice - discountAmount + taxAmount
// Profit is a snapshot captured when the sale is saved; editing the vehicle's
// cost price afterwards does not rewrite already stored sales.
type Sale struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VehicleID uuid.UUID `gorm:"type:uuid;index;not null"`
	ClientID  uuid.UUID `gorm:"type:uuid;index;not null"`
	AdminID   uuid.UUID `gorm:"type:uuid;index;not null"`

	SalePrice decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Profit    *decimal.Decimal `gorm:"type:decimal(12,2)"`

	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null;default:'CASH'"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`

	DownPayment     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FinancingAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MonthlyPayment  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	LoanTermMonths  int             `gorm:"not null;default:0"`

	SaleDate     time.Time  `gorm:"index;not null"`
	DeliveryDate *time.Time

	// InvoiceNumber is immutable after creation.
	InvoiceNumber  string `gorm:"uniqueIndex;size:20;not null"`
	WarrantyMonths int    `gorm:"not null;default:12"`
	Notes          *string `gorm:"type:text"`

	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID"`
	Client  *Client  `gorm:"foreignKey:ClientID"`
	Admin   *Admin   `gorm:"foreignKey:AdminID"`
}

func (Sale) TableName() string { return "sales" }
