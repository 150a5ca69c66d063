package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FuelType string

const (
	FuelPetrol   FuelType = "PETROL"
	FuelDiesel   FuelType = "DIESEL"
	FuelHybrid   FuelType = "HYBRID"
	FuelElectric FuelType = "ELECTRIC"
	FuelLPG      FuelType = "LPG"
)

type Transmission string

const (
	TransmissionManual        Transmission = "MANUAL"
	TransmissionAutomatic     Transmission = "AUTOMATIC"
	TransmissionCVT           Transmission = "CVT"
	TransmissionSemiAutomatic Transmission = "SEMI_AUTOMATIC"
)

type VehicleCondition string

const (
	ConditionNew               VehicleCondition = "NEW"
	ConditionUsed              VehicleCondition = "USED"
	ConditionCertifiedPreOwned VehicleCondition = "CERTIFIED_PRE_OWNED"
	ConditionDamaged           VehicleCondition = "DAMAGED"
)

type VehicleStatus string

const (
	StatusAvailable   VehicleStatus = "AVAILABLE"
	StatusSold        VehicleStatus = "SOLD"
	StatusReserved    VehicleStatus = "RESERVED"
	StatusMaintenance VehicleStatus = "MAINTENANCE"
	StatusPending     VehicleStatus = "PENDING"
)

// saleTransitions are the only status changes driven by the transaction flow.
// RESERVED / MAINTENANCE / PENDING are set and cleared exclusively through
// direct inventory edits.
var saleTransitions = map[VehicleStatus]VehicleStatus{
	StatusAvailable: StatusSold,
	StatusSold:      StatusAvailable,
}

// CanSaleTransition reports whether from -> to is a transaction-driven change.
func CanSaleTransition(from, to VehicleStatus) bool {
	return saleTransitions[from] == to
}

// Vehicle is a unit of sellable inventory.
type Vehicle struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Brand        string          `gorm:"index;size:50;not null"`
	Model        string          `gorm:"index;size:50;not null"`
	Year         int             `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// CostPrice is nullable; when unknown, profit on a sale stays unset.
	CostPrice    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Mileage      int
	FuelType     FuelType         `gorm:"type:varchar(20);not null;default:'PETROL'"`
	Transmission Transmission     `gorm:"type:varchar(20);not null;default:'MANUAL'"`
	EngineSize   *string          `gorm:"size:10"`
	Color        *string          `gorm:"size:30"`
	VIN          *string          `gorm:"column:vin;uniqueIndex;size:17"`
	LicensePlate *string          `gorm:"size:15"`
	Status       VehicleStatus    `gorm:"type:varchar(20);index;not null;default:'AVAILABLE'"`
	Condition    VehicleCondition `gorm:"type:varchar(30);not null;default:'USED'"`
	Description  *string          `gorm:"type:text"`
	Features     []string         `gorm:"serializer:json;type:jsonb"`
	Location     *string          `gorm:"size:100"`
	// DaysInStock is recomputed on every save while AVAILABLE and frozen
	// once the vehicle leaves that status.
	DaysInStock int `gorm:"not null;default:0"`
	CreatedByID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	// SoldAt is set exactly when status flips to SOLD and cleared when the
	// referencing sale is deleted.
	SoldAt *time.Time

	CreatedBy *Admin `gorm:"foreignKey:CreatedByID"`
}

func (Vehicle) TableName() string { return "vehicles" }

// DisplayName renders "2021 Toyota Corolla" for documents and emails.
func (v *Vehicle) DisplayName() string {
	return strconv.Itoa(v.Year) + " " + v.Brand + " " + v.Model
}
