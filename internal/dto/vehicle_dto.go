package dto

import (
	"time"

	"carhub/internal/model"

	"github.com/shopspring/decimal"
)

type SaveVehicleRequest struct {
	Brand        string           `json:"brand" validate:"required,max=50"`
	Model        string           `json:"model" validate:"required,max=50"`
	Year         int              `json:"year" validate:"required,gte=1900,lte=2100"`
	Price        decimal.Decimal  `json:"price" validate:"required,gt=0"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	Mileage      int              `json:"mileage" validate:"gte=0"`
	FuelType     string           `json:"fuel_type" validate:"omitempty,oneof=PETROL DIESEL HYBRID ELECTRIC LPG"`
	Transmission string           `json:"transmission" validate:"omitempty,oneof=MANUAL AUTOMATIC CVT SEMI_AUTOMATIC"`
	EngineSize   *string          `json:"engine_size"`
	Color        *string          `json:"color"`
	VIN          *string          `json:"vin" validate:"omitempty,len=17"`
	LicensePlate *string          `json:"license_plate"`
	Status       string           `json:"status" validate:"omitempty,oneof=AVAILABLE SOLD RESERVED MAINTENANCE PENDING"`
	Condition    string           `json:"condition" validate:"omitempty,oneof=NEW USED CERTIFIED_PRE_OWNED DAMAGED"`
	Description  *string          `json:"description"`
	Features     []string         `json:"features"`
	Location     *string          `json:"location"`
}

type VehicleFilter struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`
}

type VehicleResponse struct {
	ID           string           `json:"id"`
	Brand        string           `json:"brand"`
	Model        string           `json:"model"`
	Year         int              `json:"year"`
	DisplayName  string           `json:"display_name"`
	Price        decimal.Decimal  `json:"price"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	Mileage      int              `json:"mileage"`
	FuelType     string           `json:"fuel_type"`
	Transmission string           `json:"transmission"`
	EngineSize   *string          `json:"engine_size,omitempty"`
	Color        *string          `json:"color,omitempty"`
	VIN          *string          `json:"vin,omitempty"`
	LicensePlate *string          `json:"license_plate,omitempty"`
	Status       string           `json:"status"`
	Condition    string           `json:"condition"`
	Description  *string          `json:"description,omitempty"`
	Features     []string         `json:"features,omitempty"`
	Location     *string          `json:"location,omitempty"`
	DaysInStock  int              `json:"days_in_stock"`
	CreatedAt    time.Time        `json:"created_at"`
	SoldAt       *time.Time       `json:"sold_at,omitempty"`
}

func VehicleToResponse(v *model.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		ID:           v.ID.String(),
		Brand:        v.Brand,
		Model:        v.Model,
		Year:         v.Year,
		DisplayName:  v.DisplayName(),
		Price:        v.Price,
		CostPrice:    v.CostPrice,
		Mileage:      v.Mileage,
		FuelType:     string(v.FuelType),
		Transmission: string(v.Transmission),
		EngineSize:   v.EngineSize,
		Color:        v.Color,
		VIN:          v.VIN,
		LicensePlate: v.LicensePlate,
		Status:       string(v.Status),
		Condition:    string(v.Condition),
		Description:  v.Description,
		Features:     v.Features,
		Location:     v.Location,
		DaysInStock:  v.DaysInStock,
		CreatedAt:    v.CreatedAt,
		SoldAt:       v.SoldAt,
	}
}
