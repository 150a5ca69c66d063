package repository

import (
	"context"

	"carhub/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BrandCount is one row of the count-by-brand grouping.
type BrandCount struct {
	Brand string `json:"brand"`
	Count int64  `json:"count"`
}

// VehicleRepository defines the data access contract for vehicles.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type VehicleRepository interface {
	Create(ctx context.Context, v *model.Vehicle) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	FindByVIN(ctx context.Context, vin string) (*model.Vehicle, error)
	List(ctx context.Context) ([]model.Vehicle, error)
	ListByStatus(ctx context.Context, status model.VehicleStatus) ([]model.Vehicle, error)
	Search(ctx context.Context, status model.VehicleStatus, term string) ([]model.Vehicle, error)
	PriceBetween(ctx context.Context, min, max decimal.Decimal) ([]model.Vehicle, error)
	InStockLongerThan(ctx context.Context, days int) ([]model.Vehicle, error)
	Update(ctx context.Context, v *model.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, status model.VehicleStatus) (int64, error)
	CountByBrand(ctx context.Context) ([]BrandCount, error)

	// Used inside transactions — callers must pass the tx instance.
	// Returns the number of rows touched so services can apply the
	// strict/lenient missing-id policy.
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status model.VehicleStatus, soldAt interface{}) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type vehicleRepo struct{ db *gorm.DB }

func NewVehicleRepository(db *gorm.DB) VehicleRepository { return &vehicleRepo{db: db} }

func (r *vehicleRepo) DB() *gorm.DB { return r.db }

func (r *vehicleRepo) Create(ctx context.Context, v *model.Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *vehicleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var v model.Vehicle
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *vehicleRepo) FindByVIN(ctx context.Context, vin string) (*model.Vehicle, error) {
	var v model.Vehicle
	err := r.db.WithContext(ctx).Where("vin = ?", vin).First(&v).Error
	return &v, err
}

func (r *vehicleRepo) List(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&vehicles).Error
	return vehicles, err
}

func (r *vehicleRepo) ListByStatus(ctx context.Context, status model.VehicleStatus) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("created_at DESC").Find(&vehicles).Error
	return vehicles, err
}

func (r *vehicleRepo) Search(ctx context.Context, status model.VehicleStatus, term string) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	q := r.db.WithContext(ctx).
		Where("brand ILIKE ? OR model ILIKE ?", "%"+term+"%", "%"+term+"%")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("brand ASC, model ASC").Find(&vehicles).Error
	return vehicles, err
}

func (r *vehicleRepo) PriceBetween(ctx context.Context, min, max decimal.Decimal) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := r.db.WithContext(ctx).
		Where("price BETWEEN ? AND ?", min, max).
		Order("price ASC").Find(&vehicles).Error
	return vehicles, err
}

func (r *vehicleRepo) InStockLongerThan(ctx context.Context, days int) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := r.db.WithContext(ctx).
		Where("days_in_stock > ? AND status = ?", days, model.StatusAvailable).
		Order("days_in_stock DESC").Find(&vehicles).Error
	return vehicles, err
}

func (r *vehicleRepo) Update(ctx context.Context, v *model.Vehicle) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *vehicleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Vehicle{}, "id = ?", id).Error
}

func (r *vehicleRepo) CountByStatus(ctx context.Context, status model.VehicleStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Vehicle{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *vehicleRepo) CountByBrand(ctx context.Context) ([]BrandCount, error) {
	var rows []BrandCount
	err := r.db.WithContext(ctx).Model(&model.Vehicle{}).
		Select("brand, COUNT(*) AS count").
		Group("brand").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *vehicleRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status model.VehicleStatus, soldAt interface{}) (int64, error) {
	res := tx.Model(&model.Vehicle{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":  status,
		"sold_at": soldAt,
	})
	return res.RowsAffected, res.Error
}
