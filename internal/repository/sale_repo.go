package repository

import (
	"context"
	"time"

	"carhub/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthlyRevenueRow is one grouped row of the monthly revenue query.
type MonthlyRevenueRow struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
	Count   int64           `json:"count"`
}

// PaymentMethodCount is one row of the count-by-payment-method grouping.
type PaymentMethodCount struct {
	PaymentMethod model.PaymentMethod `json:"payment_method"`
	Count         int64               `json:"count"`
}

type SaleRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	UpdateTx(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*model.Sale, error)
	ExistsByInvoiceNumber(ctx context.Context, invoiceNumber string) (bool, error)
	ExistsByVehicleID(ctx context.Context, vehicleID uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]model.Sale, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]model.Sale, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Sale, error)
	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.Sale, error)
	Recent(ctx context.Context, limit int) ([]model.Sale, error)

	// Aggregates. SUMs scan into decimals; an empty window scans to zero
	// via COALESCE so callers never see NULL.
	RevenueBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	ProfitBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	CountBetween(ctx context.Context, start, end time.Time) (int64, error)
	MonthlyRevenueSince(ctx context.Context, start time.Time) ([]MonthlyRevenueRow, error)
	CountByPaymentMethod(ctx context.Context) ([]PaymentMethodCount, error)

	// DB exposes the DB for transaction creation in the service layer.
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) UpdateTx(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Save(s).Error
}

func (r *saleRepo) DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Delete(&model.Sale{}, "id = ?", id).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Vehicle").Preload("Client").Preload("Admin").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *saleRepo) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Vehicle").Preload("Client").Preload("Admin").
		Where("invoice_number = ?", invoiceNumber).First(&s).Error
	return &s, err
}

func (r *saleRepo) ExistsByInvoiceNumber(ctx context.Context, invoiceNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("invoice_number = ?", invoiceNumber).Count(&count).Error
	return count > 0, err
}

func (r *saleRepo) ExistsByVehicleID(ctx context.Context, vehicleID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("vehicle_id = ?", vehicleID).Count(&count).Error
	return count > 0, err
}

func (r *saleRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).Count(&count).Error
	return count, err
}

func (r *saleRepo) List(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Vehicle").Preload("Client").Preload("Admin").
		Order("sale_date DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListBetween(ctx context.Context, start, end time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Vehicle").Preload("Client").Preload("Admin").
		Where("sale_date BETWEEN ? AND ?", start, end).
		Order("sale_date DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Vehicle").
		Where("client_id = ?", clientID).
		Order("sale_date DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Vehicle").
		Where("admin_id = ?", adminID).
		Order("sale_date DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Recent(ctx context.Context, limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Vehicle").Preload("Client").
		Order("sale_date DESC").Limit(limit).Find(&sales).Error
	return sales, err
}

func (r *saleRepo) RevenueBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("COALESCE(SUM(sale_price), 0)").
		Where("sale_date BETWEEN ? AND ?", start, end).
		Scan(&total).Error
	return total, err
}

func (r *saleRepo) ProfitBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("COALESCE(SUM(COALESCE(profit, 0)), 0)").
		Where("sale_date BETWEEN ? AND ?", start, end).
		Scan(&total).Error
	return total, err
}

func (r *saleRepo) CountBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("sale_date BETWEEN ? AND ?", start, end).Count(&count).Error
	return count, err
}

func (r *saleRepo) MonthlyRevenueSince(ctx context.Context, start time.Time) ([]MonthlyRevenueRow, error) {
	var rows []MonthlyRevenueRow
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("EXTRACT(YEAR FROM sale_date)::int AS year, EXTRACT(MONTH FROM sale_date)::int AS month, COALESCE(SUM(sale_price), 0) AS revenue, COUNT(*) AS count").
		Where("sale_date >= ?", start).
		Group("1, 2").
		Order("1, 2").
		Scan(&rows).Error
	return rows, err
}

func (r *saleRepo) CountByPaymentMethod(ctx context.Context) ([]PaymentMethodCount, error) {
	var rows []PaymentMethodCount
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("payment_method, COUNT(*) AS count").
		Group("payment_method").
		Scan(&rows).Error
	return rows, err
}
