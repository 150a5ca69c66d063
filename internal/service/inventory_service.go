package service

import (
	"context"
	"time"

	"carhub/internal/model"
	"carhub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryService interface {
	Save(ctx context.Context, v *model.Vehicle) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	List(ctx context.Context) ([]model.Vehicle, error)
	ListByStatus(ctx context.Context, status model.VehicleStatus) ([]model.Vehicle, error)
	Search(ctx context.Context, term string) ([]model.Vehicle, error)
	PriceBetween(ctx context.Context, min, max decimal.Decimal) ([]model.Vehicle, error)
	AgedInventory(ctx context.Context, days int) ([]model.Vehicle, error)
	CountByStatus(ctx context.Context, status model.VehicleStatus) (int64, error)
	CountByBrand(ctx context.Context) ([]repository.BrandCount, error)
	Delete(ctx context.Context, id uuid.UUID) error

	MarkSold(ctx context.Context, id uuid.UUID) error
	MarkAvailable(ctx context.Context, id uuid.UUID) error
	// Tx variants run inside the sale unit of work — callers pass the tx.
	MarkSoldTx(tx *gorm.DB, id uuid.UUID) error
	MarkAvailableTx(tx *gorm.DB, id uuid.UUID) error
}

type inventoryService struct {
	repo     repository.VehicleRepository
	saleRepo repository.SaleRepository
	// strict switches missing-id lookups from silent no-op to ErrNotFound.
	strict bool
}

func NewInventoryService(repo repository.VehicleRepository, saleRepo repository.SaleRepository, strict bool) InventoryService {
	return &inventoryService{repo: repo, saleRepo: saleRepo, strict: strict}
}

// Save stamps createdAt on first save and updatedAt always, and recomputes
// daysInStock while the vehicle is AVAILABLE. Once it leaves that status the
// last computed value stays frozen.
func (s *inventoryService) Save(ctx context.Context, v *model.Vehicle) error {
	now := time.Now()
	isNew := v.ID == uuid.Nil
	if isNew {
		v.CreatedAt = now
	}
	v.UpdatedAt = now
	if v.Status == "" {
		v.Status = model.StatusAvailable
	}
	if v.Status == model.StatusAvailable {
		v.DaysInStock = int(now.Sub(v.CreatedAt).Hours() / 24)
	}

	// VIN is a natural key when present; reject a second vehicle carrying the
	// same one before the store's unique index fires.
	if v.VIN != nil && *v.VIN != "" {
		existing, err := s.repo.FindByVIN(ctx, *v.VIN)
		if err != nil && !isNotFound(err) {
			return persistErr("check vin", err)
		}
		if err == nil && existing.ID != v.ID {
			return newValidationError("vin", "already registered to another vehicle")
		}
	}

	var err error
	if isNew {
		err = s.repo.Create(ctx, v)
	} else {
		err = s.repo.Update(ctx, v)
	}
	if err != nil {
		return persistErr("save vehicle", err)
	}
	return nil
}

func (s *inventoryService) FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, persistErr("find vehicle", err)
	}
	return v, nil
}

func (s *inventoryService) List(ctx context.Context) ([]model.Vehicle, error) {
	return s.repo.List(ctx)
}

func (s *inventoryService) ListByStatus(ctx context.Context, status model.VehicleStatus) ([]model.Vehicle, error) {
	return s.repo.ListByStatus(ctx, status)
}

func (s *inventoryService) Search(ctx context.Context, term string) ([]model.Vehicle, error) {
	return s.repo.Search(ctx, model.StatusAvailable, term)
}

func (s *inventoryService) PriceBetween(ctx context.Context, min, max decimal.Decimal) ([]model.Vehicle, error) {
	return s.repo.PriceBetween(ctx, min, max)
}

// AgedInventory surfaces vehicles sitting in stock past the alert threshold.
func (s *inventoryService) AgedInventory(ctx context.Context, days int) ([]model.Vehicle, error) {
	return s.repo.InStockLongerThan(ctx, days)
}

func (s *inventoryService) CountByStatus(ctx context.Context, status model.VehicleStatus) (int64, error) {
	return s.repo.CountByStatus(ctx, status)
}

func (s *inventoryService) CountByBrand(ctx context.Context) ([]repository.BrandCount, error) {
	return s.repo.CountByBrand(ctx)
}

// Delete refuses to remove a vehicle any sale still references. Sales are the
// financial record; a dangling vehicle reference would corrupt reports.
func (s *inventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	referenced, err := s.saleRepo.ExistsByVehicleID(ctx, id)
	if err != nil {
		return persistErr("check sale references", err)
	}
	if referenced {
		return &ConflictError{Msg: "vehicle is referenced by one or more sales"}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return persistErr("delete vehicle", err)
	}
	return nil
}

func (s *inventoryService) MarkSold(ctx context.Context, id uuid.UUID) error {
	return s.markStatus(s.db(ctx), id, model.StatusSold)
}

func (s *inventoryService) MarkAvailable(ctx context.Context, id uuid.UUID) error {
	return s.markStatus(s.db(ctx), id, model.StatusAvailable)
}

// db returns the connection bound to ctx, or nil in unit-test mode.
func (s *inventoryService) db(ctx context.Context) *gorm.DB {
	if conn := s.repo.DB(); conn != nil {
		return conn.WithContext(ctx)
	}
	return nil
}

func (s *inventoryService) MarkSoldTx(tx *gorm.DB, id uuid.UUID) error {
	return s.markStatus(tx, id, model.StatusSold)
}

func (s *inventoryService) MarkAvailableTx(tx *gorm.DB, id uuid.UUID) error {
	return s.markStatus(tx, id, model.StatusAvailable)
}

func (s *inventoryService) markStatus(tx *gorm.DB, id uuid.UUID, status model.VehicleStatus) error {
	var soldAt interface{}
	if status == model.StatusSold {
		soldAt = time.Now()
	}
	rows, err := s.repo.UpdateStatusTx(tx, id, status, soldAt)
	if err != nil {
		return persistErr("update vehicle status", err)
	}
	if rows == 0 {
		if s.strict {
			return ErrNotFound
		}
		// Lenient policy: tolerate the missing reference rather than fail
		// the caller.
		log.Warn().Str("vehicle_id", id.String()).Str("status", string(status)).
			Msg("status change on unknown vehicle ignored")
	}
	return nil
}
