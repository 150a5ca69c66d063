package service

import (
	"context"
	"fmt"
	"time"

	"carhub/internal/dto"
	"carhub/internal/model"
	"carhub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SaleNotifier enqueues the post-sale confirmation email. The sale flow treats
// it as fire-and-forget: enqueue failures are logged, never surfaced.
type SaleNotifier interface {
	EnqueueSaleConfirmation(ctx context.Context, saleID uuid.UUID) error
}

type SaleService interface {
	CreateSale(ctx context.Context, adminID uuid.UUID, req dto.CreateSaleRequest) (*model.Sale, error)
	UpdateSale(ctx context.Context, id uuid.UUID, req dto.UpdateSaleRequest) (*model.Sale, error)
	DeleteSale(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, error)
	IsInvoiceNumberAvailable(ctx context.Context, invoiceNumber string) (bool, error)
}

type saleService struct {
	repo        repository.SaleRepository
	vehicleRepo repository.VehicleRepository
	clientRepo  repository.ClientRepository
	inventory   InventoryService
	settings    SettingsService
	notifier    SaleNotifier
	strict      bool
}

func NewSaleService(
	repo repository.SaleRepository,
	vehicleRepo repository.VehicleRepository,
	clientRepo repository.ClientRepository,
	inventory InventoryService,
	settings SettingsService,
	notifier SaleNotifier,
	strict bool,
) SaleService {
	return &saleService{
		repo:        repo,
		vehicleRepo: vehicleRepo,
		clientRepo:  clientRepo,
		inventory:   inventory,
		settings:    settings,
		notifier:    notifier,
		strict:      strict,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── CreateSale ───────────────────────────────────────────────────────────────
// One unit of work:
//   1. Validate references and sale price (no mutation before this passes).
//   2. Allocate an invoice number when the caller supplied none.
//   3. BEGIN TX: mark vehicle SOLD, derive profit/total, persist the sale.
//   4. COMMIT, then fire-and-forget the confirmation email job.

func (s *saleService) CreateSale(ctx context.Context, adminID uuid.UUID, req dto.CreateSaleRequest) (*model.Sale, error) {
	if adminID == uuid.Nil {
		return nil, newValidationError("admin_id", "required")
	}
	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil || vehicleID == uuid.Nil {
		return nil, newValidationError("vehicle_id", "required")
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil || clientID == uuid.Nil {
		return nil, newValidationError("client_id", "required")
	}
	if req.SalePrice.IsZero() || req.SalePrice.IsNegative() {
		return nil, newValidationError("sale_price", "required")
	}

	// Resolve the vehicle up front: its cost price feeds the profit snapshot.
	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		if isNotFound(err) {
			return nil, newValidationError("vehicle_id", "unknown vehicle")
		}
		return nil, persistErr("resolve vehicle", err)
	}
	if !model.CanSaleTransition(vehicle.Status, model.StatusSold) {
		return nil, &ConflictError{Msg: "vehicle is not available for sale"}
	}
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		if isNotFound(err) {
			return nil, newValidationError("client_id", "unknown client")
		}
		return nil, persistErr("resolve client", err)
	}

	invoiceNumber := req.InvoiceNumber
	if invoiceNumber == "" {
		invoiceNumber, err = s.generateInvoiceNumber(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		taken, err := s.repo.ExistsByInvoiceNumber(ctx, invoiceNumber)
		if err != nil {
			return nil, persistErr("check invoice number", err)
		}
		if taken {
			return nil, newValidationError("invoice_number", "already in use")
		}
	}

	now := time.Now()
	saleDate := now
	if req.SaleDate != nil {
		saleDate = *req.SaleDate
	}
	warranty := s.settings.GetInteger(ctx, "warranty_months", 12)
	if req.WarrantyMonths != nil {
		warranty = *req.WarrantyMonths
	}

	sale := &model.Sale{
		VehicleID:       vehicleID,
		ClientID:        clientID,
		AdminID:         adminID,
		SalePrice:       req.SalePrice,
		PaymentMethod:   model.PaymentMethod(defaultStr(req.PaymentMethod, string(model.PaymentCash))),
		PaymentStatus:   model.PaymentStatus(defaultStr(req.PaymentStatus, string(model.PaymentPending))),
		DownPayment:     req.DownPayment,
		FinancingAmount: req.FinancingAmount,
		MonthlyPayment:  req.MonthlyPayment,
		LoanTermMonths:  req.LoanTermMonths,
		SaleDate:        saleDate,
		DeliveryDate:    req.DeliveryDate,
		InvoiceNumber:   invoiceNumber,
		WarrantyMonths:  warranty,
		DiscountAmount:  req.DiscountAmount,
		TaxAmount:       req.TaxAmount,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	deriveAmounts(sale, vehicle)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.inventory.MarkSoldTx(tx, vehicleID); err != nil {
			return err
		}
		return s.repo.CreateTx(ctx, tx, sale)
	})
	if txErr != nil {
		return nil, persistErr("create sale", txErr)
	}

	// Best-effort notification — a failure here never unwinds the sale.
	if s.notifier != nil {
		if err := s.notifier.EnqueueSaleConfirmation(ctx, sale.ID); err != nil {
			log.Error().Err(err).Str("invoice", sale.InvoiceNumber).
				Msg("failed to enqueue sale confirmation email")
		}
	}

	sale.Vehicle = vehicle
	return sale, nil
}

// UpdateSale re-derives profit and totalAmount against the vehicle's current
// cost price and persists. It never touches vehicle status: only create and
// delete drive the AVAILABLE<->SOLD transitions.
func (s *saleService) UpdateSale(ctx context.Context, id uuid.UUID, req dto.UpdateSaleRequest) (*model.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, persistErr("find sale", err)
	}

	if req.SalePrice != nil {
		if req.SalePrice.IsZero() || req.SalePrice.IsNegative() {
			return nil, newValidationError("sale_price", "required")
		}
		sale.SalePrice = *req.SalePrice
	}
	if req.PaymentMethod != "" {
		sale.PaymentMethod = model.PaymentMethod(req.PaymentMethod)
	}
	if req.PaymentStatus != "" {
		sale.PaymentStatus = model.PaymentStatus(req.PaymentStatus)
	}
	if req.DownPayment != nil {
		sale.DownPayment = *req.DownPayment
	}
	if req.FinancingAmount != nil {
		sale.FinancingAmount = *req.FinancingAmount
	}
	if req.MonthlyPayment != nil {
		sale.MonthlyPayment = *req.MonthlyPayment
	}
	if req.LoanTermMonths != nil {
		sale.LoanTermMonths = *req.LoanTermMonths
	}
	if req.DeliveryDate != nil {
		sale.DeliveryDate = req.DeliveryDate
	}
	if req.WarrantyMonths != nil {
		sale.WarrantyMonths = *req.WarrantyMonths
	}
	if req.DiscountAmount != nil {
		sale.DiscountAmount = *req.DiscountAmount
	}
	if req.TaxAmount != nil {
		sale.TaxAmount = *req.TaxAmount
	}
	if req.Notes != nil {
		sale.Notes = req.Notes
	}

	vehicle := sale.Vehicle
	if vehicle == nil {
		vehicle, err = s.vehicleRepo.FindByID(ctx, sale.VehicleID)
		if err != nil {
			if isNotFound(err) {
				return nil, newValidationError("vehicle_id", "unknown vehicle")
			}
			return nil, persistErr("resolve vehicle", err)
		}
	}
	deriveAmounts(sale, vehicle)
	sale.UpdatedAt = time.Now()

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateTx(ctx, tx, sale)
	})
	if txErr != nil {
		return nil, persistErr("update sale", txErr)
	}
	return sale, nil
}

// DeleteSale reverses a sale: the vehicle returns to AVAILABLE with soldAt
// cleared, then the sale record is hard-deleted, both inside one transaction.
func (s *saleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !isNotFound(err) {
			return persistErr("find sale", err)
		}
		if s.strict {
			return ErrNotFound
		}
		log.Warn().Str("sale_id", id.String()).Msg("delete of unknown sale ignored")
		return nil
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.inventory.MarkAvailableTx(tx, sale.VehicleID); err != nil {
			return err
		}
		return s.repo.DeleteTx(ctx, tx, id)
	})
	if txErr != nil {
		return persistErr("delete sale", txErr)
	}
	return nil
}

func (s *saleService) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, persistErr("find sale", err)
	}
	return sale, nil
}

func (s *saleService) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*model.Sale, error) {
	sale, err := s.repo.FindByInvoiceNumber(ctx, invoiceNumber)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, persistErr("find sale", err)
	}
	return sale, nil
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, error) {
	if filter.ClientID != "" {
		id, err := uuid.Parse(filter.ClientID)
		if err != nil {
			return nil, newValidationError("client_id", "invalid id")
		}
		return s.repo.ListByClient(ctx, id)
	}
	if filter.AdminID != "" {
		id, err := uuid.Parse(filter.AdminID)
		if err != nil {
			return nil, newValidationError("admin_id", "invalid id")
		}
		return s.repo.ListByAdmin(ctx, id)
	}
	if filter.From != "" || filter.To != "" {
		// Either bound may be omitted for an open-ended range.
		start := time.Time{}
		end := time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
		if filter.From != "" {
			parsed, err := time.Parse("2006-01-02", filter.From)
			if err != nil {
				return nil, newValidationError("from", "expected YYYY-MM-DD")
			}
			start = parsed
		}
		if filter.To != "" {
			parsed, err := time.Parse("2006-01-02", filter.To)
			if err != nil {
				return nil, newValidationError("to", "expected YYYY-MM-DD")
			}
			end = parsed.Add(24*time.Hour - time.Nanosecond)
		}
		return s.repo.ListBetween(ctx, start, end)
	}
	return s.repo.List(ctx)
}

func (s *saleService) IsInvoiceNumberAvailable(ctx context.Context, invoiceNumber string) (bool, error) {
	exists, err := s.repo.ExistsByInvoiceNumber(ctx, invoiceNumber)
	if err != nil {
		return false, persistErr("check invoice number", err)
	}
	return !exists, nil
}

// generateInvoiceNumber builds "{prefix}-YYYYMMDD-NNN" where NNN starts at the
// current sale count + 1 and advances past any number already taken. The DB
// unique constraint on invoice_number remains the final arbiter under
// concurrent writers.
func (s *saleService) generateInvoiceNumber(ctx context.Context) (string, error) {
	prefix := s.settings.GetValue(ctx, "invoice_prefix", "INV")
	date := time.Now().Format("20060102")

	count, err := s.repo.Count(ctx)
	if err != nil {
		return "", persistErr("count sales", err)
	}
	seq := count + 1
	for {
		candidate := fmt.Sprintf("%s-%s-%03d", prefix, date, seq)
		taken, err := s.repo.ExistsByInvoiceNumber(ctx, candidate)
		if err != nil {
			return "", persistErr("check invoice number", err)
		}
		if !taken {
			return candidate, nil
		}
		seq++
	}
}

// deriveAmounts recomputes the derived monetary fields:
//
//	profit      = salePrice - vehicle.costPrice (unset when costPrice unknown)
//	totalAmount = salePrice - discountAmount + taxAmount
//
// Profit is deliberately a snapshot: it is only recomputed when the sale
// itself is saved, so later cost-price edits leave stored sales untouched.
func deriveAmounts(sale *model.Sale, vehicle *model.Vehicle) {
	if vehicle != nil && vehicle.CostPrice != nil {
		p := sale.SalePrice.Sub(*vehicle.CostPrice)
		sale.Profit = &p
	} else {
		sale.Profit = nil
	}
	sale.TotalAmount = sale.SalePrice.Sub(sale.DiscountAmount).Add(sale.TaxAmount)
}

func defaultStr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
