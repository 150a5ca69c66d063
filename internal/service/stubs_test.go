package service

// In-memory repository stubs shared by the service tests.

import (
	"context"
	"errors"
	"strings"
	"time"

	"carhub/internal/model"
	"carhub/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Lookups on the stubs miss the same way gorm does, so the services' record
// absent / store failure distinction is exercised for real.
var errStubNotFound = gorm.ErrRecordNotFound

// ── Vehicle repo stub ────────────────────────────────────────────────────────

type stubVehicleRepo struct {
	vehicles map[uuid.UUID]*model.Vehicle
	// findErr forces lookups to fail, for store-outage tests.
	findErr error
}

func newStubVehicleRepo() *stubVehicleRepo {
	return &stubVehicleRepo{vehicles: make(map[uuid.UUID]*model.Vehicle)}
}

func (r *stubVehicleRepo) add(v *model.Vehicle) *model.Vehicle {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.vehicles[v.ID] = v
	return v
}

func (r *stubVehicleRepo) Create(_ context.Context, v *model.Vehicle) error {
	r.add(v)
	return nil
}

func (r *stubVehicleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Vehicle, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	v, ok := r.vehicles[id]
	if !ok {
		return nil, errStubNotFound
	}
	return v, nil
}

func (r *stubVehicleRepo) FindByVIN(_ context.Context, vin string) (*model.Vehicle, error) {
	for _, v := range r.vehicles {
		if v.VIN != nil && *v.VIN == vin {
			return v, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubVehicleRepo) List(_ context.Context) ([]model.Vehicle, error) {
	out := make([]model.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubVehicleRepo) ListByStatus(_ context.Context, status model.VehicleStatus) ([]model.Vehicle, error) {
	var out []model.Vehicle
	for _, v := range r.vehicles {
		if v.Status == status {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVehicleRepo) Search(_ context.Context, status model.VehicleStatus, term string) ([]model.Vehicle, error) {
	term = strings.ToLower(term)
	var out []model.Vehicle
	for _, v := range r.vehicles {
		if status != "" && v.Status != status {
			continue
		}
		if strings.Contains(strings.ToLower(v.Brand), term) || strings.Contains(strings.ToLower(v.Model), term) {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVehicleRepo) PriceBetween(_ context.Context, min, max decimal.Decimal) ([]model.Vehicle, error) {
	var out []model.Vehicle
	for _, v := range r.vehicles {
		if v.Price.GreaterThanOrEqual(min) && v.Price.LessThanOrEqual(max) {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVehicleRepo) InStockLongerThan(_ context.Context, days int) ([]model.Vehicle, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	var out []model.Vehicle
	for _, v := range r.vehicles {
		if v.Status == model.StatusAvailable && v.CreatedAt.Before(cutoff) {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVehicleRepo) Update(_ context.Context, v *model.Vehicle) error {
	if _, ok := r.vehicles[v.ID]; !ok {
		return errStubNotFound
	}
	r.vehicles[v.ID] = v
	return nil
}

func (r *stubVehicleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.vehicles, id)
	return nil
}

func (r *stubVehicleRepo) CountByStatus(_ context.Context, status model.VehicleStatus) (int64, error) {
	var n int64
	for _, v := range r.vehicles {
		if v.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubVehicleRepo) CountByBrand(_ context.Context) ([]repository.BrandCount, error) {
	counts := make(map[string]int64)
	for _, v := range r.vehicles {
		counts[v.Brand]++
	}
	out := make([]repository.BrandCount, 0, len(counts))
	for brand, n := range counts {
		out = append(out, repository.BrandCount{Brand: brand, Count: n})
	}
	return out, nil
}

func (r *stubVehicleRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status model.VehicleStatus, soldAt interface{}) (int64, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return 0, nil
	}
	v.Status = status
	switch t := soldAt.(type) {
	case time.Time:
		v.SoldAt = &t
	case *time.Time:
		v.SoldAt = t
	case nil:
		v.SoldAt = nil
	}
	return 1, nil
}

func (r *stubVehicleRepo) DB() *gorm.DB { return nil }

var _ repository.VehicleRepository = (*stubVehicleRepo)(nil)

// ── Client repo stub ─────────────────────────────────────────────────────────

type stubClientRepo struct {
	clients map[uuid.UUID]*model.Client
	findErr error
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[uuid.UUID]*model.Client)}
}

func (r *stubClientRepo) add(c *model.Client) *model.Client {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clients[c.ID] = c
	return c
}

func (r *stubClientRepo) Create(_ context.Context, c *model.Client) error {
	r.add(c)
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	c, ok := r.clients[id]
	if !ok {
		return nil, errStubNotFound
	}
	return c, nil
}

func (r *stubClientRepo) FindByEmail(_ context.Context, email string) (*model.Client, error) {
	for _, c := range r.clients {
		if c.Email != nil && *c.Email == email {
			return c, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubClientRepo) List(_ context.Context) ([]model.Client, error) {
	out := make([]model.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClientRepo) Search(_ context.Context, term string) ([]model.Client, error) {
	term = strings.ToLower(term)
	var out []model.Client
	for _, c := range r.clients {
		if strings.Contains(strings.ToLower(c.FirstName), term) || strings.Contains(strings.ToLower(c.LastName), term) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubClientRepo) Update(_ context.Context, c *model.Client) error {
	if _, ok := r.clients[c.ID]; !ok {
		return errStubNotFound
	}
	r.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clients, id)
	return nil
}

func (r *stubClientRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.clients)), nil
}

var _ repository.ClientRepository = (*stubClientRepo)(nil)

// ── Sale repo stub ───────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
	// createErr forces the next CreateTx to fail, for rollback-path tests.
	createErr error
	// findErr forces lookups to fail, for store-outage tests.
	findErr error
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) CreateTx(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if r.createErr != nil {
		return r.createErr
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for _, existing := range r.sales {
		if existing.InvoiceNumber == s.InvoiceNumber {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) UpdateTx(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if _, ok := r.sales[s.ID]; !ok {
		return errStubNotFound
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) DeleteTx(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.sales, id)
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	s, ok := r.sales[id]
	if !ok {
		return nil, errStubNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) FindByInvoiceNumber(_ context.Context, invoiceNumber string) (*model.Sale, error) {
	for _, s := range r.sales {
		if s.InvoiceNumber == invoiceNumber {
			return s, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubSaleRepo) ExistsByInvoiceNumber(_ context.Context, invoiceNumber string) (bool, error) {
	for _, s := range r.sales {
		if s.InvoiceNumber == invoiceNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubSaleRepo) ExistsByVehicleID(_ context.Context, vehicleID uuid.UUID) (bool, error) {
	for _, s := range r.sales {
		if s.VehicleID == vehicleID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubSaleRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.sales)), nil
}

func (r *stubSaleRepo) List(_ context.Context) ([]model.Sale, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSaleRepo) ListBetween(_ context.Context, start, end time.Time) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if !s.SaleDate.Before(start) && !s.SaleDate.After(end) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) ListByClient(_ context.Context, clientID uuid.UUID) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.ClientID == clientID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) ListByAdmin(_ context.Context, adminID uuid.UUID) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.AdminID == adminID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) Recent(_ context.Context, limit int) ([]model.Sale, error) {
	all, _ := r.List(context.Background())
	// Newest first.
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[j].SaleDate.After(all[i].SaleDate) {
				all[i], all[j] = all[j], all[i]
			}
		}
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *stubSaleRepo) RevenueBetween(_ context.Context, start, end time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, s := range r.sales {
		if !s.SaleDate.Before(start) && !s.SaleDate.After(end) {
			sum = sum.Add(s.SalePrice)
		}
	}
	return sum, nil
}

func (r *stubSaleRepo) ProfitBetween(_ context.Context, start, end time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, s := range r.sales {
		if !s.SaleDate.Before(start) && !s.SaleDate.After(end) && s.Profit != nil {
			sum = sum.Add(*s.Profit)
		}
	}
	return sum, nil
}

func (r *stubSaleRepo) CountBetween(_ context.Context, start, end time.Time) (int64, error) {
	var n int64
	for _, s := range r.sales {
		if !s.SaleDate.Before(start) && !s.SaleDate.After(end) {
			n++
		}
	}
	return n, nil
}

func (r *stubSaleRepo) MonthlyRevenueSince(_ context.Context, start time.Time) ([]repository.MonthlyRevenueRow, error) {
	buckets := make(map[int]*repository.MonthlyRevenueRow)
	for _, s := range r.sales {
		if s.SaleDate.Before(start) {
			continue
		}
		key := s.SaleDate.Year()*100 + int(s.SaleDate.Month())
		row, ok := buckets[key]
		if !ok {
			row = &repository.MonthlyRevenueRow{
				Year:    s.SaleDate.Year(),
				Month:   int(s.SaleDate.Month()),
				Revenue: decimal.Zero,
			}
			buckets[key] = row
		}
		row.Revenue = row.Revenue.Add(s.SalePrice)
		row.Count++
	}
	out := make([]repository.MonthlyRevenueRow, 0, len(buckets))
	for _, row := range buckets {
		out = append(out, *row)
	}
	return out, nil
}

func (r *stubSaleRepo) CountByPaymentMethod(_ context.Context) ([]repository.PaymentMethodCount, error) {
	counts := make(map[model.PaymentMethod]int64)
	for _, s := range r.sales {
		counts[s.PaymentMethod]++
	}
	out := make([]repository.PaymentMethodCount, 0, len(counts))
	for pm, n := range counts {
		out = append(out, repository.PaymentMethodCount{PaymentMethod: pm, Count: n})
	}
	return out, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── Setting repo stub ────────────────────────────────────────────────────────

type stubSettingRepo struct {
	settings map[string]*model.Setting
	saves    int
}

func newStubSettingRepo() *stubSettingRepo {
	return &stubSettingRepo{settings: make(map[string]*model.Setting)}
}

func (r *stubSettingRepo) FindByKey(_ context.Context, key string) (*model.Setting, error) {
	s, ok := r.settings[key]
	if !ok {
		return nil, errStubNotFound
	}
	return s, nil
}

func (r *stubSettingRepo) Exists(_ context.Context, key string) (bool, error) {
	_, ok := r.settings[key]
	return ok, nil
}

func (r *stubSettingRepo) Save(_ context.Context, s *model.Setting) error {
	r.saves++
	r.settings[s.Key] = s
	return nil
}

func (r *stubSettingRepo) List(_ context.Context) ([]model.Setting, error) {
	out := make([]model.Setting, 0, len(r.settings))
	for _, s := range r.settings {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSettingRepo) ListEditable(_ context.Context) ([]model.Setting, error) {
	var out []model.Setting
	for _, s := range r.settings {
		if s.Editable {
			out = append(out, *s)
		}
	}
	return out, nil
}

var _ repository.SettingRepository = (*stubSettingRepo)(nil)

// ── Notifier stub ────────────────────────────────────────────────────────────

type stubNotifier struct {
	enqueued []uuid.UUID
	err      error
}

func (n *stubNotifier) EnqueueSaleConfirmation(_ context.Context, saleID uuid.UUID) error {
	if n.err != nil {
		return n.err
	}
	n.enqueued = append(n.enqueued, saleID)
	return nil
}

var _ SaleNotifier = (*stubNotifier)(nil)
