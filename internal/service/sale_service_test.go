package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"carhub/internal/dto"
	"carhub/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var invoicePattern = regexp.MustCompile(`^INV-\d{8}-\d{3,}$`)

type saleFixture struct {
	svc      SaleService
	saleRepo *stubSaleRepo
	vehicles *stubVehicleRepo
	clients  *stubClientRepo
	notifier *stubNotifier
	adminID  uuid.UUID
}

func newSaleFixture(t *testing.T, strict bool) *saleFixture {
	t.Helper()
	saleRepo := newStubSaleRepo()
	vehicles := newStubVehicleRepo()
	clients := newStubClientRepo()
	settings := NewSettingsService(newStubSettingRepo())
	inventory := NewInventoryService(vehicles, saleRepo, strict)
	notifier := &stubNotifier{}
	svc := NewSaleService(saleRepo, vehicles, clients, inventory, settings, notifier, strict)
	return &saleFixture{
		svc:      svc,
		saleRepo: saleRepo,
		vehicles: vehicles,
		clients:  clients,
		notifier: notifier,
		adminID:  uuid.New(),
	}
}

func (f *saleFixture) addAvailableVehicle(price, cost string) *model.Vehicle {
	v := &model.Vehicle{
		Brand:     "Toyota",
		Model:     "Corolla",
		Year:      2021,
		Price:     decimal.RequireFromString(price),
		Status:    model.StatusAvailable,
		CreatedAt: time.Now(),
	}
	if cost != "" {
		c := decimal.RequireFromString(cost)
		v.CostPrice = &c
	}
	return f.vehicles.add(v)
}

func (f *saleFixture) addClient() *model.Client {
	email := "buyer@example.com"
	return f.clients.add(&model.Client{
		FirstName:   "Hery",
		LastName:    "Rakoto",
		PhoneNumber: "+261340000000",
		Email:       &email,
	})
}

func TestCreateSaleMarksVehicleSoldAndSnapshotsProfit(t *testing.T) {
	f := newSaleFixture(t, false)
	vehicle := f.addAvailableVehicle("25000", "20000")
	client := f.addClient()

	sale, err := f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
		VehicleID: vehicle.ID.String(),
		ClientID:  client.ID.String(),
		SalePrice: decimal.RequireFromString("25000"),
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusSold, vehicle.Status)
	require.NotNil(t, vehicle.SoldAt)

	require.NotNil(t, sale.Profit)
	assert.True(t, sale.Profit.Equal(decimal.RequireFromString("5000")),
		"profit = salePrice - costPrice, got %s", sale.Profit)

	assert.Regexp(t, invoicePattern, sale.InvoiceNumber)
	assert.Equal(t, model.PaymentCash, sale.PaymentMethod)
	assert.Equal(t, model.PaymentPending, sale.PaymentStatus)
	assert.Equal(t, 12, sale.WarrantyMonths)

	require.Len(t, f.notifier.enqueued, 1)
	assert.Equal(t, sale.ID, f.notifier.enqueued[0])
}

func TestCreateSaleWithoutCostPriceLeavesProfitUnset(t *testing.T) {
	f := newSaleFixture(t, false)
	vehicle := f.addAvailableVehicle("25000", "")
	client := f.addClient()

	sale, err := f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
		VehicleID: vehicle.ID.String(),
		ClientID:  client.ID.String(),
		SalePrice: decimal.RequireFromString("25000"),
	})
	require.NoError(t, err)
	assert.Nil(t, sale.Profit)
}

func TestCreateSaleTotalAmountFormula(t *testing.T) {
	f := newSaleFixture(t, false)
	vehicle := f.addAvailableVehicle("25000", "20000")
	client := f.addClient()

	sale, err := f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
		VehicleID:      vehicle.ID.String(),
		ClientID:       client.ID.String(),
		SalePrice:      decimal.RequireFromString("25000"),
		DiscountAmount: decimal.RequireFromString("1000"),
		TaxAmount:      decimal.RequireFromString("5000"),
	})
	require.NoError(t, err)

	// totalAmount = salePrice - discount + tax
	assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("29000")),
		"got %s", sale.TotalAmount)
}

func TestCreateSaleValidatesBeforeMutating(t *testing.T) {
	f := newSaleFixture(t, false)
	vehicle := f.addAvailableVehicle("25000", "20000")
	client := f.addClient()

	cases := []struct {
		name  string
		req   dto.CreateSaleRequest
		field string
	}{
		{"missing vehicle", dto.CreateSaleRequest{
			ClientID: client.ID.String(), SalePrice: decimal.RequireFromString("1"),
		}, "vehicle_id"},
		{"missing client", dto.CreateSaleRequest{
			VehicleID: vehicle.ID.String(), SalePrice: decimal.RequireFromString("1"),
		}, "client_id"},
		{"zero price", dto.CreateSaleRequest{
			VehicleID: vehicle.ID.String(), ClientID: client.ID.String(),
		}, "sale_price"},
		{"unknown vehicle", dto.CreateSaleRequest{
			VehicleID: uuid.NewString(), ClientID: client.ID.String(),
			SalePrice: decimal.RequireFromString("1"),
		}, "vehicle_id"},
		{"unknown client", dto.CreateSaleRequest{
			VehicleID: vehicle.ID.String(), ClientID: uuid.NewString(),
			SalePrice: decimal.RequireFromString("1"),
		}, "client_id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CreateSale(context.Background(), f.adminID, tc.req)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Fields, tc.field)
		})
	}

	// Nothing mutated on any failed call.
	assert.Equal(t, model.StatusAvailable, vehicle.Status)
	count, _ := f.saleRepo.Count(context.Background())
	assert.Zero(t, count)
	assert.Empty(t, f.notifier.enqueued)
}

func TestCreateSaleSequentialInvoiceNumbers(t *testing.T) {
	f := newSaleFixture(t, false)
	client := f.addClient()

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		vehicle := f.addAvailableVehicle("10000", "8000")
		sale, err := f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
			VehicleID: vehicle.ID.String(),
			ClientID:  client.ID.String(),
			SalePrice: decimal.RequireFromString("10000"),
		})
		require.NoError(t, err)
		assert.Regexp(t, invoicePattern, sale.InvoiceNumber)
		assert.False(t, seen[sale.InvoiceNumber], "invoice %s allocated twice", sale.InvoiceNumber)
		seen[sale.InvoiceNumber] = true
	}
	assert.Len(t, seen, 5)
}

func TestCreateSaleGeneratorSkipsTakenNumbers(t *testing.T) {
	f := newSaleFixture(t, false)
	client := f.addClient()

	// Occupy the number the generator would produce first (count=0 → seq 1).
	date := time.Now().Format("20060102")
	blocked := fmt.Sprintf("INV-%s-%03d", date, 1)
	v0 := f.addAvailableVehicle("10000", "")
	_, err := f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
		VehicleID:     v0.ID.String(),
		ClientID:      client.ID.String(),
		SalePrice:     decimal.RequireFromString("10000"),
		InvoiceNumber: blocked,
	})
	require.NoError(t, err)

	// The generator starts at count+1 = 2 here, but force a collision anyway
	// by also occupying seq 2.
	blocked2 := fmt.Sprintf("INV-%s-%03d", date, 2)
	v1 := f.addAvailableVehicle("10000", "")
	_, err = f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
		VehicleID:     v1.ID.String(),
		ClientID:      client.ID.String(),
		SalePrice:     decimal.RequireFromString("10000"),
		InvoiceNumber: blocked2,
	})
	require.NoError(t, err)

	v2 := f.addAvailableVehicle("10000", "")
	sale, err := f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
		VehicleID: v2.ID.String(),
		ClientID:  client.ID.String(),
		SalePrice: decimal.RequireFromString("10000"),
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("INV-%s-%03d", date, 3), sale.InvoiceNumber)
}

func TestCreateSaleRejectsExplicitDuplicateInvoice(t *testing.T) {
	f := newSaleFixture(t, false)
	client := f.addClient()

	v0 := f.addAvailableVehicle("10000", "")
	first, err := f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
		VehicleID: v0.ID.String(),
		ClientID:  client.ID.String(),
		SalePrice: decimal.RequireFromString("10000"),
	})
	require.NoError(t, err)

	v1 := f.addAvailableVehicle("10000", "")
	_, err = f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
		VehicleID:     v1.ID.String(),
		ClientID:      client.ID.String(),
		SalePrice:     decimal.RequireFromString("10000"),
		InvoiceNumber: first.InvoiceNumber,
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "invoice_number")
	assert.Equal(t, model.StatusAvailable, v1.Status)
}

func TestCreateSaleNotifierFailureDoesNotUnwindSale(t *testing.T) {
	f := newSaleFixture(t, false)
	f.notifier.err = errors.New("redis down")
	vehicle := f.addAvailableVehicle("25000", "20000")
	client := f.addClient()

	sale, err := f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
		VehicleID: vehicle.ID.String(),
		ClientID:  client.ID.String(),
		SalePrice: decimal.RequireFromString("25000"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusSold, vehicle.Status)

	stored, err := f.saleRepo.FindByID(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.InvoiceNumber, stored.InvoiceNumber)
}

func TestUpdateSaleReDerivesAmountsWithoutTouchingVehicle(t *testing.T) {
	f := newSaleFixture(t, false)
	vehicle := f.addAvailableVehicle("25000", "20000")
	client := f.addClient()

	sale, err := f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
		VehicleID: vehicle.ID.String(),
		ClientID:  client.ID.String(),
		SalePrice: decimal.RequireFromString("25000"),
	})
	require.NoError(t, err)
	originalInvoice := sale.InvoiceNumber

	newPrice := decimal.RequireFromString("27000")
	updated, err := f.svc.UpdateSale(context.Background(), sale.ID, dto.UpdateSaleRequest{
		SalePrice: &newPrice,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.Profit)
	assert.True(t, updated.Profit.Equal(decimal.RequireFromString("7000")))
	assert.True(t, updated.TotalAmount.Equal(newPrice))
	// Invoice number is immutable; vehicle stays SOLD.
	assert.Equal(t, originalInvoice, updated.InvoiceNumber)
	assert.Equal(t, model.StatusSold, vehicle.Status)
}

func TestDeleteSaleRestoresVehicle(t *testing.T) {
	f := newSaleFixture(t, false)
	vehicle := f.addAvailableVehicle("25000", "20000")
	client := f.addClient()

	sale, err := f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
		VehicleID: vehicle.ID.String(),
		ClientID:  client.ID.String(),
		SalePrice: decimal.RequireFromString("25000"),
	})
	require.NoError(t, err)
	require.Equal(t, model.StatusSold, vehicle.Status)

	require.NoError(t, f.svc.DeleteSale(context.Background(), sale.ID))

	assert.Equal(t, model.StatusAvailable, vehicle.Status)
	assert.Nil(t, vehicle.SoldAt)
	_, err = f.saleRepo.FindByID(context.Background(), sale.ID)
	assert.Error(t, err)
}

func TestDeleteSaleMissingIDLenientVsStrict(t *testing.T) {
	lenient := newSaleFixture(t, false)
	assert.NoError(t, lenient.svc.DeleteSale(context.Background(), uuid.New()))

	strict := newSaleFixture(t, true)
	err := strict.svc.DeleteSale(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsInvoiceNumberAvailable(t *testing.T) {
	f := newSaleFixture(t, false)
	vehicle := f.addAvailableVehicle("10000", "")
	client := f.addClient()

	sale, err := f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
		VehicleID: vehicle.ID.String(),
		ClientID:  client.ID.String(),
		SalePrice: decimal.RequireFromString("10000"),
	})
	require.NoError(t, err)

	taken, err := f.svc.IsInvoiceNumberAvailable(context.Background(), sale.InvoiceNumber)
	require.NoError(t, err)
	assert.False(t, taken)

	free, err := f.svc.IsInvoiceNumberAvailable(context.Background(), "INV-19990101-001")
	require.NoError(t, err)
	assert.True(t, free)
}

func TestListSalesFilters(t *testing.T) {
	f := newSaleFixture(t, false)
	client := f.addClient()
	other := f.addClient()

	for i := 0; i < 3; i++ {
		vehicle := f.addAvailableVehicle("10000", "")
		cid := client.ID
		if i == 2 {
			cid = other.ID
		}
		_, err := f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
			VehicleID: vehicle.ID.String(),
			ClientID:  cid.String(),
			SalePrice: decimal.RequireFromString("10000"),
		})
		require.NoError(t, err)
	}

	byClient, err := f.svc.List(context.Background(), dto.SaleFilter{ClientID: client.ID.String()})
	require.NoError(t, err)
	assert.Len(t, byClient, 2)

	all, err := f.svc.List(context.Background(), dto.SaleFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = f.svc.List(context.Background(), dto.SaleFilter{ClientID: "not-a-uuid"})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestListSalesOpenEndedDateRange(t *testing.T) {
	f := newSaleFixture(t, false)
	client := f.addClient()

	dates := []time.Time{
		time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2026, time.July, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		vehicle := f.addAvailableVehicle("10000", "")
		saleDate := d
		_, err := f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
			VehicleID: vehicle.ID.String(),
			ClientID:  client.ID.String(),
			SalePrice: decimal.RequireFromString("10000"),
			SaleDate:  &saleDate,
		})
		require.NoError(t, err)
	}

	fromOnly, err := f.svc.List(context.Background(), dto.SaleFilter{From: "2026-07-01"})
	require.NoError(t, err)
	assert.Len(t, fromOnly, 2)

	toOnly, err := f.svc.List(context.Background(), dto.SaleFilter{To: "2026-06-30"})
	require.NoError(t, err)
	assert.Len(t, toOnly, 1)

	_, err = f.svc.List(context.Background(), dto.SaleFilter{From: "not-a-date"})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestCreateSaleRejectsVehicleNotAvailable(t *testing.T) {
	f := newSaleFixture(t, false)
	client := f.addClient()
	vehicle := f.addAvailableVehicle("25000", "20000")

	_, err := f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
		VehicleID: vehicle.ID.String(),
		ClientID:  client.ID.String(),
		SalePrice: decimal.RequireFromString("25000"),
	})
	require.NoError(t, err)
	require.Equal(t, model.StatusSold, vehicle.Status)

	// A second sale of the same vehicle must not go through: the first sale
	// would be orphaned and its later deletion would flip the vehicle back to
	// AVAILABLE with the other sale still stored.
	_, err = f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
		VehicleID: vehicle.ID.String(),
		ClientID:  client.ID.String(),
		SalePrice: decimal.RequireFromString("26000"),
	})
	var cErr *ConflictError
	require.ErrorAs(t, err, &cErr)

	count, _ := f.saleRepo.Count(context.Background())
	assert.EqualValues(t, 1, count)
	assert.Equal(t, model.StatusSold, vehicle.Status)

	// Statuses outside the sale flow are equally off limits.
	reserved := f.addAvailableVehicle("15000", "")
	reserved.Status = model.StatusReserved
	_, err = f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
		VehicleID: reserved.ID.String(),
		ClientID:  client.ID.String(),
		SalePrice: decimal.RequireFromString("15000"),
	})
	assert.ErrorAs(t, err, &cErr)
}

func TestSaleLookupsSurfaceStoreFailures(t *testing.T) {
	f := newSaleFixture(t, false)
	vehicle := f.addAvailableVehicle("25000", "20000")
	client := f.addClient()

	sale, err := f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
		VehicleID: vehicle.ID.String(),
		ClientID:  client.ID.String(),
		SalePrice: decimal.RequireFromString("25000"),
	})
	require.NoError(t, err)

	// A store outage is not "record absent": even in lenient mode it must
	// reach the caller instead of turning into a silent no-op.
	f.saleRepo.findErr = errors.New("connection refused")

	err = f.svc.DeleteSale(context.Background(), sale.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, model.StatusSold, vehicle.Status, "failed delete must not touch the vehicle")

	_, err = f.svc.FindByID(context.Background(), sale.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	price := decimal.RequireFromString("26000")
	_, err = f.svc.UpdateSale(context.Background(), sale.ID, dto.UpdateSaleRequest{SalePrice: &price})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	f.saleRepo.findErr = nil
	count, _ := f.saleRepo.Count(context.Background())
	assert.EqualValues(t, 1, count, "sale survives the outage untouched")
}

func TestCreateSaleSurfacesVehicleLookupFailure(t *testing.T) {
	f := newSaleFixture(t, false)
	vehicle := f.addAvailableVehicle("25000", "20000")
	client := f.addClient()
	f.vehicles.findErr = errors.New("connection refused")

	_, err := f.svc.CreateSale(context.Background(), f.adminID, dto.CreateSaleRequest{
		VehicleID: vehicle.ID.String(),
		ClientID:  client.ID.String(),
		SalePrice: decimal.RequireFromString("25000"),
	})
	require.Error(t, err)
	var vErr *ValidationError
	assert.False(t, errors.As(err, &vErr), "an outage is not a validation failure")
	assert.Equal(t, model.StatusAvailable, vehicle.Status)
}
