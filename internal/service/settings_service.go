package service

import (
	"context"
	"strconv"

	"carhub/internal/model"
	"carhub/internal/repository"

	"github.com/shopspring/decimal"
)

type SettingsService interface {
	GetValue(ctx context.Context, key, defaultValue string) string
	GetInteger(ctx context.Context, key string, defaultValue int) int
	GetDecimal(ctx context.Context, key string, defaultValue decimal.Decimal) decimal.Decimal
	GetBoolean(ctx context.Context, key string, defaultValue bool) bool
	Update(ctx context.Context, key, value string) error
	CreateIfAbsent(ctx context.Context, key, value string, typ model.SettingType, description string) error
	EnsureDefaults(ctx context.Context) error
	All(ctx context.Context) ([]model.Setting, error)
	Editable(ctx context.Context) ([]model.Setting, error)
}

type settingsService struct {
	repo repository.SettingRepository
}

func NewSettingsService(repo repository.SettingRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) GetValue(ctx context.Context, key, defaultValue string) string {
	setting, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return defaultValue
	}
	return setting.Value
}

// Typed accessors swallow parse failures and fall back to the default; a
// malformed stored value must never break a caller.

func (s *settingsService) GetInteger(ctx context.Context, key string, defaultValue int) int {
	value := s.GetValue(ctx, key, strconv.Itoa(defaultValue))
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func (s *settingsService) GetDecimal(ctx context.Context, key string, defaultValue decimal.Decimal) decimal.Decimal {
	value := s.GetValue(ctx, key, defaultValue.String())
	d, err := decimal.NewFromString(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func (s *settingsService) GetBoolean(ctx context.Context, key string, defaultValue bool) bool {
	value := s.GetValue(ctx, key, strconv.FormatBool(defaultValue))
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func (s *settingsService) Update(ctx context.Context, key, value string) error {
	setting, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		// Absent key: upsert as a STRING-typed entry.
		setting = &model.Setting{Key: key, Value: value, Type: model.SettingString, Editable: true}
		if err := s.repo.Save(ctx, setting); err != nil {
			return persistErr("create setting", err)
		}
		return nil
	}
	setting.Value = value
	if err := s.repo.Save(ctx, setting); err != nil {
		return persistErr("update setting", err)
	}
	return nil
}

// CreateIfAbsent is idempotent seeding: it never overwrites an existing value.
func (s *settingsService) CreateIfAbsent(ctx context.Context, key, value string, typ model.SettingType, description string) error {
	exists, err := s.repo.Exists(ctx, key)
	if err != nil {
		return persistErr("check setting", err)
	}
	if exists {
		return nil
	}
	setting := &model.Setting{
		Key:         key,
		Value:       value,
		Type:        typ,
		Description: &description,
		Editable:    true,
	}
	if err := s.repo.Save(ctx, setting); err != nil {
		return persistErr("seed setting", err)
	}
	return nil
}

// EnsureDefaults seeds the settings every fresh install needs. Called once at
// startup; re-running is a no-op.
func (s *settingsService) EnsureDefaults(ctx context.Context) error {
	defaults := []struct {
		key, value, descr string
		typ               model.SettingType
	}{
		{"company_name", "CarHub", "Company name for branding", model.SettingString},
		{"company_address", "123 Business Street, Antananarivo, Madagascar", "Company address", model.SettingString},
		{"company_phone", "+261-20-123-4567", "Company phone number", model.SettingString},
		{"company_email", "info@carhub.com", "Company email address", model.SettingString},
		{"tax_rate", "20.0", "Default tax rate percentage", model.SettingDecimal},
		{"currency", "MGA", "Default currency", model.SettingString},
		{"invoice_prefix", "INV", "Invoice number prefix", model.SettingString},
		{"warranty_months", "12", "Default warranty period in months", model.SettingInteger},
	}
	for _, d := range defaults {
		if err := s.CreateIfAbsent(ctx, d.key, d.value, d.typ, d.descr); err != nil {
			return err
		}
	}
	return nil
}

func (s *settingsService) All(ctx context.Context) ([]model.Setting, error) {
	return s.repo.List(ctx)
}

func (s *settingsService) Editable(ctx context.Context) ([]model.Setting, error) {
	return s.repo.ListEditable(ctx)
}
