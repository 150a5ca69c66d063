package repository

import (
	"context"

	"carhub/internal/model"

	"gorm.io/gorm"
)

type SettingRepository interface {
	FindByKey(ctx context.Context, key string) (*model.Setting, error)
	Exists(ctx context.Context, key string) (bool, error)
	Save(ctx context.Context, s *model.Setting) error
	List(ctx context.Context) ([]model.Setting, error)
	ListEditable(ctx context.Context) ([]model.Setting, error)
}

type settingRepo struct{ db *gorm.DB }

func NewSettingRepository(db *gorm.DB) SettingRepository { return &settingRepo{db: db} }

func (r *settingRepo) FindByKey(ctx context.Context, key string) (*model.Setting, error) {
	var s model.Setting
	err := r.db.WithContext(ctx).First(&s, "key = ?", key).Error
	return &s, err
}

func (r *settingRepo) Exists(ctx context.Context, key string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Setting{}).Where("key = ?", key).Count(&count).Error
	return count > 0, err
}

func (r *settingRepo) Save(ctx context.Context, s *model.Setting) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *settingRepo) List(ctx context.Context) ([]model.Setting, error) {
	var settings []model.Setting
	err := r.db.WithContext(ctx).Order("key ASC").Find(&settings).Error
	return settings, err
}

func (r *settingRepo) ListEditable(ctx context.Context) ([]model.Setting, error) {
	var settings []model.Setting
	err := r.db.WithContext(ctx).Where("editable = true").Order("key ASC").Find(&settings).Error
	return settings, err
}
