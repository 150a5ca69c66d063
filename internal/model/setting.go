package model

import "time"

type SettingType string

const (
	SettingString  SettingType = "STRING"
	SettingInteger SettingType = "INTEGER"
	SettingDecimal SettingType = "DECIMAL"
	SettingBoolean SettingType = "BOOLEAN"
	SettingJSON    SettingType = "JSON"
)

// Setting is a typed, named configuration value. Type is advisory metadata
// for the settings UI; the stored value is never validated against it.
type Setting struct {
	Key         string      `gorm:"primaryKey;size:100"`
	Value       string      `gorm:"type:text;not null"`
	Type        SettingType `gorm:"type:varchar(10);not null;default:'STRING'"`
	Description *string     `gorm:"type:text"`
	Editable    bool        `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Setting) TableName() string { return "settings" }
