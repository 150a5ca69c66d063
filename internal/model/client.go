package model

import (
	"time"

	"github.com/google/uuid"
)

type CustomerType string

const (
	CustomerIndividual CustomerType = "INDIVIDUAL"
	CustomerBusiness   CustomerType = "BUSINESS"
	CustomerGovernment CustomerType = "GOVERNMENT"
	CustomerDealer     CustomerType = "DEALER"
)

type ContactMethod string

const (
	ContactPhone    ContactMethod = "PHONE"
	ContactEmail    ContactMethod = "EMAIL"
	ContactSMS      ContactMethod = "SMS"
	ContactWhatsApp ContactMethod = "WHATSAPP"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Client is a buyer record. It carries no state machine; it is only
// referenced by sales.
type Client struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName        string    `gorm:"size:50;not null"`
	LastName         string    `gorm:"size:50;not null"`
	Email            *string   `gorm:"uniqueIndex;size:100"`
	PhoneNumber      string    `gorm:"size:20;not null"`
	Address          *string   `gorm:"type:text"`
	City             *string   `gorm:"size:50"`
	PostalCode       *string   `gorm:"size:10"`
	Country          string    `gorm:"size:50;default:'Madagascar'"`
	DateOfBirth      *time.Time
	Gender           *Gender       `gorm:"type:varchar(10)"`
	PreferredContact ContactMethod `gorm:"type:varchar(20);not null;default:'PHONE'"`
	Notes            *string       `gorm:"type:text"`
	CustomerType     CustomerType  `gorm:"type:varchar(20);not null;default:'INDIVIDUAL'"`
	CreditScore      *int
	CreatedByID      *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	CreatedBy *Admin `gorm:"foreignKey:CreatedByID"`
}

func (Client) TableName() string { return "clients" }

func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
