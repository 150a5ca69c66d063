package dto

import (
	"time"

	"carhub/internal/model"
)

type SaveClientRequest struct {
	FirstName        string     `json:"first_name" validate:"required,max=50"`
	LastName         string     `json:"last_name" validate:"required,max=50"`
	Email            *string    `json:"email" validate:"omitempty,email"`
	PhoneNumber      string     `json:"phone_number" validate:"required,max=20"`
	Address          *string    `json:"address"`
	City             *string    `json:"city"`
	PostalCode       *string    `json:"postal_code"`
	Country          string     `json:"country"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	Gender           *string    `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	PreferredContact string     `json:"preferred_contact" validate:"omitempty,oneof=PHONE EMAIL SMS WHATSAPP"`
	CustomerType     string     `json:"customer_type" validate:"omitempty,oneof=INDIVIDUAL BUSINESS GOVERNMENT DEALER"`
	CreditScore      *int       `json:"credit_score" validate:"omitempty,gte=300,lte=850"`
	Notes            *string    `json:"notes"`
}

type ClientResponse struct {
	ID               string     `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	FullName         string     `json:"full_name"`
	Email            *string    `json:"email,omitempty"`
	PhoneNumber      string     `json:"phone_number"`
	Address          *string    `json:"address,omitempty"`
	City             *string    `json:"city,omitempty"`
	PostalCode       *string    `json:"postal_code,omitempty"`
	Country          string     `json:"country"`
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	Gender           *string    `json:"gender,omitempty"`
	PreferredContact string     `json:"preferred_contact"`
	CustomerType     string     `json:"customer_type"`
	CreditScore      *int       `json:"credit_score,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func ClientToResponse(c *model.Client) *ClientResponse {
	var gender *string
	if c.Gender != nil {
		g := string(*c.Gender)
		gender = &g
	}
	return &ClientResponse{
		ID:               c.ID.String(),
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		FullName:         c.FullName(),
		Email:            c.Email,
		PhoneNumber:      c.PhoneNumber,
		Address:          c.Address,
		City:             c.City,
		PostalCode:       c.PostalCode,
		Country:          c.Country,
		DateOfBirth:      c.DateOfBirth,
		Gender:           gender,
		PreferredContact: string(c.PreferredContact),
		CustomerType:     string(c.CustomerType),
		CreditScore:      c.CreditScore,
		Notes:            c.Notes,
		CreatedAt:        c.CreatedAt,
	}
}
