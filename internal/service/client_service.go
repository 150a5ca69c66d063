package service

import (
	"context"
	"time"

	"carhub/internal/model"
	"carhub/internal/repository"

	"github.com/google/uuid"
)

type ClientService interface {
	Save(ctx context.Context, c *model.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	List(ctx context.Context) ([]model.Client, error)
	Search(ctx context.Context, term string) ([]model.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type clientService struct {
	repo repository.ClientRepository
}

func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

func (s *clientService) Save(ctx context.Context, c *model.Client) error {
	if c.PhoneNumber == "" {
		return newValidationError("phone_number", "required")
	}
	now := time.Now()
	isNew := c.ID == uuid.Nil
	if isNew {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	if c.CustomerType == "" {
		c.CustomerType = model.CustomerIndividual
	}
	if c.PreferredContact == "" {
		c.PreferredContact = model.ContactPhone
	}

	var err error
	if isNew {
		err = s.repo.Create(ctx, c)
	} else {
		err = s.repo.Update(ctx, c)
	}
	if err != nil {
		return persistErr("save client", err)
	}
	return nil
}

func (s *clientService) FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, persistErr("find client", err)
	}
	return c, nil
}

func (s *clientService) List(ctx context.Context) ([]model.Client, error) {
	return s.repo.List(ctx)
}

func (s *clientService) Search(ctx context.Context, term string) ([]model.Client, error) {
	return s.repo.Search(ctx, term)
}

func (s *clientService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return persistErr("delete client", err)
	}
	return nil
}

func (s *clientService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
