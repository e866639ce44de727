package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/internal/auth/store"
	"github.com/aussiebroadwan/staffdesk/pkg/idx"
	"github.com/aussiebroadwan/staffdesk/pkg/slogx"
)

const msgPartnerExists = "Partner with this name already exists"

type PartnerInput struct {
	Name        string
	Description string
	Logo        string
	Website     string
}

func (in PartnerInput) validate() error {
	var nameErr error
	if trim(in.Name) == "" {
		nameErr = invalidField("name", "is required")
	} else {
		nameErr = lengthAtMost("name", trim(in.Name), 255)
	}
	return mergeValidation(
		nameErr,
		validateURL("logo", trim(in.Logo)),
		validateURL("website", trim(in.Website)),
	)
}

type PartnerService struct {
	Store store.Store
}

func (s *PartnerService) List(ctx context.Context) ([]domain.Partner, error) {
	ps, err := s.Store.Partners().ListPartners(ctx)
	if err != nil {
		return nil, dependency("list partners", err)
	}
	return ps, nil
}

func (s *PartnerService) Get(ctx context.Context, id string) (domain.Partner, error) {
	p, err := s.Store.Partners().GetPartnerByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Partner{}, ErrNotFound
		}
		return domain.Partner{}, dependency("get partner", err)
	}
	return p, nil
}

func (s *PartnerService) Create(ctx context.Context, in PartnerInput) (domain.Partner, error) {
	if err := in.validate(); err != nil {
		return domain.Partner{}, err
	}

	p := domain.Partner{
		ID:          idx.New().String(),
		Name:        trim(in.Name),
		Description: in.Description,
		Logo:        trim(in.Logo),
		Website:     trim(in.Website),
	}
	if err := s.Store.Partners().CreatePartner(ctx, p); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Partner{}, conflict(msgPartnerExists)
		}
		return domain.Partner{}, dependency("create partner", err)
	}

	slogx.FromContext(ctx).Info("partner created", slog.String("partner_id", p.ID))
	return s.Get(ctx, p.ID)
}

func (s *PartnerService) Update(ctx context.Context, id string, in PartnerInput) (domain.Partner, error) {
	if err := in.validate(); err != nil {
		return domain.Partner{}, err
	}

	err := s.Store.Partners().UpdatePartner(ctx, domain.Partner{
		ID:          id,
		Name:        trim(in.Name),
		Description: in.Description,
		Logo:        trim(in.Logo),
		Website:     trim(in.Website),
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.Partner{}, ErrNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.Partner{}, conflict(msgPartnerExists)
	case err != nil:
		return domain.Partner{}, dependency("update partner", err)
	}
	return s.Get(ctx, id)
}

func (s *PartnerService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Partners().DeletePartner(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return dependency("delete partner", err)
	}
	slogx.FromContext(ctx).Info("partner deleted", slog.String("partner_id", id))
	return nil
}
