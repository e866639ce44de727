package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListPartners lists all partners.
func (s *Session) ListPartners(ctx context.Context) ([]PartnerResponse, error) {
	var out ListPartnersResponse
	if err := s.doAuthJSON(ctx, http.MethodGet, "/partners", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Partners, nil
}

// GetPartner fetches one partner.
func (s *Session) GetPartner(ctx context.Context, id string) (*PartnerResponse, error) {
	var out PartnerResponse
	if err := s.doAuthJSON(ctx, http.MethodGet, "/partners/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePartner creates a partner. Requires the admin or manager role.
func (s *Session) CreatePartner(ctx context.Context, req PartnerRequest) (*PartnerResponse, error) {
	var out PartnerResponse
	if err := s.doAuthJSON(ctx, http.MethodPost, "/partners", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePartner replaces a partner's fields.
func (s *Session) UpdatePartner(ctx context.Context, id string, req PartnerRequest) (*PartnerResponse, error) {
	var out PartnerResponse
	if err := s.doAuthJSON(ctx, http.MethodPut, "/partners/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePartner deletes a partner.
func (s *Session) DeletePartner(ctx context.Context, id string) error {
	return s.doAuthJSON(ctx, http.MethodDelete, "/partners/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}
