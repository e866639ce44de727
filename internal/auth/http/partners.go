package http

import (
	"net/http"

	"github.com/aussiebroadwan/staffdesk/internal/auth/service"
	"github.com/aussiebroadwan/staffdesk/pkg/authsdk"
	"github.com/aussiebroadwan/staffdesk/pkg/httpx"
)

type PartnersHandler struct {
	PartnerService *service.PartnerService
}

// HandleList handles GET /partners
//
//	@Summary		List partners
//	@Tags			Partners
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.ListPartnersResponse	"Partners ordered by name"
//	@Failure		401	{object}	authsdk.APIError				"Invalid or missing access token"
//	@Router			/partners [get].
func (h *PartnersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	partners, err := h.PartnerService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := authsdk.ListPartnersResponse{Partners: make([]authsdk.PartnerResponse, 0, len(partners))}
	for _, p := range partners {
		out.Partners = append(out.Partners, toPartnerResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /partners/{id}
//
//	@Summary		Get a partner
//	@Tags			Partners
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"Partner ID"
//	@Success		200	{object}	authsdk.PartnerResponse	"Partner"
//	@Failure		401	{object}	authsdk.APIError		"Invalid or missing access token"
//	@Failure		404	{object}	authsdk.APIError		"Partner not found"
//	@Router			/partners/{id} [get].
func (h *PartnersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.PartnerService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPartnerResponse(p))
}

// HandleCreate handles POST /partners
//
//	@Summary		Create a partner
//	@Tags			Partners
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.PartnerRequest	true	"Partner"
//	@Success		201		{object}	authsdk.PartnerResponse	"Created partner"
//	@Failure		400		{object}	authsdk.APIError		"Validation failed"
//	@Failure		403		{object}	authsdk.APIError		"Admins and managers only"
//	@Failure		409		{object}	authsdk.APIError		"Name taken"
//	@Router			/partners [post].
func (h *PartnersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.PartnerRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}
	p, err := h.PartnerService.Create(r.Context(), partnerInput(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toPartnerResponse(p))
}

// HandleUpdate handles PUT /partners/{id}
//
//	@Summary		Update a partner
//	@Tags			Partners
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Partner ID"
//	@Param			request	body		authsdk.PartnerRequest	true	"Partner"
//	@Success		200		{object}	authsdk.PartnerResponse	"Updated partner"
//	@Failure		400		{object}	authsdk.APIError		"Validation failed"
//	@Failure		403		{object}	authsdk.APIError		"Admins and managers only"
//	@Failure		404		{object}	authsdk.APIError		"Partner not found"
//	@Failure		409		{object}	authsdk.APIError		"Name taken"
//	@Router			/partners/{id} [put].
func (h *PartnersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.PartnerRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}
	p, err := h.PartnerService.Update(r.Context(), r.PathValue("id"), partnerInput(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPartnerResponse(p))
}

// HandleDelete handles DELETE /partners/{id}
//
//	@Summary		Delete a partner
//	@Tags			Partners
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Partner ID"
//	@Success		204	"Deleted"
//	@Failure		403	{object}	authsdk.APIError	"Admins and managers only"
//	@Failure		404	{object}	authsdk.APIError	"Partner not found"
//	@Router			/partners/{id} [delete].
func (h *PartnersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.PartnerService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func partnerInput(req authsdk.PartnerRequest) service.PartnerInput {
	return service.PartnerInput{
		Name:        req.Name,
		Description: req.Description,
		Logo:        req.Logo,
		Website:     req.Website,
	}
}
