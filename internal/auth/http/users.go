package http

import (
	"net/http"

	"github.com/aussiebroadwan/staffdesk/internal/auth/service"
	"github.com/aussiebroadwan/staffdesk/pkg/authsdk"
	"github.com/aussiebroadwan/staffdesk/pkg/httpx"
)

// UsersHandler serves the staff user-management endpoints.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleList handles GET /users
//
//	@Summary		List users
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.ListUsersResponse	"All users"
//	@Failure		401	{object}	authsdk.APIError			"Invalid or missing access token"
//	@Failure		403	{object}	authsdk.APIError			"Staff only"
//	@Router			/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	users, err := h.UserService.ListUsers(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := authsdk.ListUsersResponse{Users: make([]authsdk.UserResponse, 0, len(users))}
	for _, u := range users {
		caps, err := h.UserService.Capabilities(ctx, u.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		out.Users = append(out.Users, toUserResponse(u, caps))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /users/{id}
//
//	@Summary		Get a user
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"User ID"
//	@Success		200	{object}	authsdk.UserResponse	"User"
//	@Failure		401	{object}	authsdk.APIError		"Invalid or missing access token"
//	@Failure		403	{object}	authsdk.APIError		"Staff only"
//	@Failure		404	{object}	authsdk.APIError		"User not found"
//	@Router			/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u, err := h.UserService.GetUser(ctx, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	caps, err := h.UserService.Capabilities(ctx, u.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u, caps))
}

// HandleCreate handles POST /users
//
//	@Summary		Create a user
//	@Description	Username and full_name default to the local part of the email. A manager created with add_recruitment receives that capability.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.CreateUserRequest	true	"New user"
//	@Success		201		{object}	authsdk.UserResponse		"Created user"
//	@Failure		400		{object}	authsdk.APIError			"Validation failed"
//	@Failure		401		{object}	authsdk.APIError			"Invalid or missing access token"
//	@Failure		403		{object}	authsdk.APIError			"Requires staff and add_recruitment"
//	@Failure		409		{object}	authsdk.APIError			"Email or username taken"
//	@Router			/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.CreateUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	ctx := r.Context()
	u, err := h.UserService.CreateUser(ctx, callerFrom(r), service.CreateUserInput{
		Email:          req.Email,
		Password:       req.Password,
		Username:       req.Username,
		FullName:       req.FullName,
		Role:           req.Role,
		IsStaff:        req.IsStaff,
		AddRecruitment: req.AddRecruitment,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	caps, err := h.UserService.Capabilities(ctx, u.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(u, caps))
}

// HandleUpdate handles PUT /users/{id}
//
//	@Summary		Update a user
//	@Description	Omitted fields are kept. A manager holds add_recruitment only while granted; changing the role to admin revokes it. Deactivating a user revokes its refresh token.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"User ID"
//	@Param			request	body		authsdk.UpdateUserRequest	true	"Changed fields"
//	@Success		200		{object}	authsdk.UserResponse		"Updated user"
//	@Failure		400		{object}	authsdk.APIError			"Validation failed"
//	@Failure		401		{object}	authsdk.APIError			"Invalid or missing access token"
//	@Failure		403		{object}	authsdk.APIError			"Staff only"
//	@Failure		404		{object}	authsdk.APIError			"User not found"
//	@Failure		409		{object}	authsdk.APIError			"Username taken"
//	@Router			/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.UpdateUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	ctx := r.Context()
	u, err := h.UserService.UpdateUser(ctx, callerFrom(r), r.PathValue("id"), service.UpdateUserInput{
		Username:       req.Username,
		FullName:       req.FullName,
		Role:           req.Role,
		IsActive:       req.IsActive,
		IsStaff:        req.IsStaff,
		AddRecruitment: req.AddRecruitment,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	caps, err := h.UserService.Capabilities(ctx, u.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u, caps))
}

// HandleDelete handles DELETE /users/{id}
//
//	@Summary		Delete a user
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			id	path	string	true	"User ID"
//	@Success		204	"Deleted"
//	@Failure		401	{object}	authsdk.APIError	"Invalid or missing access token"
//	@Failure		403	{object}	authsdk.APIError	"Staff admins only"
//	@Failure		404	{object}	authsdk.APIError	"User not found"
//	@Router			/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.DeleteUser(r.Context(), callerFrom(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
