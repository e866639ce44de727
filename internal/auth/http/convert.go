package http

import (
	"time"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/pkg/authsdk"
)

func rfc3339(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func toUserResponse(u domain.User, caps domain.CapabilitySet) authsdk.UserResponse {
	resp := authsdk.UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FullName:     u.FullName,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		IsStaff:      u.IsStaff,
		IsAdmin:      u.IsAdmin,
		IsSuperAdmin: u.IsSuperAdmin,
		MFAEnabled:   u.HasMFA(),
		Capabilities: caps.Strings(),
		DateJoined:   rfc3339(u.DateJoined),
	}
	if u.LastLogin != nil {
		s := rfc3339(*u.LastLogin)
		resp.LastLogin = &s
	}
	return resp
}

func toTokenResponse(p domain.TokenPair) authsdk.TokenResponse {
	return authsdk.TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
		ExpiresIn:    int(p.ExpiresIn.Seconds()),
	}
}

func toProfileResponse(p domain.UserProfile) authsdk.ProfileResponse {
	resp := authsdk.ProfileResponse{
		UserID:   p.UserID,
		FullName: p.FullName,
		Picture:  p.Picture,
		Title:    p.Title,
		Bio:      p.Bio,
	}
	if !p.UpdatedAt.IsZero() {
		resp.UpdatedAt = rfc3339(p.UpdatedAt)
	}
	return resp
}

func toPartnerResponse(p domain.Partner) authsdk.PartnerResponse {
	return authsdk.PartnerResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Logo:        p.Logo,
		Website:     p.Website,
		CreatedAt:   rfc3339(p.CreatedAt),
		UpdatedAt:   rfc3339(p.UpdatedAt),
	}
}
