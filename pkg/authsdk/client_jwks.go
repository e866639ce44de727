package authsdk

import (
	"context"
	"net/http"
)

// GetJWKS retrieves the JSON Web Key Set for token verification.
func (c *SDKClient) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	var jwks JWKSResponse
	if err := c.doJSON(ctx, http.MethodGet, "/.well-known/jwks.json", nil, &jwks, http.StatusOK, nil); err != nil {
		return nil, err
	}
	return &jwks, nil
}
