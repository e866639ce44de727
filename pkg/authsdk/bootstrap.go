package authsdk

import (
	"context"
	"net/http"
)

// BootstrapTokenHeader carries the one-time bootstrap secret.
const BootstrapTokenHeader = "X-Bootstrap-Token"

// Bootstrap creates the first superuser. It only succeeds while the user
// table is empty.
func (c *SDKClient) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*BootstrapResponse, error) {
	var out BootstrapResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/bootstrap", req, &out, http.StatusCreated, map[string]string{
		BootstrapTokenHeader: token,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
