package auth_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/staffdesk/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestPartnerLifecycle creates, reads, updates and deletes a partner.
func TestPartnerLifecycle(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	admin := loginAdmin(t, client)
	createUser(t, admin, authsdk.CreateUserRequest{Email: "manager@staffdesk.test"})
	manager := performLogin(t, client, "manager@staffdesk.test", userPassword)

	created, err := manager.CreatePartner(t.Context(), authsdk.PartnerRequest{
		Name:    "Acme",
		Website: "https://acme.example",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Acme", created.Name)

	partners, err := admin.ListPartners(t.Context())
	require.NoError(t, err)
	require.Len(t, partners, 1)

	updated, err := admin.UpdatePartner(t.Context(), created.ID, authsdk.PartnerRequest{
		Name:        "Acme Pty",
		Description: "Supplier",
	})
	require.NoError(t, err)
	require.Equal(t, "Acme Pty", updated.Name)
	require.Equal(t, "Supplier", updated.Description)

	got, err := manager.GetPartner(t.Context(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Acme Pty", got.Name)

	require.NoError(t, manager.DeletePartner(t.Context(), created.ID))

	_, err = manager.GetPartner(t.Context(), created.ID)
	requireAPIError(t, err, http.StatusNotFound, authsdk.ErrorCodeNotFound)
}

// TestPartnerValidation verifies partner names are required.
func TestPartnerValidation(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	admin := loginAdmin(t, client)

	_, err := admin.CreatePartner(t.Context(), authsdk.PartnerRequest{Website: "https://acme.example"})
	apiErr := requireAPIError(t, err, http.StatusBadRequest, authsdk.ErrorCodeValidation)
	require.Contains(t, apiErr.Details, "name")
}
