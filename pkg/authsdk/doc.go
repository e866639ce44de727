/*
Package authsdk is the Go client for the staffdesk auth service.

# SDKClient vs Session

SDKClient covers the public endpoints: login, token refresh, password reset,
health, JWKS and bootstrap.

	client := authsdk.NewSDKClient("https://auth.example.com")
	session, err := client.AuthenticateWithPassword(ctx, "alice@example.com", "secret", "")

Session wraps an access/refresh token pair and refreshes the access token
when it is about to expire, so callers never refresh by hand.

	me, err := session.Me(ctx)
	users, err := session.ListUsers(ctx)

# Errors

Every non-2xx response becomes an *APIError carrying the server's error code,
message and icon. The predefined values compare by code:

	_, err := session.CreateUser(ctx, req)
	if errors.Is(err, authsdk.ErrForbidden) {
		// caller lacks staff or add_recruitment
	}

Accounts with TOTP enabled answer login with ErrMFARequired; repeat the call
with the code:

	session, err := client.AuthenticateWithPassword(ctx, email, pw, "")
	if errors.Is(err, authsdk.ErrMFARequired) {
		session, err = client.AuthenticateWithPassword(ctx, email, pw, code)
	}

# Password reset

RequestPasswordReset always returns the same neutral message. The emailed
link carries the user id, a one-time code and a refresh token which are
passed back to CompletePasswordReset.
*/
package authsdk
