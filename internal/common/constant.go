package common

const (
	// AuthorizationHeader carries "Bearer <token>" on authenticated requests.
	AuthorizationHeader = "Authorization"

	// ResetTokenHeader carries the operator secret for the admin reset endpoint.
	ResetTokenHeader = "x-reset-token"

	// DefaultAdminEmail is the login of the account created on first boot.
	DefaultAdminEmail = "admin@example.com"
)
