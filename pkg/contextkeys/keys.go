package contextkeys

type contextKey string

const (
	// ClaimsKey holds the *service.Claims of the authenticated user.
	ClaimsKey contextKey = "SessionClaims"
)
