package ports

// TokenClaims is the identity carried by a verified token.
type TokenClaims struct {
	Username string
	Role     string
}

// TokenIssuer creates and verifies signed time-limited authentication tokens.
// Tokens are a pure capability: validity is signature plus expiry, nothing is
// stored server-side.
type TokenIssuer interface {
	Issue(username, role string) (string, error)
	// Verify returns domain.ErrInvalidToken on tampered, malformed or
	// expired tokens.
	Verify(token string) (*TokenClaims, error)
}
