package ports

// PasswordHasher abstracts password hashing so tests can substitute a
// deterministic stand-in.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns a non-nil error when password does not match hash.
	Compare(hash, password string) error
}

// TokenClaims is the sanitized user identity carried inside a bearer token.
type TokenClaims struct {
	ID       string
	Name     string
	LastName string
	Username string
	Email    string
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	Issue(claims TokenClaims) (string, error)
	// Verify rejects tokens with a bad signature or past expiry.
	Verify(token string) (*TokenClaims, error)
}
