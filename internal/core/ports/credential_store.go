package ports

// CredentialStore owns one-way password hashing. Hash returns the value to
// persist; Verify compares a stored hash against a candidate password.
type CredentialStore interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}
