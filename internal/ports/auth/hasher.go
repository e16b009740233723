package auth

// PasswordHasher guarda y verifica secretos con un hash de una vía con sal.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Compare(hash, secret string) bool
}
