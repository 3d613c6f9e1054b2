package helpers

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a raw password with bcrypt at the default cost.
func HashPassword(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares a stored bcrypt hash against a raw password.
// bcrypt's comparison is resistant to timing analysis.
func CheckPassword(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
