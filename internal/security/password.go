package security

import "golang.org/x/crypto/bcrypt"

// Cost 10; stored hashes start with "$2a$10$".
const hashCost = bcrypt.DefaultCost

// HashPassword hashes a plaintext password for storage. bcrypt ignores input
// past 72 bytes, which is why registration caps passwords at that length.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a stored hash against a login attempt.
func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
