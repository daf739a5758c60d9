package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// hashForTest returns a bcrypt hash of password at the minimum cost.
func hashForTest(t *testing.T, password string) string {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}
	return string(hashed)
}
