package sec

import (
	"context"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Credentials verifies a username and password pair.
type Credentials interface {
	// Verify reports whether password is correct for username. It must not
	// reveal which of the two was wrong.
	Verify(ctx context.Context, username, password string) bool
}

// StaticCredentials accepts exactly one account, whose password is stored as a
// bcrypt hash.
type StaticCredentials struct {
	Username     string
	PasswordHash []byte
}

// Verify satisfies the [Credentials] interface. The password hash is always
// compared so a wrong username takes as long as a wrong password.
func (s StaticCredentials) Verify(_ context.Context, username, password string) bool {
	nameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.Username)) == 1
	passOK := ComparePassword(password, s.PasswordHash) == nil
	return nameOK && passOK
}

var _ Credentials = StaticCredentials{}

// ComparePassword returns an error if the provided password does not resolve to
// the given hash.
func ComparePassword[T ~string | ~[]byte](password T, hash []byte) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}

// HashPassword generates the hash for a given password. It errors if the
// password is longer than 72 bytes.
func HashPassword[T ~string | ~[]byte](password T) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}
