// Package password wraps bcrypt hashing so callers never touch hash
// internals or compare secrets themselves.
package password

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt work factor. The default keeps a single verification
// in the tens-of-milliseconds range on current hardware.
const Cost = bcrypt.DefaultCost

// Hash produces a salted bcrypt hash of the secret. It fails only on
// catastrophic conditions (entropy exhaustion, secret over 72 bytes).
func Hash(secret string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), Cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether secret matches the stored hash. A malformed or
// truncated stored hash is a mismatch, never an error.
func Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
