// Package id mints the identifiers that key user records.
package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a ULID string for a freshly registered user. ULIDs sort
// lexicographically by creation time and distribute well as DynamoDB
// partition keys.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
