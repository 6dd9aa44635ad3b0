package id

import (
	"crypto/rand"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// New returns a ULID string. ULIDs sort by creation time, which keeps
// DynamoDB keys roughly in insertion order.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// IdempotencyKey returns a random key a client attaches to a create call
// so the store can recognise a resubmission of the same form.
func IdempotencyKey() string {
	return uuid.NewString()
}

// ValidKey reports whether k has the shape produced by IdempotencyKey.
func ValidKey(k string) bool {
	_, err := uuid.Parse(k)
	return err == nil
}
