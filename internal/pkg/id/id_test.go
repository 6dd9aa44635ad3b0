package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Sortable(t *testing.T) {
	a := New()
	b := New()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}

func TestIdempotencyKey(t *testing.T) {
	k := IdempotencyKey()
	assert.True(t, ValidKey(k))
	assert.False(t, ValidKey("not-a-key"))
	assert.False(t, ValidKey(New()))
}
