package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringToNullString(t *testing.T) {
	assert.False(t, StringToNullString("").Valid)

	ns := StringToNullString("because")
	assert.True(t, ns.Valid)
	assert.Equal(t, "because", ns.String)
}

func TestNewULID(t *testing.T) {
	a := NewULID()
	b := NewULID()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}
