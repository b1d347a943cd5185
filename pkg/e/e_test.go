package e

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	err := Wrap("SHIPPING_FEE", ErrIncorrectEnvVariable)

	assert.ErrorIs(t, err, ErrIncorrectEnvVariable)
	assert.Equal(t, "SHIPPING_FEE: incorrect environment variable", err.Error())
}
