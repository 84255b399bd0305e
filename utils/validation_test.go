package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	v := make(Violations)
	Required("name", "  ", v)
	Required("phone", "050", v)
	NonNegativeFloat("price", -1, v)
	NonNegativeInt("stock", 0, v)

	assert.False(t, v.Empty())
	assert.Equal(t, Violations{"name": "required", "price": "must_not_be_negative"}, v)
}
