package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoneyBRL(t *testing.T) {
	assert.Equal(t, "R$ 120,00", MoneyBRL(dec("120")))
	assert.Equal(t, "R$ 89,90", MoneyBRL(dec("89.9")))
	assert.Equal(t, "R$ 0,00", MoneyBRL(dec("0")))
}
