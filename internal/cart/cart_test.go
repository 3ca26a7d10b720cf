package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddClampsQuantity(t *testing.T) {
	c := New()
	c.Add(1, 0)
	assert.Equal(t, 1, c["1"])

	c.Add(2, -5)
	assert.Equal(t, 1, c["2"])

	c.Add(3, 150)
	assert.Equal(t, 99, c["3"])
}

func TestAddAccumulates(t *testing.T) {
	c := New()
	c.Add(7, 2)
	c.Add(7, 3)
	assert.Equal(t, 5, c["7"])

	// each increment is clamped, the accumulated total is not
	c.Add(7, 99)
	assert.Equal(t, 104, c["7"])
}

func TestUpdate(t *testing.T) {
	c := Cart{"1": 2, "2": 5, "3": 1, "4": 7}
	c.Update(map[string]string{
		"1": "10",   // replaced
		"2": "0",    // removed
		"3": "abc",  // unparsable, removed
		"4": "-3",   // removed
		"9": "1000", // new line, clamped
	})

	assert.Equal(t, Cart{"1": 10, "9": 99}, c)
}

func TestClearAndCount(t *testing.T) {
	c := Cart{"1": 2, "2": 3}
	assert.Equal(t, 5, c.Count())

	c.Clear()
	assert.Equal(t, 0, c.Count())
	assert.Empty(t, c)
}
