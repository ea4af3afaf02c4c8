package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFlightNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"LH454", "LH454"},
		{"lh 454", "LH454"},
		{" ba2490 ", "BA2490"},
		{"U22107", "U22107"},
		{"3K509", "3K509"},
		{"DL1", "DL1"},
		{"AF1234A", "AF1234A"},
	}
	for _, c := range cases {
		got, err := NormalizeFlightNumber(c.in)
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.want, got)
	}
}

func TestNormalizeFlightNumberRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "LH", "454", "LUFTHANSA454", "L-454", "LH45678", "12345"} {
		_, err := NormalizeFlightNumber(in)
		assert.ErrorIs(t, err, ErrInvalidFlightNumber, "input %q", in)
	}
}

func TestCarrierCode(t *testing.T) {
	assert.Equal(t, "LH", CarrierCode("LH454"))
	assert.Equal(t, "U2", CarrierCode("U22107"))
}
