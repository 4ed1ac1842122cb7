package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerAddress(t *testing.T) {
	t.Parallel()
	tests := []struct {
		subnet  string
		ordinal int
		want    string
	}{
		{"10.0.1.0/24", 0, "10.0.1.10"},
		{"10.0.1.0/24", 1, "10.0.1.11"},
		{"10.0.1.0/24", 7, "10.0.1.17"},
		{"192.168.42.0/26", 2, "192.168.42.12"},
		// Base address inside the CIDR notation gets masked first.
		{"10.0.1.5/24", 0, "10.0.1.10"},
	}
	for _, tt := range tests {
		got, err := BrokerAddress(tt.subnet, tt.ordinal)
		require.NoError(t, err, "subnet %s ordinal %d", tt.subnet, tt.ordinal)
		assert.Equal(t, tt.want, got)
	}
}

func TestBrokerAddress_Errors(t *testing.T) {
	t.Parallel()
	_, err := BrokerAddress("nope", 0)
	assert.Error(t, err)

	_, err = BrokerAddress("10.0.1.0/24", -1)
	assert.Error(t, err)

	// Offset 10 + ordinal 250 overflows a /24.
	_, err = BrokerAddress("10.0.1.0/24", 250)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside subnet")
}

// Two independently computed mappings must agree; the whole quorum
// derivation rests on this.
func TestBrokerAddress_Deterministic(t *testing.T) {
	t.Parallel()
	for i := 0; i < 7; i++ {
		a, err := BrokerAddress("10.0.1.0/24", i)
		require.NoError(t, err)
		b, err := BrokerAddress("10.0.1.0/24", i)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}
