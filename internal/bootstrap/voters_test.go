package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVoters(t *testing.T) {
	t.Parallel()

	peers := []Peer{
		{ID: 2, Address: "10.0.1.12"},
		{ID: 0, Address: "10.0.1.10"},
		{ID: 1, Address: "10.0.1.11"},
	}
	got := FormatVoters(peers, 9093)
	assert.Equal(t, "0@10.0.1.10:9093,1@10.0.1.11:9093,2@10.0.1.12:9093", got)
}

func TestFormatVoters_SingleNode(t *testing.T) {
	t.Parallel()

	got := FormatVoters([]Peer{{ID: 0, Address: "10.0.1.10"}}, 9093)
	assert.Equal(t, "0@10.0.1.10:9093", got)
}

func TestVerifyVoters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		voters  string
		count   int
		wantErr string
	}{
		{
			name:   "valid three nodes",
			voters: "0@10.0.1.10:9093,1@10.0.1.11:9093,2@10.0.1.12:9093",
			count:  3,
		},
		{
			name:   "valid single node",
			voters: "0@10.0.1.10:9093",
			count:  1,
		},
		{
			name:    "empty",
			voters:  "",
			count:   3,
			wantErr: "empty",
		},
		{
			name:    "missing entry",
			voters:  "0@10.0.1.10:9093,1@10.0.1.11:9093",
			count:   3,
			wantErr: "2 entries, expected 3",
		},
		{
			name:    "duplicate node ID",
			voters:  "0@10.0.1.10:9093,0@10.0.1.11:9093,2@10.0.1.12:9093",
			count:   3,
			wantErr: "duplicate voter node ID 0",
		},
		{
			name:    "duplicate address",
			voters:  "0@10.0.1.10:9093,1@10.0.1.10:9093,2@10.0.1.12:9093",
			count:   3,
			wantErr: "duplicate voter address 10.0.1.10",
		},
		{
			name:    "node ID out of range",
			voters:  "0@10.0.1.10:9093,1@10.0.1.11:9093,5@10.0.1.12:9093",
			count:   3,
			wantErr: "out of range",
		},
		{
			name:    "wrong port",
			voters:  "0@10.0.1.10:9092",
			count:   1,
			wantErr: "controller port",
		},
		{
			name:    "malformed entry",
			voters:  "0-10.0.1.10:9093",
			count:   1,
			wantErr: "malformed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := VerifyVoters(tt.voters, tt.count, 9093)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
