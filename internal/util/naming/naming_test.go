package naming

import "testing"

func TestNamingFunctions(t *testing.T) {
	cluster := "events"

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"Network", Network(cluster), "events-net"},
		{"Firewall", Firewall(cluster), "events-fw"},
		{"SSHKey", SSHKey(cluster), "events-admin"},
		{"Broker0", Broker(cluster, 0), "events-broker-0"},
		{"Broker12", Broker(cluster, 12), "events-broker-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, expected %q", tt.got, tt.expected)
			}
		})
	}
}
