package hcloud

import (
	"time"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// Timeouts holds the operation deadlines and retry budget for API calls.
type Timeouts struct {
	ServerCreate      time.Duration
	Delete            time.Duration
	RetryAttempts     int
	RetryInitialDelay time.Duration
}

// DefaultTimeouts returns the production defaults.
func DefaultTimeouts() *Timeouts {
	return &Timeouts{
		ServerCreate:      10 * time.Minute,
		Delete:            5 * time.Minute,
		RetryAttempts:     5,
		RetryInitialDelay: 1 * time.Second,
	}
}

// RealClient implements InfrastructureManager against the Hetzner Cloud API.
type RealClient struct {
	client   *hcloud.Client
	timeouts *Timeouts
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts overrides the default timeouts.
func WithTimeouts(t *Timeouts) ClientOption {
	return func(c *RealClient) { c.timeouts = t }
}

// WithHCloudClient injects a custom SDK client (used by tests).
func WithHCloudClient(hc *hcloud.Client) ClientOption {
	return func(c *RealClient) { c.client = hc }
}

// NewRealClient creates a RealClient authenticated with the given token.
func NewRealClient(token string, opts ...ClientOption) *RealClient {
	c := &RealClient{
		client:   hcloud.NewClient(hcloud.WithToken(token)),
		timeouts: DefaultTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ InfrastructureManager = (*RealClient)(nil)
