package provisioning

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraftner/kraftner/internal/config"
	platform "github.com/kraftner/kraftner/internal/platform/hcloud"
)

type stubPhase struct {
	name string
	err  error
	ran  *[]string
}

func (p stubPhase) Name() string { return p.name }

func (p stubPhase) Provision(*Context) error {
	*p.ran = append(*p.ran, p.name)
	return p.err
}

func TestRunPhases_Order(t *testing.T) {
	var ran []string
	ctx := NewContext(context.Background(), &config.Config{}, &platform.MockClient{})

	err := RunPhases(ctx, []Phase{
		stubPhase{name: "first", ran: &ran},
		stubPhase{name: "second", ran: &ran},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, ran)
}

func TestRunPhases_StopsAtFailure(t *testing.T) {
	var ran []string
	ctx := NewContext(context.Background(), &config.Config{}, &platform.MockClient{})

	err := RunPhases(ctx, []Phase{
		stubPhase{name: "first", ran: &ran},
		stubPhase{name: "broken", err: errors.New("boom"), ran: &ran},
		stubPhase{name: "never", ran: &ran},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "broken phase failed")
	assert.Equal(t, []string{"first", "broken"}, ran)
}
