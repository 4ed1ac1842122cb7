package hcloud

import (
	"context"
	"fmt"

	"github.com/kraftner/kraftner/internal/util/retry"
)

// deletable is a handle on an existing resource that can delete itself.
type deletable interface {
	delete(ctx context.Context) error
}

type deleteFunc func(ctx context.Context) error

func (f deleteFunc) delete(ctx context.Context) error { return f(ctx) }

// deleteByName implements the shared deletion flow: look the resource up,
// treat absence as success, and retry deletion while the resource is
// locked by a running action. Lookup failures are permanent.
func (c *RealClient) deleteByName(
	ctx context.Context,
	resourceType, name string,
	get func(ctx context.Context, name string) (deletable, error),
) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	return retry.Do(ctx, func() error {
		resource, err := get(ctx, name)
		if err != nil {
			return retry.Permanent(fmt.Errorf("failed to look up %s %s: %w", resourceType, name, err))
		}
		if resource == nil {
			return nil // already gone
		}

		if err := resource.delete(ctx); err != nil {
			if isResourceLocked(err) {
				return err
			}
			return retry.Permanent(fmt.Errorf("failed to delete %s %s: %w", resourceType, name, err))
		}
		return nil
	},
		retry.Attempts(c.timeouts.RetryAttempts),
		retry.InitialDelay(c.timeouts.RetryInitialDelay))
}
