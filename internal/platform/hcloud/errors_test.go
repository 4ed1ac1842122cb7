package hcloud

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/stretchr/testify/assert"
)

func apiError(code hcloud.ErrorCode) error {
	return hcloud.Error{Code: code, Message: string(code)}
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()
	assert.True(t, isResourceLocked(apiError(hcloud.ErrorCodeLocked)))
	assert.True(t, isResourceLocked(apiError(hcloud.ErrorCodeConflict)))
	assert.False(t, isResourceLocked(apiError(hcloud.ErrorCodeNotFound)))
	assert.False(t, isResourceLocked(errors.New("plain error")))
	assert.False(t, isResourceLocked(nil))

	assert.True(t, isInvalidParameter(apiError(hcloud.ErrorCodeInvalidInput)))
	assert.False(t, isInvalidParameter(apiError(hcloud.ErrorCodeLocked)))

	assert.True(t, IsNotFound(apiError(hcloud.ErrorCodeNotFound)))
	assert.False(t, IsNotFound(apiError(hcloud.ErrorCodeLocked)))
}

func TestErrorClassification_Wrapped(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("outer: %w", apiError(hcloud.ErrorCodeLocked))
	assert.True(t, isResourceLocked(wrapped))
}
