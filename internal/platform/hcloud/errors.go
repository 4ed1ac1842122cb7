package hcloud

import (
	"errors"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// isResourceLocked reports whether err means the resource is temporarily
// locked by a running action. These errors are retryable.
func isResourceLocked(err error) bool {
	return isErrorCode(err,
		hcloud.ErrorCodeLocked,
		hcloud.ErrorCodeConflict,
		hcloud.ErrorCodeResourceLocked,
		hcloud.ErrorCodeResourceUnavailable,
	)
}

// isInvalidParameter reports whether err means the request itself is bad.
// These errors are never retried.
func isInvalidParameter(err error) bool {
	return isErrorCode(err,
		hcloud.ErrorCodeNotFound,
		hcloud.ErrorCodeInvalidInput,
		hcloud.ErrorCodeInvalidServerType,
	)
}

func isErrorCode(err error, codes ...hcloud.ErrorCode) bool {
	if err == nil {
		return false
	}
	var apiErr hcloud.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.Code == code {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is the API's not-found error.
func IsNotFound(err error) bool {
	return isErrorCode(err, hcloud.ErrorCodeNotFound)
}
