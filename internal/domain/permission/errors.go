package permission

import "errors"

var (
	ErrPermissionRequestNotFound = errors.New("permission request not found")
)
