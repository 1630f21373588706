package profiles

import "errors"

// ErrNotFound means no profile exists for the user.
var ErrNotFound = errors.New("profile not found")
