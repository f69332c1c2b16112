package person

import "errors"

var errRegistryDisabled = errors.New("company registry is not configured")
