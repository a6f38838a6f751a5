package catalogapi

import "errors"

// ErrStatusNotOK is returned when catalog API response had unexpected status.
var ErrStatusNotOK = errors.New("response status is not 200 OK")
