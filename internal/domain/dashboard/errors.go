package dashboard

import "errors"

var ErrForbidden = errors.New("forbidden")
