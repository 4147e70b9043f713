package model

import "errors"

// ErrMalformedPayload reports an upstream document missing a field the
// summaries are built from.
var ErrMalformedPayload = errors.New("malformed upstream payload")
