package webhook

import "errors"

var (
	ErrInvalidURL       = errors.New("invalid webhook url")
	ErrEncodingPayload  = errors.New("failed to encode webhook payload")
	ErrDecodingResponse = errors.New("failed to decode webhook response")
)
