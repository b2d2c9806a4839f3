package event

import "errors"

var (
	ErrMissingSite  = errors.New("event message is missing a site")
	ErrMissingEvent = errors.New("event message is missing an event name")
)
