package sites

import "errors"

var (
	ErrSiteNotFound = errors.New("site not found")
	ErrReadOnly     = errors.New("site store is read only")
	ErrDecodingSite = errors.New("failed to decode site")
	ErrEncodingSite = errors.New("failed to encode site")
)
