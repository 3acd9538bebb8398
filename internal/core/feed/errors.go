package feed

import "errors"

var (
	// ErrMalformedRecord is returned when the account bytes are not a pull
	// feed: too short, or tagged as something else.
	ErrMalformedRecord = errors.New("malformed oracle record")

	// ErrUnavailable is returned when no feed data is present: the account
	// is empty or absent, or oracles have never posted a result.
	ErrUnavailable = errors.New("oracle data unavailable")
)
