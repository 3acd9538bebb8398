package tx

import "time"

// Clock supplies the timestamp a write records. It is always passed in
// explicitly so callers and tests control it.
type Clock interface {
	UnixTimestamp() int64
}

// SystemClock reads the host's wall clock.
type SystemClock struct{}

func (SystemClock) UnixTimestamp() int64 {
	return time.Now().Unix()
}

// FixedClock always returns the same timestamp.
type FixedClock int64

func (c FixedClock) UnixTimestamp() int64 {
	return int64(c)
}
