package pipeline

import "time"

// Clock stamps outgoing requests. Transport formats Now as the Date header
// in UTC using http.TimeFormat.
type Clock interface {
	Now() time.Time
}

// SystemClock stamps requests with the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock stamps every request with the same instant, so that the Date
// header is reproducible:
//
//	tr.Clock = pipeline.FixedClock(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
