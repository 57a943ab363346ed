package hal

import (
	"sync/atomic"
	"time"
)

type hostTime struct {
	now atomic.Int64
}

func newHostTime() *hostTime {
	return &hostTime{}
}

func (t *hostTime) Now() time.Duration { return time.Duration(t.now.Load()) }

func (t *hostTime) step(d time.Duration) {
	if d <= 0 {
		return
	}
	t.now.Add(int64(d))
}
