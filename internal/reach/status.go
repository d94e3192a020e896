package reach

import "go.uber.org/atomic"

// Status is the verdict of a reachability query.
type Status int32

const (
	StatusUnknown Status = iota
	StatusReachable
	StatusUnreachable
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "UNKNOWN"
	case StatusReachable:
		return "REACHABLE"
	case StatusUnreachable:
		return "UNREACHABLE"
	case StatusError:
		return "ERROR"
	default:
		return "?"
	}
}

// statusCell is the single shared, monotonic status value the forward
// and backward strategies race to set: whichever goroutine reaches a
// terminal verdict first wins, via a single compare-and-swap out of
// StatusUnknown — the loser's CompareAndSwap simply fails and it stops.
type statusCell struct {
	v atomic.Int32
}

func newStatusCell() *statusCell {
	c := &statusCell{}
	c.v.Store(int32(StatusUnknown))
	return c
}

// TrySet attempts the single Unknown -> s transition and reports whether
// this call won the race.
func (c *statusCell) TrySet(s Status) bool {
	return c.v.CompareAndSwap(int32(StatusUnknown), int32(s))
}

func (c *statusCell) Get() Status {
	return Status(c.v.Load())
}
