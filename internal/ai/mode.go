package ai

import "sync/atomic"

// Mode reports whether upstream models may be consulted at all.
type Mode int32

const (
	ModeUninitialized Mode = iota
	ModeLive
	ModeDegradedOnly
)

func (m Mode) String() string {
	switch m {
	case ModeLive:
		return "live"
	case ModeDegradedOnly:
		return "degraded-only"
	default:
		return "uninitialized"
	}
}

// Gate latches the process operating mode. DegradedOnly is sticky: once the
// process has been seen without an upstream credential it never switches back
// to live, even if a credential shows up later.
type Gate struct {
	mode atomic.Int32
}

func NewGate() *Gate { return &Gate{} }

// Resolve records whether an upstream credential is present. The first
// negative resolution wins for the rest of the process lifetime.
func (g *Gate) Resolve(hasCredential bool) Mode {
	if hasCredential {
		g.mode.CompareAndSwap(int32(ModeUninitialized), int32(ModeLive))
	} else {
		g.mode.Store(int32(ModeDegradedOnly))
	}
	return g.Current()
}

// Current returns the latched mode.
func (g *Gate) Current() Mode {
	return Mode(g.mode.Load())
}
