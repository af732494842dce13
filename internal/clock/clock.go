// Package clock provides the wall clock used to pick the current code window.
//
// Code generation takes the time as an argument; call sites that need "now"
// depend on Clocker so tests can pin it.
package clock

import "time"

// Clocker returns the current Unix time in seconds.
type Clocker interface {
	NowSeconds() uint64
}

// SystemClock reads time.Now.
type SystemClock struct{}

// New returns the production clock.
func New() SystemClock {
	return SystemClock{}
}

// NowSeconds returns the current Unix time in seconds.
func (SystemClock) NowSeconds() uint64 {
	return uint64(time.Now().Unix())
}

// Fixed is a Clocker that always reports the same instant.
type Fixed uint64

// NowSeconds returns f.
func (f Fixed) NowSeconds() uint64 {
	return uint64(f)
}
