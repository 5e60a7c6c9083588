// Copyright 2022 The jackal Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package retry

import (
	"math/rand"
	"time"
)

// DefaultBackoff is the backoff sequence applied to connection loss retries.
// That is: 10ms, 20ms, 40ms and then 1s forever.
var DefaultBackoff = Exponential(10*time.Millisecond, 2, 3).Then(Const(time.Second))

// Backoff represents an immutable sequence of retry delays.
type Backoff struct {
	delays  []time.Duration
	tail    *Backoff
	forever bool
}

// Exponential returns a bounded sequence of steps delays, starting at start and growing by multiplier.
// A negative or zero steps count yields an empty sequence.
func Exponential(start time.Duration, multiplier float64, steps int) Backoff {
	if steps < 0 {
		steps = 0
	}
	delays := make([]time.Duration, 0, steps)
	d := float64(start)
	for i := 0; i < steps; i++ {
		delays = append(delays, time.Duration(d))
		d *= multiplier
	}
	return Backoff{delays: delays}
}

// Const returns an unbounded sequence of d delays.
func Const(d time.Duration) Backoff {
	return Backoff{delays: []time.Duration{d}, forever: true}
}

// Delays returns a bounded sequence made of ds.
func Delays(ds ...time.Duration) Backoff {
	return Backoff{delays: append([]time.Duration(nil), ds...)}
}

// Then returns a sequence that continues with next once b is exhausted.
func (b Backoff) Then(next Backoff) Backoff {
	if b.forever {
		return b
	}
	if b.tail != nil {
		t := b.tail.Then(next)
		return Backoff{delays: b.delays, tail: &t}
	}
	return Backoff{delays: b.delays, tail: &next}
}

// Next returns the sequence head delay and the remaining sequence.
// ok is false when the sequence is exhausted.
func (b Backoff) Next() (head time.Duration, rest Backoff, ok bool) {
	if len(b.delays) == 0 {
		if b.tail == nil {
			return 0, Backoff{}, false
		}
		return b.tail.Next()
	}
	if b.forever {
		return b.delays[0], b, true
	}
	return b.delays[0], Backoff{delays: b.delays[1:], tail: b.tail}, true
}

// Take returns up to n first delays of the sequence.
func (b Backoff) Take(n int) []time.Duration {
	var ds []time.Duration
	for i := 0; i < n; i++ {
		d, rest, ok := b.Next()
		if !ok {
			break
		}
		ds = append(ds, d)
		b = rest
	}
	return ds
}

// Jitter randomizes d into the [d, 2d) interval.
func Jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return d
	}
	return d + time.Duration(rand.Int63n(int64(d)))
}
