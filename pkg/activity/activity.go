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

package activity

import (
	"context"
	"sync"

	"github.com/ortuman/zkwatch/pkg/reactive"
	"github.com/ortuman/zkwatch/pkg/util/crashreporter"
)

// Activity represents a continuously updated value that may be pending or may have failed.
type Activity[T any] struct {
	v *reactive.Var[State[T]]
}

// New returns an activity backed by v.
func New[T any](v *reactive.Var[State[T]]) *Activity[T] {
	return &Activity[T]{v: v}
}

// Value returns an activity permanently holding val.
func Value[T any](val T) *Activity[T] {
	return New(reactive.NewVar[State[T]](Ok[T]{Value: val}))
}

// Exception returns an activity permanently failed with err.
func Exception[T any](err error) *Activity[T] {
	return New(reactive.NewVar[State[T]](Failed[T]{Err: err}))
}

// Never returns an activity that stays pending forever.
func Never[T any]() *Activity[T] {
	return New(reactive.NewVar[State[T]](Pending[T]{}))
}

// Future returns an activity evaluating fn once, in the background, upon first observation.
// The outcome is kept and handed to every later observer without invoking fn again.
func Future[T any](fn func(ctx context.Context) (T, error)) *Activity[T] {
	var once sync.Once
	done := make(chan struct{})

	var res State[T]
	return New(reactive.Async[State[T]](Pending[T]{}, func(update func(State[T])) reactive.Closable {
		once.Do(func() {
			go func() {
				defer crashreporter.RecoverAndReportPanic("op", "future")

				v, err := fn(context.Background())
				if err != nil {
					res = Failed[T]{Err: err}
				} else {
					res = Ok[T]{Value: v}
				}
				close(done)
			}()
		})
		stopCh := make(chan struct{})
		go func() {
			select {
			case <-done:
				update(res)
			case <-stopCh:
			}
		}()
		return reactive.ClosableFunc(func() error {
			close(stopCh)
			return nil
		})
	}))
}

// Var returns underlying activity state var.
func (a *Activity[T]) Var() *reactive.Var[State[T]] { return a.v }

// Sample returns current activity state.
func (a *Activity[T]) Sample() State[T] { return a.v.Sample() }

// Observe registers fn to be invoked on every state change.
func (a *Activity[T]) Observe(fn func(State[T])) reactive.Closable {
	return a.v.Observe(fn)
}

// Map returns an activity whose values are the result of applying f to those of a.
func Map[A, B any](a *Activity[A], f func(A) B) *Activity[B] {
	return New(reactive.Async[State[B]](Pending[B]{}, func(update func(State[B])) reactive.Closable {
		return a.Observe(func(st State[A]) {
			update(mapState(st, f))
		})
	}))
}

// FlatMap returns an activity that follows the activity produced by f for each value of a.
// Pending and Failed states of a are propagated as is.
func FlatMap[A, B any](a *Activity[A], f func(A) *Activity[B]) *Activity[B] {
	return Transform(a, func(st State[A]) *Activity[B] {
		switch s := st.(type) {
		case Ok[A]:
			return f(s.Value)
		case Failed[A]:
			return Exception[B](s.Err)
		default:
			return Never[B]()
		}
	})
}

// Transform returns an activity that follows the activity produced by f for each state of a.
// Whenever a changes, the previously followed activity is released.
func Transform[A, B any](a *Activity[A], f func(State[A]) *Activity[B]) *Activity[B] {
	return New(reactive.Async[State[B]](Pending[B]{}, func(update func(State[B])) reactive.Closable {
		var mu sync.Mutex
		var gen uint64
		var inner = reactive.NopClosable

		outer := a.Observe(func(st State[A]) {
			next := f(st)

			mu.Lock()
			gen++
			g := gen
			prev := inner
			inner = next.Observe(func(sb State[B]) {
				mu.Lock()
				defer mu.Unlock()
				if gen != g {
					return
				}
				// enqueued under mu, so a superseded inner never lands after its successor
				update(sb)
			})
			mu.Unlock()

			_ = prev.Close()
		})
		return reactive.ClosableFunc(func() error {
			_ = outer.Close()

			mu.Lock()
			gen++
			in := inner
			inner = reactive.NopClosable
			mu.Unlock()

			return in.Close()
		})
	}))
}

// Collect joins a list of activities into a single one.
//
// The resulting activity is pending until every member produces a value, it fails as soon as
// any member fails, and otherwise holds all member values in the same order.
func Collect[T any](as []*Activity[T]) *Activity[[]T] {
	if len(as) == 0 {
		return Value[[]T](nil)
	}
	return New(reactive.Async[State[[]T]](Pending[[]T]{}, func(update func(State[[]T])) reactive.Closable {
		var mu sync.Mutex
		states := make([]State[T], len(as))
		for i := range states {
			states[i] = Pending[T]{}
		}
		closers := make([]reactive.Closable, len(as))
		for i, a := range as {
			idx := i
			closers[i] = a.Observe(func(st State[T]) {
				mu.Lock()
				defer mu.Unlock()
				states[idx] = st
				update(collectStates(states))
			})
		}
		return reactive.ClosableFunc(func() error {
			for _, c := range closers {
				_ = c.Close()
			}
			return nil
		})
	}))
}

// Await blocks until a leaves the pending state, returning its value or failure.
func Await[T any](ctx context.Context, a *Activity[T]) (T, error) {
	st, err := reactive.Wait(ctx, a.v, func(st State[T]) bool {
		return !IsPending(st)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	switch s := st.(type) {
	case Ok[T]:
		return s.Value, nil
	case Failed[T]:
		var zero T
		return zero, s.Err
	}
	var zero T
	return zero, context.Canceled
}

func collectStates[T any](states []State[T]) State[[]T] {
	var pending bool
	for _, st := range states {
		switch s := st.(type) {
		case Failed[T]:
			return Failed[[]T]{Err: s.Err}
		case Pending[T]:
			pending = true
		}
	}
	if pending {
		return Pending[[]T]{}
	}
	vs := make([]T, len(states))
	for i, st := range states {
		vs[i] = st.(Ok[T]).Value
	}
	return Ok[[]T]{Value: vs}
}

func mapState[A, B any](st State[A], f func(A) B) State[B] {
	switch s := st.(type) {
	case Ok[A]:
		return Ok[B]{Value: f(s.Value)}
	case Failed[A]:
		return Failed[B]{Err: s.Err}
	default:
		return Pending[B]{}
	}
}
