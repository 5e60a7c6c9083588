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

package reactive

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jackal-xmpp/runqueue/v2"
)

var varSeq uint64

// Closable represents a releasable resource.
type Closable interface {
	Close() error
}

// ClosableFunc is an adapter to allow the use of ordinary functions as Closable.
type ClosableFunc func() error

// Close calls f().
func (f ClosableFunc) Close() error { return f() }

// NopClosable is a Closable that doesn't do anything.
var NopClosable Closable = ClosableFunc(func() error { return nil })

type observer[T any] struct {
	id uint64
	fn func(T)
}

// Var is a continuously updated value that can be observed.
//
// Every mutation and every observer callback of a Var is executed serially on its own run queue,
// so all observers see publications in the same order. Observer callbacks must not block.
type Var[T any] struct {
	rq *runqueue.RunQueue

	mu  sync.RWMutex
	val T

	obsSeq uint64

	// accessed from run queue only
	init      T
	start     func(update func(T)) Closable
	active    Closable
	gen       uint64
	observers []observer[T]
}

// NewVar returns a settable Var initialized to init.
func NewVar[T any](init T) *Var[T] {
	return newVar[T](init, nil)
}

// Async returns a Var whose value is driven by start.
//
// start is invoked when the first observer attaches, and the returned Closable is closed once the
// last observer detaches, at which point the value is reset to init. Updates issued through a
// closed start invocation are discarded. start must not block.
func Async[T any](init T, start func(update func(T)) Closable) *Var[T] {
	return newVar[T](init, start)
}

func newVar[T any](init T, start func(update func(T)) Closable) *Var[T] {
	id := atomic.AddUint64(&varSeq, 1)
	return &Var[T]{
		rq:    runqueue.New(fmt.Sprintf("var:%d", id)),
		val:   init,
		init:  init,
		start: start,
	}
}

// Sample returns current value.
func (v *Var[T]) Sample() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.val
}

// Set publishes a new value to all registered observers.
func (v *Var[T]) Set(val T) {
	v.rq.Run(func() {
		v.publish(val)
	})
}

// Observe registers fn to be called with current value and then with every later publication.
// Invoking Close on the returned handle detaches fn.
func (v *Var[T]) Observe(fn func(T)) Closable {
	id := atomic.AddUint64(&v.obsSeq, 1)
	v.rq.Run(func() {
		v.observers = append(v.observers, observer[T]{id: id, fn: fn})
		fn(v.Sample())

		if len(v.observers) == 1 && v.start != nil {
			v.gen++
			v.active = v.start(v.updater(v.gen))
		}
	})
	var once sync.Once
	return ClosableFunc(func() error {
		once.Do(func() {
			v.rq.Run(func() { v.detach(id) })
		})
		return nil
	})
}

func (v *Var[T]) updater(gen uint64) func(T) {
	return func(val T) {
		v.rq.Run(func() {
			if v.gen != gen || len(v.observers) == 0 {
				return // stale update
			}
			v.publish(val)
		})
	}
}

func (v *Var[T]) publish(val T) {
	v.mu.Lock()
	v.val = val
	v.mu.Unlock()

	for _, o := range v.observers {
		o.fn(val)
	}
}

func (v *Var[T]) detach(id uint64) {
	for i, o := range v.observers {
		if o.id != id {
			continue
		}
		v.observers = append(v.observers[:i], v.observers[i+1:]...)
		break
	}
	if len(v.observers) > 0 || v.start == nil || v.active == nil {
		return
	}
	v.gen++
	active := v.active
	v.active = nil

	v.mu.Lock()
	v.val = v.init
	v.mu.Unlock()

	_ = active.Close()
}

// Wait blocks until v holds a value satisfying cond, or ctx is done.
func Wait[T any](ctx context.Context, v *Var[T], cond func(T) bool) (T, error) {
	ch := make(chan T, 1)

	var once sync.Once
	c := v.Observe(func(val T) {
		if !cond(val) {
			return
		}
		once.Do(func() { ch <- val })
	})
	defer func() { _ = c.Close() }()

	select {
	case val := <-ch:
		return val, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
