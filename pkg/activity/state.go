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

// State represents the current state of an activity. It's one of Pending, Ok or Failed.
type State[T any] interface {
	isState(T)
}

// Pending represents an activity whose value is still unknown.
type Pending[T any] struct{}

// Ok represents an activity that has produced a value.
type Ok[T any] struct {
	Value T
}

// Failed represents an activity that has failed.
type Failed[T any] struct {
	Err error
}

func (Pending[T]) isState(T) {}
func (Ok[T]) isState(T)      {}
func (Failed[T]) isState(T)  {}

// IsPending tells whether st is the Pending state.
func IsPending[T any](st State[T]) bool {
	_, ok := st.(Pending[T])
	return ok
}
