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

package zkwatch

import (
	"sync"

	"github.com/ortuman/zkwatch/pkg/activity"
	"github.com/ortuman/zkwatch/pkg/reactive"
	"github.com/ortuman/zkwatch/pkg/zk"
)

// follow observes query against every session published by sessions, invoking fn with each
// resulting state. Whenever a new session is published the query issued over the previous one
// is released. fn must not block.
func follow[T any](sessions *reactive.Var[*zk.Session], query func(*zk.Session) *activity.Activity[T], fn func(*zk.Session, activity.State[T])) reactive.Closable {
	var mu sync.Mutex
	var gen uint64
	var inner = reactive.NopClosable

	outer := sessions.Observe(func(s *zk.Session) {
		mu.Lock()
		gen++
		g := gen
		prev := inner
		inner = query(s).Observe(func(st activity.State[T]) {
			mu.Lock()
			defer mu.Unlock()
			if gen != g {
				return
			}
			fn(s, st)
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
}
