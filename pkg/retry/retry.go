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
	"context"
	"time"
)

// Do executes fn, retrying it under b backoff as long as it fails with a retryable error.
//
// Any other failure, or the last one once b has been exhausted, is returned unchanged.
func Do[T any](ctx context.Context, b Backoff, retryable func(error) bool, fn func(ctx context.Context) (T, error)) (T, error) {
	for {
		v, err := fn(ctx)
		if err == nil || !retryable(err) {
			return v, err
		}
		d, rest, ok := b.Next()
		if !ok {
			return v, err
		}
		reportRetry()

		tm := time.NewTimer(Jitter(d))
		select {
		case <-tm.C:
			b = rest

		case <-ctx.Done():
			tm.Stop()
			var zero T
			return zero, ctx.Err()
		}
	}
}
