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
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var (
	errTransient = errors.New("transient")
	errFatal     = errors.New("fatal")
)

func isTransient(err error) bool { return errors.Is(err, errTransient) }

func failingTimes(n int, err error) (func(ctx context.Context) (int, error), *int) {
	var attempts int
	return func(_ context.Context) (int, error) {
		attempts++
		if attempts <= n {
			return 0, err
		}
		return attempts, nil
	}, &attempts
}

func TestDo_SucceedsWithinBackoff(t *testing.T) {
	b := Exponential(time.Millisecond, 2, 3)
	for n := 0; n <= 3; n++ {
		// given
		fn, attempts := failingTimes(n, errTransient)

		// when
		v, err := Do(context.Background(), b, isTransient, fn)

		// then
		require.Nil(t, err)
		require.Equal(t, n+1, v)
		require.Equal(t, n+1, *attempts)
	}
}

func TestDo_ExhaustedBackoff(t *testing.T) {
	// given
	fn, attempts := failingTimes(4, errTransient)

	// when
	_, err := Do(context.Background(), Exponential(time.Millisecond, 2, 3), isTransient, fn)

	// then
	require.Equal(t, errTransient, err)
	require.Equal(t, 4, *attempts)
}

func TestDo_NonRetryableError(t *testing.T) {
	// given
	fn, attempts := failingTimes(2, errFatal)

	// when
	_, err := Do(context.Background(), DefaultBackoff, isTransient, fn)

	// then
	require.Equal(t, errFatal, err)
	require.Equal(t, 1, *attempts)
}

func TestDo_WrappedRetryableError(t *testing.T) {
	// given
	wrapped := errors.Wrap(errTransient, "exists /a")
	fn, attempts := failingTimes(1, wrapped)

	// when
	v, err := Do(context.Background(), DefaultBackoff, isTransient, fn)

	// then
	require.Nil(t, err)
	require.Equal(t, 2, v)
	require.Equal(t, 2, *attempts)
}

func TestDo_ContextCanceled(t *testing.T) {
	// given
	ctx, cancel := context.WithCancel(context.Background())
	fn := func(_ context.Context) (int, error) {
		cancel()
		return 0, errTransient
	}

	// when
	_, err := Do(ctx, Const(time.Hour), isTransient, fn)

	// then
	require.Equal(t, context.Canceled, err)
}
