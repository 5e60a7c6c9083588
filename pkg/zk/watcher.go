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

package zk

import (
	"context"
	"fmt"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ortuman/zkwatch/pkg/activity"
	"github.com/ortuman/zkwatch/pkg/reactive"
	"github.com/ortuman/zkwatch/pkg/retry"
	"github.com/ortuman/zkwatch/pkg/util/crashreporter"
)

const (
	existsOp    = "exists"
	childrenOp  = "children"
	globOp      = "glob"
	immutableOp = "immutable_data"
)

type memoKey struct {
	op   string
	path string
}

// watcher holds the per-session persistent watch memoization cache.
type watcher struct {
	sessionID func() int64
	backoff   retry.Backoff
	logger    kitlog.Logger

	mu   sync.Mutex
	memo map[memoKey]interface{}
}

func newWatcher(sessionID func() int64, backoff retry.Backoff, logger kitlog.Logger) *watcher {
	return &watcher{
		sessionID: sessionID,
		backoff:   backoff,
		logger:    logger,
		memo:      make(map[memoKey]interface{}),
	}
}

func (w *watcher) getOrCreate(op, path string, create func() interface{}) interface{} {
	k := memoKey{op: op, path: path}

	w.mu.Lock()
	v, ok := w.memo[k]
	w.mu.Unlock()
	if ok {
		return v
	}
	// create may recursively memoize other operations
	nv := create()

	w.mu.Lock()
	defer w.mu.Unlock()
	if v, ok := w.memo[k]; ok {
		return v
	}
	w.memo[k] = nv
	return nv
}

func (w *watcher) size() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.memo)
}

// persistentWatch turns a one-shot watched operation into an activity that's kept up to date by
// reissuing issue every time its watch fires. Operation is only issued while the activity is being observed.
func persistentWatch[T any](w *watcher, op, path string, issue func(ctx context.Context) (Watched[T], error)) *activity.Activity[T] {
	return activity.New(reactive.Async[activity.State[T]](activity.Pending[T]{}, func(update func(activity.State[T])) reactive.Closable {
		ctx, cancel := context.WithCancel(context.Background())
		l := &watchLoop[T]{
			op:        op,
			path:      path,
			sessionID: w.sessionID,
			issue:     issue,
			backoff:   w.backoff,
			update:    update,
			logger:    w.logger,
			ctx:       ctx,
			cancel:    cancel,
			pending:   reactive.NopClosable,
		}
		l.loop()
		return l
	}))
}

type watchLoop[T any] struct {
	op        string
	path      string
	sessionID func() int64
	issue     func(ctx context.Context) (Watched[T], error)
	backoff   retry.Backoff
	update    func(activity.State[T])
	logger    kitlog.Logger
	ctx       context.Context
	cancel    context.CancelFunc

	mu      sync.Mutex
	closing bool
	gen     uint64
	pending reactive.Closable
}

func (l *watchLoop[T]) loop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reissueLocked()
}

func (l *watchLoop[T]) reissueLocked() {
	if l.closing {
		return
	}
	l.gen++
	go l.run(l.gen)
}

func (l *watchLoop[T]) run(gen uint64) {
	defer crashreporter.RecoverAndReportPanic("op", l.op, "path", l.path, "session_id", fmt.Sprintf("0x%x", l.sessionID()))

	reportWatchIssue(l.op)

	wt, err := retry.Do(l.ctx, l.backoff, IsConnectionLoss, l.issue)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closing || l.gen != gen {
		return // nobody's listening
	}
	if err != nil {
		level.Debug(l.logger).Log("msg", "failed to issue watched operation", "op", l.op, "path", l.path, "err", err)

		reportWatchFailure(l.op)
		l.update(activity.Failed[T]{Err: err})
		return
	}
	ok := activity.Ok[T]{Value: wt.Value}
	l.update(ok)

	prev := l.pending
	l.pending = wt.State.Observe(func(ws WatchState) {
		l.onWatchState(gen, ok, ws)
	})
	_ = prev.Close()
}

func (l *watchLoop[T]) onWatchState(gen uint64, ok activity.Ok[T], ws WatchState) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closing || l.gen != gen {
		return
	}
	switch st := ws.(type) {
	case Pending:
		return

	case Determined:
		// watch fired, no more values will follow on this handle
		_ = l.pending.Close()
		l.pending = reactive.NopClosable
		l.reissueLocked()

	case SessionState:
		switch st.State {
		case SyncConnected, ConnectedReadOnly:
			l.update(ok)

		case Expired:
			reportWatchFailure(l.op)
			l.update(activity.Failed[T]{Err: ErrSessionExpired})

		default:
			reportWatchFailure(l.op)
			l.update(activity.Failed[T]{Err: &SessionStateError{State: st.State}})
		}
	}
}

// Close stops reissuing watched operation.
func (l *watchLoop[T]) Close() error {
	l.mu.Lock()
	l.closing = true
	p := l.pending
	l.pending = reactive.NopClosable
	l.mu.Unlock()

	l.cancel()
	return p.Close()
}
