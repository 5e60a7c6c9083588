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
	"sync"
	"sync/atomic"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ortuman/zkwatch/pkg/reactive"
	"github.com/ortuman/zkwatch/pkg/retry"
	"github.com/ortuman/zkwatch/pkg/util/crashreporter"
)

const (
	authScheme = "digest"

	authTimeout = time.Second * 10
)

// Retrying returns a continuously updated session value that transparently reconnects whenever the
// current session expires, waiting a jittered backoff delay before dialing again.
//
// Connecting starts as soon as the value is first observed, and the current session gets closed
// once no observer is left.
func Retrying(backoff time.Duration, newSession func() *Session, identity string, logger kitlog.Logger) *reactive.Var[*Session] {
	nilSession := NilSession()
	return reactive.Async(nilSession, func(update func(*Session)) reactive.Closable {
		r := &reconnector{
			backoff:    backoff,
			newSession: newSession,
			authInfo:   []byte(identity + ":" + identity),
			update:     update,
			logger:     logger,
			nilSession: nilSession,
		}
		r.current.Store(nilSession)
		go r.reconnect()
		return r
	})
}

type reconnector struct {
	backoff    time.Duration
	newSession func() *Session
	authInfo   []byte
	update     func(*Session)
	logger     kitlog.Logger
	nilSession *Session

	closing atomic.Bool
	current atomic.Pointer[Session]

	mu      sync.Mutex
	stateCl reactive.Closable
	timer   *time.Timer
}

func (r *reconnector) reconnect() {
	defer crashreporter.RecoverAndReportPanic("op", "reconnect")

	if !r.releaseCurrent() {
		return
	}
	// dialing may resolve servers, so it's done without holding mu
	sess := r.newSession()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closing.Load() {
		_ = sess.Close()
		return
	}
	r.current.Store(sess)
	reportSessionStarted()

	level.Info(r.logger).Log("msg", "starting zk session", "session_id", sess.SessionIDHex())

	r.update(sess)

	var authOnce, expireOnce sync.Once
	r.stateCl = sess.State().Observe(func(ws WatchState) {
		st, ok := ws.(SessionState)
		if !ok {
			return
		}
		switch st.State {
		case SyncConnected:
			authOnce.Do(func() {
				go r.sendAuthInfo(sess)
			})

		case Expired:
			expireOnce.Do(func() {
				r.scheduleReconnect(sess)
			})
		}
	})
}

func (r *reconnector) sendAuthInfo(sess *Session) {
	defer crashreporter.RecoverAndReportPanic("op", "auth", "session_id", sess.SessionIDHex())

	level.Info(r.logger).Log("msg", "zk session connected, sending auth info", "session_id", sess.SessionIDHex())

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	if err := sess.AddAuthInfo(ctx, authScheme, r.authInfo); err != nil {
		level.Warn(r.logger).Log("msg", "failed to send auth info", "session_id", sess.SessionIDHex(), "err", err)
	}
}

func (r *reconnector) scheduleReconnect(sess *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closing.Load() || r.current.Load() != sess {
		return // stale session
	}
	reportSessionExpired()

	d := retry.Jitter(r.backoff)
	level.Warn(r.logger).Log("msg", "zk session expired, reconnecting", "session_id", sess.SessionIDHex(), "delay", d)

	r.timer = time.AfterFunc(d, r.reconnect)
}

// releaseCurrent stops watching and closes current session, reporting whether a new one should be dialed.
func (r *reconnector) releaseCurrent() bool {
	if r.closing.Load() {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closing.Load() {
		return false
	}
	r.stopWatchingLocked()

	prev := r.current.Load()
	if !prev.IsNil() {
		level.Info(r.logger).Log("msg", "closing zk session", "session_id", prev.SessionIDHex())
	}
	_ = prev.Close()
	r.current.Store(r.nilSession)
	return true
}

func (r *reconnector) stopWatchingLocked() {
	if r.stateCl != nil {
		_ = r.stateCl.Close()
		r.stateCl = nil
	}
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// Close disables any further reconnection and closes current session.
func (r *reconnector) Close() error {
	r.closing.Store(true)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopWatchingLocked()
	return r.current.Load().Close()
}
