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
	"context"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ortuman/zkwatch/pkg/activity"
	"github.com/ortuman/zkwatch/pkg/reactive"
	"github.com/ortuman/zkwatch/pkg/zk"
)

// sessionKeeper keeps sessions var observed for the whole daemon lifetime, so that a session is
// always established regardless of the configured queries.
type sessionKeeper struct {
	sessions *reactive.Var[*zk.Session]
	logger   kitlog.Logger

	mu sync.Mutex
	cl reactive.Closable
}

func newSessionKeeper(sessions *reactive.Var[*zk.Session], logger kitlog.Logger) *sessionKeeper {
	return &sessionKeeper{sessions: sessions, logger: logger}
}

func (k *sessionKeeper) Start(_ context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.cl = k.sessions.Observe(func(s *zk.Session) {
		if s.IsNil() {
			return
		}
		level.Info(k.logger).Log("msg", "current zk session updated", "session_id", s.SessionIDHex())
	})
	return nil
}

func (k *sessionKeeper) Stop(_ context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.cl == nil {
		return nil
	}
	err := k.cl.Close()
	k.cl = nil
	return err
}

// queryWatcher follows the configured queries over the current session, logging every state change.
type queryWatcher struct {
	sessions *reactive.Var[*zk.Session]
	cfg      WatchConfig
	logger   kitlog.Logger

	mu      sync.Mutex
	closers []reactive.Closable
}

func newQueryWatcher(sessions *reactive.Var[*zk.Session], cfg WatchConfig, logger kitlog.Logger) *queryWatcher {
	return &queryWatcher{
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

func (w *queryWatcher) Start(_ context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, g := range w.cfg.Globs {
		pattern := g
		w.closers = append(w.closers, follow(w.sessions, func(s *zk.Session) *activity.Activity[[]string] {
			return s.GlobOf(pattern)
		}, func(s *zk.Session, st activity.State[[]string]) {
			logState(w.logger, s, "glob", pattern, st, func(paths []string) []interface{} {
				return []interface{}{"paths", paths}
			})
		}))
	}
	for _, p := range w.cfg.Exists {
		path := p
		w.closers = append(w.closers, follow(w.sessions, func(s *zk.Session) *activity.Activity[*zk.Stat] {
			return s.ExistsOf(path)
		}, func(s *zk.Session, st activity.State[*zk.Stat]) {
			logState(w.logger, s, "exists", path, st, func(stat *zk.Stat) []interface{} {
				if stat == nil {
					return []interface{}{"exists", false}
				}
				return []interface{}{"exists", true, "version", stat.Version, "num_children", stat.NumChildren}
			})
		}))
	}
	if len(w.cfg.Data) > 0 {
		paths := w.cfg.Data
		w.closers = append(w.closers, follow(w.sessions, func(s *zk.Session) *activity.Activity[[]zk.PathData] {
			return s.CollectImmutableDataOf(paths)
		}, func(s *zk.Session, st activity.State[[]zk.PathData]) {
			logState(w.logger, s, "data", "", st, func(pds []zk.PathData) []interface{} {
				sizes := make(map[string]int, len(pds))
				for _, pd := range pds {
					sizes[pd.Path] = len(pd.Data)
				}
				return []interface{}{"sizes", sizes}
			})
		}))
	}
	level.Info(w.logger).Log("msg", "started zk query watchers",
		"globs", len(w.cfg.Globs),
		"exists", len(w.cfg.Exists),
		"data", len(w.cfg.Data),
	)
	return nil
}

func (w *queryWatcher) Stop(_ context.Context) error {
	w.mu.Lock()
	closers := w.closers
	w.closers = nil
	w.mu.Unlock()

	for _, c := range closers {
		_ = c.Close()
	}
	level.Info(w.logger).Log("msg", "stopped zk query watchers")
	return nil
}

func logState[T any](logger kitlog.Logger, s *zk.Session, op, target string, st activity.State[T], kvs func(T) []interface{}) {
	switch v := st.(type) {
	case activity.Ok[T]:
		args := append([]interface{}{"msg", "zk query updated", "op", op, "target", target, "session_id", s.SessionIDHex()}, kvs(v.Value)...)
		level.Info(logger).Log(args...)

	case activity.Failed[T]:
		level.Warn(logger).Log("msg", "zk query failed", "op", op, "target", target, "session_id", s.SessionIDHex(), "err", v.Err)

	default:
		level.Debug(logger).Log("msg", "zk query pending", "op", op, "target", target, "session_id", s.SessionIDHex())
	}
}
