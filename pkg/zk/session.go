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
	"strings"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ortuman/zkwatch/pkg/activity"
	"github.com/ortuman/zkwatch/pkg/reactive"
	"github.com/ortuman/zkwatch/pkg/retry"
	"github.com/pkg/errors"
)

// PathData represents an immutable node payload along with its path.
type PathData struct {
	Path string
	Data []byte
}

// Session bundles a coordination service connection together with its persistent watches.
type Session struct {
	conn    Conn
	w       *watcher
	backoff retry.Backoff
	logger  kitlog.Logger

	closeOnce sync.Once
	closeErr  error
}

// NewSession returns a session issuing operations against conn.
func NewSession(conn Conn, logger kitlog.Logger) *Session {
	return newSession(conn, retry.DefaultBackoff, logger)
}

// NilSession returns a session with no underlying connection.
func NilSession() *Session {
	return NewSession(NewNopConn(), kitlog.NewNopLogger())
}

func newSession(conn Conn, backoff retry.Backoff, logger kitlog.Logger) *Session {
	return &Session{
		conn:    conn,
		w:       newWatcher(conn.SessionID, backoff, logger),
		backoff: backoff,
		logger:  logger,
	}
}

// ExistsOf returns an activity reporting path metadata, or nil whenever the node doesn't exist.
func (s *Session) ExistsOf(path string) *activity.Activity[*Stat] {
	return s.w.getOrCreate(existsOp, path, func() interface{} {
		return persistentWatch(s.w, existsOp, path, func(ctx context.Context) (Watched[*Stat], error) {
			return s.conn.ExistsWatch(ctx, path)
		})
	}).(*activity.Activity[*Stat])
}

// GlobOf returns an activity reporting the paths matching a "/directory/prefix*" pattern.
func (s *Session) GlobOf(pattern string) *activity.Activity[[]string] {
	dir, prefix, err := splitGlob(pattern)
	if err != nil {
		return activity.Exception[[]string](err)
	}
	return s.w.getOrCreate(globOp, pattern, func() interface{} {
		return activity.FlatMap(s.ExistsOf(dir), func(st *Stat) *activity.Activity[[]string] {
			if st == nil {
				return activity.Value([]string{})
			}
			return activity.Transform(s.childrenOf(dir), func(cs activity.State[ChildrenNode]) *activity.Activity[[]string] {
				switch c := cs.(type) {
				case activity.Ok[ChildrenNode]:
					return activity.Value(matchChildren(dir, prefix, c.Value.Children))

				case activity.Failed[ChildrenNode]:
					if IsNoNode(c.Err) {
						return activity.Value([]string{}) // deleted after existence check
					}
					return activity.Exception[[]string](c.Err)

				default:
					return activity.Never[[]string]()
				}
			})
		})
	}).(*activity.Activity[[]string])
}

// ImmutableDataOf returns an activity holding path payload. Payload is fetched once and cached,
// so it must only be used for nodes whose content is never modified after creation.
//
// Fetch failures are reported as a nil payload.
func (s *Session) ImmutableDataOf(path string) *activity.Activity[[]byte] {
	return s.w.getOrCreate(immutableOp, path, func() interface{} {
		return activity.Future(func(ctx context.Context) ([]byte, error) {
			node, err := retry.Do(ctx, s.backoff, IsConnectionLoss, func(ctx context.Context) (DataNode, error) {
				return s.conn.GetData(ctx, path)
			})
			if err != nil {
				level.Debug(s.logger).Log("msg", "failed to fetch immutable data", "path", path, "err", err)
				return nil, nil
			}
			return node.Data, nil
		})
	}).(*activity.Activity[[]byte])
}

// CollectImmutableDataOf returns an activity holding the payload of every path, in the same order.
func (s *Session) CollectImmutableDataOf(paths []string) *activity.Activity[[]PathData] {
	as := make([]*activity.Activity[PathData], 0, len(paths))
	for _, p := range paths {
		path := p
		as = append(as, activity.Map(s.ImmutableDataOf(path), func(b []byte) PathData {
			return PathData{Path: path, Data: b}
		}))
	}
	return activity.Collect(as)
}

// AddAuthInfo adds authentication credentials to the session.
func (s *Session) AddAuthInfo(ctx context.Context, scheme string, auth []byte) error {
	return s.conn.AddAuthInfo(ctx, scheme, auth)
}

// ExistsWatch issues a single exists operation.
func (s *Session) ExistsWatch(ctx context.Context, path string) (Watched[*Stat], error) {
	return s.conn.ExistsWatch(ctx, path)
}

// GetChildrenWatch issues a single get children operation.
func (s *Session) GetChildrenWatch(ctx context.Context, path string) (Watched[ChildrenNode], error) {
	return s.conn.GetChildrenWatch(ctx, path)
}

// GetData issues a single get data operation.
func (s *Session) GetData(ctx context.Context, path string) (DataNode, error) {
	return s.conn.GetData(ctx, path)
}

// IsNil tells whether s has no underlying connection.
func (s *Session) IsNil() bool { return IsNop(s.conn) }

// SessionID returns session identifier.
func (s *Session) SessionID() int64 { return s.conn.SessionID() }

// SessionIDHex returns session identifier in its hexadecimal representation.
func (s *Session) SessionIDHex() string { return fmt.Sprintf("0x%x", s.conn.SessionID()) }

// SessionPassword returns session password.
func (s *Session) SessionPassword() []byte { return s.conn.SessionPassword() }

// SessionTimeout returns session timeout.
func (s *Session) SessionTimeout() time.Duration { return s.conn.SessionTimeout() }

// State returns session state.
func (s *Session) State() *reactive.Var[WatchState] { return s.conn.State() }

// Close closes session underlying connection. Subsequent calls have no effect.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

func (s *Session) childrenOf(path string) *activity.Activity[ChildrenNode] {
	return s.w.getOrCreate(childrenOp, path, func() interface{} {
		return persistentWatch(s.w, childrenOp, path, func(ctx context.Context) (Watched[ChildrenNode], error) {
			return s.conn.GetChildrenWatch(ctx, path)
		})
	}).(*activity.Activity[ChildrenNode])
}

func splitGlob(pattern string) (dir, prefix string, err error) {
	slash := strings.LastIndex(pattern, "/")
	if slash < 0 {
		return "", "", errors.Wrapf(ErrInvalidArgument, "invalid glob pattern %q", pattern)
	}
	dir = pattern[:slash]
	if len(dir) == 0 {
		dir = "/"
	}
	prefix = strings.TrimSuffix(pattern[slash+1:], "*")
	return dir, prefix, nil
}

func matchChildren(dir, prefix string, children []string) []string {
	base := dir
	if base == "/" {
		base = ""
	}
	res := make([]string, 0, len(children))
	for _, child := range children {
		if !strings.HasPrefix(child, prefix) {
			continue
		}
		res = append(res, base+"/"+child)
	}
	return res
}
