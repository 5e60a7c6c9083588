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
	"time"

	"github.com/ortuman/zkwatch/pkg/reactive"
)

// NewNopConn returns a Conn that doesn't do anything. Its state stays pending forever, and so do
// watched operations issued over it, which only return once their context is done.
func NewNopConn() Conn {
	return &nopConn{state: reactive.NewVar[WatchState](Pending{})}
}

// NewExpiredConn returns a Conn that doesn't do anything and whose session is already expired.
// Every operation issued over it fails with ErrSessionExpired.
func NewExpiredConn() Conn {
	return &nopConn{state: reactive.NewVar[WatchState](SessionState{State: Expired}), expired: true}
}

// IsNop tells whether conn is a nop Conn.
func IsNop(conn Conn) bool {
	_, ok := conn.(*nopConn)
	return ok
}

type nopConn struct {
	state   *reactive.Var[WatchState]
	expired bool
}

func (c *nopConn) ExistsWatch(ctx context.Context, _ string) (Watched[*Stat], error) {
	return Watched[*Stat]{}, c.wait(ctx)
}

func (c *nopConn) GetChildrenWatch(ctx context.Context, _ string) (Watched[ChildrenNode], error) {
	return Watched[ChildrenNode]{}, c.wait(ctx)
}

func (c *nopConn) GetData(ctx context.Context, _ string) (DataNode, error) {
	return DataNode{}, c.wait(ctx)
}

func (c *nopConn) AddAuthInfo(_ context.Context, _ string, _ []byte) error {
	if c.expired {
		return ErrSessionExpired
	}
	return ErrNoSession
}

func (c *nopConn) SessionID() int64                 { return 0 }
func (c *nopConn) SessionPassword() []byte          { return nil }
func (c *nopConn) SessionTimeout() time.Duration    { return 0 }
func (c *nopConn) State() *reactive.Var[WatchState] { return c.state }
func (c *nopConn) Close() error                     { return nil }

func (c *nopConn) wait(ctx context.Context) error {
	if c.expired {
		return ErrSessionExpired
	}
	<-ctx.Done()
	return ctx.Err()
}
