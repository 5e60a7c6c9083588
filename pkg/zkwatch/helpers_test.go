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
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/ortuman/zkwatch/pkg/reactive"
	"github.com/ortuman/zkwatch/pkg/zk"
)

const (
	waitFor = time.Second
	tick    = time.Millisecond
)

// fakeConn is a zk.Conn serving a static node tree.
type fakeConn struct {
	id       int64
	children map[string][]string
	data     map[string][]byte
	state    *reactive.Var[zk.WatchState]
}

func newFakeConn(id int64, children map[string][]string, data map[string][]byte) *fakeConn {
	return &fakeConn{
		id:       id,
		children: children,
		data:     data,
		state:    reactive.NewVar[zk.WatchState](zk.SessionState{State: zk.SyncConnected}),
	}
}

func newFakeSession(id int64, children map[string][]string) *zk.Session {
	return zk.NewSession(newFakeConn(id, children, nil), kitlog.NewNopLogger())
}

func (c *fakeConn) ExistsWatch(_ context.Context, path string) (zk.Watched[*zk.Stat], error) {
	w := zk.Watched[*zk.Stat]{State: reactive.NewVar[zk.WatchState](zk.Pending{})}
	if cs, ok := c.children[path]; ok {
		w.Value = &zk.Stat{NumChildren: int32(len(cs))}
	}
	return w, nil
}

func (c *fakeConn) GetChildrenWatch(_ context.Context, path string) (zk.Watched[zk.ChildrenNode], error) {
	cs, ok := c.children[path]
	if !ok {
		return zk.Watched[zk.ChildrenNode]{}, zk.ErrNoNode
	}
	return zk.Watched[zk.ChildrenNode]{
		Value: zk.ChildrenNode{Children: cs},
		State: reactive.NewVar[zk.WatchState](zk.Pending{}),
	}, nil
}

func (c *fakeConn) GetData(_ context.Context, path string) (zk.DataNode, error) {
	b, ok := c.data[path]
	if !ok {
		return zk.DataNode{}, zk.ErrNoNode
	}
	return zk.DataNode{Data: b}, nil
}

func (c *fakeConn) AddAuthInfo(_ context.Context, _ string, _ []byte) error { return nil }

func (c *fakeConn) SessionID() int64                    { return c.id }
func (c *fakeConn) SessionPassword() []byte             { return nil }
func (c *fakeConn) SessionTimeout() time.Duration       { return time.Second * 10 }
func (c *fakeConn) State() *reactive.Var[zk.WatchState] { return c.state }
func (c *fakeConn) Close() error                        { return nil }
