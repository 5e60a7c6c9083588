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

package zkconn

import (
	"context"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ortuman/zkwatch/pkg/reactive"
	"github.com/ortuman/zkwatch/pkg/util/crashreporter"
	"github.com/ortuman/zkwatch/pkg/zk"
	"github.com/pkg/errors"
	gozk "github.com/samuel/go-zookeeper/zk"
)

//go:generate moq -out client.mock_test.go . zkClient:clientMock

// zkClient facades go-zookeeper connection type, so it can be mocked.
type zkClient interface {
	ExistsW(path string) (bool, *gozk.Stat, <-chan gozk.Event, error)
	ChildrenW(path string) ([]string, *gozk.Stat, <-chan gozk.Event, error)
	Get(path string) ([]byte, *gozk.Stat, error)
	AddAuth(scheme string, auth []byte) error
	SessionID() int64
	Close()
}

// Conn is a zk.Conn implementation backed by a go-zookeeper client.
type Conn struct {
	cl      zkClient
	timeout time.Duration
	state   *reactive.Var[zk.WatchState]
	logger  kitlog.Logger
}

func newConn(cl zkClient, events <-chan gozk.Event, timeout time.Duration, logger kitlog.Logger) *Conn {
	c := &Conn{
		cl:      cl,
		timeout: timeout,
		state:   reactive.NewVar[zk.WatchState](zk.Pending{}),
		logger:  logger,
	}
	go c.pumpSessionEvents(events)
	return c
}

// ExistsWatch satisfies zk.Conn interface.
func (c *Conn) ExistsWatch(ctx context.Context, path string) (zk.Watched[*zk.Stat], error) {
	if err := ctx.Err(); err != nil {
		return zk.Watched[*zk.Stat]{}, err
	}
	exists, st, ch, err := c.cl.ExistsW(path)
	if err != nil {
		return zk.Watched[*zk.Stat]{}, mapError(err)
	}
	var stat *zk.Stat
	if exists {
		stat = toStat(st)
	}
	return zk.Watched[*zk.Stat]{Value: stat, State: watchState(ch, path)}, nil
}

// GetChildrenWatch satisfies zk.Conn interface.
func (c *Conn) GetChildrenWatch(ctx context.Context, path string) (zk.Watched[zk.ChildrenNode], error) {
	if err := ctx.Err(); err != nil {
		return zk.Watched[zk.ChildrenNode]{}, err
	}
	children, st, ch, err := c.cl.ChildrenW(path)
	if err != nil {
		return zk.Watched[zk.ChildrenNode]{}, mapError(err)
	}
	return zk.Watched[zk.ChildrenNode]{
		Value: zk.ChildrenNode{Children: children, Stat: toStat(st)},
		State: watchState(ch, path),
	}, nil
}

// GetData satisfies zk.Conn interface.
func (c *Conn) GetData(ctx context.Context, path string) (zk.DataNode, error) {
	if err := ctx.Err(); err != nil {
		return zk.DataNode{}, err
	}
	b, st, err := c.cl.Get(path)
	if err != nil {
		return zk.DataNode{}, mapError(err)
	}
	if len(b) == 0 {
		b = nil
	}
	return zk.DataNode{Data: b, Stat: toStat(st)}, nil
}

// AddAuthInfo satisfies zk.Conn interface.
func (c *Conn) AddAuthInfo(ctx context.Context, scheme string, auth []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return mapError(c.cl.AddAuth(scheme, auth))
}

// SessionID satisfies zk.Conn interface.
func (c *Conn) SessionID() int64 { return c.cl.SessionID() }

// SessionPassword satisfies zk.Conn interface.
// go-zookeeper doesn't expose session password, so nil is always returned.
func (c *Conn) SessionPassword() []byte { return nil }

// SessionTimeout satisfies zk.Conn interface.
func (c *Conn) SessionTimeout() time.Duration { return c.timeout }

// State satisfies zk.Conn interface.
func (c *Conn) State() *reactive.Var[zk.WatchState] { return c.state }

// Close satisfies zk.Conn interface.
func (c *Conn) Close() error {
	c.cl.Close()
	return nil
}

func (c *Conn) pumpSessionEvents(events <-chan gozk.Event) {
	defer crashreporter.RecoverAndReportPanic("op", "session_events")

	for ev := range events {
		if ev.Type != gozk.EventSession {
			continue
		}
		st, ok := mapState(ev.State)
		if !ok {
			continue
		}
		level.Debug(c.logger).Log("msg", "zk session state changed", "state", st, "server", ev.Server)

		c.state.Set(zk.SessionState{State: st})
	}
}

func watchState(ch <-chan gozk.Event, path string) *reactive.Var[zk.WatchState] {
	v := reactive.NewVar[zk.WatchState](zk.Pending{})
	go func() {
		defer crashreporter.RecoverAndReportPanic("op", "watch_event", "path", path)

		ev, ok := <-ch
		v.Set(mapWatchEvent(ev, ok))
	}()
	return v
}

func mapWatchEvent(ev gozk.Event, ok bool) zk.WatchState {
	if !ok {
		return zk.SessionState{State: zk.Disconnected}
	}
	switch ev.Type {
	case gozk.EventNodeCreated:
		return zk.Determined{Event: zk.Event{Type: zk.NodeCreated, Path: ev.Path}}
	case gozk.EventNodeDeleted:
		return zk.Determined{Event: zk.Event{Type: zk.NodeDeleted, Path: ev.Path}}
	case gozk.EventNodeDataChanged:
		return zk.Determined{Event: zk.Event{Type: zk.NodeDataChanged, Path: ev.Path}}
	case gozk.EventNodeChildrenChanged:
		return zk.Determined{Event: zk.Event{Type: zk.NodeChildrenChanged, Path: ev.Path}}
	case gozk.EventNotWatching:
		if errors.Is(ev.Err, gozk.ErrSessionExpired) {
			return zk.SessionState{State: zk.Expired}
		}
		return zk.SessionState{State: zk.Disconnected}
	}
	if st, ok := mapState(ev.State); ok {
		return zk.SessionState{State: st}
	}
	return zk.SessionState{State: zk.Disconnected}
}

func mapState(st gozk.State) (zk.State, bool) {
	switch st {
	case gozk.StateHasSession:
		return zk.SyncConnected, true
	case gozk.StateConnectedReadOnly:
		return zk.ConnectedReadOnly, true
	case gozk.StateDisconnected:
		return zk.Disconnected, true
	case gozk.StateConnecting, gozk.StateConnected:
		return zk.NoSyncConnected, true
	case gozk.StateAuthFailed:
		return zk.AuthFailed, true
	case gozk.StateExpired:
		return zk.Expired, true
	}
	return 0, false
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gozk.ErrConnectionClosed), errors.Is(err, gozk.ErrNoServer):
		return errors.Wrap(zk.ErrConnectionLoss, err.Error())
	case errors.Is(err, gozk.ErrClosing):
		return errors.Wrap(zk.ErrSessionClosed, err.Error())
	case errors.Is(err, gozk.ErrNoNode):
		return errors.Wrap(zk.ErrNoNode, err.Error())
	case errors.Is(err, gozk.ErrSessionExpired):
		return errors.Wrap(zk.ErrSessionExpired, err.Error())
	case errors.Is(err, gozk.ErrBadArguments):
		return errors.Wrap(zk.ErrInvalidArgument, err.Error())
	}
	return err
}

func toStat(st *gozk.Stat) *zk.Stat {
	if st == nil {
		return nil
	}
	return &zk.Stat{
		Czxid:          st.Czxid,
		Mzxid:          st.Mzxid,
		Ctime:          st.Ctime,
		Mtime:          st.Mtime,
		Version:        st.Version,
		Cversion:       st.Cversion,
		Aversion:       st.Aversion,
		EphemeralOwner: st.EphemeralOwner,
		DataLength:     st.DataLength,
		NumChildren:    st.NumChildren,
		Pzxid:          st.Pzxid,
	}
}
