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

const (
	existsOpType   = "exists"
	childrenOpType = "get_children"
	getDataOpType  = "get_data"
	addAuthOpType  = "add_auth"
)

// Measured represents a measured Conn type.
type Measured struct {
	conn Conn
}

// NewMeasured returns an initialized measured Conn instance.
func NewMeasured(conn Conn) *Measured {
	return &Measured{conn: conn}
}

// ExistsWatch returns node metadata, or nil if the node doesn't exist, and sets a watch on it.
func (m *Measured) ExistsWatch(ctx context.Context, path string) (Watched[*Stat], error) {
	t0 := time.Now()
	w, err := m.conn.ExistsWatch(ctx, path)
	reportOperation(existsOpType, time.Since(t0).Seconds(), err == nil)
	return w, err
}

// GetChildrenWatch returns node children and sets a watch on them.
func (m *Measured) GetChildrenWatch(ctx context.Context, path string) (Watched[ChildrenNode], error) {
	t0 := time.Now()
	w, err := m.conn.GetChildrenWatch(ctx, path)
	reportOperation(childrenOpType, time.Since(t0).Seconds(), err == nil)
	return w, err
}

// GetData returns node payload.
func (m *Measured) GetData(ctx context.Context, path string) (DataNode, error) {
	t0 := time.Now()
	n, err := m.conn.GetData(ctx, path)
	reportOperation(getDataOpType, time.Since(t0).Seconds(), err == nil)
	return n, err
}

// AddAuthInfo adds authentication credentials to the connection.
func (m *Measured) AddAuthInfo(ctx context.Context, scheme string, auth []byte) error {
	t0 := time.Now()
	err := m.conn.AddAuthInfo(ctx, scheme, auth)
	reportOperation(addAuthOpType, time.Since(t0).Seconds(), err == nil)
	return err
}

// SessionID returns the connection session identifier.
func (m *Measured) SessionID() int64 { return m.conn.SessionID() }

// SessionPassword returns the connection session password.
func (m *Measured) SessionPassword() []byte { return m.conn.SessionPassword() }

// SessionTimeout returns the negotiated session timeout.
func (m *Measured) SessionTimeout() time.Duration { return m.conn.SessionTimeout() }

// State returns connection session state.
func (m *Measured) State() *reactive.Var[WatchState] { return m.conn.State() }

// Close closes the connection.
func (m *Measured) Close() error { return m.conn.Close() }
