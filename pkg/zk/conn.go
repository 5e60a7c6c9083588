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

// Stat contains node metadata.
type Stat struct {
	Czxid          int64
	Mzxid          int64
	Ctime          int64
	Mtime          int64
	Version        int32
	Cversion       int32
	Aversion       int32
	EphemeralOwner int64
	DataLength     int32
	NumChildren    int32
	Pzxid          int64
}

// ChildrenNode contains a node children names along with its metadata.
type ChildrenNode struct {
	Children []string
	Stat     *Stat
}

// DataNode contains a node payload along with its metadata. Data is nil when the node carries no payload.
type DataNode struct {
	Data []byte
	Stat *Stat
}

// Watched bundles an operation result with the watch registered along with it.
type Watched[T any] struct {
	Value T
	State *reactive.Var[WatchState]
}

//go:generate moq -out conn.mock_test.go . Conn:connMock

// Conn represents a low-level coordination service connection.
type Conn interface {
	// ExistsWatch returns node metadata, or nil if the node doesn't exist, and sets a watch on it.
	ExistsWatch(ctx context.Context, path string) (Watched[*Stat], error)

	// GetChildrenWatch returns node children and sets a watch on them.
	GetChildrenWatch(ctx context.Context, path string) (Watched[ChildrenNode], error)

	// GetData returns node payload.
	GetData(ctx context.Context, path string) (DataNode, error)

	// AddAuthInfo adds authentication credentials to the connection.
	AddAuthInfo(ctx context.Context, scheme string, auth []byte) error

	// SessionID returns the connection session identifier.
	SessionID() int64

	// SessionPassword returns the connection session password.
	SessionPassword() []byte

	// SessionTimeout returns the negotiated session timeout.
	SessionTimeout() time.Duration

	// State returns connection session state.
	State() *reactive.Var[WatchState]

	// Close closes the connection.
	Close() error
}
