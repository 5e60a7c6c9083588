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

import "fmt"

// State represents a coordination service session state.
type State uint8

const (
	// SyncConnected means the session is connected and synchronized with the ensemble.
	SyncConnected State = iota

	// ConnectedReadOnly means the session is connected to a read-only server.
	ConnectedReadOnly

	// Disconnected means the client lost connection with the ensemble.
	Disconnected

	// NoSyncConnected means the client is connected but the session is not yet established.
	NoSyncConnected

	// AuthFailed means session authentication failed.
	AuthFailed

	// Expired means the session has been expired by the ensemble.
	Expired
)

// String returns State string representation.
func (s State) String() string {
	switch s {
	case SyncConnected:
		return "SyncConnected"
	case ConnectedReadOnly:
		return "ConnectedReadOnly"
	case Disconnected:
		return "Disconnected"
	case NoSyncConnected:
		return "NoSyncConnected"
	case AuthFailed:
		return "AuthFailed"
	case Expired:
		return "Expired"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// EventType represents a node watch event type.
type EventType uint8

const (
	// None is used for events not tied to a node change.
	None EventType = iota

	// NodeCreated is triggered when a watched node is created.
	NodeCreated

	// NodeDeleted is triggered when a watched node is deleted.
	NodeDeleted

	// NodeDataChanged is triggered when a watched node data changes.
	NodeDataChanged

	// NodeChildrenChanged is triggered when a watched node children set changes.
	NodeChildrenChanged
)

// String returns EventType string representation.
func (t EventType) String() string {
	switch t {
	case None:
		return "None"
	case NodeCreated:
		return "NodeCreated"
	case NodeDeleted:
		return "NodeDeleted"
	case NodeDataChanged:
		return "NodeDataChanged"
	case NodeChildrenChanged:
		return "NodeChildrenChanged"
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// Event represents a watch notification.
type Event struct {
	Type EventType
	Path string
}

// WatchState represents the lifecycle of a single watch. It's one of Pending, Determined or SessionState.
//
// A watch starts in Pending and transitions at most once, after which it must be registered again.
type WatchState interface {
	isWatchState()
}

// Pending means the watch hasn't fired yet.
type Pending struct{}

// Determined means the watch fired because of Event.
type Determined struct {
	Event Event
}

// SessionState means the watch was resolved by a session state transition.
type SessionState struct {
	State State
}

func (Pending) isWatchState()      {}
func (Determined) isWatchState()   {}
func (SessionState) isWatchState() {}
