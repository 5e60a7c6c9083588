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
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrConnectionLoss is returned when connection to the ensemble is lost while an operation is in-flight.
	ErrConnectionLoss = errors.New("connection loss")

	// ErrNoNode is returned when the requested node does not exist.
	ErrNoNode = errors.New("node does not exist")

	// ErrSessionExpired is returned once the session has been expired.
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidArgument is returned when an operation is invoked with malformed input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSessionClosed is returned by operations issued over a locally closed session.
	ErrSessionClosed = errors.New("session closed")

	// ErrNoSession is returned when authenticating a session with no underlying connection.
	ErrNoSession = errors.New("no session")
)

// SessionStateError is published when a watch is resolved by a non recoverable session state.
type SessionStateError struct {
	State State
}

func (e *SessionStateError) Error() string {
	return fmt.Sprintf("session state: %s", e.State)
}

// IsConnectionLoss tells whether err was caused by a connection loss.
func IsConnectionLoss(err error) bool {
	return errors.Is(err, ErrConnectionLoss)
}

// IsNoNode tells whether err was caused by a missing node.
func IsNoNode(err error) bool {
	return errors.Is(err, ErrNoNode)
}

// IsSessionClosed tells whether err was caused by issuing an operation over a closed session.
func IsSessionClosed(err error) bool {
	return errors.Is(err, ErrSessionClosed)
}

// IsSessionExpired tells whether err was caused by session expiration.
func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}
