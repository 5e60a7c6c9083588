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
	"encoding/json"
	"net/http"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/websocket"
	"github.com/ortuman/zkwatch/pkg/activity"
	"github.com/ortuman/zkwatch/pkg/reactive"
	"github.com/ortuman/zkwatch/pkg/util/crashreporter"
	"github.com/ortuman/zkwatch/pkg/zk"
)

const (
	globParam = "glob"

	sendBufferSize = 64
	writeTimeout   = time.Second * 10
)

type messageType string

const (
	msgPending messageType = "pending"
	msgPaths   messageType = "paths"
	msgError   messageType = "error"
)

type wsMessage struct {
	Type      messageType `json:"type"`
	Glob      string      `json:"glob"`
	SessionID string      `json:"session_id"`
	Paths     []string    `json:"paths,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// globStreamer streams glob query results to websocket clients.
type globStreamer struct {
	sessions *reactive.Var[*zk.Session]
	upgrader websocket.Upgrader
	logger   kitlog.Logger
}

func newGlobStreamer(sessions *reactive.Var[*zk.Session], logger kitlog.Logger) *globStreamer {
	return &globStreamer{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

func (g *globStreamer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	pattern := r.URL.Query().Get(globParam)
	if len(pattern) == 0 {
		http.Error(w, "missing glob parameter", http.StatusBadRequest)
		return
	}
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		level.Warn(g.logger).Log("msg", "failed to upgrade websocket connection", "err", err)
		return
	}
	level.Info(g.logger).Log("msg", "websocket client connected", "remote_addr", r.RemoteAddr, "glob", pattern)

	c := newWSClient(conn)
	fc := follow(g.sessions, func(s *zk.Session) *activity.Activity[[]string] {
		return s.GlobOf(pattern)
	}, func(s *zk.Session, st activity.State[[]string]) {
		msg := toMessage(pattern, s, st)
		if !c.send(msg) {
			level.Warn(g.logger).Log("msg", "websocket client too slow, disconnecting", "remote_addr", r.RemoteAddr)
			c.close()
		}
	})
	go func() {
		defer crashreporter.RecoverAndReportPanic("op", "ws_read", "glob", pattern)
		defer func() {
			_ = fc.Close()
			c.close()
			level.Info(g.logger).Log("msg", "websocket client disconnected", "remote_addr", r.RemoteAddr)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func toMessage(pattern string, s *zk.Session, st activity.State[[]string]) wsMessage {
	msg := wsMessage{Glob: pattern, SessionID: s.SessionIDHex()}
	switch v := st.(type) {
	case activity.Ok[[]string]:
		msg.Type = msgPaths
		msg.Paths = v.Value
	case activity.Failed[[]string]:
		msg.Type = msgError
		msg.Error = v.Err.Error()
	default:
		msg.Type = msgPending
	}
	return msg
}

type wsClient struct {
	conn *websocket.Conn

	mu     sync.Mutex
	ch     chan []byte
	closed bool
}

func newWSClient(conn *websocket.Conn) *wsClient {
	c := &wsClient{
		conn: conn,
		ch:   make(chan []byte, sendBufferSize),
	}
	go c.writePump()
	return c
}

func (c *wsClient) writePump() {
	defer crashreporter.RecoverAndReportPanic("op", "ws_write")
	defer func() { _ = c.conn.Close() }()

	for b := range c.ch {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeTimeout),
	)
}

// send enqueues msg, returning false if client send buffer is full.
func (c *wsClient) send(msg wsMessage) bool {
	b, err := json.Marshal(msg)
	if err != nil {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return true
	}
	select {
	case c.ch <- b:
		return true
	default:
		return false
	}
}

func (c *wsClient) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.ch)
}
