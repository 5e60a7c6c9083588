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
	"fmt"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ortuman/zkwatch/pkg/util/dns"
	"github.com/ortuman/zkwatch/pkg/zk"
	gozk "github.com/samuel/go-zookeeper/zk"
	"github.com/sony/gobreaker"
)

// BreakerConfig contains dial circuit breaker configuration.
type BreakerConfig struct {
	MaxRequests uint32        `fig:"max_requests" default:"1"`
	Failures    uint32        `fig:"failures" default:"5"`
	Interval    time.Duration `fig:"interval" default:"1m"`
	Timeout     time.Duration `fig:"timeout" default:"30s"`
}

// Config contains coordination service connection configuration.
type Config struct {
	Servers          []string      `fig:"servers"`
	SRVRecord        string        `fig:"srv_record"`
	SessionTimeout   time.Duration `fig:"session_timeout" default:"10s"`
	ReconnectBackoff time.Duration `fig:"reconnect_backoff" default:"1s"`
	AuthIdentity     string        `fig:"auth_identity" default:"/null"`
	Breaker          BreakerConfig `fig:"breaker"`
}

const resolveTimeout = time.Second * 5

type resolver interface {
	Resolve(ctx context.Context) ([]string, error)
}

type dialFunc func(servers []string, sessionTimeout time.Duration, logger gozk.Logger) (zkClient, <-chan gozk.Event, error)

// Dialer establishes new coordination service sessions.
type Dialer struct {
	cfg    Config
	cb     *gobreaker.CircuitBreaker
	rsv    resolver
	dialFn dialFunc
	logger kitlog.Logger
}

// NewDialer returns a new Dialer instance. When an SRV record is configured ensemble servers are
// resolved again on every dial.
func NewDialer(cfg Config, logger kitlog.Logger) (*Dialer, error) {
	var rsv resolver
	if len(cfg.SRVRecord) > 0 {
		r, err := dns.NewSRVResolverFromRecord(cfg.SRVRecord)
		if err != nil {
			return nil, err
		}
		rsv = r
	}
	return newDialer(cfg, rsv, dial, logger), nil
}

func newDialer(cfg Config, rsv resolver, dialFn dialFunc, logger kitlog.Logger) *Dialer {
	d := &Dialer{
		cfg:    cfg,
		rsv:    rsv,
		dialFn: dialFn,
		logger: logger,
	}
	d.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "zk-dialer",
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    cfg.Breaker.Interval,
		Timeout:     cfg.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Breaker.Failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			level.Info(logger).Log("msg", "dial breaker state changed", "name", name, "from", from, "to", to)
		},
	})
	return d
}

// NewSession dials a new session. Whenever dialing fails, or is rejected by the breaker, an already
// expired session is returned so that callers back off before trying again.
func (d *Dialer) NewSession() *zk.Session {
	res, err := d.cb.Execute(func() (interface{}, error) {
		servers, err := d.servers()
		if err != nil {
			return nil, err
		}
		cl, events, err := d.dialFn(servers, d.cfg.SessionTimeout, &printfLogger{logger: d.logger})
		if err != nil {
			return nil, err
		}
		return newConn(cl, events, d.cfg.SessionTimeout, d.logger), nil
	})
	if err != nil {
		level.Warn(d.logger).Log("msg", "failed to dial zk session", "servers", fmt.Sprintf("%v", d.cfg.Servers), "err", err)
		return zk.NewSession(zk.NewExpiredConn(), d.logger)
	}
	return zk.NewSession(zk.NewMeasured(res.(*Conn)), d.logger)
}

func (d *Dialer) servers() ([]string, error) {
	if d.rsv == nil {
		return d.cfg.Servers, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()
	return d.rsv.Resolve(ctx)
}

func dial(servers []string, sessionTimeout time.Duration, logger gozk.Logger) (zkClient, <-chan gozk.Event, error) {
	conn, events, err := gozk.Connect(servers, sessionTimeout, gozk.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return conn, events, nil
}

type printfLogger struct {
	logger kitlog.Logger
}

func (l *printfLogger) Printf(format string, args ...interface{}) {
	level.Debug(l.logger).Log("msg", fmt.Sprintf(format, args...))
}
