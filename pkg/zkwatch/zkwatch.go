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
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ortuman/zkwatch/pkg/instance"
	"github.com/ortuman/zkwatch/pkg/log"
	"github.com/ortuman/zkwatch/pkg/reactive"
	"github.com/ortuman/zkwatch/pkg/util/crashreporter"
	"github.com/ortuman/zkwatch/pkg/version"
	"github.com/ortuman/zkwatch/pkg/zk"
	"github.com/ortuman/zkwatch/pkg/zk/zkconn"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBootstrapTimeout = time.Minute
	defaultShutdownTimeout  = time.Second * 30

	envConfigFile = "ZKWATCH_CONFIG_FILE"
)

const usageStr = `
Usage: zkwatch [options]
Server Options:
    --config <file>    Configuration file path
Common Options:
    --help             Show this message
    --version          Print version information
`

type starter interface {
	Start(ctx context.Context) error
}

type stopper interface {
	Stop(ctx context.Context) error
}

type startStopper interface {
	starter
	stopper
}

// ZkWatch is the root data structure for zkwatch daemon.
type ZkWatch struct {
	output io.Writer
	args   []string

	sessions *reactive.Var[*zk.Session]

	starters []starter
	stoppers []stopper

	waitStopCh chan os.Signal

	logger kitlog.Logger
}

// New makes a new ZkWatch.
func New(output io.Writer, args []string) *ZkWatch {
	return &ZkWatch{
		output:     output,
		args:       args,
		waitStopCh: make(chan os.Signal, 1),
		logger:     kitlog.NewNopLogger(),
	}
}

// Run starts zkwatch running, and blocks until zkwatch stops.
func (z *ZkWatch) Run() error {
	defer crashreporter.RecoverAndReportPanic()

	fs := flag.NewFlagSet("zkwatch", flag.ExitOnError)
	fs.SetOutput(z.output)

	var configFile string
	var showVersion, showUsage bool

	fs.BoolVar(&showUsage, "help", false, "Show this message")
	fs.BoolVar(&showVersion, "version", false, "Print version information.")
	fs.StringVar(&configFile, "config", "config.yaml", "Configuration file path.")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(z.output, "%s\n", usageStr)
	}
	_ = fs.Parse(z.args[1:])

	// print usage
	if showUsage {
		fs.Usage()
		return nil
	}
	// print version
	if showVersion {
		_, _ = fmt.Fprintf(z.output, "zkwatch version: %v\n", version.Version)
		return nil
	}
	// if present, override config file url with env var
	if envCfgFile := os.Getenv(envConfigFile); len(envCfgFile) > 0 {
		configFile = envCfgFile
	}
	// load configuration
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	// init logger
	z.logger = log.NewDefaultLogger(cfg.Logger.Level, cfg.Logger.Format)

	level.Info(z.logger).Log("msg", "zkwatch is starting...",
		"version", version.Version,
		"instance_id", instance.ID(),
		"hostname", instance.Hostname(),
		"go_ver", runtime.Version(),
		"go_os", runtime.GOOS,
		"go_arch", runtime.GOARCH,
	)
	dialer, err := zkconn.NewDialer(cfg.ZooKeeper, z.logger)
	if err != nil {
		return err
	}
	z.initComponents(cfg, dialer.NewSession)

	if err := z.bootstrap(); err != nil {
		return err
	}
	// ...wait for stop signal to shut down
	sig := z.waitForStopSignal()
	level.Info(z.logger).Log("msg", "received stop signal... shutting down...",
		"signal", sig.String(),
	)
	return z.shutdown()
}

func (z *ZkWatch) initComponents(cfg *Config, newSession func() *zk.Session) {
	z.sessions = zk.Retrying(cfg.ZooKeeper.ReconnectBackoff, newSession, cfg.ZooKeeper.AuthIdentity, z.logger)

	z.registerStartStopper(newSessionKeeper(z.sessions, z.logger))
	z.registerStartStopper(newQueryWatcher(z.sessions, cfg.Watch, z.logger))
	z.registerStartStopper(newHTTPServer(cfg.HTTPPort, newGlobStreamer(z.sessions, z.logger), z.logger))
}

func (z *ZkWatch) registerStartStopper(ss startStopper) {
	if ss == nil {
		return
	}
	z.starters = append(z.starters, ss)
	z.stoppers = append([]stopper{ss}, z.stoppers...)
}

func (z *ZkWatch) bootstrap() error {
	// spin up all service subsystems
	ctx, cancel := context.WithTimeout(context.Background(), defaultBootstrapTimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	for _, s := range z.starters {
		st := s
		g.Go(func() error {
			return st.Start(gCtx)
		})
	}
	return g.Wait()
}

func (z *ZkWatch) shutdown() error {
	// wait until shutdown has been completed
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		// invoke all registered stoppers...
		for _, st := range z.stoppers {
			if err := st.Stop(ctx); err != nil {
				errCh <- err
				return
			}
		}
		errCh <- nil
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (z *ZkWatch) waitForStopSignal() os.Signal {
	signal.Notify(z.waitStopCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	return <-z.waitStopCh
}
