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
	"path/filepath"

	"github.com/kkyr/fig"
	"github.com/ortuman/zkwatch/pkg/log"
	"github.com/ortuman/zkwatch/pkg/zk/zkconn"
)

// WatchConfig defines the set of queries continuously followed by the daemon.
type WatchConfig struct {
	// Globs contains "/directory/prefix*" patterns.
	Globs []string `fig:"globs"`

	// Exists contains node paths whose existence is followed.
	Exists []string `fig:"exists"`

	// Data contains immutable node paths whose payload is fetched once per session.
	Data []string `fig:"data"`
}

// Config contains zkwatch daemon configuration.
type Config struct {
	Logger    log.Config    `fig:"logger"`
	HTTPPort  int           `fig:"http_port" default:"6060"`
	ZooKeeper zkconn.Config `fig:"zookeeper"`
	Watch     WatchConfig   `fig:"watch"`
}

func loadConfig(configFile string) (*Config, error) {
	var cfg Config
	file := filepath.Base(configFile)
	dir := filepath.Dir(configFile)

	err := fig.Load(&cfg, fig.File(file), fig.Dirs(dir))
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
