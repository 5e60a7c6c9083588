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

package log

import (
	"io"
	"os"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	debugLevel   = "debug"
	infoLevel    = "info"
	warningLevel = "warn"
	errorLevel   = "error"
	offLevel     = "off"

	jsonFormat = "json"
)

// Config contains logger configuration.
type Config struct {
	Level  string `fig:"level" default:"debug"`
	Format string `fig:"format"`
}

// NewDefaultLogger creates a new go-kit logger writing to stderr with the configured level and format.
func NewDefaultLogger(lv, format string) kitlog.Logger {
	return newLogger(kitlog.NewSyncWriter(os.Stderr), lv, format)
}

func newLogger(w io.Writer, lv, format string) kitlog.Logger {
	var logger kitlog.Logger
	if format == jsonFormat {
		logger = kitlog.NewJSONLogger(w)
	} else {
		logger = kitlog.NewLogfmtLogger(w)
	}
	return kitlog.With(level.NewFilter(logger, allowOption(lv)), "ts", kitlog.DefaultTimestampUTC, "caller", kitlog.DefaultCaller)
}

func allowOption(lv string) level.Option {
	switch lv {
	case debugLevel:
		return level.AllowDebug()
	case infoLevel:
		return level.AllowInfo()
	case warningLevel:
		return level.AllowWarn()
	case errorLevel:
		return level.AllowError()
	case offLevel:
		return level.AllowNone()
	default:
		return level.AllowAll()
	}
}
