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

package crashreporter

import (
	syslog "log"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sentry-go"
)

const (
	envSentryDSN = "ZKWATCH_SENTRY_DSN"

	serviceName = "zkwatch"

	flushTimeout = time.Second * 10

	depthForRecoverAndReportPanic = 3

	missingTagValue = "(MISSING)"
)

var (
	crashReporterEnabled bool

	captureEvent = func(event *sentry.Event) {
		_ = sentry.CaptureEvent(event)
		_ = sentry.Flush(flushTimeout)
	}
	fatalf = syslog.Fatalf
)

func init() {
	sentryDSN := os.Getenv(envSentryDSN)
	if len(sentryDSN) == 0 {
		return
	}
	if err := sentry.Init(sentry.ClientOptions{Dsn: sentryDSN}); err != nil {
		syslog.Printf("sentry.Init: %s", err)
		return
	}
	crashReporterEnabled = true
}

// RecoverAndReportPanic recovers from a panic, reports it to sentry when enabled and exits the process.
//
// keyvals are alternating tag names and values attached to the report, such as
// "op", "exists", "path", "/services".
func RecoverAndReportPanic(keyvals ...string) {
	if r := recover(); r != nil {
		panicErr := panicAsError(depthForRecoverAndReportPanic+1, r)
		tags := panicTags(keyvals)
		if crashReporterEnabled {
			sendCrashReport(panicErr, tags)
		}
		fatalf("A panic has occurred! %v\n%+v", tags, panicErr)
	}
}

func panicAsError(depth int, r interface{}) error {
	if err, ok := r.(error); ok {
		return errors.WithStackDepth(err, depth+1)
	}
	return errors.NewWithDepthf(depth+1, "panic: %v", r)
}

func panicTags(keyvals []string) map[string]string {
	tags := make(map[string]string, len(keyvals)/2+1)
	for i := 0; i < len(keyvals); i += 2 {
		if i+1 < len(keyvals) {
			tags[keyvals[i]] = keyvals[i+1]
		} else {
			tags[keyvals[i]] = missingTagValue
		}
	}
	tags["service"] = serviceName
	return tags
}

func sendCrashReport(err error, tags map[string]string) {
	event, extraDetails := errors.BuildSentryReport(err)

	for extraKey, extraValue := range extraDetails {
		event.Extra[extraKey] = extraValue
	}
	event.ServerName = "<redacted>"
	event.Tags["report_type"] = "panic"
	for k, v := range tags {
		event.Tags[k] = v
	}
	captureEvent(event)
}
