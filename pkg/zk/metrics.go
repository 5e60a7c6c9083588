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
	"strconv"

	"github.com/ortuman/zkwatch/pkg/instance"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	zkOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zkwatch",
			Subsystem: "zk",
			Name:      "operations_total",
			Help:      "The total number of coordination service operations.",
		},
		[]string{"instance", "type", "success"},
	)
	zkOperationDurationBucket = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "zkwatch",
			Subsystem: "zk",
			Name:      "operation_duration_bucket",
			Help:      "Bucketed histogram of coordination service operations duration.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 20),
		},
		[]string{"instance", "type", "success"},
	)
	watchIssues = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zkwatch",
			Subsystem: "watch",
			Name:      "issues_total",
			Help:      "The total number of issued persistent watch operations.",
		},
		[]string{"instance", "op"},
	)
	watchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zkwatch",
			Subsystem: "watch",
			Name:      "failures_total",
			Help:      "The total number of failed persistent watch publications.",
		},
		[]string{"instance", "op"},
	)
	sessionsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zkwatch",
			Subsystem: "session",
			Name:      "started_total",
			Help:      "The total number of started sessions.",
		},
		[]string{"instance"},
	)
	sessionsExpired = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zkwatch",
			Subsystem: "session",
			Name:      "expired_total",
			Help:      "The total number of expired sessions.",
		},
		[]string{"instance"},
	)
)

func init() {
	prometheus.MustRegister(zkOperations)
	prometheus.MustRegister(zkOperationDurationBucket)
	prometheus.MustRegister(watchIssues)
	prometheus.MustRegister(watchFailures)
	prometheus.MustRegister(sessionsStarted)
	prometheus.MustRegister(sessionsExpired)
}

func reportOperation(opType string, durationInSecs float64, success bool) {
	metricLabel := prometheus.Labels{
		"instance": instance.ID(),
		"type":     opType,
		"success":  strconv.FormatBool(success),
	}
	zkOperations.With(metricLabel).Inc()
	zkOperationDurationBucket.With(metricLabel).Observe(durationInSecs)
}

func reportWatchIssue(op string) {
	watchIssues.With(prometheus.Labels{"instance": instance.ID(), "op": op}).Inc()
}

func reportWatchFailure(op string) {
	watchFailures.With(prometheus.Labels{"instance": instance.ID(), "op": op}).Inc()
}

func reportSessionStarted() {
	sessionsStarted.With(prometheus.Labels{"instance": instance.ID()}).Inc()
}

func reportSessionExpired() {
	sessionsExpired.With(prometheus.Labels{"instance": instance.ID()}).Inc()
}
