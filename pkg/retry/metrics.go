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

package retry

import (
	"github.com/ortuman/zkwatch/pkg/instance"
	"github.com/prometheus/client_golang/prometheus"
)

var retries = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "zkwatch",
		Subsystem: "retry",
		Name:      "retries_total",
		Help:      "The total number of retried operations.",
	},
	[]string{"instance"},
)

func init() {
	prometheus.MustRegister(retries)
}

func reportRetry() {
	retries.With(prometheus.Labels{"instance": instance.ID()}).Inc()
}
