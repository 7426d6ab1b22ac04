// Copyright 2025 go-highway Authors
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

package topk

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Path labels.
const (
	pathGeneral = "general"
	pathTop1    = "top1"
)

// Metrics collects kernel execution metrics. A nil *Metrics records nothing.
type Metrics struct {
	invocations *prometheus.CounterVec
	rows        *prometheus.CounterVec
	errors      *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates the kernel collectors and registers them with reg.
// A nil reg creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		invocations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "topk",
			Name:      "invocations_total",
			Help:      "Successful kernel invocations by path and element type.",
		}, []string{"path", "dtype"}),
		rows: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "topk",
			Name:      "rows_total",
			Help:      "Rows selected by path.",
		}, []string{"path"}),
		errors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "topk",
			Name:      "errors_total",
			Help:      "Rejected kernel invocations by error kind.",
		}, []string{"kind"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "topk",
			Name:      "duration_seconds",
			Help:      "Kernel execution time by path.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"path"}),
	}
}

func (m *Metrics) observe(path, dtype string, rows int, d time.Duration) {
	if m == nil {
		return
	}
	m.invocations.WithLabelValues(path, dtype).Inc()
	m.rows.WithLabelValues(path).Add(float64(rows))
	m.duration.WithLabelValues(path).Observe(d.Seconds())
}

func (m *Metrics) observeError(err error) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(errorKind(err)).Inc()
}
