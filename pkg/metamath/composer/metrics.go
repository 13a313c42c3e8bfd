// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package composer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "mmcompose"

const metricsSubsystem = "composer"

// Metrics holds the counters maintained by a composer.
type Metrics struct {
	// Applications counts theorem applications by operation (apply, inline)
	// and result (success, failure).
	Applications *prometheus.CounterVec
	// Registrations counts registered theorems by statement kind.
	Registrations *prometheus.CounterVec
	// Deferred counts deferred hypothesis resolutions by result.
	Deferred *prometheus.CounterVec
}

// NewMetrics constructs the composer metrics and registers them with a given
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	//
	return &Metrics{
		Applications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "applications_total",
			Help:      "Theorem applications by operation and result",
		}, []string{"operation", "result"}),
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "theorems_registered_total",
			Help:      "Registered theorems by statement kind",
		}, []string{"kind"}),
		Deferred: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "deferred_resolutions_total",
			Help:      "Deferred hypothesis resolutions by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) recordApplication(operation string, err error) {
	m.Applications.WithLabelValues(operation, result(err)).Inc()
}

func (m *Metrics) recordDeferred(err error) {
	m.Deferred.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) recordRegistration(kind string) {
	m.Registrations.WithLabelValues(kind).Inc()
}

func result(err error) string {
	if err != nil {
		return "failure"
	}
	//
	return "success"
}
