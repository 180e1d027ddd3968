// Copyright 2024 The Cockroach Authors
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
//
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"github.com/cockroachdb/dbname/internal/util/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultHit     = "hit"
	resultInvalid = "invalid"
	resultMiss    = "miss"
)

var (
	lookupCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_lookup_count",
		Help: "the number of catalog lookups, by result",
	}, []string{"result"})
	loadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_load_duration_seconds",
		Help:    "the length of time it took to load the catalog",
		Buckets: metrics.LatencyBuckets,
	})
	tableHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_table_hit_count",
		Help: "the number of successful lookups of each table",
	}, metrics.TableLabels)
	tableCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_table_count",
		Help: "the number of tables in the most recently loaded catalog",
	})
)

func init() {
	for _, result := range []string{resultHit, resultInvalid, resultMiss} {
		lookupCount.WithLabelValues(result).Add(0)
	}
}
