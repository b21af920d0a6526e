// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingestion

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsIngestion holds Prometheus metrics for the ingestion
// subsystem.
type metricsIngestion struct {
	once sync.Once

	filesListed  prometheus.Counter
	filesFetched prometheus.Counter
	filesSkipped prometheus.Counter
	fetchRetries prometheus.Counter
	fetchErrors  prometheus.Counter

	foldersCreated     prometheus.Counter
	filesCreated       prometheus.Counter
	entitiesCreated    prometheus.Counter
	subEntitiesCreated prometheus.Counter

	embedComputed prometheus.Counter
	embedErrors   prometheus.Counter

	fetchDuration     prometheus.Histogram
	decomposeDuration prometheus.Histogram
	writeDuration     prometheus.Histogram
	totalDuration     prometheus.Histogram
}

var ingMetrics metricsIngestion

func (m *metricsIngestion) init() {
	m.once.Do(func() {
		m.filesListed = prometheus.NewCounter(prometheus.CounterOpts{Name: "codegraph_ing_files_listed_total", Help: "Blob entries returned by tree listings"})
		m.filesFetched = prometheus.NewCounter(prometheus.CounterOpts{Name: "codegraph_ing_files_fetched_total", Help: "File contents fetched and decoded"})
		m.filesSkipped = prometheus.NewCounter(prometheus.CounterOpts{Name: "codegraph_ing_files_skipped_total", Help: "Files skipped by ignore patterns or fetch failures"})
		m.fetchRetries = prometheus.NewCounter(prometheus.CounterOpts{Name: "codegraph_ing_fetch_retries_total", Help: "Retries after transport errors"})
		m.fetchErrors = prometheus.NewCounter(prometheus.CounterOpts{Name: "codegraph_ing_fetch_errors_total", Help: "Fetches abandoned after exhausting retries"})

		m.foldersCreated = prometheus.NewCounter(prometheus.CounterOpts{Name: "codegraph_ing_folders_created_total", Help: "Folder nodes created"})
		m.filesCreated = prometheus.NewCounter(prometheus.CounterOpts{Name: "codegraph_ing_files_created_total", Help: "File nodes created"})
		m.entitiesCreated = prometheus.NewCounter(prometheus.CounterOpts{Name: "codegraph_ing_entities_created_total", Help: "Root entity nodes created"})
		m.subEntitiesCreated = prometheus.NewCounter(prometheus.CounterOpts{Name: "codegraph_ing_sub_entities_created_total", Help: "Sub-entity nodes created"})

		m.embedComputed = prometheus.NewCounter(prometheus.CounterOpts{Name: "codegraph_ing_embeddings_computed_total", Help: "Embeddings computed and attached"})
		m.embedErrors = prometheus.NewCounter(prometheus.CounterOpts{Name: "codegraph_ing_embeddings_errors_total", Help: "Embedding provider errors"})

		buckets := []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
		m.fetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "codegraph_ing_fetch_seconds", Help: "Per-file fetch duration", Buckets: buckets})
		m.decomposeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "codegraph_ing_decompose_seconds", Help: "Per-file decomposition duration", Buckets: buckets})
		m.writeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "codegraph_ing_write_seconds", Help: "Per-file graph write duration", Buckets: buckets})
		m.totalDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "codegraph_ing_total_seconds", Help: "Total ingestion run duration", Buckets: buckets})

		prometheus.MustRegister(
			m.filesListed, m.filesFetched, m.filesSkipped, m.fetchRetries, m.fetchErrors,
			m.foldersCreated, m.filesCreated, m.entitiesCreated, m.subEntitiesCreated,
			m.embedComputed, m.embedErrors,
			m.fetchDuration, m.decomposeDuration, m.writeDuration, m.totalDuration,
		)
	})
}

// record helpers - used by the pipeline
func recordFilesListed(n int)     { ingMetrics.init(); ingMetrics.filesListed.Add(float64(n)) }
func recordFileFetched()          { ingMetrics.init(); ingMetrics.filesFetched.Inc() }
func recordFileSkipped()          { ingMetrics.init(); ingMetrics.filesSkipped.Inc() }
func recordFetchRetry()           { ingMetrics.init(); ingMetrics.fetchRetries.Inc() }
func recordFetchError()           { ingMetrics.init(); ingMetrics.fetchErrors.Inc() }
func recordFolderCreated()        { ingMetrics.init(); ingMetrics.foldersCreated.Inc() }
func recordFileCreated()          { ingMetrics.init(); ingMetrics.filesCreated.Inc() }
func recordEntitiesCreated(n int) { ingMetrics.init(); ingMetrics.entitiesCreated.Add(float64(n)) }
func recordSubEntitiesCreated(n int) {
	ingMetrics.init()
	ingMetrics.subEntitiesCreated.Add(float64(n))
}
func recordEmbedComputed() { ingMetrics.init(); ingMetrics.embedComputed.Inc() }
func recordEmbedError()    { ingMetrics.init(); ingMetrics.embedErrors.Inc() }

func observeFetch(seconds float64)     { ingMetrics.init(); ingMetrics.fetchDuration.Observe(seconds) }
func observeDecompose(seconds float64) { ingMetrics.init(); ingMetrics.decomposeDuration.Observe(seconds) }
func observeWrite(seconds float64)     { ingMetrics.init(); ingMetrics.writeDuration.Observe(seconds) }
func observeTotal(seconds float64)     { ingMetrics.init(); ingMetrics.totalDuration.Observe(seconds) }
