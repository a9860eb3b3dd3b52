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

package sequence

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsSequence holds Prometheus metrics for diagram construction.
type metricsSequence struct {
	once sync.Once

	callsRecorded     prometheus.Counter
	callsSkipped      *prometheus.CounterVec
	participantsAdded prometheus.Counter
	fragmentsMerged   prometheus.Counter
	unitDuration      prometheus.Histogram
}

var seqMetrics metricsSequence

func (m *metricsSequence) init() {
	m.once.Do(func() {
		m.callsRecorded = prometheus.NewCounter(prometheus.CounterOpts{Name: "seqdiag_calls_recorded_total", Help: "Call events recorded"})
		m.callsSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "seqdiag_calls_skipped_total", Help: "Call expressions not recorded, by reason"}, []string{"reason"})
		m.participantsAdded = prometheus.NewCounter(prometheus.CounterOpts{Name: "seqdiag_participants_total", Help: "Participants created in diagram fragments"})
		m.fragmentsMerged = prometheus.NewCounter(prometheus.CounterOpts{Name: "seqdiag_fragments_merged_total", Help: "Fragments merged into diagrams"})

		buckets := []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
		m.unitDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "seqdiag_unit_seconds", Help: "Traversal duration per translation unit", Buckets: buckets})

		prometheus.MustRegister(
			m.callsRecorded, m.callsSkipped,
			m.participantsAdded, m.fragmentsMerged,
			m.unitDuration,
		)
	})
}

// record helpers - used by the builder, recorder and diagram
func recordCallRecorded() {
	seqMetrics.init()
	seqMetrics.callsRecorded.Inc()
}

func recordCallSkipped(reason SkipReason) {
	seqMetrics.init()
	seqMetrics.callsSkipped.WithLabelValues(string(reason)).Inc()
}

func recordParticipantCreated() {
	seqMetrics.init()
	seqMetrics.participantsAdded.Inc()
}

func recordFragmentMerged() {
	seqMetrics.init()
	seqMetrics.fragmentsMerged.Inc()
}

func observeUnitDuration(d time.Duration) {
	seqMetrics.init()
	seqMetrics.unitDuration.Observe(d.Seconds())
}
