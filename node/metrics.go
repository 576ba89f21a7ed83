// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package node

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const metricsNamespace = "carbonledger"

type metrics struct {
	registry *prometheus.Registry

	txCommitted     *prometheus.CounterVec
	txConflicts     prometheus.Counter
	txExecSeconds   prometheus.Histogram
	eventsPublished *prometheus.CounterVec
	eventsDropped   prometheus.Counter
}

func newMetrics(poolSize func() float64, subscribers func() float64) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		txCommitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "tx",
			Name:      "committed_total",
			Help:      "Transactions written to the ledger by result.",
		}, []string{"result"}),
		txConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "tx",
			Name:      "version_conflicts_total",
			Help:      "Transactions re-executed after a state version conflict.",
		}),
		txExecSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "tx",
			Name:      "execution_seconds",
			Help:      "Chaincode execution time per transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Domain events published after commit by name.",
		}, []string{"name"}),
		eventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "events",
			Name:      "dropped_total",
			Help:      "Event deliveries dropped because a subscriber was full.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.txCommitted,
		m.txConflicts,
		m.txExecSeconds,
		m.eventsPublished,
		m.eventsDropped,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "txpool",
			Name:      "size",
			Help:      "Transactions waiting in the pool.",
		}, poolSize),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "events",
			Name:      "subscribers",
			Help:      "Active event subscriptions.",
		}, subscribers),
	)
	return m
}
