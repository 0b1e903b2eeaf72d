// Package promhooks exports paramwire hook events as Prometheus counters.
package promhooks

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/paramwire"
	"github.com/unkn0wn-root/paramwire/wire"
)

const namespace = "paramwire"

type Hooks struct {
	encoded      *prometheus.CounterVec
	encodedBytes *prometheus.CounterVec
	decodeFailed *prometheus.CounterVec
	oversized    *prometheus.CounterVec
	truncated    *prometheus.CounterVec
}

var _ paramwire.Hooks = (*Hooks)(nil)

// New creates the counters and registers them with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) (*Hooks, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	h := &Hooks{
		encoded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_encoded_total",
				Help:      "Messages encoded, by type.",
			},
			[]string{"type"},
		),
		encodedBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "encoded_bytes_total",
				Help:      "Bytes produced by encoding, by type.",
			},
			[]string{"type"},
		),
		decodeFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decode_failures_total",
				Help:      "Rejected messages, by type and failure kind.",
			},
			[]string{"type", "kind"},
		),
		oversized: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_oversized_total",
				Help:      "Messages refused for exceeding the size limit, by type and operation.",
			},
			[]string{"type", "op"},
		),
		truncated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "describe_truncated_total",
				Help:      "Describe outputs cut at the limit, by type.",
			},
			[]string{"type", "limit"},
		),
	}
	for _, c := range []prometheus.Collector{h.encoded, h.encodedBytes, h.decodeFailed, h.oversized, h.truncated} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Hooks) MessageEncoded(name string, size int) {
	h.encoded.WithLabelValues(name).Inc()
	h.encodedBytes.WithLabelValues(name).Add(float64(size))
}

func (h *Hooks) DecodeFailed(name string, kind wire.Kind, _ int) {
	h.decodeFailed.WithLabelValues(name, kind.String()).Inc()
}

func (h *Hooks) MessageOversized(name, op string, _, _ int) {
	h.oversized.WithLabelValues(name, op).Inc()
}

func (h *Hooks) DescribeTruncated(name string, limit int) {
	h.truncated.WithLabelValues(name, strconv.Itoa(limit)).Inc()
}
