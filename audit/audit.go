// Package audit implements the append-only record of every successful
// edge traversal, with a synchronous fan-out to zero or more registered
// sinks. See the filesink and mongosink subpackages for concrete sink
// implementations; the core contract here is deliberately storage-agnostic.
package audit

import (
	"iter"
	"time"

	"hexvault/internal/layer"
)

// Layer re-exports the closed layer enum so sink implementers never need
// to import hexvault's internal packages directly.
type Layer = layer.Layer

// Record is an immutable account of one traversal. Nothing in this
// package ever mutates a Record after Append constructs it.
type Record struct {
	Seq      uint64
	TSMillis int64
	Src      string
	Dst      string
	Layer    Layer
}

// Sink is the external contract for forwarding audit records to durable
// storage (a file, a database, a message queue). A sink's Write is called
// synchronously, in registration order, once per Append.
type Sink interface {
	Write(Record) error
}

// SinkErrorHandler is invoked when a sink returns an error from Write. It
// never aborts the append — sink failures are isolated from the caller of
// Append per the traversal's error-handling contract.
type SinkErrorHandler func(rec Record, sink Sink, err error)

// Log is an append-only, in-memory sequence of audit records.
type Log struct {
	records []Record
	sinks   []Sink
	nextSeq uint64
	now     func() int64
	onErr   SinkErrorHandler
}

// New returns an empty Log. onErr may be nil, in which case sink errors
// are silently dropped (the caller can still observe them by inspecting
// sink-specific state, if the sink exposes any).
func New(onErr SinkErrorHandler) *Log {
	return &Log{now: nowMillis, onErr: onErr}
}

func nowMillis() int64 { return time.Now().UnixMilli() }

// AddForwardSink registers an additional sink. It does not replay
// historical records — only future Append calls reach it.
func (l *Log) AddForwardSink(s Sink) {
	l.sinks = append(l.sinks, s)
}

// Append assigns the next monotonic sequence number, records the entry,
// and fans it out to every registered sink in registration order.
func (l *Log) Append(src, dst string, lyr Layer) Record {
	rec := Record{
		Seq:      l.nextSeq,
		TSMillis: l.now(),
		Src:      src,
		Dst:      dst,
		Layer:    lyr,
	}
	l.nextSeq++
	l.records = append(l.records, rec)

	for _, sink := range l.sinks {
		if err := sink.Write(rec); err != nil && l.onErr != nil {
			l.onErr(rec, sink, err)
		}
	}
	return rec
}

// Len returns the number of records in the log.
func (l *Log) Len() int { return len(l.records) }

// All returns a lazy, finite iterator over records in insertion order.
func (l *Log) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, r := range l.records {
			if !yield(r) {
				return
			}
		}
	}
}
