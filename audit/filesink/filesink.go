// Package filesink implements a JSON-lines audit sink: one hexvault
// audit.Record per line, appended to a file opened once at construction.
package filesink

import (
	"encoding/json"
	"os"
	"sync"

	"hexvault/audit"
)

// Sink appends each record it receives as a single JSON line. It is safe
// for concurrent use, though a Vault already serialises calls to Write by
// holding its lock across each traversal's audit append.
type Sink struct {
	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
}

type line struct {
	Seq      uint64 `json:"seq"`
	TSMillis int64  `json:"ts_ms"`
	Src      string `json:"src"`
	Dst      string `json:"dst"`
	Layer    string `json:"layer"`
}

// New opens (creating if necessary) path in append mode and returns a
// Sink that writes to it.
func New(path string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	return &Sink{f: f, enc: json.NewEncoder(f)}, nil
}

// Write appends rec as one JSON line and flushes it to disk.
func (s *Sink) Write(rec audit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enc.Encode(line{
		Seq:      rec.Seq,
		TSMillis: rec.TSMillis,
		Src:      rec.Src,
		Dst:      rec.Dst,
		Layer:    rec.Layer.Tag(),
	}); err != nil {
		return err
	}
	return s.f.Sync()
}

// Close closes the underlying file.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.f.Close()
}
