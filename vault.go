package hexvault

import (
	"log"
	"sync"

	"hexvault/audit"
	"hexvault/errs"
	"hexvault/internal/cell"
	"hexvault/internal/edge"
	"hexvault/internal/keys"
	"hexvault/internal/stack"
)

// Vault owns a master key, a set of isolated cells, and the audit log
// that records every traversal between them. Its methods are safe for
// concurrent use by multiple goroutines; the *audit.Log returned by
// AuditLog is not guarded by the Vault's lock.
type Vault struct {
	mu sync.Mutex

	master []byte
	cells  map[string]*cell.Cell
	names  []string // cell insertion order

	auditLog *audit.Log
	logger   *log.Logger

	// pendingSinks holds WithForwardSink registrations until New wires the
	// audit log's error handler to the resolved logger.
	pendingSinks []audit.Sink
}

// New constructs a Vault from a 32-byte master key. The key is copied and
// memory-locked for the Vault's lifetime; Destroy zeroises and unlocks it.
func New(masterKey []byte, opts ...Option) (*Vault, error) {
	if len(masterKey) != keys.Size {
		return nil, errs.New(errs.InvalidMasterKeyLength, "")
	}

	v := &Vault{
		cells:  make(map[string]*cell.Cell),
		master: append([]byte(nil), masterKey...),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = defaultLogger()
	}
	keys.Lock(v.master)
	if err := keys.DisableCoreDumps(); err != nil {
		v.logger.Printf("hexvault: disabling core dumps failed: %v", err)
	}

	v.auditLog = audit.New(func(rec audit.Record, sink audit.Sink, err error) {
		v.logger.Printf("hexvault: audit sink write failed for seq=%d: %v", rec.Seq, err)
	})
	for _, s := range v.pendingSinks {
		v.auditLog.AddForwardSink(s)
	}
	v.pendingSinks = nil

	return v, nil
}

// CreateCell registers a new, empty cell under id. id must be non-empty
// and free of ':' and '|'.
func (v *Vault) CreateCell(id string) error {
	if err := validateIdentifier(id); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, exists := v.cells[id]; exists {
		return errs.New(errs.DuplicateCell, id)
	}
	v.cells[id] = cell.New(id)
	v.names = append(v.names, id)
	return nil
}

// HasCell reports whether a cell with the given id exists.
func (v *Vault) HasCell(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, ok := v.cells[id]
	return ok
}

// CellNames returns every cell id in creation order.
func (v *Vault) CellNames() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return append([]string(nil), v.names...)
}

// cellLocked resolves a cell id under the caller's held lock. An
// unregistered id is not malformed — it just names nothing reachable —
// so this reports PayloadNotFound rather than InvalidIdentifier: §7
// reserves InvalidIdentifier for empty or separator-containing
// identifiers, and has no dedicated "no such cell" kind. Any lookup that
// depends on this cell existing is, by construction, a lookup for a
// payload that cell doesn't have.
func (v *Vault) cellLocked(id string) (*cell.Cell, error) {
	c, ok := v.cells[id]
	if !ok {
		return nil, errs.New(errs.PayloadNotFound, "unknown cell: "+id)
	}
	return c, nil
}

// Seal encrypts plaintext through layers 0..=target inclusive and stores
// it under name inside cellID, failing if name is already taken in that
// cell.
func (v *Vault) Seal(cellID, name string, target Layer, ctx LayerContext, plaintext []byte) error {
	if err := validateIdentifier(name); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	c, err := v.cellLocked(cellID)
	if err != nil {
		return err
	}
	sealed, err := stack.Seal(v.master, cellID, target, ctx, plaintext)
	if err != nil {
		return err
	}
	if err := c.Insert(name, cell.Payload{Data: sealed, SealedAt: target}); err != nil {
		keys.Zero(sealed)
		return err
	}
	return nil
}

// Unseal removes name from cellID and returns its decrypted plaintext.
// The caller owns the returned slice and is responsible for zeroising it
// once done; hexvault retains no copy after returning.
func (v *Vault) Unseal(cellID, name string, ctx LayerContext) ([]byte, error) {
	if err := validateIdentifier(name); err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	c, err := v.cellLocked(cellID)
	if err != nil {
		return nil, err
	}
	payload, err := c.Remove(name)
	if err != nil {
		return nil, err
	}
	plaintext, err := stack.Peel(v.master, cellID, payload.SealedAt, ctx, payload.Data)
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}

// Peek decrypts name inside cellID without removing it from the cell,
// unlike Unseal. It exists for callers that need to inspect a payload
// without consuming it; the same zeroisation obligation applies to the
// returned plaintext.
func (v *Vault) Peek(cellID, name string, ctx LayerContext) ([]byte, error) {
	if err := validateIdentifier(name); err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	c, err := v.cellLocked(cellID)
	if err != nil {
		return nil, err
	}
	payload, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return stack.Peel(v.master, cellID, payload.SealedAt, ctx, payload.Data)
}

// Traverse copies name from srcCellID into dstCellID: it peels the payload
// under the source cell's keys, re-seals it under the destination cell's
// keys at the same layer, and — only once that succeeds — appends a
// record to the audit log and fans it out to every registered sink. The
// source cell keeps its payload.
func (v *Vault) Traverse(srcCellID, dstCellID, name string, target Layer, srcCtx, dstCtx LayerContext) error {
	if err := validateIdentifier(name); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	src, err := v.cellLocked(srcCellID)
	if err != nil {
		return err
	}
	dst, err := v.cellLocked(dstCellID)
	if err != nil {
		return err
	}

	if err := edge.Traverse(v.master, src, dst, name, target, srcCtx, dstCtx); err != nil {
		return err
	}

	v.auditLog.Append(srcCellID, dstCellID, target)
	return nil
}

// AddForwardSink registers an additional audit sink. Historical records
// are not replayed to it.
func (v *Vault) AddForwardSink(s audit.Sink) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.auditLog.AddForwardSink(s)
}

// AuditLog returns the vault's audit log. The Log has no lock of its own,
// so reading it while another goroutine calls Traverse is a data race.
func (v *Vault) AuditLog() *audit.Log {
	return v.auditLog
}

// Destroy zeroises and unlocks the master key. The Vault must not be used
// afterward.
func (v *Vault) Destroy() {
	v.mu.Lock()
	defer v.mu.Unlock()

	keys.Zero(v.master)
}
