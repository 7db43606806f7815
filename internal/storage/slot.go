// Package storage provides the durable named slot the invoice store
// persists its whole collection into.
package storage

import (
	"context"
	"errors"
)

// Slot is a single named durable value. Writes replace the previous value.
type Slot interface {
	// Read returns the stored payload. ok is false when nothing was ever
	// written or the slot was cleared.
	Read(ctx context.Context) (payload []byte, ok bool, err error)
	Write(ctx context.Context, payload []byte) error
	Clear(ctx context.Context) error
	// Driver names the backend for logs and metrics.
	Driver() string
}

var ErrInvalidSlotName = errors.New("invalid_slot_name")

// Memory is a process-local slot, used by tests and dry runs.
type Memory struct {
	payload []byte
	ok      bool
	// FailWrites makes every Write fail.
	FailWrites error
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Read(context.Context) ([]byte, bool, error) {
	if !m.ok {
		return nil, false, nil
	}
	out := make([]byte, len(m.payload))
	copy(out, m.payload)
	return out, true, nil
}

func (m *Memory) Write(_ context.Context, payload []byte) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.payload = append(m.payload[:0], payload...)
	m.ok = true
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.payload = nil
	m.ok = false
	return nil
}

func (m *Memory) Driver() string { return "memory" }
