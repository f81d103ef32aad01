package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/jhoicas/pos-core/internal/domain"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore es la implementación en memoria del record store. Se usa en
// tests y en modo desarrollo. Un solo mutex protege todas las colecciones;
// los callbacks de suscripción se invocan fuera del lock.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string][]byte
	subscribers map[string]map[int]func(ChangeEvent)
	nextSubID   int
}

// NewMemoryStore construye el store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string][]byte),
		subscribers: make(map[string]map[int]func(ChangeEvent)),
	}
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), doc...), nil
}

func (s *MemoryStore) GetAll(_ context.Context, collection string) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collections[collection]
	out := make([]Document, 0, len(col))
	for id, doc := range col {
		out = append(out, Document{ID: id, Data: append([]byte(nil), doc...)})
	}
	return out, nil
}

func (s *MemoryStore) Create(_ context.Context, collection, id string, doc []byte) error {
	s.mu.Lock()
	col, ok := s.collections[collection]
	if !ok {
		col = make(map[string][]byte)
		s.collections[collection] = col
	}
	if _, exists := col[id]; exists {
		s.mu.Unlock()
		return domain.ErrConflict
	}
	col[id] = append([]byte(nil), doc...)
	fns := s.snapshotSubscribers(collection)
	s.mu.Unlock()

	s.notify(fns, ChangeEvent{Collection: collection, ID: id, Data: doc})
	return nil
}

// Update mezcla el patch sobre el documento bajo el mismo lock que
// ConditionalUpdate, de modo que un patch sin el campo "stock" jamás revierte
// un swap de stock concurrente.
func (s *MemoryStore) Update(_ context.Context, collection, id string, patch []byte) error {
	s.mu.Lock()
	col := s.collections[collection]
	raw, exists := col[id]
	if !exists {
		s.mu.Unlock()
		return domain.ErrNotFound
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.mu.Unlock()
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil {
		s.mu.Unlock()
		return err
	}
	for k, v := range fields {
		doc[k] = v
	}
	updated, err := json.Marshal(doc)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	col[id] = updated
	fns := s.snapshotSubscribers(collection)
	s.mu.Unlock()

	s.notify(fns, ChangeEvent{Collection: collection, ID: id, Data: updated})
	return nil
}

// ConditionalUpdate compara el campo como valor JSON (no como bytes crudos,
// para que "5" y " 5" o claves reordenadas no rompan la igualdad).
func (s *MemoryStore) ConditionalUpdate(_ context.Context, collection, id, field string, expected, next []byte) (bool, error) {
	s.mu.Lock()
	col := s.collections[collection]
	raw, exists := col[id]
	if !exists {
		s.mu.Unlock()
		return false, domain.ErrNotFound
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.mu.Unlock()
		return false, err
	}
	current, ok := doc[field]
	if !ok || !jsonEqual(current, expected) {
		s.mu.Unlock()
		return false, nil
	}
	doc[field] = json.RawMessage(next)
	updated, err := json.Marshal(doc)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	col[id] = updated
	fns := s.snapshotSubscribers(collection)
	s.mu.Unlock()

	s.notify(fns, ChangeEvent{Collection: collection, ID: id, Data: updated})
	return true, nil
}

func (s *MemoryStore) Subscribe(collection string, fn func(ChangeEvent)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs, ok := s.subscribers[collection]
	if !ok {
		subs = make(map[int]func(ChangeEvent))
		s.subscribers[collection] = subs
	}
	id := s.nextSubID
	s.nextSubID++
	subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers[collection], id)
	}, nil
}

func (s *MemoryStore) snapshotSubscribers(collection string) []func(ChangeEvent) {
	subs := s.subscribers[collection]
	fns := make([]func(ChangeEvent), 0, len(subs))
	for _, fn := range subs {
		fns = append(fns, fn)
	}
	return fns
}

func (s *MemoryStore) notify(fns []func(ChangeEvent), ev ChangeEvent) {
	for _, fn := range fns {
		fn(ev)
	}
}

// jsonEqual compara dos valores JSON por forma canónica.
func jsonEqual(a, b []byte) bool {
	var va, vb any
	if err := json.Unmarshal(a, &va); err != nil {
		return bytes.Equal(a, b)
	}
	if err := json.Unmarshal(b, &vb); err != nil {
		return false
	}
	ca, errA := json.Marshal(va)
	cb, errB := json.Marshal(vb)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ca, cb)
}
