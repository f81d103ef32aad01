package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// Colección de consecutivos. Cada namespace es un documento {"current": N}.
const CollectionSequences = "sequences"

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo implementa SequenceRepository sobre la escritura condicional
// del record store.
type SequenceRepo struct {
	store Store
}

// NewSequenceRepository construye el adaptador.
func NewSequenceRepository(store Store) *SequenceRepo {
	return &SequenceRepo{store: store}
}

type sequenceDoc struct {
	Current int64 `json:"current"`
}

func (r *SequenceRepo) Current(ctx context.Context, namespace string) (int64, bool, error) {
	raw, err := r.store.Get(ctx, CollectionSequences, namespace)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	var doc sequenceDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return 0, false, err
	}
	return doc.Current, true, nil
}

// CompareAndSwap crea el namespace en la primera emisión: si el documento no
// existe, Create compite por él (Create falla si otro lo creó primero, lo que
// cuenta como CAS perdido y el contador reintenta).
func (r *SequenceRepo) CompareAndSwap(ctx context.Context, namespace string, expected, next int64) (bool, error) {
	committed, err := r.store.ConditionalUpdate(ctx, CollectionSequences, namespace, "current",
		[]byte(strconv.FormatInt(expected, 10)), []byte(strconv.FormatInt(next, 10)))
	if err == nil {
		return committed, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}
	doc, _ := json.Marshal(sequenceDoc{Current: next})
	if err := r.store.Create(ctx, CollectionSequences, namespace, doc); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *SequenceRepo) Reset(ctx context.Context, namespace string, value int64) error {
	doc, _ := json.Marshal(sequenceDoc{Current: value})
	err := r.store.Update(ctx, CollectionSequences, namespace, doc)
	if errors.Is(err, domain.ErrNotFound) {
		return r.store.Create(ctx, CollectionSequences, namespace, doc)
	}
	return err
}
