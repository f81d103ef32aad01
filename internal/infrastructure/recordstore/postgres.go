package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/pos-core/internal/domain"
)

var _ Store = (*PostgresStore)(nil)

// Canal de NOTIFY para cambios de documentos. El payload lleva colección e
// ID (no el documento: NOTIFY limita el tamaño); el listener relee.
const notifyChannel = "pos_documents"

// PostgresStore implementa el record store sobre una tabla de documentos
// jsonb. ConditionalUpdate es un UPDATE condicionado por el valor actual del
// campo; Subscribe usa LISTEN/NOTIFY con una conexión dedicada.
//
// Esquema esperado:
//
//	CREATE TABLE IF NOT EXISTS documents (
//	    collection text NOT NULL,
//	    id         text NOT NULL,
//	    doc        jsonb NOT NULL,
//	    updated_at timestamptz NOT NULL DEFAULT now(),
//	    PRIMARY KEY (collection, id)
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
	log  zerolog.Logger

	mu           sync.Mutex
	subscribers  map[string]map[int]func(ChangeEvent)
	nextSubID    int
	listening    bool
	cancelListen context.CancelFunc
}

// NewPostgresStore construye el adaptador. Crea la tabla si no existe.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) (*PostgresStore, error) {
	s := &PostgresStore{
		pool:        pool,
		log:         log,
		subscribers: make(map[string]map[int]func(ChangeEvent)),
	}
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			collection text NOT NULL,
			id         text NOT NULL,
			doc        jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now(),
			PRIMARY KEY (collection, id)
		)`)
	if err != nil {
		return nil, fmt.Errorf("crear tabla documents: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

func (s *PostgresStore) GetAll(ctx context.Context, collection string) ([]Document, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, doc FROM documents WHERE collection = $1`, collection)
	if err != nil {
		return nil, fmt.Errorf("get all %s: %w", collection, err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Create(ctx context.Context, collection, id string, doc []byte) error {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO documents (collection, id, doc)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO NOTHING`,
		collection, id, doc)
	if err != nil {
		return fmt.Errorf("create %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	s.publish(ctx, collection, id)
	return nil
}

// Update mezcla el patch con el operador || de jsonb, en un solo UPDATE: la
// mezcla es atómica en el servidor y no pisa campos ausentes en el patch.
func (s *PostgresStore) Update(ctx context.Context, collection, id string, patch []byte) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE documents SET doc = doc || $3::jsonb, updated_at = now()
		WHERE collection = $1 AND id = $2`,
		collection, id, patch)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	s.publish(ctx, collection, id)
	return nil
}

// ConditionalUpdate delega la comparación al servidor: el UPDATE solo afecta
// la fila si el valor jsonb del campo es exactamente el esperado, con lo que
// la condición y la escritura son un solo paso atómico.
func (s *PostgresStore) ConditionalUpdate(ctx context.Context, collection, id, field string, expected, next []byte) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE documents
		SET doc = jsonb_set(doc, ARRAY[$3], $4::jsonb), updated_at = now()
		WHERE collection = $1 AND id = $2 AND doc->$3 = $5::jsonb`,
		collection, id, field, next, expected)
	if err != nil {
		return false, fmt.Errorf("conditional update %s/%s.%s: %w", collection, id, field, err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguir documento inexistente de condición no cumplida.
		var exists bool
		if err := s.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM documents WHERE collection = $1 AND id = $2)`,
			collection, id,
		).Scan(&exists); err != nil {
			return false, err
		}
		if !exists {
			return false, domain.ErrNotFound
		}
		return false, nil
	}
	s.publish(ctx, collection, id)
	return true, nil
}

func (s *PostgresStore) Subscribe(collection string, fn func(ChangeEvent)) (func(), error) {
	s.mu.Lock()
	subs, ok := s.subscribers[collection]
	if !ok {
		subs = make(map[int]func(ChangeEvent))
		s.subscribers[collection] = subs
	}
	id := s.nextSubID
	s.nextSubID++
	subs[id] = fn
	startListener := !s.listening
	if startListener {
		s.listening = true
	}
	s.mu.Unlock()

	if startListener {
		ctx, cancel := context.WithCancel(context.Background())
		s.mu.Lock()
		s.cancelListen = cancel
		s.mu.Unlock()
		go s.listen(ctx)
	}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers[collection], id)
	}, nil
}

// Close detiene el listener de notificaciones.
func (s *PostgresStore) Close() {
	s.mu.Lock()
	cancel := s.cancelListen
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

type notifyPayload struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
}

func (s *PostgresStore) publish(ctx context.Context, collection, id string) {
	payload, _ := json.Marshal(notifyPayload{Collection: collection, ID: id})
	if _, err := s.pool.Exec(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, string(payload)); err != nil {
		s.log.Warn().Err(err).Str("collection", collection).Str("id", id).Msg("pg_notify falló")
	}
}

// listen mantiene una conexión dedicada en LISTEN y reparte eventos a los
// suscriptores. Si la conexión cae, reintenta hasta que se cancele el ctx.
func (s *PostgresStore) listen(ctx context.Context) {
	for ctx.Err() == nil {
		if err := s.listenOnce(ctx); err != nil && ctx.Err() == nil {
			s.log.Warn().Err(err).Msg("listener de documentos caído, reintentando")
		}
	}
}

func (s *PostgresStore) listenOnce(ctx context.Context) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `LISTEN `+notifyChannel); err != nil {
		return err
	}
	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		var payload notifyPayload
		if err := json.Unmarshal([]byte(notification.Payload), &payload); err != nil {
			continue
		}
		s.dispatch(ctx, payload)
	}
}

func (s *PostgresStore) dispatch(ctx context.Context, payload notifyPayload) {
	s.mu.Lock()
	fns := make([]func(ChangeEvent), 0, len(s.subscribers[payload.Collection]))
	for _, fn := range s.subscribers[payload.Collection] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	if len(fns) == 0 {
		return
	}
	doc, err := s.Get(ctx, payload.Collection, payload.ID)
	if err != nil {
		return
	}
	ev := ChangeEvent{Collection: payload.Collection, ID: payload.ID, Data: doc}
	for _, fn := range fns {
		fn(ev)
	}
}
