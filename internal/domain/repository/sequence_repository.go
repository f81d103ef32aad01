package repository

import "context"

// SequenceRepository define el puerto del valor actual de cada namespace de
// consecutivos. El contador de aplicación implementa next/peek/reset encima
// de estas dos operaciones.
type SequenceRepository interface {
	// Current devuelve el valor almacenado y si el namespace ya existe.
	Current(ctx context.Context, namespace string) (value int64, exists bool, err error)
	// CompareAndSwap intenta current: expected -> next. Con exists=false en la
	// lectura previa se pasa expected=0 y la implementación crea el namespace
	// solo si nadie lo creó antes. Devuelve false si el valor ya no es expected.
	CompareAndSwap(ctx context.Context, namespace string, expected, next int64) (bool, error)
	// Reset fija el valor sin condición (operación administrativa).
	Reset(ctx context.Context, namespace string, value int64) error
}
