package sequence

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// Intentos de escritura condicional antes de declarar el consecutivo no
// disponible. El caller puede reintentar la operación completa sin riesgo:
// nada se persiste antes de confirmar el número.
const maxAttempts = 10

// Counter emite consecutivos por namespace, únicos bajo callers concurrentes.
// La emisión es un ciclo leer-calcular-escribir condicional: la escritura solo
// se confirma si el valor almacenado sigue siendo el leído, y ante conflicto
// se relee y reintenta. Dos checkouts simultáneos nunca reciben el mismo
// número.
type Counter struct {
	repo       repository.SequenceRepository
	namespaces map[string]entity.SequenceNamespace
}

// NewCounter construye el contador con las definiciones de namespace.
func NewCounter(repo repository.SequenceRepository, namespaces map[string]entity.SequenceNamespace) *Counter {
	return &Counter{repo: repo, namespaces: namespaces}
}

// Next emite el siguiente número del namespace, ya formateado. El candidato es
// max(actual, piso)+1; si supera el techo, se reinicia al piso+1. Falla con
// ErrSequenceUnavailable si la escritura condicional no se confirma tras los
// reintentos; en ese caso NINGÚN número quedó emitido.
func (c *Counter) Next(ctx context.Context, namespace string) (string, error) {
	ns, ok := c.namespaces[namespace]
	if !ok {
		return "", fmt.Errorf("namespace de consecutivo desconocido: %s", namespace)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		current, exists, err := c.repo.Current(ctx, namespace)
		if err != nil {
			return "", err
		}
		if !exists {
			current = 0
		}

		candidate := current
		if candidate < ns.Floor {
			candidate = ns.Floor
		}
		candidate++
		if ns.Ceiling > 0 && candidate > ns.Ceiling {
			// Reinicio al piso: el primer número tras el techo coincide con el
			// primero emitido en la vida del namespace.
			candidate = ns.Floor + 1
		}

		committed, err := c.repo.CompareAndSwap(ctx, namespace, current, candidate)
		if err != nil {
			return "", err
		}
		if committed {
			return ns.Format(candidate), nil
		}
	}
	return "", domain.ErrSequenceUnavailable
}

// Peek devuelve el valor actual sin emitir.
func (c *Counter) Peek(ctx context.Context, namespace string) (int64, error) {
	if _, ok := c.namespaces[namespace]; !ok {
		return 0, fmt.Errorf("namespace de consecutivo desconocido: %s", namespace)
	}
	value, _, err := c.repo.Current(ctx, namespace)
	return value, err
}

// Reset fija el valor del namespace (acción administrativa explícita).
func (c *Counter) Reset(ctx context.Context, namespace string, value int64) error {
	if _, ok := c.namespaces[namespace]; !ok {
		return fmt.Errorf("namespace de consecutivo desconocido: %s", namespace)
	}
	return c.repo.Reset(ctx, namespace, value)
}

// Namespaces devuelve las definiciones configuradas (para la capa HTTP).
func (c *Counter) Namespaces() map[string]entity.SequenceNamespace {
	return c.namespaces
}
