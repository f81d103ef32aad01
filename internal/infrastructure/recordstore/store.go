package recordstore

import "context"

// El record store es un almacén de documentos JSON por colección nombrada.
// Toda la persistencia del sistema pasa por esta interfaz; las dos primitivas
// con semántica fuerte son Create (falla si el ID ya existe) y
// ConditionalUpdate (escritura de un campo confirmada solo si su valor
// almacenado sigue siendo el esperado), que es el sustrato de los
// consecutivos y de los deltas de stock.

// Document es un documento crudo con su ID dentro de la colección.
type Document struct {
	ID   string
	Data []byte // JSON
}

// ChangeEvent notifica una escritura en una colección suscrita.
type ChangeEvent struct {
	Collection string
	ID         string
	Data       []byte // estado del documento tras la escritura
}

// Store es el contrato del record store.
type Store interface {
	// Get devuelve el documento o domain.ErrNotFound.
	Get(ctx context.Context, collection, id string) ([]byte, error)
	// GetAll devuelve todos los documentos de la colección (puede ser vacía).
	GetAll(ctx context.Context, collection string) ([]Document, error)
	// Create inserta; devuelve domain.ErrConflict si el ID ya existe.
	Create(ctx context.Context, collection, id string, doc []byte) error
	// Update aplica patch (objeto JSON) sobre el documento: cada campo de
	// primer nivel presente en patch reemplaza al almacenado y el resto queda
	// intacto, en una sola escritura atómica. Un escritor que no incluye un
	// campo en su patch nunca puede pisar lo que otro escribió en ese campo.
	// Devuelve domain.ErrNotFound si el documento no existe.
	Update(ctx context.Context, collection, id string, patch []byte) error
	// ConditionalUpdate escribe el campo de primer nivel `field` con next solo
	// si su valor almacenado es exactamente expected (ambos valores JSON).
	// Devuelve committed=false, sin error, cuando la condición no se cumple.
	ConditionalUpdate(ctx context.Context, collection, id, field string, expected, next []byte) (bool, error)
	// Subscribe registra un callback para cada escritura en la colección y
	// devuelve la función para cancelar la suscripción.
	Subscribe(collection string, fn func(ChangeEvent)) (func(), error)
}
