package locker

import "context"

// Locker serializa secciones críticas por clave (p.ej. check-and-write por usuario).
// Lock bloquea hasta obtener el lock o hasta que ctx se cancele.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
