package ports

import (
	"context"

	"github.com/mitegun/snipebot/internal/domain"
)

// Notifier presenta al usuario las posiciones producidas por un ciclo.
type Notifier interface {
	// Notify muestra las posiciones del ciclo.
	// En la implementación de consola, imprime una tabla formateada.
	Notify(ctx context.Context, positions []domain.Position) error
}
