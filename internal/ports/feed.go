package ports

import (
	"context"

	"github.com/mitegun/snipebot/internal/domain"
)

// FeedSource obtiene los posts recientes de una cuenta social.
type FeedSource interface {
	// FetchRecent devuelve hasta count posts recientes de la cuenta dada.
	// Un fallo del feed no es fatal: el caller degrada a lista vacía y loguea.
	FetchRecent(ctx context.Context, account string, count int) ([]domain.TextItem, error)
}
