package todos

import (
	"context"

	"github.com/ramvik/taskhub/pkg/errors"
	"github.com/ramvik/taskhub/pkg/logger"
)

// ErrNotFound is returned by Get, Update and Delete when no record
// exists for the id. Check with errors.Is.
var ErrNotFound = errors.Error("todo not found")

// Repo is the storage capability behind the /todos routes. Backends are
// interchangeable and chosen once, at composition time.
type Repo interface {
	List(ctx context.Context) ([]Todo, error)
	Get(ctx context.Context, id int64) (Todo, error)
	Create(ctx context.Context, spec CreateTodo) (Todo, error)
	Update(ctx context.Context, id int64, patch UpdateTodo) (Todo, error)
	Delete(ctx context.Context, id int64) (Todo, error)

	Close(ctx context.Context) error
}

func New(ctx context.Context, log logger.Logger, cfg Config) (Repo, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendPostgres:
		return newPostgres(ctx, cfg.Postgres, log)
	case BackendMongo:
		return newMongo(ctx, cfg.Mongo, log)
	default:
		return nil, errors.Errorf("unknown todos backend %q", cfg.Backend)
	}
}
