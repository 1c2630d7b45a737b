package ports

import (
	"context"

	"github.com/bnema/plza-save-editor/internal/domain"
)

type SessionStore interface {
	Put(ctx context.Context, container *domain.Container) (domain.SessionRef, error)
	Get(ctx context.Context, ref domain.SessionRef) (*domain.Container, error)
	Replace(ctx context.Context, ref domain.SessionRef, container *domain.Container) error
	Close(ctx context.Context) error
}
