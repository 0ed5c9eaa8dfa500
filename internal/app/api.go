package app

import (
	"context"

	"ctxmap/internal/client"
	"ctxmap/internal/types"
)

// SessionAPI is the slice of the OpenCode client the UI depends on.
type SessionAPI interface {
	ListSessions(ctx context.Context) ([]types.Session, error)
	GetSession(ctx context.Context, sessionID string) (*types.Session, error)
	ListMessages(ctx context.Context, sessionID string) ([]types.Message, error)
}

var _ SessionAPI = (*client.Client)(nil)
