package listener

import (
	"context"
	"io"
	"log/slog"

	"github.com/duskhaven/go-dusk/internal/console"
)

type ConnectionManager struct {
	handler *console.Handler
}

func NewConnectionManager(h *console.Handler) *ConnectionManager {
	return &ConnectionManager{
		handler: h,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.handler.Run(ctx, conn); err != nil {
		slog.WarnContext(ctx, "console session", "error", err)
	}
}
