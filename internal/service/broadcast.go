package service

// Notifier is told when a hosted game is deleted so that live connections
// to it can be closed. Implemented by the WebSocket hub.
type Notifier interface {
	GameClosed(gameID string)
}

// NoopNotifier is a no-op implementation for testing or when WS is disabled.
type NoopNotifier struct{}

func (NoopNotifier) GameClosed(string) {}
