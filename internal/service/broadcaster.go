package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToObservers(sessionID string, msgType string, payload interface{})
}
