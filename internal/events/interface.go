package events

// Publisher publishes back-office events to the message bus and decodes
// incoming push payloads.
type Publisher interface {
	SendMessage(topic EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
}
