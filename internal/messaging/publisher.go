package messaging

// EventPublisher routes engine events onto the embedded NATS server. It is
// the event.Publisher both engines are handed; the transport and analytics
// layers subscribe to the region and session subjects on the same server.
type EventPublisher struct {
	server *NatsServer
}

func NewEventPublisher(server *NatsServer) *EventPublisher {
	return &EventPublisher{server: server}
}

func (p *EventPublisher) Publish(subject string, data []byte) error {
	return p.server.Publish(subject, data)
}
