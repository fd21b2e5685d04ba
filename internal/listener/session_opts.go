package listener

type ConnectionManagerOpt func(*ConnectionManager)

// WithDelivery routes session output through d instead of direct channels.
func WithDelivery(d Delivery) ConnectionManagerOpt {
	return func(m *ConnectionManager) {
		m.delivery = d
	}
}

// WithWidth sets the wrap width for line-oriented transports.
func WithWidth(width int) ConnectionManagerOpt {
	return func(m *ConnectionManager) {
		m.width = width
	}
}
