package ws

const (
	// client - server
	MsgPing = "ping"

	// server - client
	MsgReady = "ready"
	MsgPong  = "pong"
)

// todo change events are sent as domain.TodoEvent, whose "type" is one of
// the domain.EventTodo* values
