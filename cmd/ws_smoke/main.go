package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/ws"
)

// ws_smoke subscribes to /ws, creates and deletes a todo through the API and
// prints the change events received. Requires a running server.
func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	base := fmt.Sprintf("127.0.0.1:%s", port)

	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.Dial("ws://"+base+"/ws", nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var hello struct {
		Type string `json:"type"`
	}
	if err := conn.ReadJSON(&hello); err != nil || hello.Type != ws.MsgReady {
		log.Fatalf("expected %q message, got %q (err=%v)", ws.MsgReady, hello.Type, err)
	}

	body, _ := json.Marshal(map[string]string{"title": "ws smoke", "description": "created by ws_smoke"})
	resp, err := http.Post("http://"+base+"/api/todos", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("create: %v", err)
	}
	var created struct {
		Todo domain.TodoResponse `json:"todo"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("create: unexpected status %d", resp.StatusCode)
	}

	readEvent(conn, domain.EventTodoCreated)

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("http://%s/api/todos/%d", base, created.Todo.ID), nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("delete: %v", err)
	}
	resp.Body.Close()

	readEvent(conn, domain.EventTodoDeleted)

	log.Println("smoke test finished")
}

func readEvent(conn *websocket.Conn, want domain.EventType) {
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var ev domain.TodoEvent
	if err := conn.ReadJSON(&ev); err != nil {
		log.Fatalf("read %s: %v", want, err)
	}
	if ev.Type != want {
		log.Fatalf("expected %s, got %s", want, ev.Type)
	}
	log.Printf("got %s for todo %d", ev.Type, ev.TodoID)
}
