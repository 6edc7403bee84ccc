package watchhub

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialTestHub(t *testing.T, hub *Hub) (*websocket.Conn, chan *Watcher) {
	t.Helper()

	joined := make(chan *Watcher, 1)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		joined <- hub.Join(conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { client.Close() })

	return client, joined
}

func TestStopReleasesWatchers(t *testing.T) {
	hub := NewHub(1)
	go hub.Run()

	client, joined := dialTestHub(t, hub)

	select {
	case w := <-joined:
		if w == nil {
			t.Fatal("join refused before shutdown")
		}
	case <-time.After(time.Second):
		t.Fatal("watcher never joined the hub")
	}

	hub.Stop(errors.New("game ended"))

	select {
	case <-hub.Done():
	case <-time.After(time.Second):
		t.Fatal("hub never shut down")
	}

	// The client must get a close frame rather than a silently dropped
	// connection.
	client.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := client.ReadMessage()
	var closeErr *websocket.CloseError
	if !errors.As(err, &closeErr) {
		t.Fatalf("expected a close frame; got %v", err)
	}

	// No watcher may be left blocked handing itself back after shutdown.
	select {
	case w := <-hub.leave:
		t.Fatalf("watcher %p still blocked on leave after shutdown", w)
	case <-time.After(200 * time.Millisecond):
	}

	// Late broadcasts on an ended game must not block either.
	done := make(chan struct{})
	go func() {
		hub.Send([]byte(`{}`))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Send blocked after shutdown")
	}
}

func TestJoinAfterStop(t *testing.T) {
	hub := NewHub(2)
	go hub.Run()
	hub.Stop(errors.New("game ended"))

	select {
	case <-hub.Done():
	case <-time.After(time.Second):
		t.Fatal("hub never shut down")
	}

	client, joined := dialTestHub(t, hub)

	select {
	case w := <-joined:
		if w != nil {
			t.Fatal("joined a hub that had already shut down")
		}
	case <-time.After(time.Second):
		t.Fatal("Join blocked on a stopped hub")
	}

	// Join closes the refused connection, so the client read errors out.
	client.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := client.ReadMessage()
	if err == nil {
		t.Fatal("expected the refused connection to be closed")
	}
}
