// Package watchhub fans live score snapshots for a single foosball table out
// to any number of websocket watchers.
package watchhub

import (
	"github.com/gorilla/websocket"
)

type Hub struct {
	TableID   int64
	watchers  map[*Watcher]bool
	broadcast chan []byte
	join      chan *Watcher
	leave     chan *Watcher
	errors    chan error
	done      chan struct{}
}

func NewHub(tableID int64) *Hub {
	return &Hub{
		TableID:   tableID,
		watchers:  make(map[*Watcher]bool),
		broadcast: make(chan []byte, 8),
		join:      make(chan *Watcher),
		leave:     make(chan *Watcher),
		errors:    make(chan error),
		done:      make(chan struct{}),
	}
}

// Join registers a connection as a watcher. When the hub has already shut
// down the connection is closed and nil is returned.
func (h *Hub) Join(conn *websocket.Conn) *Watcher {
	watcher := newWatcher(h, conn)
	select {
	case h.join <- watcher:
		go watcher.WriteEvents()
		return watcher
	case <-h.done:
		conn.Close()
		return nil
	}
}

// Send queues a snapshot for every watcher. A no-op once the hub has shut
// down, so callers never block on an ended game.
func (h *Hub) Send(msg []byte) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

// Stop shuts the hub down, handing err to watchers as the close reason.
func (h *Hub) Stop(err error) {
	select {
	case h.errors <- err:
	case <-h.done:
	}
}

// Done closes when the hub has shut down and stopped serving its channels.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) Run() {
	defer close(h.done)
	for {
		select {
		case watcher := <-h.join:
			h.watchers[watcher] = true
		case watcher := <-h.leave:
			if _, ok := h.watchers[watcher]; ok {
				delete(h.watchers, watcher)
				close(watcher.Receive)
			}
		case msg := <-h.broadcast:
			h.toAllWatchers(msg)
		case err := <-h.errors:
			for w := range h.watchers {
				// A watcher mid-write misses this send and exits
				// through done instead.
				select {
				case w.Close <- err:
				default:
				}
			}
			return
		}
	}
}

func (h *Hub) toAllWatchers(msg []byte) {
	for watcher := range h.watchers {
		select {
		case watcher.Receive <- msg:
		default:
			close(watcher.Receive)
			delete(h.watchers, watcher)
		}
	}
}
