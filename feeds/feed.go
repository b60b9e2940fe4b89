package feeds

import (
	"fmt"
	"net/http"
	"slices"
	"sync"

	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/machines"
	"github.com/reusee/turing/nets"
	"github.com/reusee/turing/syncs"
	"github.com/reusee/turing/tapes"
	"golang.org/x/net/websocket"
)

const MaxClients = 8

// Feed records machine events in order and streams them to WebSocket clients.
// Every client receives the whole log from the first event, in order.
type Feed struct {
	mu       sync.Mutex
	cond     *sync.Cond
	messages []Message
	closed   bool

	clients     syncs.Semaphore
	isLocalAddr nets.IsLocalAddr
	logger      logs.Logger
}

var _ machines.Observer = new(Feed)

type NewFeed func() *Feed

func (Module) NewFeed(
	isLocalAddr nets.IsLocalAddr,
	logger logs.Logger,
) NewFeed {
	return func() *Feed {
		return newFeed(MaxClients, isLocalAddr, logger)
	}
}

func newFeed(maxClients int, isLocalAddr nets.IsLocalAddr, logger logs.Logger) *Feed {
	f := &Feed{
		clients:     syncs.NewSemaphore(maxClients),
		isLocalAddr: isLocalAddr,
		logger:      logger,
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

func (f *Feed) publish(event machines.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	msg := messageOf(event)
	msg.Seq = len(f.messages) + 1
	f.messages = append(f.messages, msg)
	f.cond.Broadcast()
}

func (f *Feed) OnCellWritten(index int, value tapes.Cell) {
	f.publish(machines.Event{
		Kind:  machines.WriteEvent,
		Index: index,
		Value: value,
	})
}

func (f *Feed) OnHeadMoved(index int) {
	f.publish(machines.Event{
		Kind:  machines.MoveEvent,
		Index: index,
	})
}

func (f *Feed) OnHalted(outcome machines.Outcome) {
	f.publish(machines.Event{
		Kind:    machines.HaltEvent,
		Outcome: outcome,
	})
}

func (f *Feed) Messages() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.messages)
}

// Close ends every stream after its pending messages.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.cond.Broadcast()
}

// next blocks until there are messages past from, or the feed is closed and drained.
// It returns false at once when the client is gone.
func (f *Feed) next(from int, gone *bool) ([]Message, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for from >= len(f.messages) && !f.closed && !*gone {
		f.cond.Wait()
	}
	if *gone || from >= len(f.messages) {
		return nil, false
	}
	return slices.Clone(f.messages[from:]), true
}

// watch reads conn until it fails, then marks the client gone and wakes its stream.
func (f *Feed) watch(conn *websocket.Conn, gone *bool) {
	buf := make([]byte, 512)
	for {
		if _, err := conn.Read(buf); err != nil {
			break
		}
	}
	f.mu.Lock()
	*gone = true
	f.cond.Broadcast()
	f.mu.Unlock()
}

func (f *Feed) Handler() http.Handler {
	return websocket.Server{
		Handshake: func(config *websocket.Config, req *http.Request) error {
			local, err := f.isLocalAddr(req.RemoteAddr)
			if err != nil {
				return err
			}
			if !local {
				f.logger.Warn("feed client refused", "remote", req.RemoteAddr)
				return fmt.Errorf("non-local client: %s", req.RemoteAddr)
			}
			return nil
		},
		Handler: f.serve,
	}
}

func (f *Feed) serve(conn *websocket.Conn) {
	defer conn.Close()
	remote := conn.Request().RemoteAddr

	if !f.clients.TryAcquire() {
		f.logger.Warn("feed client limit reached", "remote", remote)
		return
	}
	defer f.clients.Release()

	f.logger.Info("feed client connected", "remote", remote)
	// guarded by f.mu
	gone := false
	go f.watch(conn, &gone)

	from := 0
	for {
		batch, ok := f.next(from, &gone)
		if !ok {
			f.logger.Info("feed client done", "remote", remote)
			return
		}
		for _, msg := range batch {
			if err := websocket.JSON.Send(conn, msg); err != nil {
				f.logger.Info("feed client gone", "remote", remote, "error", err)
				return
			}
		}
		from += len(batch)
	}
}
