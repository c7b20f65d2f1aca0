package http

import (
	"bufio"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/heatguard/backend/internal/service"
)

const streamKeepAlive = 15 * time.Second

// deadliner is the part of net.Conn the stream needs to stay open past the
// server write timeout, which fasthttp applies once per response.
type deadliner interface {
	SetWriteDeadline(t time.Time) error
}

// eventStream writes snapshots as server-sent events
type eventStream struct {
	encode    func(interface{}) ([]byte, error)
	keepAlive time.Duration
	conn      deadliner
	timeout   time.Duration
}

func newEventStream(c *fiber.Ctx) eventStream {
	cfg := c.App().Config()
	s := eventStream{
		encode:    cfg.JSONEncoder,
		keepAlive: streamKeepAlive,
		conn:      c.Context().Conn(),
		timeout:   cfg.WriteTimeout,
	}
	// an idle stream must write before the deadline runs out
	if s.timeout > 0 && s.keepAlive >= s.timeout {
		s.keepAlive = s.timeout / 2
	}
	return s
}

// StreamSession pushes every published snapshot as a server-sent event until
// the client disconnects or the session closes.
func (h *Handler) StreamSession(c *fiber.Ctx) error {
	id := c.Params("id")
	updates, unsubscribe, err := h.sessions.Subscribe(id)
	if err != nil {
		return statusError(err, "Failed to subscribe to session")
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	stream := newEventStream(c)
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()
		if err := stream.run(w, updates); err != nil {
			log.Printf("Session %s stream ended: %v", id, err)
		}
	})
	return nil
}

// run writes snapshots as "snapshot" events with the version as event id.
// It returns nil when the channel closes and the flush error when the client is gone.
func (s eventStream) run(w *bufio.Writer, updates <-chan service.Snapshot) error {
	ticker := time.NewTicker(s.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			data, err := s.encode(snap)
			if err != nil {
				return fmt.Errorf("stream: failed to encode snapshot: %w", err)
			}
			fmt.Fprintf(w, "id: %d\nevent: snapshot\ndata: %s\n\n", snap.Version, data)
		case <-ticker.C:
			fmt.Fprint(w, ": keepalive\n\n")
		}
		if err := s.extendDeadline(); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
}

func (s eventStream) extendDeadline() error {
	if s.conn == nil || s.timeout <= 0 {
		return nil
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.timeout)); err != nil {
		return fmt.Errorf("stream: failed to extend write deadline: %w", err)
	}
	return nil
}
