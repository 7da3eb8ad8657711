package stream

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// Path is where the hub is mounted by Serve.
const Path = "/events"

const shutdownTimeout = 2 * time.Second

// Mux returns a handler serving the hub at Path.
func Mux(h *Hub) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(Path, h)
	return mux
}

// Serve serves the hub on ln until ctx is done, then closes the hub and
// shuts the server down. It returns nil after a clean shutdown.
func Serve(ctx context.Context, ln net.Listener, h *Hub) error {
	srv := &http.Server{
		Handler:           Mux(h),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		h.Close()
		return err
	case <-ctx.Done():
	}

	h.Close()
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
