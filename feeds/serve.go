package feeds

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/reusee/turing/logs"
)

// Serve exposes feed on addr until ctx is done.
type Serve func(ctx context.Context, addr string, feed *Feed) (net.Addr, error)

func (Module) Serve(
	logger logs.Logger,
) Serve {
	return func(ctx context.Context, addr string, feed *Feed) (net.Addr, error) {
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return nil, err
		}
		server := &http.Server{
			Handler:           feed.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			<-ctx.Done()
			feed.Close()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
		go func() {
			if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.ErrorContext(ctx, "feed server", "error", err)
			}
		}()
		logger.InfoContext(ctx, "feed listening", "addr", ln.Addr().String())
		return ln.Addr(), nil
	}
}
