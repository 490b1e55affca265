package server

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Options configures the HTTP listener
type Options struct {
	Address            string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	MaxRequestBodySize int
}

// DefaultOptions returns listener settings suitable for a local pricing desk
func DefaultOptions() Options {
	return Options{
		Address:            ":8080",
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       90 * time.Second,
		MaxRequestBodySize: 16 << 20,
	}
}

func (h *Handler) newServer(opts Options) *fasthttp.Server {
	return &fasthttp.Server{
		Handler:            h.Handle,
		Name:               "sspricer",
		ReadTimeout:        opts.ReadTimeout,
		WriteTimeout:       opts.WriteTimeout,
		MaxRequestBodySize: opts.MaxRequestBodySize,
	}
}

// ListenAndServe serves h on opts.Address until ctx is cancelled, then
// shuts down gracefully.
func ListenAndServe(ctx context.Context, h *Handler, opts Options) error {
	ln, err := net.Listen("tcp4", opts.Address)
	if err != nil {
		return err
	}
	return Serve(ctx, ln, h, opts)
}

// Serve is ListenAndServe on an existing listener
func Serve(ctx context.Context, ln net.Listener, h *Handler, opts Options) error {
	srv := h.newServer(opts)
	h.logger.Info("pricing server listening",
		zap.String("op", "server.Serve"),
		zap.String("address", ln.Addr().String()),
		zap.String("version", h.version),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		h.logger.Info("pricing server shutting down", zap.String("op", "server.Serve"))
		if err := srv.Shutdown(); err != nil && !errors.Is(err, net.ErrClosed) {
			return err
		}
		// Serve may not have registered ln before Shutdown ran
		_ = ln.Close()
		return <-errCh
	}
}
