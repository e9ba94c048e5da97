package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/knix24/sleeper-pixel-performance/controller"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

const shutdownTimeout = 10 * time.Second

//go:embed templates
var templates embed.FS

type Server struct {
	server *http.Server
	log    *logrus.Logger
}

func NewServer(port int, ctrl controller.C, log *logrus.Logger) (*Server, error) {
	render := newRender()
	router := getRouter(ctrl, render, log)

	s := &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
	return s, nil
}

// Run serves requests until ctx is done, then gives in-flight requests up to
// shutdownTimeout to finish.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.log.Infof("web server is listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("error with web server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down web server: %w", err)
	}
	return nil
}

func newRender() *render.Render {
	return render.New(render.Options{
		Directory: "templates",
		Layout:    "layout",
		FileSystem: &render.EmbedFileSystem{
			FS: templates,
		},
	})
}
