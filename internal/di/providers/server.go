package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/shelfwiseapp/shelfwise-server/internal/api"
	"github.com/shelfwiseapp/shelfwise-server/internal/config"
	"github.com/shelfwiseapp/shelfwise-server/internal/graph"
	"github.com/shelfwiseapp/shelfwise-server/internal/logger"
	"github.com/shelfwiseapp/shelfwise-server/internal/service"
)

// GraphHandler is the GraphQL http.Handler.
type GraphHandler struct {
	http.Handler
}

// ProvideGraphHandler builds the GraphQL endpoint handler.
func ProvideGraphHandler(i do.Injector) (*GraphHandler, error) {
	authService := do.MustInvoke[*service.AuthService](i)
	shelfService := do.MustInvoke[*service.ShelfService](i)
	log := do.MustInvoke[*logger.Logger](i)

	resolver := graph.NewResolver(authService, shelfService, log.Logger)
	return &GraphHandler{Handler: resolver.Handler()}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	authService := do.MustInvoke[*service.AuthService](i)
	graphHandler := do.MustInvoke[*GraphHandler](i)
	log := do.MustInvoke[*logger.Logger](i)

	apiServer := api.NewServer(storeHandle.Store, authService, graphHandler, cfg, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      apiServer,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("GraphQL endpoint ready", "url", fmt.Sprintf("http://localhost:%s/graphql", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
