package service

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/Ragnerd/Kontrib/internal/auth"
	"github.com/Ragnerd/Kontrib/internal/ledger"
	"github.com/Ragnerd/Kontrib/internal/middleware"
	"github.com/Ragnerd/Kontrib/internal/storage"
)

// Deps are what the RPC services are built from.
type Deps struct {
	Store         storage.Reader
	Engine        *ledger.Engine
	Authenticator auth.Authenticator
	JWTManager    *auth.JWTManager
	Logger        *slog.Logger
}

// Mount registers all services on mux behind the logging and auth
// interceptors.
func Mount(mux *http.ServeMux, d Deps) {
	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(d.Logger),
		middleware.RequireAuth(d.JWTManager, PublicProcedures...),
	)

	mux.Handle(NewAuthServiceHandler(NewAuthService(d.Authenticator, d.JWTManager, d.Logger), interceptors))
	mux.Handle(NewGroupServiceHandler(NewGroupService(d.Store, d.Engine, d.Logger), interceptors))
	mux.Handle(NewContributionServiceHandler(NewContributionService(d.Store, d.Engine, d.Logger), interceptors))
	mux.Handle(NewStatsServiceHandler(NewStatsService(d.Store, d.Engine, d.Logger), interceptors))
}
