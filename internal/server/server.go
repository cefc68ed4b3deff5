package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/EATMove/CDT-sub001/internal/admin"
	"github.com/EATMove/CDT-sub001/internal/config"
	"github.com/EATMove/CDT-sub001/internal/middleware"
	"github.com/EATMove/CDT-sub001/internal/mobile"
	"github.com/EATMove/CDT-sub001/internal/render"
	"github.com/EATMove/CDT-sub001/internal/sso"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Server struct {
	log    *zap.Logger
	server *http.Server
}

type Params struct {
	fx.In

	Log    *zap.Logger
	Config *config.Config
	Admin  *admin.Handler
	Mobile *mobile.Handler
	SSO    *sso.Handler
}

func New(p Params) (*Server, error) {
	root := chi.NewRouter()
	root.Use(chimw.RequestID)
	root.Use(chimw.RealIP)
	root.Use(middleware.RequestLogger(p.Log))
	root.Use(chimw.Recoverer)
	root.Use(cors.New(cors.Options{
		AllowedOrigins:   p.Config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	root.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	root.Mount("/api/admin", p.Admin.Routes())
	root.Mount("/api/mobile", p.Mobile.Routes())
	if p.SSO != nil {
		root.Mount("/saml", p.SSO.Routes())
	}

	root.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		render.Message(w, http.StatusNotFound, "not found")
	})

	return &Server{
		log: p.Log,
		server: &http.Server{
			Addr:              p.Config.Server.Addr,
			Handler:           root,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}, nil
}

// RegisterHooks should be invoked by fx
func RegisterHooks(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStart: s.Start,
		OnStop:  s.server.Shutdown,
	})
}

func (s *Server) Start(_ context.Context) error {
	s.log.Info("listening", zap.String("addr", s.server.Addr))
	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("error starting server", zap.Error(err))
		}
	}()
	return nil
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
