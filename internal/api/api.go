// Package api serves the window manager state and accepts commands over
// HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ItsNotGoodName/xtagwm/internal/build"
	"github.com/ItsNotGoodName/xtagwm/internal/bus"
	"github.com/ItsNotGoodName/xtagwm/internal/config"
	"github.com/ItsNotGoodName/xtagwm/internal/wm"
	"github.com/ItsNotGoodName/xtagwm/pkg/chiext"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type Server struct {
	addr     string
	hub      *bus.Hub[wm.Snapshot]
	requestC chan<- wm.Request
}

func New(addr string, hub *bus.Hub[wm.Snapshot], requestC chan<- wm.Request) *Server {
	return &Server{
		addr:     addr,
		hub:      hub,
		requestC: requestC,
	}
}

func (s *Server) String() string {
	return "api.Server"
}

// Handler returns the router with every operation registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chiext.Logger())
	r.Use(middleware.Recoverer)

	api := humachi.New(r, huma.DefaultConfig("xtagwm", build.Current.Version))
	s.register(api)

	return r
}

func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errC := make(chan error, 1)
	go func() { errC <- srv.ListenAndServe() }()
	slog.Info("Listening", "addr", s.addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errC:
		return err
	}
}

type StatusOutput struct {
	Body wm.Snapshot
}

type VersionOutput struct {
	Body build.Build
}

type CommandInput struct {
	Body struct {
		Action string `json:"action" doc:"Action to run, e.g. view, tag, setlayout or quit"`
		Arg    string `json:"arg,omitempty" doc:"Argument in the same form as in the config file"`
	}
}

type CommandOutput struct {
	Body struct {
		ID string `json:"id" doc:"ID of the command"`
	}
}

func (s *Server) register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-status",
		Method:      http.MethodGet,
		Path:        "/api/status",
		Summary:     "Get workspaces and clients",
	}, s.getStatus)

	huma.Register(api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Get build information",
	}, func(ctx context.Context, input *struct{}) (*VersionOutput, error) {
		return &VersionOutput{Body: build.Current}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "post-command",
		Method:        http.MethodPost,
		Path:          "/api/commands",
		Summary:       "Run a command",
		DefaultStatus: http.StatusOK,
	}, s.postCommand)
}

func (s *Server) getStatus(ctx context.Context, input *struct{}) (*StatusOutput, error) {
	snap, ok := s.hub.Latest()
	if !ok {
		return nil, huma.Error503ServiceUnavailable("window manager is not running yet")
	}
	return &StatusOutput{Body: snap}, nil
}

func (s *Server) postCommand(ctx context.Context, input *CommandInput) (*CommandOutput, error) {
	action, arg, err := config.ParseCommand(input.Body.Action, input.Body.Arg)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	cmd := wm.Command{ID: uuid.NewString(), Action: action, Arg: arg}
	req := wm.NewRequest(cmd)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case s.requestC <- req:
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-req.Done:
		if errors.Is(err, wm.ErrBadArg) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to run command", err)
		}
	}

	out := &CommandOutput{}
	out.Body.ID = cmd.ID
	return out, nil
}
