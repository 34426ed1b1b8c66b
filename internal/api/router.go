// Package api exposes the services as a JSON HTTP API.
package api

import (
	"net/http"

	"github.com/mmynk/healthyliving/internal/service"
	"github.com/mmynk/healthyliving/internal/storage"
)

// Server holds the services behind the HTTP routes.
type Server struct {
	users    *service.UserService
	groups   *service.GroupService
	messages *service.MessageService
	diag     *Diagnostics
}

// NewServer wires the services onto store. diag may be nil, in which case
// /test reports storage as missing.
func NewServer(store storage.Gateway, diag *Diagnostics) *Server {
	if diag == nil {
		diag = &Diagnostics{}
	}
	return &Server{
		users:    service.NewUserService(store),
		groups:   service.NewGroupService(store),
		messages: service.NewMessageService(store),
		diag:     diag,
	}
}

// Routes registers every endpoint on a new mux. metrics is mounted on
// /metrics when non-nil.
func (s *Server) Routes(metrics http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /api/users", s.handleCreateUser)
	mux.HandleFunc("POST /api/groups", s.handleCreateGroup)
	mux.HandleFunc("GET /api/groups", s.handleListGroups)
	mux.HandleFunc("POST /api/groups/{groupId}/messages", s.handlePostMessage)
	mux.HandleFunc("GET /api/groups/{groupId}/messages", s.handleListMessages)
	mux.Handle("GET /test", s.diag)

	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	return mux
}
