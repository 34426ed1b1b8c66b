package api

import (
	"io"
	"net/http"

	"github.com/samber/lo"

	"github.com/mmynk/healthyliving/internal/models"
	"github.com/mmynk/healthyliving/internal/storage"
)

// maxBodyBytes caps every request body.
const maxBodyBytes = 1 << 20

type idResponse struct {
	ID string `json:"id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// groupView is a Group as returned to clients, with its identifier as a string.
type groupView struct {
	ID string `json:"id"`
	models.Group
}

type messageView struct {
	ID string `json:"id"`
	models.Message
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Healthy Living Support API is running"})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	user, err := models.DecodeUser(body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.users.CreateUser(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	group, err := models.DecodeGroup(body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.groups.CreateGroup(r.Context(), group)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.ListGroups(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, lo.Map(groups, func(g models.Group, _ int) groupView {
		return groupView{ID: storage.FormatID(g.ID), Group: g}
	}))
}

func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	msg, err := models.DecodeMessage(body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.messages.PostMessage(r.Context(), r.PathValue("groupId"), msg)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.messages.ListMessages(r.Context(), r.PathValue("groupId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, lo.Map(msgs, func(m models.Message, _ int) messageView {
		return messageView{ID: storage.FormatID(m.ID), Message: m}
	}))
}
