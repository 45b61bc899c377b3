package devapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Makepad-fr/tada-remote/internal/model"
	"github.com/gorilla/mux"
)

type signinResponse struct {
	AccessToken string `json:"access_token"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if _, err := s.store.CreateUser(req.Email, req.Password); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	u, err := s.store.Authenticate(req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, signinResponse{AccessToken: s.issueToken(u.ID)})
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.List(userID(r)))
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTodo
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	t, err := s.store.Create(userID(r), req.Todo)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req model.UpdateTodo
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	t, err := s.store.Update(userID(r), id, req.Todo, req.IsCompleted)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.Delete(userID(r), id); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func userID(r *http.Request) int {
	id, _ := r.Context().Value(userIDKey).(int)
	return id
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmailTaken):
		writeError(w, http.StatusBadRequest, ErrEmailTaken.Error())
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, ErrBadCredentials):
		writeError(w, http.StatusUnauthorized, ErrBadCredentials.Error())
	case errors.Is(err, ErrUnknownUser):
		writeError(w, http.StatusNotFound, ErrUnknownUser.Error())
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		s.logger.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"statusCode": status, "message": message})
}
