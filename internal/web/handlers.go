package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskkeep/internal/board"
	"taskkeep/internal/service"
	"taskkeep/internal/taskerr"
	"taskkeep/internal/tree"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTasks returns the computed view: pending and completed
// top-level partitions plus sorted child lists. Query params: list_id,
// q, sort (position|date|alpha), dir (asc|desc).
func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	st := tree.DefaultSortState()
	if name := r.URL.Query().Get("sort"); name != "" {
		crit, ok := tree.ParseCriterion(name)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown sort criterion: "+name)
			return
		}
		st.Criterion = crit
	}
	if dir := r.URL.Query().Get("dir"); dir == string(tree.Desc) {
		st.Direction = tree.Desc
	}

	view := s.board.View(board.Query{
		Search: r.URL.Query().Get("q"),
		ListID: r.URL.Query().Get("list_id"),
		Sort:   st,
	})
	writeJSON(w, http.StatusOK, viewJSON{
		Pending:   emptyIfNil(view.Pending),
		Completed: emptyIfNil(view.Completed),
		Children:  view.Children,
	})
}

func (s *Server) handleTaskLists(w http.ResponseWriter, r *http.Request) {
	lists := s.board.Lists()
	if lists == nil {
		lists = []service.TaskList{}
	}
	writeJSON(w, http.StatusOK, lists)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ListID string       `json:"list_id"`
		Task   service.Task `json:"task"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ListID == "" || req.Task.Title == "" {
		writeError(w, http.StatusBadRequest, "list_id and task.title are required")
		return
	}

	created, err := s.mutator.Create(r.Context(), req.ListID, req.Task)
	if err != nil {
		s.writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handlePatchTask(w http.ResponseWriter, r *http.Request) {
	var patch service.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if patch.IsZero() {
		writeError(w, http.StatusBadRequest, "patch carries no fields")
		return
	}

	updated, err := s.mutator.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.mutator.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeMutationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	results := tree.Search(s.board.Tasks(), req.Query)
	writeJSON(w, http.StatusOK, map[string][]service.Task{
		"tasks": emptyIfNil(results),
	})
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	stats, err := s.syncer.Refresh(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, taskerr.ErrSyncInFlight):
			writeError(w, http.StatusConflict, err.Error())
		default:
			s.logger.Error("sync failed", "error", err)
			writeError(w, http.StatusBadGateway, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"synced": stats})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	_, reply := s.assistant.Send(req.Message)
	writeJSON(w, http.StatusOK, map[string]any{
		"response":  reply.Content,
		"timestamp": reply.Timestamp,
	})
}

// writeMutationError maps the error taxonomy onto HTTP statuses. A
// failed mutation has already been rolled back by the coordinator.
func (s *Server) writeMutationError(w http.ResponseWriter, err error) {
	var remote *taskerr.RemoteError
	switch {
	case errors.Is(err, taskerr.ErrOwningListUnknown):
		writeError(w, http.StatusConflict, "owning list unknown, sync and try again")
	case errors.Is(err, taskerr.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "task not found")
	case errors.As(err, &remote):
		s.logger.Error("remote provider error", "status", remote.Status, "message", remote.Message)
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		s.logger.Error("mutation failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

type viewJSON struct {
	Pending   []service.Task            `json:"pending"`
	Completed []service.Task            `json:"completed"`
	Children  map[string][]service.Task `json:"children"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func emptyIfNil(tasks []service.Task) []service.Task {
	if tasks == nil {
		return []service.Task{}
	}
	return tasks
}
