package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leobarberi/Projeto-organizador-react-version2/internal/logging"
)

// handleListFiles returns the stored files, newest first.
func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.service.ListFiles(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.service.DeleteFile(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Info("file deleted", "file_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// handleClearFiles deletes every stored file.
func (s *Server) handleClearFiles(w http.ResponseWriter, r *http.Request) {
	n, err := s.service.ClearFiles(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Info("files cleared", "deleted", n)
	writeJSON(w, http.StatusOK, map[string]int{"deleted": n})
}
