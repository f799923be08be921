package httpapi

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/rameshbaboov/french-vocabs/internal/config"
	"github.com/rameshbaboov/french-vocabs/internal/jobs"
	"github.com/rameshbaboov/french-vocabs/internal/library"
)

const statusTailLines = 200

type statusResponse struct {
	Running bool      `json:"running"`
	Job     *jobs.Job `json:"job,omitempty"`
	Log     string    `json:"log"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	job := s.supervisor.Status()
	writeJSON(w, http.StatusOK, statusResponse{
		Running: job.Running(),
		Job:     job,
		Log:     s.supervisor.Tail(statusTailLines),
	})
}

type startJobRequest struct {
	JobType string `json:"job_type"`
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req startJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	jobType, err := jobs.ParseType(req.JobType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := s.supervisor.Start(jobType, s.settings.GetSettings())
	if err != nil {
		if jobs.IsErrorType(err, jobs.ErrAlreadyRunning) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (s *Server) handleStopJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.supervisor.Stop()
	writeJSON(w, http.StatusOK, map[string]bool{"stopped": true})
}

// handleCurrentJob serves the REST-style alias of /api/jobs/stop.
func (s *Server) handleCurrentJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.supervisor.Stop()
	writeJSON(w, http.StatusOK, map[string]bool{"stopped": true})
}

func (s *Server) handleJobHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.history == nil {
		writeError(w, http.StatusNotImplemented, "job history is not configured")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	records, err := s.history.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.settings.GetSettings())
	case http.MethodPut:
		var req config.Settings
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		saved, err := s.settings.UpdateSettings(req)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.lister.Invalidate()
		writeJSON(w, http.StatusOK, saved)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type filesResponse struct {
	Words     []library.FileInfo `json:"words"`
	Sentences []library.FileInfo `json:"sentences"`
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	settings := s.settings.GetSettings()

	words, err := s.lister.List(s.resolve(settings.WordsOutDir), ".txt")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sentenceDocs, err := s.lister.List(s.resolve(settings.SentOutputDir), ".docx")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, filesResponse{Words: words, Sentences: sentenceDocs})
}

// fileDir maps the "type" query parameter onto the listing root and the
// expected extension for that file class.
func (s *Server) fileDir(fileType string) (dir, ext string, ok bool) {
	settings := s.settings.GetSettings()
	switch fileType {
	case "words":
		return s.resolve(settings.WordsOutDir), ".txt", true
	case "sentences":
		return s.resolve(settings.SentOutputDir), ".docx", true
	default:
		return "", "", false
	}
}

type previewResponse struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func (s *Server) handlePreviewFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	dir, ext, ok := s.fileDir(r.URL.Query().Get("type"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown file type")
		return
	}
	rel := r.URL.Query().Get("path")
	if rel == "" {
		writeError(w, http.StatusBadRequest, "missing path")
		return
	}

	var content string
	var err error
	if ext == ".docx" {
		content, err = library.PreviewDocx(dir, rel)
	} else {
		content, err = library.PreviewText(dir, rel)
	}
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{Path: rel, Content: content})
}

func (s *Server) handleDownloadFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	dir, _, ok := s.fileDir(r.URL.Query().Get("type"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown file type")
		return
	}
	rel := r.URL.Query().Get("path")
	if rel == "" {
		writeError(w, http.StatusBadRequest, "missing path")
		return
	}
	path, err := library.Resolve(dir, rel)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filepath.Base(path)+"\"")
	http.ServeFile(w, r, path)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}
