package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dori/zendo/internal/calendar"
	"github.com/dori/zendo/internal/db"
	"github.com/dori/zendo/internal/model"
	"github.com/dori/zendo/internal/parser"
	"github.com/dori/zendo/internal/tasks"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decode reads a JSON body. An empty body leaves v untouched.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
	return false
}

func badValue(w http.ResponseWriter, err error) {
	var inv *model.InvalidValueError
	if errors.As(err, &inv) {
		writeError(w, http.StatusBadRequest, inv.Error())
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if !decode(w, r, &body) {
		return
	}
	writeJSON(w, http.StatusOK, parser.ParseAt(body.Text, s.tasks.Today()))
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := tasks.Filter{
		Category:  model.Category(q.Get("category")),
		Project:   model.Project(q.Get("project")),
		Label:     model.Label(q.Get("label")),
		Priority:  model.Priority(q.Get("priority")),
		Overdue:   q.Get("overdue") == "true",
		Recurring: q.Get("recurring") == "true",
	}
	if err := f.Validate(); err != nil {
		badValue(w, err)
		return
	}
	day, err := calendar.Parse(q.Get("date"))
	if err != nil {
		badValue(w, err)
		return
	}
	f.Date = day

	out := s.tasks.Find(f)
	if out == nil {
		out = []model.Task{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	t, ok := s.tasks.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type addRequest struct {
	Text      string           `json:"text"`
	Category  model.Category   `json:"category"`
	Why       string           `json:"why"`
	Priority  model.Priority   `json:"priority"`
	Project   model.Project    `json:"project"`
	Label     model.Label      `json:"label"`
	Date      calendar.Date    `json:"date"`
	DueDate   calendar.Date    `json:"dueDate"`
	Recurring model.Recurrence `json:"recurring"`
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var body addRequest
	if !decode(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	p := model.Patch{
		Priority:  &body.Priority,
		Project:   &body.Project,
		Label:     &body.Label,
		Recurring: &body.Recurring,
	}
	if body.Category != "" {
		p.Category = &body.Category
	}
	if err := p.Validate(); err != nil {
		badValue(w, err)
		return
	}

	t, _ := s.tasks.Add(body.Text, body.Category, tasks.AddOptions{
		Why:       body.Why,
		Priority:  body.Priority,
		Project:   body.Project,
		Label:     body.Label,
		Date:      body.Date,
		DueDate:   body.DueDate,
		Recurring: body.Recurring,
	})
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var p model.Patch
	if !decode(w, r, &p) {
		return
	}
	if err := p.Validate(); err != nil {
		badValue(w, err)
		return
	}
	if p.Text != nil && strings.TrimSpace(*p.Text) == "" {
		writeError(w, http.StatusBadRequest, "text must not be empty")
		return
	}

	t, ok := s.tasks.Update(r.PathValue("id"), p)
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if !s.tasks.Delete(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mood model.Mood `json:"mood"`
	}
	if !decode(w, r, &body) {
		return
	}
	if !body.Mood.Valid() {
		writeError(w, http.StatusBadRequest, `invalid mood "`+string(body.Mood)+`"`)
		return
	}

	res, ok := s.tasks.Complete(r.PathValue("id"), body.Mood)
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleUncomplete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.tasks.Uncomplete(id) {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	t, _ := s.tasks.Get(id)
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleMoveToToday(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if !decode(w, r, &body) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"moved": s.tasks.MoveTasksToToday(body.IDs)})
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tasks.Growth())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tasks.Stats())
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.notes.GetNotes(r.Context())
	if err != nil {
		s.log.Logf("[WARN] failed to list notes: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list notes")
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

type noteRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var body noteRequest
	if !decode(w, r, &body) {
		return
	}

	n, err := s.notes.CreateNote(r.Context(), body.Content)
	if errors.Is(err, db.ErrEmptyNote) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.log.Logf("[WARN] failed to create note: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create note")
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var body noteRequest
	if !decode(w, r, &body) {
		return
	}

	n, err := s.notes.UpdateNote(r.Context(), r.PathValue("id"), body.Content)
	switch {
	case errors.Is(err, db.ErrEmptyNote):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		s.log.Logf("[WARN] failed to update note: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update note")
	case n == nil:
		writeError(w, http.StatusNotFound, "note not found")
	default:
		writeJSON(w, http.StatusOK, n)
	}
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	ok, err := s.notes.DeleteNote(r.Context(), r.PathValue("id"))
	switch {
	case err != nil:
		s.log.Logf("[WARN] failed to delete note: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete note")
	case !ok:
		writeError(w, http.StatusNotFound, "note not found")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
