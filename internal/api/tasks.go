package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nhle/timely/internal/model"
	"github.com/nhle/timely/internal/store"
)

// taskRequest is the body of POST and PUT /api/tasks. Absent and null
// fields both decode to nil.
type taskRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
	Order       *float64  `json:"order"`
	Tags        *[]string `json:"tags"`
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter store.TaskFilter
	if raw := q.Get("status"); raw != "" {
		status, err := model.ParseStatus(raw)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		filter.Status = &status
	}
	filter.Tags = store.ParseTagList(q.Get("tags"))

	tasks, err := s.store.ListTasks(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeBody(w, r, taskCreateSchema, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	in := model.TaskInput{
		Title:       *req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		in.Status = model.TaskStatus(*req.Status)
	}
	if req.Order != nil {
		in.Order = *req.Order
	}
	if req.Tags != nil {
		in.Tags = *req.Tags
	}

	task, err := s.store.CreateTask(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, task)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	task, err := s.store.GetTask(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, task)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req taskRequest
	if err := decodeBody(w, r, taskUpdateSchema, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	patch := model.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
		Tags:        req.Tags,
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		patch.Status = &status
	}

	task, err := s.store.UpdateTask(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.store.DeleteTask(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeOK(w)
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &model.ValidationError{Field: "id", Message: fmt.Sprintf("invalid id %q", raw)}
	}
	return id, nil
}

// decodeBody reads the request body, validates it against schema and
// decodes it into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, schema *jsonschema.Schema, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return &model.ValidationError{Message: fmt.Sprintf("reading body: %v", err)}
	}

	if err := validateBody(schema, body); err != nil {
		return err
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return &model.ValidationError{Message: fmt.Sprintf("decoding body: %v", err)}
	}
	return nil
}
