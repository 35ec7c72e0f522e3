package api

import (
	"net/http"
	"strconv"

	"github.com/nhle/timely/internal/model"
	"github.com/nhle/timely/internal/store"
)

// eventRequest is the body of POST and PUT /api/events. Both allDay and
// all_day are accepted; allDay wins when both are sent.
type eventRequest struct {
	Title     *string `json:"title"`
	Start     *string `json:"start"`
	End       *string `json:"end"`
	AllDay    *bool   `json:"allDay"`
	AllDaySnk *bool   `json:"all_day"`
	TaskID    *int64  `json:"task_id"`
}

func (req eventRequest) allDay() *bool {
	if req.AllDay != nil {
		return req.AllDay
	}
	return req.AllDaySnk
}

// parseTimeField parses an optional timestamp body field.
func parseTimeField(field string, raw *string) (*model.Timestamp, error) {
	if raw == nil {
		return nil, nil
	}
	ts, err := model.ParseTimestamp(*raw)
	if err != nil {
		return nil, &model.ValidationError{Field: field, Message: err.Error()}
	}
	return &ts, nil
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter store.EventFilter
	for _, bound := range []struct {
		name string
		dst  **model.Timestamp
	}{
		{"start", &filter.Start},
		{"end", &filter.End},
	} {
		raw := q.Get(bound.name)
		if raw == "" {
			continue
		}
		ts, err := parseTimeField(bound.name, &raw)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		*bound.dst = ts
	}

	if raw := q.Get("task_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.writeError(w, r, &model.ValidationError{Field: "task_id", Message: "task_id must be an integer"})
			return
		}
		filter.TaskID = &id
	}

	events, err := s.store.ListEvents(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, events)
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeBody(w, r, eventCreateSchema, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	start, err := parseTimeField("start", req.Start)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	end, err := parseTimeField("end", req.End)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	in := model.EventInput{
		Title:  *req.Title,
		Start:  *start,
		End:    *end,
		TaskID: req.TaskID,
	}
	if allDay := req.allDay(); allDay != nil {
		in.AllDay = *allDay
	}

	event, err := s.store.CreateEvent(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, event)
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	event, err := s.store.GetEvent(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, event)
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req eventRequest
	if err := decodeBody(w, r, eventUpdateSchema, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	patch := model.EventPatch{
		Title:  req.Title,
		AllDay: req.allDay(),
		TaskID: req.TaskID,
	}
	if patch.Start, err = parseTimeField("start", req.Start); err != nil {
		s.writeError(w, r, err)
		return
	}
	if patch.End, err = parseTimeField("end", req.End); err != nil {
		s.writeError(w, r, err)
		return
	}

	event, err := s.store.UpdateEvent(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, event)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.store.DeleteEvent(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeOK(w)
}
