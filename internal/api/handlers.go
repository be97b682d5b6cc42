package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/timeplan/internal/contract"
	"github.com/alexanderramin/timeplan/internal/dateutil"
)

const maxBodyBytes = 1 << 20

func parseDayParam(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, NewBadRequest(name + " is required")
	}
	d, err := dateutil.ParseDay(value)
	if err != nil {
		return time.Time{}, NewBadRequest(fmt.Sprintf("%s must be YYYY-MM-DD, got %q", name, value))
	}
	return d, nil
}

func optionalDay(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := parseDayParam(name, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// projectScope accepts both ?project=a&project=b and ?project=a,b.
func projectScope(r *http.Request) []string {
	var ids []string
	for _, v := range r.URL.Query()["project"] {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if s.pinger != nil {
		if err := s.pinger.PingContext(r.Context()); err != nil {
			s.logger.Error("health check failed", "error", err)
			JSONError(w, &Error{Code: "UNHEALTHY", Message: "database unreachable", Status: http.StatusServiceUnavailable})
			return
		}
		status["database"] = "ok"
	}
	OK(w, status)
}

func (s *Server) timeline(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := parseDayParam("from", q.Get("from"))
	if err != nil {
		JSONError(w, FromError(err))
		return
	}
	req := contract.NewTimelineRequest(from)
	if v := q.Get("to"); v != "" {
		if req.To, err = parseDayParam("to", v); err != nil {
			JSONError(w, FromError(err))
			return
		}
	}
	if req.Today, err = optionalDay("today", q.Get("today")); err != nil {
		JSONError(w, FromError(err))
		return
	}
	req.ProjectScope = projectScope(r)
	if v := q.Get("include_empty"); v != "" {
		if req.IncludeEmpty, err = strconv.ParseBool(v); err != nil {
			JSONError(w, NewBadRequest("include_empty must be a boolean"))
			return
		}
	}

	resp, err := s.services.Timeline.Timeline(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	OK(w, newTimelineDTO(resp))
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.services.Projects.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]projectDTO, 0, len(projects))
	for _, p := range projects {
		out = append(out, newProjectDTO(p))
	}
	OK(w, out)
}

func (s *Server) budget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, err := s.services.Timeline.Budget(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	OK(w, newBudgetDTO(id, a))
}

func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	var body previewRequestDTO
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		JSONError(w, NewBadRequest("invalid request body"))
		return
	}
	req, err := body.toContract()
	if err != nil {
		JSONError(w, FromError(err))
		return
	}

	resp, err := s.services.Timeline.Preview(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	OK(w, newPreviewDTO(resp))
}

func (s *Server) insights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := contract.NewInsightsRequest()
	var err error
	if req.Today, err = optionalDay("today", q.Get("today")); err != nil {
		JSONError(w, FromError(err))
		return
	}
	req.ProjectScope = projectScope(r)
	if v := q.Get("recent_days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			JSONError(w, NewBadRequest("recent_days must be a positive integer"))
			return
		}
		req.RecentDays = n
	}

	resp, err := s.services.Timeline.Insights(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	OK(w, newInsightsDTO(resp))
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := FromError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	JSONError(w, apiErr)
}
