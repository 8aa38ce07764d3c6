// Package api exposes the read side of the aggregator over HTTP: filtered
// job lists, bucketed timelines, and per-view filter state. All
// algorithmic work lives in the filter and timeline packages; handlers
// only decode, delegate, and encode.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/project-hirewire/go-aggregator/internal/domain"
	"github.com/project-hirewire/go-aggregator/internal/filter"
	"github.com/project-hirewire/go-aggregator/internal/timeline"
)

// JobSource loads the job set handlers operate on.
type JobSource interface {
	OpenJobs(ctx context.Context) ([]*domain.Job, error)
}

// Server holds the HTTP handler state: the job source and the per-view
// filter specs.
type Server struct {
	source JobSource
	views  *filter.Views
	mux    *http.ServeMux
}

// NewServer creates the API server with default filter state per view.
func NewServer(source JobSource) *Server {
	s := &Server{
		source: source,
		views:  filter.NewViews(filter.DefaultSpec()),
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /jobs", s.handleJobs)
	s.mux.HandleFunc("GET /timeline", s.handleTimeline)
	s.mux.HandleFunc("GET /filters/{view}", s.handleGetFilter)
	s.mux.HandleFunc("PUT /filters/{view}", s.handlePutFilter)
	s.mux.HandleFunc("POST /filters/{view}/sync", s.handleSyncFilter)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleJobs returns the named view's filtered job list.
func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.viewSpec(w, r.URL.Query().Get("view"), filter.ViewList)
	if !ok {
		return
	}

	jobs, err := s.source.OpenJobs(r.Context())
	if err != nil {
		log.Printf("Load jobs error: %v", err)
		writeError(w, http.StatusInternalServerError, "load jobs failed")
		return
	}

	now := time.Now().UTC()
	filtered := filter.Apply(jobs, spec, now)

	writeJSON(w, http.StatusOK, map[string]any{
		"total": len(filtered),
		"jobs":  filtered,
	})
}

// handleTimeline returns the named view's filtered jobs bucketed into the
// view's time window, with cumulative counts and summary stats. One clock
// sample covers filtering and bucketing so the two agree on the window.
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.viewSpec(w, r.URL.Query().Get("view"), filter.ViewChart)
	if !ok {
		return
	}

	jobs, err := s.source.OpenJobs(r.Context())
	if err != nil {
		log.Printf("Load jobs error: %v", err)
		writeError(w, http.StatusInternalServerError, "load jobs failed")
		return
	}

	now := time.Now().UTC()
	filtered := filter.Apply(jobs, spec, now)
	buckets := timeline.Buckets(filtered, spec.TimeWindow, now)

	writeJSON(w, http.StatusOK, map[string]any{
		"window":     spec.TimeWindow,
		"buckets":    buckets,
		"cumulative": timeline.Cumulative(buckets),
		"stats":      timeline.Summarize(buckets),
	})
}

func (s *Server) handleGetFilter(w http.ResponseWriter, r *http.Request) {
	view, err := filter.ParseViewName(r.PathValue("view"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	spec, err := s.views.Get(view)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, specResponse(spec))
}

func (s *Server) handlePutFilter(w http.ResponseWriter, r *http.Request) {
	view, err := filter.ParseViewName(r.PathValue("view"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	var in filter.Spec
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter spec: "+err.Error())
		return
	}

	spec, err := sanitizeSpec(in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.views.Set(view, spec); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, specResponse(spec))
}

// handleSyncFilter copies another view's spec into this one. One-shot:
// no ongoing link is created between the views.
func (s *Server) handleSyncFilter(w http.ResponseWriter, r *http.Request) {
	dst, err := filter.ParseViewName(r.PathValue("view"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	src, err := filter.ParseViewName(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.views.Sync(dst, src); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	spec, err := s.views.Get(dst)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, specResponse(spec))
}

// viewSpec resolves the ?view= parameter (with a default) to its spec.
func (s *Server) viewSpec(w http.ResponseWriter, name string, fallback filter.ViewName) (filter.Spec, bool) {
	view := fallback
	if name != "" {
		parsed, err := filter.ParseViewName(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return filter.Spec{}, false
		}
		view = parsed
	}

	spec, err := s.views.Get(view)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return filter.Spec{}, false
	}
	return spec, true
}

// sanitizeSpec rebuilds an inbound spec through the filter mutation
// helpers so stored state always satisfies their invariants (trimmed
// values, no duplicates, emptied selections collapsed to absent), and
// rejects unknown enum values.
func sanitizeSpec(in filter.Spec) (filter.Spec, error) {
	out := filter.Spec{}

	if in.TimeWindow != "" {
		w, err := domain.ParseTimeWindow(string(in.TimeWindow))
		if err != nil {
			return filter.Spec{}, err
		}
		out = filter.SetTimeWindow(out, w)
	}

	for _, t := range in.SearchTags {
		mode := t.Mode
		if mode != filter.TagExclude {
			mode = filter.TagInclude
		}
		out = filter.AddSearchTag(out, t.Text, mode)
	}
	for _, l := range in.Locations {
		out = filter.AddLocation(out, l)
	}
	for _, d := range in.Departments {
		out = filter.AddDepartment(out, d)
	}
	out = filter.SetEmploymentType(out, in.EmploymentType)
	for _, c := range in.RoleCategories {
		if !domain.ValidCategory(c) {
			return filter.Spec{}, fmt.Errorf("unknown role category %q", c)
		}
		out = filter.AddRoleCategory(out, c)
	}

	return out, nil
}

// specResponse attaches the derived software-only state to a spec for
// presentation. The flag is computed on read, never stored.
func specResponse(spec filter.Spec) map[string]any {
	return map[string]any{
		"spec":          spec,
		"software_only": spec.SoftwareOnly(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Encode response error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
