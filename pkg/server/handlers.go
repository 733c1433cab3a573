package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mindlayout/pkg/buildinfo"
	"github.com/matzehuels/mindlayout/pkg/core/tree"
	"github.com/matzehuels/mindlayout/pkg/errors"
	"github.com/matzehuels/mindlayout/pkg/pipeline"
	"github.com/matzehuels/mindlayout/pkg/store"
)

// layoutRequest is the body of the layout and render endpoints.
type layoutRequest struct {
	Tree    *tree.Record     `json:"tree"`
	Options pipeline.Options `json:"options"`
}

// mapRequest is the body of map create and update.
type mapRequest struct {
	Title    string       `json:"title"`
	Strategy string       `json:"strategy,omitempty"`
	Tree     *tree.Record `json:"tree"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeLayoutRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	x, hit, err := s.cfg.Runner.ComputeLayoutWithCacheInfo(r.Context(), tree.FromRecord(*req.Tree), req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, x)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	req, err := s.decodeLayoutRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req.Options.Formats = []string{format}
	s.render(w, r, tree.FromRecord(*req.Tree), format, req.Options)
}

func (s *Server) handleCreateMap(w http.ResponseWriter, r *http.Request) {
	m, err := s.decodeMap(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.cfg.Store.Create(r.Context(), m); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/maps/"+m.ID)
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleListMaps(w http.ResponseWriter, r *http.Request) {
	opts := store.ListOptions{}
	var err error
	if v := r.URL.Query().Get("limit"); v != "" {
		if opts.Limit, err = strconv.Atoi(v); err != nil || opts.Limit < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if opts.Offset, err = strconv.Atoi(v); err != nil || opts.Offset < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid offset %q", v))
			return
		}
	}

	maps, err := s.cfg.Store.List(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"maps": maps})
}

func (s *Server) handleGetMap(w http.ResponseWriter, r *http.Request) {
	m, err := s.loadMap(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleUpdateMap(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateMapID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.decodeMap(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m.ID = id
	if err := s.cfg.Store.Update(r.Context(), m); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeleteMap(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateMapID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.cfg.Store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRenderMap renders a stored map. The query may override strategy,
// line_style, scale, padding and title; the map's own strategy is the
// default.
func (s *Server) handleRenderMap(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.loadMap(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Strategy:  m.Strategy,
		LineStyle: q.Get("line_style"),
		Title:     m.Title,
		Formats:   []string{format},
	}
	if v := q.Get("strategy"); v != "" {
		opts.Strategy = v
	}
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}
	for name, dst := range map[string]*float64{"scale": &opts.Scale, "padding": &opts.Padding} {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s %q", name, v))
				return
			}
			*dst = f
		}
	}
	s.render(w, r, m.Root(), format, opts)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, root *tree.Node, format string, opts pipeline.Options) {
	res, err := s.cfg.Runner.Execute(r.Context(), root, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setCacheHeader(w, res.CacheInfo.RenderHit)
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) decodeLayoutRequest(w http.ResponseWriter, r *http.Request) (*layoutRequest, error) {
	var req layoutRequest
	if err := decodeJSON(w, r, s.cfg.MaxBodyBytes, &req); err != nil {
		return nil, err
	}
	if req.Tree == nil {
		return nil, errors.New(errors.ErrCodeInvalidTree, "tree is required")
	}
	return &req, nil
}

func (s *Server) decodeMap(w http.ResponseWriter, r *http.Request) (*store.Map, error) {
	var req mapRequest
	if err := decodeJSON(w, r, s.cfg.MaxBodyBytes, &req); err != nil {
		return nil, err
	}
	if req.Tree == nil {
		return nil, errors.New(errors.ErrCodeInvalidTree, "tree is required")
	}
	return &store.Map{Title: req.Title, Strategy: req.Strategy, Tree: *req.Tree}, nil
}

func (s *Server) loadMap(r *http.Request) (*store.Map, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateMapID(id); err != nil {
		return nil, err
	}
	return s.cfg.Store.Get(r.Context(), id)
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
}
