package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/paramgraph/pkg/buildinfo"
	"github.com/matzehuels/paramgraph/pkg/errors"
	"github.com/matzehuels/paramgraph/pkg/httputil"
	"github.com/matzehuels/paramgraph/pkg/paramgraph"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{Stats: s.reader.Graph().Stats()}
	if s.info != nil {
		resp.Format = s.info.Format.String()
		resp.BlobSize = s.info.BlobSize
		resp.Digest = s.info.Digest
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRoots(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, RootsResponse{Roots: s.reader.RootKeys()})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	entry, ok := s.reader.Root(key)
	if !ok {
		httputil.WriteError(w, errors.New(errors.ErrCodeNotFound, "no root %q", key))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RootView{
		Key:          key,
		ArgsNodeID:   entry.ArgsNodeID,
		OutputNodeID: entry.OutputNodeID,
	})
}

func (s *Server) handleInputNode(w http.ResponseWriter, r *http.Request) {
	id, n, err := s.inputNode(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	view := InputNodeView{ID: id, Edges: []InputEdgeView{}}
	for _, field := range sortedFields(n.Edges) {
		name, _ := s.reader.String(field)
		view.Edges = append(view.Edges, NewInputEdgeView(s.reader, name, n.Edges[field]))
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (s *Server) handleInputEdge(w http.ResponseWriter, r *http.Request) {
	id, n, err := s.inputNode(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	field := chi.URLParam(r, "field")
	e, ok := s.reader.InputEdge(n, field)
	if !ok {
		httputil.WriteError(w, errors.New(errors.ErrCodeNotFound, "input node %d has no field %q", id, field))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, NewInputEdgeView(s.reader, field, e))
}

func (s *Server) handleOutputNode(w http.ResponseWriter, r *http.Request) {
	id, n, err := s.outputNode(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	view := OutputNodeView{ID: id, Edges: []OutputEdgeView{}}
	for _, field := range sortedFields(n.Edges) {
		name, _ := s.reader.String(field)
		e := n.Edges[field]
		view.Edges = append(view.Edges, OutputEdgeView{Field: name, ArgsNodeID: e.ArgsNodeID, OutputNodeID: e.OutputNodeID})
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (s *Server) handleOutputEdge(w http.ResponseWriter, r *http.Request) {
	id, n, err := s.outputNode(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	field := chi.URLParam(r, "field")
	e, ok := s.reader.OutputEdge(n, field)
	if !ok {
		httputil.WriteError(w, errors.New(errors.ErrCodeNotFound, "output node %d has no field %q", id, field))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OutputEdgeView{Field: field, ArgsNodeID: e.ArgsNodeID, OutputNodeID: e.OutputNodeID})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	httputil.WriteError(w, errors.New(errors.ErrCodeNotFound, "no route %s", r.URL.Path))
}

func (s *Server) inputNode(r *http.Request) (int, *paramgraph.InputNode, error) {
	id, err := nodeID(r)
	if err != nil {
		return 0, nil, err
	}
	n, ok := s.reader.InputNode(&id)
	if !ok {
		return 0, nil, errors.New(errors.ErrCodeNotFound, "no input node %d", id)
	}
	return id, n, nil
}

func (s *Server) outputNode(r *http.Request) (int, *paramgraph.OutputNode, error) {
	id, err := nodeID(r)
	if err != nil {
		return 0, nil, err
	}
	n, ok := s.reader.OutputNode(&id)
	if !ok {
		return 0, nil, errors.New(errors.ErrCodeNotFound, "no output node %d", id)
	}
	return id, n, nil
}

func nodeID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "node id %q is not a non-negative integer", raw)
	}
	return id, nil
}
