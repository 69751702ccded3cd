package server

import (
	"net/http"

	"github.com/matst80/slask-discovery/pkg/common/jsoncompat"
	"github.com/matst80/slask-discovery/pkg/discovery"
	"github.com/matst80/slask-discovery/pkg/types"
	"github.com/matst80/slask-discovery/pkg/urlstate"
)

type FilterAction struct {
	Action    string   `json:"action"`
	Dimension string   `json:"dimension"`
	Value     string   `json:"value"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
}

type SortRequest struct {
	Sort string `json:"sort"`
}

// SizeRequest carries "5", "10", "20" or "all".
type SizeRequest struct {
	Size string `json:"size"`
}

type PageRequest struct {
	Page int `json:"page"`
}

func decodeBody(r *http.Request, v any) error {
	if err := jsoncompat.NewDecoder(r.Body).Decode(v); err != nil {
		return &badRequest{err: err}
	}
	return nil
}

// Load replaces the session state with the request's query string.
func (ws *WebServer) Load(w http.ResponseWriter, r *http.Request, s *discovery.Session) error {
	return s.Load(urlstate.ParseQuery(r.URL.RawQuery))
}

func (ws *WebServer) Filter(w http.ResponseWriter, r *http.Request, s *discovery.Session) error {
	var a FilterAction
	if err := decodeBody(r, &a); err != nil {
		return err
	}
	if a.Action == "clear" {
		if a.Dimension == "" {
			return s.ClearFilters()
		}
		d, err := types.ParseDimension(a.Dimension)
		if err != nil {
			return err
		}
		return s.RemoveAll(d)
	}
	sel, err := types.ParseSelection(a.Dimension, a.Value, a.Min, a.Max)
	if err != nil {
		return err
	}
	switch a.Action {
	case "toggle":
		return s.Toggle(sel)
	case "add":
		return s.Add(sel)
	case "remove":
		return s.Remove(sel)
	}
	return &types.ValidationError{Field: "action", Value: a.Action}
}

func (ws *WebServer) Sort(w http.ResponseWriter, r *http.Request, s *discovery.Session) error {
	var req SortRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	return s.SetSort(req.Sort)
}

func (ws *WebServer) Size(w http.ResponseWriter, r *http.Request, s *discovery.Session) error {
	var req SizeRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	size, err := types.ParsePageSizeString(req.Size)
	if err != nil {
		return err
	}
	return s.SetShowPerPage(int(size))
}

func (ws *WebServer) Page(w http.ResponseWriter, r *http.Request, s *discovery.Session) error {
	var req PageRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	return s.SetCurrentPage(req.Page)
}

func (ws *WebServer) Display(w http.ResponseWriter, r *http.Request, s *discovery.Session) error {
	return s.ToggleDisplayMode()
}

func (ws *WebServer) Refresh(w http.ResponseWriter, r *http.Request, s *discovery.Session) error {
	return s.Refresh()
}
