package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/matzehuels/designpanel/pkg/buildinfo"
	derrors "github.com/matzehuels/designpanel/pkg/errors"
	"github.com/matzehuels/designpanel/pkg/positioner"
	"github.com/matzehuels/designpanel/pkg/script"
)

// PanelResponse is the body of GET /panel and POST /events.
type PanelResponse struct {
	positioner.Tree
	// Applied is the number of events dispatched by the request.
	Applied int `json:"applied"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handlePanel(w http.ResponseWriter, r *http.Request) {
	var resp PanelResponse
	if err := s.do(r.Context(), func() { resp.Tree = s.pos.Tree() }); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	steps, err := decodeSteps(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, err)
		return
	}

	// Validate and expand everything up front so a bad request applies nothing.
	block := s.pos.Block()
	var events []positioner.Event
	for i, st := range steps {
		if err := st.Validate(); err != nil {
			writeError(w, derrors.New(derrors.ErrCodeInvalidEvent, "event %d: %s", i+1, derrors.UserMessage(err)))
			return
		}
		if len(events)+st.Count() > maxEventsPerRequest {
			writeError(w, derrors.New(derrors.ErrCodeInvalidEvent, "request expands to more than %d events", maxEventsPerRequest))
			return
		}
		expanded, err := st.Events(block)
		if err != nil {
			writeError(w, derrors.New(derrors.ErrCodeInvalidEvent, "event %d: %s", i+1, derrors.UserMessage(err)))
			return
		}
		events = append(events, expanded...)
	}

	var resp PanelResponse
	err = s.do(r.Context(), func() {
		for _, ev := range events {
			s.doc.Dispatch(r.Context(), ev)
			resp.Applied++
		}
		resp.Tree = s.pos.Tree()
	})
	if err != nil {
		writeError(w, err)
		return
	}

	s.logger.Debug("applied events", "count", resp.Applied, "top", resp.Child.Top, "left", resp.Child.Left)
	writeJSON(w, http.StatusOK, resp)
}

// decodeSteps accepts a single event object or an array of them.
func decodeSteps(r io.Reader) ([]script.Step, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, derrors.Wrap(derrors.ErrCodeInvalidInput, err, "read body")
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, derrors.New(derrors.ErrCodeInvalidInput, "empty body")
	}

	if data[0] == '[' {
		var steps []script.Step
		if err := json.Unmarshal(data, &steps); err != nil {
			return nil, derrors.Wrap(derrors.ErrCodeInvalidInput, err, "decode events")
		}
		return steps, nil
	}

	var step script.Step
	if err := json.Unmarshal(data, &step); err != nil {
		return nil, derrors.Wrap(derrors.ErrCodeInvalidInput, err, "decode event")
	}
	return []script.Step{step}, nil
}

type errorResponse struct {
	Code    derrors.Code `json:"code"`
	Message string       `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	code := derrors.GetCode(err)
	status := http.StatusInternalServerError
	switch {
	case derrors.IsInvalid(err):
		status = http.StatusBadRequest
	case code == derrors.ErrCodeNotFound || code == derrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case code == derrors.ErrCodeClosed:
		status = http.StatusServiceUnavailable
	}
	if code == "" {
		code = derrors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: code, Message: derrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
