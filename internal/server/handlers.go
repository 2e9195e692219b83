package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/zombor/imgtext/internal/capture"
	"github.com/zombor/imgtext/internal/session"
)

// actionResponse is returned by every session endpoint
type actionResponse struct {
	State   session.Snapshot `json:"state"`
	Notices []string         `json:"notices"`
	Error   string           `json:"error,omitempty"`
}

// pasteRequest carries the contents of the page's paste container
type pasteRequest struct {
	HTML string `json:"html"`
}

// copyRequest carries the output text as shown, including the user's edits
type copyRequest struct {
	Text *string `json:"text"`
}

// writeJSON writes v with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// jsonError writes an error response without session state
func jsonError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, map[string]string{
		"error": message,
	})
}

// respond writes the session state, the queued notices and err
func respond(w http.ResponseWriter, tab *session.Tab, code int, err error) {
	resp := actionResponse{
		State:   tab.Snapshot(),
		Notices: tab.Panel.Notices(),
	}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, code, resp)
}

// statusFor maps recognition outcomes to status codes
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, capture.ErrInvalidFileType):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, session.ErrRecognitionFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// lookup returns the session named in the path or writes a 404
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Tab, bool) {
	tab, err := s.manager.Get(r.PathValue("id"))
	if err != nil {
		jsonError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return tab, true
}

// readUpload returns the first uploaded file of the "file" field, or nothing
// when no file was sent. It writes an error response and returns false when
// the form cannot be read.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]capture.Image, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	if err := r.ParseMultipartForm(s.maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "File is too large. Please compress or resize your image.", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		jsonError(w, "Error parsing form", http.StatusBadRequest)
		return nil, false
	}

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		return nil, true
	}
	header := headers[0]

	f, err := header.Open()
	if err != nil {
		slog.Error("Error opening uploaded file", "error", err, "filename", header.Filename)
		jsonError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		jsonError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return nil, false
	}

	return []capture.Image{{
		Name:     header.Filename,
		MIMEType: capture.ContentType(header.Filename, header.Header.Get("Content-Type")),
		Data:     data,
	}}, true
}

// handleIndex serves the HTML interface
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleStaticCSS serves the CSS file
func (s *Server) handleStaticCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css")
	w.Write(appCSS)
}

// handleStaticJS serves the JavaScript file
func (s *Server) handleStaticJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write(appJS)
}

// handleCreateSession opens a session for a freshly loaded page
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	tab := s.manager.Create()
	slog.Debug("Created session", "session", tab.Session.ID())
	respond(w, tab, http.StatusCreated, nil)
}

// handleGetSession returns the state of a session
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	tab, ok := s.lookup(w, r)
	if !ok {
		return
	}
	respond(w, tab, http.StatusOK, nil)
}

// handleConvert recognizes the file chosen with the file picker
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	tab, ok := s.lookup(w, r)
	if !ok {
		return
	}
	files, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	err := tab.Session.Convert(r.Context(), files)
	respond(w, tab, statusFor(err), err)
}

// handleDragOver marks the drop zone active
func (s *Server) handleDragOver(w http.ResponseWriter, r *http.Request) {
	tab, ok := s.lookup(w, r)
	if !ok {
		return
	}
	tab.Session.DragOver()
	respond(w, tab, http.StatusOK, nil)
}

// handleDrop recognizes a dropped file
func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	tab, ok := s.lookup(w, r)
	if !ok {
		return
	}
	files, ok := s.readUpload(w, r)
	if !ok {
		// The drop still happened; leave the zone inactive
		tab.Panel.SetDragging(false)
		return
	}

	err := tab.Session.Drop(r.Context(), files)
	respond(w, tab, statusFor(err), err)
}

// handlePaste recognizes the image on the clipboard
func (s *Server) handlePaste(w http.ResponseWriter, r *http.Request) {
	tab, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req pasteRequest
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := tab.Session.Paste(r.Context(), req.HTML)
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		// Anything else wrong with a paste is about what the user pasted
		code = http.StatusBadRequest
	}
	respond(w, tab, code, err)
}

// handleCopy copies the output text to the clipboard. An edited text sent by
// the page replaces the recognized one first.
func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	tab, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req copyRequest
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Text != nil {
		tab.Session.Edit(*req.Text)
	}

	err := tab.Session.Copy(r.Context())
	code := http.StatusOK
	if err != nil {
		code = http.StatusInternalServerError
	}
	respond(w, tab, code, err)
}
