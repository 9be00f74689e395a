package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/value-logger/src/export"
	"github.com/jiaming2012/value-logger/src/models"
	"github.com/jiaming2012/value-logger/src/session"
)

var formDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

type RecordsHandler struct {
	session *session.Session
}

func NewRecordsHandler(sess *session.Session) *RecordsHandler {
	return &RecordsHandler{session: sess}
}

func (h *RecordsHandler) Routes(router *mux.Router) {
	router.HandleFunc("/records", h.List).Methods("GET")
	router.HandleFunc("/records", h.Submit).Methods("POST")
	router.HandleFunc("/records/sort", h.ApplySort).Methods("POST")
	router.HandleFunc("/records/sort/clear", h.ClearSort).Methods("POST")
	router.HandleFunc("/records/edits", h.SaveEdits).Methods("POST")
	router.HandleFunc("/records/summary", h.Summary).Methods("GET")
	router.HandleFunc("/records/export", h.ExportExcel).Methods("GET")
	router.HandleFunc("/records/export.csv", h.ExportCSV).Methods("GET")
}

type newRecordRequest struct {
	Category string `schema:"category"`
	Item     string `schema:"item"`
	Value    string `schema:"value"`
	Unit     string `schema:"unit"`
	Note     string `schema:"note"`
}

type listResponse struct {
	Schema   models.Schema       `json:"schema"`
	SortSpec models.SortSpec     `json:"sortSpec"`
	Rows     []models.DisplayRow `json:"rows"`
}

type mutationResponse struct {
	Record      models.Record `json:"record,omitempty"`
	Rows        int           `json:"rows"`
	RemoteError string        `json:"remoteError,omitempty"`
}

func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse{
		Schema:   h.session.Schema(),
		SortSpec: h.session.SortSpec(),
		Rows:     h.session.Display(),
	})
}

// Submit records a new category/item/value/unit/note tuple. A failed remote
// insert is reported in the response body; the record itself is already in
// the working table and is not rolled back.
func (h *RecordsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to parse form: %v", err))
		return
	}

	var req newRecordRequest
	if err := formDecoder.Decode(&req, r.PostForm); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to decode form: %v", err))
		return
	}

	rec, err := h.session.Submit(r.Context(), req.Category, req.Item, req.Value, req.Unit, req.Note)

	resp := mutationResponse{Record: rec, Rows: len(h.session.Snapshot())}
	if err != nil {
		log.Errorf("Submit: remote insert failed: %v", err)
		resp.RemoteError = err.Error()
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *RecordsHandler) ApplySort(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to parse form: %v", err))
		return
	}

	var spec models.SortSpec
	if err := formDecoder.Decode(&spec, r.PostForm); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to decode sort settings: %v", err))
		return
	}

	h.session.ApplySort(spec)
	h.List(w, r)
}

func (h *RecordsHandler) ClearSort(w http.ResponseWriter, r *http.Request) {
	h.session.ClearSort()
	h.List(w, r)
}

type saveEditsRequest struct {
	Rows []models.EditedRow `json:"rows"`
}

// SaveEdits reconciles the editor's rows into the working table and
// overwrites the remote sheet wholesale.
func (h *RecordsHandler) SaveEdits(w http.ResponseWriter, r *http.Request) {
	var req saveEditsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to decode edited rows: %v", err))
		return
	}

	err := h.session.SaveEdits(r.Context(), req.Rows)

	resp := mutationResponse{Rows: len(h.session.Snapshot())}
	if err != nil {
		log.Errorf("SaveEdits: remote overwrite failed: %v", err)
		resp.RemoteError = err.Error()
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *RecordsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Summarize())
}

func (h *RecordsHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	data, err := export.ToExcel(h.session.Schema(), h.session.Snapshot())
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to encode workbook: %v", err))
		return
	}

	w.Header().Set("Content-Type", export.ExcelContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.ExcelFilename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *RecordsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := export.ToCSV(h.session.Schema(), h.session.Snapshot())
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to encode csv: %v", err))
		return
	}

	w.Header().Set("Content-Type", export.CSVContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.CSVFilename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	log.Error(err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
