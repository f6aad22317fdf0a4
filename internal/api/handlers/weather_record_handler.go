package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"weather-api/internal/repository"
	"weather-api/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

const maxRecordBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type WeatherRecordHandler struct {
	recordService services.WeatherRecordService
	exportService services.ExportService
}

func NewWeatherRecordHandler(recordService services.WeatherRecordService, exportService services.ExportService) *WeatherRecordHandler {
	return &WeatherRecordHandler{
		recordService: recordService,
		exportService: exportService,
	}
}

func (h *WeatherRecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var input services.CreateRecordInput
	if err := decodeBody(w, r, &input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	input.Location = strings.TrimSpace(input.Location)
	if err := validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	record, err := h.recordService.CreateRecord(r.Context(), input)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, record)
}

// ListRecords supports ?location=, ?startDate=&endDate= (overlapping ranges) and ?limit=&offset=.
func (h *WeatherRecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRecordFilter(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	records, err := h.recordService.ListRecords(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, records)
}

func (h *WeatherRecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := parseRecordID(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	record, err := h.recordService.GetRecord(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}

// updateRecordRequest accepts the record ID in the body as a number or a string.
type updateRecordRequest struct {
	ID json.RawMessage `json:"id"`
	services.UpdateRecordInput
}

// UpdateRecord handles PUT /weather-records with the ID in the body and PUT /weather-records/{id}.
func (h *WeatherRecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	var req updateRecordRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rawID, ok := mux.Vars(r)["id"]
	if !ok {
		rawID = strings.Trim(string(bytes.TrimSpace(req.ID)), `"`)
		if rawID == "null" {
			rawID = ""
		}
	}
	if rawID == "" {
		respondWithError(w, http.StatusBadRequest, "Record ID is required")
		return
	}
	id, err := parseRecordID(rawID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	record, err := h.recordService.UpdateRecord(r.Context(), id, req.UpdateRecordInput)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}

// DeleteRecord handles DELETE /weather-records?id= and DELETE /weather-records/{id}.
func (h *WeatherRecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	rawID, ok := mux.Vars(r)["id"]
	if !ok {
		rawID = r.URL.Query().Get("id")
	}
	if rawID == "" {
		respondWithError(w, http.StatusBadRequest, "Record ID is required")
		return
	}
	id, err := parseRecordID(rawID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	if err := h.recordService.DeleteRecord(r.Context(), id); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Record deleted successfully"})
}

// ExportRecords sends the filtered records as an attachment in ?format= (json by default).
func (h *WeatherRecordHandler) ExportRecords(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRecordFilter(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	doc, err := h.exportService.Export(r.Context(), r.URL.Query().Get("format"), filter)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Data)
}

func parseRecordFilter(r *http.Request) (repository.RecordFilter, error) {
	query := r.URL.Query()
	limit, offset := ParsePaginationParams(r)

	filter := repository.RecordFilter{
		Location: strings.TrimSpace(query.Get("location")),
		Limit:    limit,
		Offset:   offset,
	}

	startRaw, endRaw := query.Get("startDate"), query.Get("endDate")
	if startRaw != "" && endRaw != "" {
		start, err := services.ParseRecordDate(startRaw)
		if err != nil {
			return filter, err
		}
		end, err := services.ParseRecordDate(endRaw)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &start
		filter.EndDate = &end
	}

	return filter, nil
}

func parseRecordID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid record ID")
	}
	return uint(id), nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRecordBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "Invalid request body"
	}
	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fe.Field())
	}
	return "Missing required fields: " + strings.Join(fields, ", ")
}
