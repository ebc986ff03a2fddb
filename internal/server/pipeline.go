package server

import (
	"encoding/json"
	"net/http"

	"calorie-workers/internal/common/errors"
	"calorie-workers/internal/nutrition"
)

// DailyPipelineRequest becomes the process variables of a new daily pipeline instance.
type DailyPipelineRequest struct {
	UserRef     string                      `json:"userRef"`
	SummaryDate string                      `json:"summaryDate,omitempty"`
	Frequencies nutrition.IntakeSelection   `json:"frequencies"`
	Durations   nutrition.ActivitySelection `json:"durations"`
	Measurement *nutrition.BodyMeasurement  `json:"measurement,omitempty"`
	Email       string                      `json:"email,omitempty"`
	Phone       string                      `json:"phone,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// startDailyPipeline rejects input the calculators would reject before any process instance exists.
func (s *Server) startDailyPipeline(w http.ResponseWriter, r *http.Request) {
	var req DailyPipelineRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: string(errors.ErrCodeParseError), Message: err.Error()})
		return
	}
	if req.UserRef == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: string(errors.ErrCodeSchemaValidationFailed), Message: "userRef is required"})
		return
	}

	_, err := nutrition.RunDailyPipeline(s.opts.Catalog, nutrition.DailyInput{
		Frequencies: req.Frequencies,
		Durations:   req.Durations,
		Measurement: req.Measurement,
	})
	if err != nil {
		stdErr := errors.FromCalculationError(err)
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: string(stdErr.Code), Message: stdErr.Details})
		return
	}

	key, err := s.opts.Starter.StartDailyPipeline(r.Context(), s.opts.ProcessID, req)
	if err != nil {
		stdErr := errors.FromCalculationError(err)
		s.logger.Error("failed to start daily pipeline", map[string]interface{}{
			"userRef": req.UserRef,
			"error":   err,
		})
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: string(stdErr.Code), Message: stdErr.Message})
		return
	}

	s.logger.Info("daily pipeline started", map[string]interface{}{
		"userRef":            req.UserRef,
		"processInstanceKey": key,
	})
	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"processInstanceKey": key,
		"bpmnProcessId":      s.opts.ProcessID,
	})
}
