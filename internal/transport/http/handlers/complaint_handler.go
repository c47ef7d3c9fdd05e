package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/boliek/contentsafety/internal/domain/enums"
	pgrepo "github.com/boliek/contentsafety/internal/repo/postgres"
	intakesvc "github.com/boliek/contentsafety/internal/services/intake"
	"github.com/boliek/contentsafety/internal/transport/http/dto"
	httperrors "github.com/boliek/contentsafety/internal/transport/http/errors"
)

type ComplaintHandler struct {
	service *intakesvc.Service
}

func NewComplaintHandler(service *intakesvc.Service) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

func (h *ComplaintHandler) File(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "INTAKE_SERVICE_UNAVAILABLE", "complaint intake is unavailable")
		return
	}

	var req dto.FileComplaintRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	displayStatus, err := enums.ParseDisplayStatus(req.DisplayStatus)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid display_status")
		return
	}
	complaintType, err := enums.ParseComplaintType(req.ComplaintType)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid complaint_type")
		return
	}

	result, err := h.service.FileComplaint(r.Context(), intakesvc.Filing{
		PinnerEmail:   req.PinnerEmail,
		ContentID:     req.ContentID,
		DisplayStatus: displayStatus,
		ComplaintType: complaintType,
	})
	if err != nil {
		switch {
		case errors.Is(err, intakesvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid complaint request")
		case errors.Is(err, pgrepo.ErrPinnerNotFound):
			writeNotFound(w, "PINNER_NOT_FOUND", "pinner is not registered")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to file complaint")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.FileComplaintResponse{
		ComplaintID: result.ComplaintID,
		Dispatch:    string(result.Dispatch),
		MessageID:   result.MessageID,
	})
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}
