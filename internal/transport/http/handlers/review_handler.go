package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/boliek/contentsafety/internal/domain/enums"
	pgrepo "github.com/boliek/contentsafety/internal/repo/postgres"
	reviewsvc "github.com/boliek/contentsafety/internal/services/review"
	"github.com/boliek/contentsafety/internal/transport/http/dto"
	httperrors "github.com/boliek/contentsafety/internal/transport/http/errors"
)

type ReviewHandler struct {
	service *reviewsvc.Service
	logger  *zap.Logger
}

func NewReviewHandler(service *reviewsvc.Service, logger *zap.Logger) *ReviewHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewHandler{service: service, logger: logger}
}

// Next hands out at most one pending review. Tasks whose content vanished are
// acknowledged on the spot and the next call moves on to fresh work.
func (h *ReviewHandler) Next(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "REVIEW_SERVICE_UNAVAILABLE", "review service is unavailable")
		return
	}

	pending, err := h.service.FetchNextReview(r.Context())
	if err != nil {
		if errors.Is(err, reviewsvc.ErrContentGone) && pending != nil {
			h.logger.Warn("dropping review task for deleted content",
				zap.Int64("content_id", pending.Task.ContentID),
				zap.String("message_id", pending.MessageID),
			)
			if dropErr := h.service.DropTask(r.Context(), pending.ReceiptHandle); dropErr != nil {
				h.logger.Error("drop orphaned review task failed", zap.Error(dropErr))
			}
			httperrors.Write(w, http.StatusOK, dto.NextReviewResponse{})
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to fetch review task")
		return
	}
	if pending == nil {
		httperrors.Write(w, http.StatusOK, dto.NextReviewResponse{})
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NextReviewResponse{
		Review: &dto.PendingReviewResponse{
			ComplaintID:        pending.Task.ComplaintID,
			ContentID:          pending.Task.ContentID,
			PinnerID:           pending.Task.PinnerID,
			ComplaintType:      string(pending.Task.ComplaintType),
			ComplaintTimestamp: pending.Task.ComplaintTimestamp,
			ContentURL:         pending.ContentURL,
			ContentStatus:      string(pending.Content.DisplayStatus),
			MessageID:          pending.MessageID,
			ReceiptHandle:      pending.ReceiptHandle,
		},
	})
}

func (h *ReviewHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "REVIEW_SERVICE_UNAVAILABLE", "review service is unavailable")
		return
	}

	var req dto.ResolveComplaintRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	verdict, err := enums.ParseVerdict(req.Verdict)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid verdict")
		return
	}

	err = h.service.ResolveComplaint(r.Context(), req.ComplaintID, req.ReviewerEmail, verdict, req.ReceiptHandle)
	if err != nil {
		switch {
		case errors.Is(err, reviewsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid resolve request")
		case errors.Is(err, pgrepo.ErrReviewerNotFound):
			writeNotFound(w, "REVIEWER_NOT_FOUND", "reviewer is not registered")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to resolve complaint")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ResolveComplaintResponse{OK: true})
}
