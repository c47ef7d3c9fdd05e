package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/boliek/contentsafety/internal/domain/model"
	pgrepo "github.com/boliek/contentsafety/internal/repo/postgres"
	catalogsvc "github.com/boliek/contentsafety/internal/services/catalog"
	"github.com/boliek/contentsafety/internal/transport/http/dto"
	httperrors "github.com/boliek/contentsafety/internal/transport/http/errors"
)

type CatalogHandler struct {
	service *catalogsvc.Service
}

func NewCatalogHandler(service *catalogsvc.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Pinners(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	pinners, err := h.service.ListPinners(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list pinners")
		return
	}

	items := make([]dto.PinnerResponse, 0, len(pinners))
	for _, pinner := range pinners {
		items = append(items, dto.PinnerResponse{
			PinnerID: pinner.PinnerID,
			Name:     pinner.Name,
			Email:    pinner.Email,
		})
	}
	httperrors.Write(w, http.StatusOK, dto.PinnersResponse{Items: items})
}

func (h *CatalogHandler) Reviewers(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	reviewers, err := h.service.ListReviewers(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list reviewers")
		return
	}

	items := make([]dto.ReviewerResponse, 0, len(reviewers))
	for _, reviewer := range reviewers {
		items = append(items, dto.ReviewerResponse{
			ReviewerID: reviewer.ReviewerID,
			Name:       reviewer.Name,
			Email:      reviewer.Email,
		})
	}
	httperrors.Write(w, http.StatusOK, dto.ReviewersResponse{Items: items})
}

// Content lists every content row; ?visible=true narrows to rows still in
// good standing, which is what the pinner board renders.
func (h *CatalogHandler) Content(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	var (
		contents []model.Content
		err      error
	)
	if r.URL.Query().Get("visible") == "true" {
		contents, err = h.service.ListVisibleContent(r.Context())
	} else {
		contents, err = h.service.ListContent(r.Context())
	}
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list content")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ContentListResponse{Items: contentItems(contents)})
}

func (h *CatalogHandler) ContentByID(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	contentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid content id")
		return
	}

	content, err := h.service.GetContent(r.Context(), contentID)
	if err != nil {
		switch {
		case errors.Is(err, pgrepo.ErrContentNotFound):
			writeNotFound(w, "CONTENT_NOT_FOUND", "content does not exist")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load content")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, contentItem(content))
}

func (h *CatalogHandler) Complaints(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	complaints, err := h.service.ListComplaints(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list complaints")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ComplaintsResponse{Items: complaintItems(complaints)})
}

func (h *CatalogHandler) ComplaintsByContent(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	contentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid content id")
		return
	}

	complaints, err := h.service.ListComplaintsForContent(r.Context(), contentID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list complaints")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ComplaintsResponse{Items: complaintItems(complaints)})
}

// Dashboard is the manager view: every complaint grouped by where it sits in
// the workflow.
func (h *CatalogHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	board, err := h.service.ComplaintDashboard(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to build complaint dashboard")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ComplaintDashboardResponse{
		Open:     complaintItems(board.Open),
		InReview: complaintItems(board.InReview),
		Done:     complaintItems(board.Done),
	})
}

func contentItem(content model.Content) dto.ContentResponse {
	return dto.ContentResponse{
		ContentID:     content.ContentID,
		URL:           content.URL,
		DisplayStatus: string(content.DisplayStatus),
		PinnerID:      content.PinnerID,
	}
}

func contentItems(contents []model.Content) []dto.ContentResponse {
	items := make([]dto.ContentResponse, 0, len(contents))
	for _, content := range contents {
		items = append(items, contentItem(content))
	}
	return items
}

func complaintItems(complaints []model.Complaint) []dto.ComplaintResponse {
	items := make([]dto.ComplaintResponse, 0, len(complaints))
	for _, complaint := range complaints {
		items = append(items, dto.ComplaintResponse{
			ComplaintID:        complaint.ComplaintID,
			ContentID:          complaint.ContentID,
			PinnerID:           complaint.PinnerID,
			ComplaintType:      string(complaint.ComplaintType),
			ProcessStatus:      string(complaint.ProcessStatus),
			DisplayStatus:      string(complaint.DisplayStatus),
			ComplaintTimestamp: complaint.ComplaintTimestamp,
			ReviewTimestamp:    complaint.ReviewTimestamp,
			ReviewerID:         complaint.ReviewerID,
		})
	}
	return items
}
