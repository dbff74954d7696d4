package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/engivid/engivid-backend/internal/model"
	"github.com/engivid/engivid-backend/internal/response"
	"github.com/engivid/engivid-backend/internal/service"
	"github.com/engivid/engivid-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// VideoHandler handles lecture video endpoints.
type VideoHandler struct {
	videoService   *service.VideoService
	catalogService *service.CatalogService
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(videoService *service.VideoService, catalogService *service.CatalogService) *VideoHandler {
	return &VideoHandler{
		videoService:   videoService,
		catalogService: catalogService,
	}
}

// ListSubjectVideos godoc
// GET /api/v1/subjects/:id/videos
// Returns a subject's videos newest-first, each with its lecturer attached.
func (h *VideoHandler) ListSubjectVideos(c *gin.Context) {
	subjectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	subject, err := h.catalogService.GetSubjectByID(c.Request.Context(), subjectID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if subject == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	videos, err := h.videoService.ListBySubject(c.Request.Context(), subjectID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"subject": subject,
		"videos":  videos,
	})
}

// GetVideo godoc
// GET /api/v1/videos/:id
func (h *VideoHandler) GetVideo(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	video, err := h.videoService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if video == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"video": video})
}

// CreateVideo godoc
// POST /api/v1/videos (professor only)
func (h *VideoHandler) CreateVideo(c *gin.Context) {
	var req model.CreateVideoRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	video, err := h.videoService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubjectNotFound), errors.Is(err, service.ErrLecturerNotFound):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"video": video})
}

// UpdateVideo godoc
// PATCH /api/v1/videos/:id (professor only)
// Applies a partial update; omitted fields are left untouched.
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateVideoRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	video, err := h.videoService.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubjectNotFound), errors.Is(err, service.ErrLecturerNotFound):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	if video == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"video": video})
}

// DeleteVideo godoc
// DELETE /api/v1/videos/:id (professor only)
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	deleted, err := h.videoService.Delete(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if !deleted {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// RecordView godoc
// POST /api/v1/videos/:id/view
// Queues a view event for asynchronous counting.
func (h *VideoHandler) RecordView(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	video, err := h.videoService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if video == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if err := h.videoService.QueueView(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{})
}
