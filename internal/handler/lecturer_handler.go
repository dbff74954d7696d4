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

// LecturerHandler handles lecturer endpoints.
type LecturerHandler struct {
	lecturerService *service.LecturerService
	mediaService    *service.MediaService
}

// NewLecturerHandler creates a new LecturerHandler.
func NewLecturerHandler(lecturerService *service.LecturerService, mediaService *service.MediaService) *LecturerHandler {
	return &LecturerHandler{
		lecturerService: lecturerService,
		mediaService:    mediaService,
	}
}

// ListLecturers godoc
// GET /api/v1/lecturers
func (h *LecturerHandler) ListLecturers(c *gin.Context) {
	lecturers, err := h.lecturerService.GetAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"lecturers": lecturers})
}

// GetLecturer godoc
// GET /api/v1/lecturers/:id
func (h *LecturerHandler) GetLecturer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	lecturer, err := h.lecturerService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if lecturer == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"lecturer": lecturer})
}

// CreateLecturer godoc
// POST /api/v1/lecturers (professor only)
func (h *LecturerHandler) CreateLecturer(c *gin.Context) {
	var req model.CreateLecturerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	lecturer, err := h.lecturerService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"lecturer": lecturer})
}

// UploadLecturerImage godoc
// POST /api/v1/lecturers/:id/image (professor only)
// Uploads a portrait image and stores its URL on the lecturer.
func (h *LecturerHandler) UploadLecturerImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	url, err := h.mediaService.SaveUpload(file, header)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFileType):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	updated, err := h.lecturerService.SetImage(c.Request.Context(), id, url)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if !updated {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"url": url})
}
