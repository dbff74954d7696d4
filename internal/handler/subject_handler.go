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

// SubjectHandler handles subject catalog endpoints.
type SubjectHandler struct {
	catalogService *service.CatalogService
}

// NewSubjectHandler creates a new SubjectHandler.
func NewSubjectHandler(catalogService *service.CatalogService) *SubjectHandler {
	return &SubjectHandler{catalogService: catalogService}
}

// ResolveSubjects godoc
// GET /api/v1/subjects?branch=CSE&semester=3
// Resolves a (branch, semester) pair to its subject list, provisioning the
// semester on first access.
func (h *SubjectHandler) ResolveSubjects(c *gin.Context) {
	branchRef := c.Query("branch")
	if branchRef == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	semesterNumber, err := strconv.Atoi(c.Query("semester"))
	if err != nil || semesterNumber < 1 || semesterNumber > 8 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	branch, err := h.catalogService.ResolveBranch(c.Request.Context(), branchRef)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if branch == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	subjects, err := h.catalogService.ResolveSubjects(c.Request.Context(), branch.ID, semesterNumber)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"branch":   branch,
		"semester": semesterNumber,
		"subjects": subjects,
	})
}

// GetSubject godoc
// GET /api/v1/subjects/:id
func (h *SubjectHandler) GetSubject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	subject, err := h.catalogService.GetSubjectByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if subject == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"subject": subject})
}

// CreateSubject godoc
// POST /api/v1/subjects (professor only)
func (h *SubjectHandler) CreateSubject(c *gin.Context) {
	var req model.CreateSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subject, err := h.catalogService.CreateSubject(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSemesterNotFound), errors.Is(err, service.ErrBranchMismatch):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"subject": subject})
}

// DeleteSubject godoc
// DELETE /api/v1/subjects/:id (professor only)
func (h *SubjectHandler) DeleteSubject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	deleted, err := h.catalogService.DeleteSubject(c.Request.Context(), id)
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
