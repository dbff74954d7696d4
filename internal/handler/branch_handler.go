package handler

import (
	"net/http"

	"github.com/engivid/engivid-backend/internal/response"
	"github.com/engivid/engivid-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// BranchHandler handles branch catalog endpoints.
type BranchHandler struct {
	catalogService *service.CatalogService
}

// NewBranchHandler creates a new BranchHandler.
func NewBranchHandler(catalogService *service.CatalogService) *BranchHandler {
	return &BranchHandler{catalogService: catalogService}
}

// ListBranches godoc
// GET /api/v1/branches
// Returns all branches, active and coming-soon alike.
func (h *BranchHandler) ListBranches(c *gin.Context) {
	branches, err := h.catalogService.ListBranches(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"branches": branches})
}

// GetBranch godoc
// GET /api/v1/branches/:code
// Looks up a branch by code (e.g. "CSE") or numeric id.
func (h *BranchHandler) GetBranch(c *gin.Context) {
	branch, err := h.catalogService.ResolveBranch(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if branch == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"branch": branch})
}

// ListSemesters godoc
// GET /api/v1/branches/:code/semesters
// Returns the semesters provisioned so far for a branch, ordered by number.
func (h *BranchHandler) ListSemesters(c *gin.Context) {
	branch, err := h.catalogService.ResolveBranch(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if branch == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	semesters, err := h.catalogService.ListSemesters(c.Request.Context(), branch.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"branch":    branch,
		"semesters": semesters,
	})
}
