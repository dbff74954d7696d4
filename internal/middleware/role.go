package middleware

import (
	"net/http"

	"github.com/engivid/engivid-backend/internal/model"
	"github.com/engivid/engivid-backend/internal/response"
	"github.com/gin-gonic/gin"
)

// RequireProfessor rejects requests whose JWT does not carry the professor
// role. Catalog mutations are professor-only.
func RequireProfessor() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if claims.Role != model.UserTypeProfessor {
			response.AbortFail(c, http.StatusForbidden, response.ErrProfessorAccessOnly)
			return
		}

		c.Next()
	}
}
