package router

import (
	"net/http"
	"time"

	"github.com/engivid/engivid-backend/internal/config"
	"github.com/engivid/engivid-backend/internal/handler"
	"github.com/engivid/engivid-backend/internal/middleware"
	"github.com/engivid/engivid-backend/internal/response"
	"github.com/engivid/engivid-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Branch   *handler.BranchHandler
	Subject  *handler.SubjectHandler
	Video    *handler.VideoHandler
	Lecturer *handler.LecturerHandler
	WS       *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded media files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.GetProfile)
	}

	// ─── 2. Public Catalog Group (No Auth) ─────────────────────────────
	catalog := router.Group("/api/v1")
	{
		catalog.GET("/branches", handlers.Branch.ListBranches)
		catalog.GET("/branches/:code", handlers.Branch.GetBranch)
		catalog.GET("/branches/:code/semesters", handlers.Branch.ListSemesters)

		catalog.GET("/subjects", handlers.Subject.ResolveSubjects)
		catalog.GET("/subjects/:id", handlers.Subject.GetSubject)
		catalog.GET("/subjects/:id/videos", handlers.Video.ListSubjectVideos)

		catalog.GET("/videos/:id", handlers.Video.GetVideo)
		catalog.POST("/videos/:id/view", handlers.Video.RecordView)

		catalog.GET("/lecturers", handlers.Lecturer.ListLecturers)
		catalog.GET("/lecturers/:id", handlers.Lecturer.GetLecturer)
	}

	// ─── 3. Professor Group (JWT + Session + Role) ─────────────────────
	professorAPI := router.Group("/api/v1")
	professorAPI.Use(
		middleware.RequireJWT(authService),
		middleware.CheckSession(authService),
		middleware.RequireProfessor(),
	)
	{
		professorAPI.POST("/subjects", handlers.Subject.CreateSubject)
		professorAPI.DELETE("/subjects/:id", handlers.Subject.DeleteSubject)

		professorAPI.POST("/videos", handlers.Video.CreateVideo)
		professorAPI.PATCH("/videos/:id", handlers.Video.UpdateVideo)
		professorAPI.DELETE("/videos/:id", handlers.Video.DeleteVideo)

		professorAPI.POST("/lecturers", handlers.Lecturer.CreateLecturer)
		professorAPI.POST("/lecturers/:id/image", handlers.Lecturer.UploadLecturerImage)
	}

	// ─── 4. WebSocket Group ────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/catalog/stream", handlers.WS.CatalogStream)
	}

	return router
}
