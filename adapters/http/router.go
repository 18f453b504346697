package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type Handlers struct {
	Profile       *ProfileHandler
	Skill         *SkillHandler
	Project       *ProjectHandler
	Education     *EducationHandler
	Experience    *ExperienceHandler
	Certification *CertificationHandler
	Achievement   *AchievementHandler
	Search        *SearchHandler
	Stats         *StatsHandler
}

type RouterOptions struct {
	Logger logger.Logger
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter    service.RateLimiter
	AllowedOrigins []string
}

func NewRouter(h Handlers, opts RouterOptions) *gin.Engine {
	useJSONFieldNames()

	router := gin.New()
	router.Use(RecoveryMiddleware(opts.Logger))
	router.Use(RequestLogger(opts.Logger))
	router.Use(corsMiddleware(opts.AllowedOrigins))
	router.Use(ErrorMiddleware(opts.Logger))

	router.GET("/health/", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := router.Group("/api")
	if opts.RateLimiter != nil {
		api.Use(RateLimitMiddleware(opts.RateLimiter, opts.Logger))
	}
	{
		profiles := api.Group("/profiles")
		{
			profiles.GET("/", h.Profile.ListProfiles)
			profiles.POST("/", h.Profile.CreateProfile)
			profiles.GET("/me/", h.Profile.Me)
			profiles.GET("/:id/", h.Profile.GetProfile)
			profiles.PUT("/:id/", h.Profile.UpdateProfile)
			profiles.PATCH("/:id/", h.Profile.PatchProfile)
			profiles.DELETE("/:id/", h.Profile.DeleteProfile)
			profiles.GET("/:id/summary/", h.Profile.Summary)
		}

		skills := api.Group("/skills")
		skills.GET("/top/", h.Skill.Top)
		skills.GET("/categories/", h.Skill.Categories)
		h.Skill.register(skills)

		projects := api.Group("/projects")
		projects.GET("/featured/", h.Project.Featured)
		projects.GET("/technologies/", h.Project.Technologies)
		projects.GET("/feed/", h.Project.Feed)
		h.Project.register(projects)

		h.Education.register(api.Group("/education"))
		h.Experience.register(api.Group("/work-experience"))
		h.Certification.register(api.Group("/certifications"))
		h.Achievement.register(api.Group("/achievements"))

		api.GET("/search/", h.Search.Search)
		api.GET("/stats/", h.Stats.Stats)
	}

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	return cors.New(config)
}
