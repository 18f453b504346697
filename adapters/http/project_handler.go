package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	projectUC "github.com/khoahotran/portfolio-api/internal/application/usecase/project"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type ProjectHandler struct {
	*ResourceHandler[project.Project, project.Filter, ProjectRequest, ProjectDTO]
	projectUseCase *projectUC.ProjectUseCase
	feedUseCase    *projectUC.FeedUseCase
	logger         logger.Logger
}

func NewProjectHandler(uc *projectUC.ProjectUseCase, feedUC *projectUC.FeedUseCase, log logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		ResourceHandler: &ResourceHandler[project.Project, project.Filter, ProjectRequest, ProjectDTO]{
			svc:        uc,
			name:       "project",
			newRequest: defaultProjectRequest,
			fromRecord: newProjectRequest,
			apply:      func(r ProjectRequest, p *project.Project) { r.apply(p) },
			present:    ToProjectDTO,
			filter:     projectFilter,
			logger:     log,
		},
		projectUseCase: uc,
		feedUseCase:    feedUC,
		logger:         log,
	}
}

// projectFilter reads ?skill=&status=&profile=. skill matches any
// technology containing it, ignoring case.
func projectFilter(c *gin.Context) (project.Filter, error) {
	id, err := profileParam(c)
	if err != nil {
		return project.Filter{}, err
	}
	return project.Filter{
		ProfileID:  id,
		Technology: c.Query("skill"),
		Status:     c.Query("status"),
	}, nil
}

func (h *ProjectHandler) Featured(c *gin.Context) {
	projects, err := h.projectUseCase.Featured(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, mapAll(projects, ToProjectDTO))
}

func (h *ProjectHandler) Technologies(c *gin.Context) {
	counts, err := h.projectUseCase.Technologies(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *ProjectHandler) Feed(c *gin.Context) {
	feed, err := h.feedUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")

	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write RSS feed to response", err)
	}
}
