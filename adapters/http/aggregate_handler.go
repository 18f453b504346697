package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	searchUC "github.com/khoahotran/portfolio-api/internal/application/usecase/search"
	statsUC "github.com/khoahotran/portfolio-api/internal/application/usecase/stats"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type SearchHandler struct {
	searchUseCase *searchUC.SearchUseCase
	logger        logger.Logger
}

func NewSearchHandler(uc *searchUC.SearchUseCase, log logger.Logger) *SearchHandler {
	return &SearchHandler{
		searchUseCase: uc,
		logger:        log,
	}
}

func (h *SearchHandler) Search(c *gin.Context) {
	res, err := h.searchUseCase.Execute(c.Request.Context(), searchUC.SearchInput{Query: c.Query("q")})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSearchResponse(res))
}

type StatsHandler struct {
	statsUseCase *statsUC.StatsUseCase
	logger       logger.Logger
}

func NewStatsHandler(uc *statsUC.StatsUseCase, log logger.Logger) *StatsHandler {
	return &StatsHandler{
		statsUseCase: uc,
		logger:       log,
	}
}

func (h *StatsHandler) Stats(c *gin.Context) {
	stats, err := h.statsUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToStatsResponse(stats))
}
