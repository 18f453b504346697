package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/khoahotran/portfolio-api/internal/application/usecase/profile"
	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

// ProfileHandler serves profiles with every owned record nested.
type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	portfolios, err := h.profileUseCase.ListPortfolios(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, mapAll(portfolios, ToPortfolioDTO))
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, err := parseID(c, "profile")
	if err != nil {
		c.Error(err)
		return
	}
	portfolio, err := h.profileUseCase.PortfolioByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToPortfolioDTO(portfolio))
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	p := &profile.Profile{}
	req.apply(p)

	created, err := h.profileUseCase.Create(c.Request.Context(), p)
	if err != nil {
		c.Error(err)
		return
	}
	h.respondPortfolio(c, http.StatusCreated, created)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	h.update(c, func(*profile.Profile) ProfileRequest { return ProfileRequest{} })
}

func (h *ProfileHandler) PatchProfile(c *gin.Context) {
	h.update(c, newProfileRequest)
}

func (h *ProfileHandler) update(c *gin.Context, base func(*profile.Profile) ProfileRequest) {
	id, err := parseID(c, "profile")
	if err != nil {
		c.Error(err)
		return
	}
	updated, err := h.profileUseCase.Update(c.Request.Context(), id, func(p *profile.Profile) error {
		req := base(p)
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		req.apply(p)
		return nil
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.respondPortfolio(c, http.StatusOK, updated)
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	id, err := parseID(c, "profile")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.profileUseCase.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the main profile.
func (h *ProfileHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.profileUseCase.Main(ctx)
	if err != nil {
		c.Error(err)
		return
	}
	portfolio, err := h.profileUseCase.Portfolio(ctx, p)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToPortfolioDTO(portfolio))
}

func (h *ProfileHandler) Summary(c *gin.Context) {
	id, err := parseID(c, "profile")
	if err != nil {
		c.Error(err)
		return
	}
	out, err := h.profileUseCase.Summary(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileSummaryDTO(out))
}

func (h *ProfileHandler) respondPortfolio(c *gin.Context, status int, p *profile.Profile) {
	portfolio, err := h.profileUseCase.Portfolio(c.Request.Context(), p)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(status, ToPortfolioDTO(portfolio))
}
