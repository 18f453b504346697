package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

// recordService is the CRUD surface shared by every profile-owned record.
type recordService[T any, F any] interface {
	Create(ctx context.Context, item *T) (*T, error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	List(ctx context.Context, filter F) ([]*T, error)
	Update(ctx context.Context, id uuid.UUID, apply func(*T) error) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ResourceHandler serves list/get/create/update/patch/delete for one record
// type. R is the request body, D the response representation.
type ResourceHandler[T any, F any, R any, D any] struct {
	svc        recordService[T, F]
	name       string
	newRequest func() R
	fromRecord func(*T) R
	apply      func(R, *T)
	present    func(*T) D
	filter     func(*gin.Context) (F, error)
	logger     logger.Logger
}

func (h *ResourceHandler[T, F, R, D]) List(c *gin.Context) {
	filter, err := h.filter(c)
	if err != nil {
		c.Error(err)
		return
	}
	items, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, mapAll(items, h.present))
}

func (h *ResourceHandler[T, F, R, D]) Get(c *gin.Context) {
	id, err := parseID(c, h.name)
	if err != nil {
		c.Error(err)
		return
	}
	item, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, h.present(item))
}

func (h *ResourceHandler[T, F, R, D]) Create(c *gin.Context) {
	req := h.newRequest()
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	var item T
	h.apply(req, &item)

	created, err := h.svc.Create(c.Request.Context(), &item)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, h.present(created))
}

// Update replaces every writable field (PUT).
func (h *ResourceHandler[T, F, R, D]) Update(c *gin.Context) {
	h.update(c, func(*T) R { return h.newRequest() })
}

// Patch merges the body over the stored record (PATCH).
func (h *ResourceHandler[T, F, R, D]) Patch(c *gin.Context) {
	h.update(c, h.fromRecord)
}

func (h *ResourceHandler[T, F, R, D]) update(c *gin.Context, base func(*T) R) {
	id, err := parseID(c, h.name)
	if err != nil {
		c.Error(err)
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), id, func(item *T) error {
		req := base(item)
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		h.apply(req, item)
		return nil
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, h.present(updated))
}

func (h *ResourceHandler[T, F, R, D]) Delete(c *gin.Context) {
	id, err := parseID(c, h.name)
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResourceHandler[T, F, R, D]) register(rg *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.POST("/", h.Create)
	rg.GET("/:id/", h.Get)
	rg.PUT("/:id/", h.Update)
	rg.PATCH("/:id/", h.Patch)
	rg.DELETE("/:id/", h.Delete)
}

func parseID(c *gin.Context, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperror.NewInvalidInput("invalid "+resource+" ID", err)
	}
	return id, nil
}

// profileParam reads the optional ?profile= filter.
func profileParam(c *gin.Context) (*uuid.UUID, error) {
	raw := c.Query("profile")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.NewInvalidInput("invalid profile ID", err)
	}
	return &id, nil
}
