package certificates

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"certificate-hub/certificate-hub-backend/internal/api"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	certs := rg.Group("/certificates")
	{
		certs.POST("", h.Issue)
		certs.GET("", h.List)
		certs.GET("/:id", h.Get)
	}
}

func (h *Handler) Issue(c *gin.Context) {
	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondError(c, http.StatusBadRequest, api.CodeBadInput, err.Error())
		return
	}

	result, err := h.service.Issue(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	h.logger.Info("certificate created", zap.String("key", result.Key))
	c.JSON(http.StatusCreated, gin.H{"message": "Certificate created"})
}

func (h *Handler) Get(c *gin.Context) {
	info, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *Handler) List(c *gin.Context) {
	recs, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, recs)
}

func (h *Handler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		api.RespondError(c, http.StatusNotFound, api.CodeNotFound, err.Error())
	case errors.Is(err, ErrDependencyUnavailable):
		h.logger.Error("dependency failure", zap.Error(err))
		api.RespondError(c, http.StatusServiceUnavailable, api.CodeDependencyUnavailable, err.Error())
	case errors.Is(err, ErrRenderFailure):
		h.logger.Error("render failure", zap.Error(err))
		api.RespondError(c, http.StatusInternalServerError, api.CodeRenderFailure, err.Error())
	default:
		h.logger.Error("unexpected failure", zap.Error(err))
		api.RespondError(c, http.StatusInternalServerError, api.CodeInternal, err.Error())
	}
}
