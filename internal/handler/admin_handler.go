package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mindbuilders/dtmms/internal/dto"
	appErrors "github.com/mindbuilders/dtmms/pkg/errors"
	"github.com/mindbuilders/dtmms/pkg/response"
)

// storeResetter restores the demo dataset.
type storeResetter interface {
	Reset(ctx context.Context) error
	Counts(ctx context.Context) (map[string]int, error)
}

// AdminHandler exposes store maintenance.
type AdminHandler struct {
	store  storeResetter
	logger *zap.Logger
}

func NewAdminHandler(store storeResetter, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{store: store, logger: logger}
}

// Reset godoc
// @Summary Reset the store to the demo dataset
// @Description Deletes every collection, the session user and the initialized flag, then seeds again
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/reset [post]
func (h *AdminHandler) Reset(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.store.Reset(ctx); err != nil {
		h.logger.Error("store reset failed", zap.Error(err))
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset store"))
		return
	}
	counts, err := h.store.Counts(ctx)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count records"))
		return
	}
	h.logger.Info("store reset", zap.Any("counts", counts))
	response.JSON(c, http.StatusOK, dto.ResetResponse{Reset: true, Counts: counts})
}
