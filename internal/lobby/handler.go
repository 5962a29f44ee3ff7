package lobby

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// POST /table/join  (address 来自 JWT)
func (h *Handler) Join(c *gin.Context) {
	info, err := h.svc.Join(c.Request.Context(), c.GetString("address"))
	if errors.Is(err, ErrAlreadySeated) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, JoinResponse{TableID: info.ID, Balance: info.Balance})
}

// POST /table/leave
func (h *Handler) Leave(c *gin.Context) {
	if err := h.svc.Leave(c.Request.Context(), c.GetString("address")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /table
func (h *Handler) Current(c *gin.Context) {
	id, err := h.svc.TableOf(c.Request.Context(), c.GetString("address"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if id == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not seated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tableId": id})
}
