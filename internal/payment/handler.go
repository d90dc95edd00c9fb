package payment

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"payments-gateway/internal/models"
	"payments-gateway/internal/notify"
	"payments-gateway/internal/store"
)

type Handler struct {
	Store    store.Store
	Notifier notify.Notifier
}

func NewHandler(s store.Store, n notify.Notifier) *Handler {
	if n == nil {
		n = notify.Nop{}
	}
	return &Handler{
		Store:    s,
		Notifier: n,
	}
}

// Register mounts the payment routes under /payments.
func (h *Handler) Register(r gin.IRouter) {
	g := r.Group("/payments")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	payments, err := h.Store.List(c.Request.Context())
	if err != nil {
		h.serverError(c, "list", err)
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	c.JSON(http.StatusOK, payments)
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")

	p, err := h.Store.Get(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, "get", err)
		return
	}
	if p == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Create always lets the store assign the id; any id in the body is dropped.
func (h *Handler) Create(c *gin.Context) {
	req, err := bindPayment(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	saved, err := h.Store.Save(c.Request.Context(), req.Payment(""))
	if err != nil {
		h.serverError(c, "create", err)
		return
	}

	log.Info().Str("id", saved.ID).Msg("Payment created")
	h.notify(c.Request.Context(), notify.ActionCreated, *saved)
	c.JSON(http.StatusCreated, saved)
}

// Update replaces from, to and amount of an existing payment. It never
// creates: an unknown path id is 404. The body id is ignored.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")

	req, err := bindPayment(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	existing, err := h.Store.Get(ctx, id)
	if err != nil {
		h.serverError(c, "update", err)
		return
	}
	if existing == nil {
		notFound(c)
		return
	}

	saved, err := h.Store.Save(ctx, req.Payment(existing.ID))
	if err != nil {
		h.serverError(c, "update", err)
		return
	}

	log.Info().Str("id", saved.ID).Msg("Payment updated")
	h.notify(ctx, notify.ActionUpdated, *saved)
	c.JSON(http.StatusOK, saved)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	ctx := c.Request.Context()
	existing, err := h.Store.Get(ctx, id)
	if err != nil {
		h.serverError(c, "delete", err)
		return
	}
	if existing == nil {
		notFound(c)
		return
	}

	if err := h.Store.Delete(ctx, id); err != nil {
		h.serverError(c, "delete", err)
		return
	}

	log.Info().Str("id", id).Msg("Payment deleted")
	h.notify(ctx, notify.ActionDeleted, *existing)
	c.Status(http.StatusOK)
}

func (h *Handler) notify(ctx context.Context, action notify.Action, p models.Payment) {
	if err := h.Notifier.Notify(ctx, notify.Event{Action: action, Payment: p}); err != nil {
		log.Warn().Err(err).Str("id", p.ID).Str("action", string(action)).Msg("Failed to send payment notification")
	}
}

func (h *Handler) serverError(c *gin.Context, op string, err error) {
	log.Error().Err(err).Str("op", op).Str("id", c.Param("id")).Msg("Payment store failure")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func badRequest(c *gin.Context, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  verr.Error(),
			"fields": verr.Fields,
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
}
