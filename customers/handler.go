package customers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/customer-api/errors"
	"github.com/skillsenselab/customer-api/server"
	"github.com/skillsenselab/customer-api/validation"
)

// Handler exposes customer CRUD over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler creates the customer HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the customer routes on the given router group. The caller
// is expected to have applied the auth middleware to the group.
func (h *Handler) Register(r gin.IRouter) {
	grp := r.Group("/customers")
	grp.POST("", h.create)
	grp.GET("", h.list)
	grp.GET("/:id", h.get)
	grp.PATCH("/:id", h.update)
	grp.DELETE("/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid request body").WithCause(err))
		return
	}
	if err := validation.Validate(in); err != nil {
		server.RespondWithError(c, err)
		return
	}

	customer, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, customer)
}

func (h *Handler) list(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, result)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	customer, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, customer)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid request body").WithCause(err))
		return
	}
	if err := validation.Validate(in); err != nil {
		server.RespondWithError(c, err)
		return
	}

	customer, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, customer)
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}

// parseID parses the :id path parameter, responding with 400 on failure.
func parseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("id", "must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}
