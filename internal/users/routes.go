package users

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ramvik/taskhub/pkg/errors"
	"github.com/ramvik/taskhub/pkg/logger"
)

func NewHandler(state *State, log logger.Logger) *Handler {
	return &Handler{
		state: state,
		log:   log.With("users_handler"),
	}
}

type Handler struct {
	state *State
	log   logger.Logger
}

func (h *Handler) Register(r fiber.Router) {
	r.Get("/", h.handleList)
	r.Get("/:id", h.handleGet)
	r.Post("/", h.handleCreate)
	r.Put("/:id", h.handleUpdate)
	r.Delete("/:id", h.handleDelete)
}

func (h *Handler) handleList(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.state.List())
}

func (h *Handler) handleGet(c *fiber.Ctx) error {
	id, err := h.getIDOrErr(c)
	if err != nil {
		h.log.Warn(err)
		return h.sendError(c, http.StatusBadRequest, "bad user id")
	}

	u, ok := h.state.Get(id)
	if !ok {
		return h.sendError(c, http.StatusNotFound, "")
	}

	return c.Status(http.StatusOK).JSON(u)
}

func (h *Handler) handleCreate(c *fiber.Ctx) error {
	var proto ProtoUser
	err := c.BodyParser(&proto)
	if err != nil {
		h.log.Warn(errors.WrapFail(err, "unmarshal user payload"))
		return h.sendError(c, http.StatusBadRequest, "bad json")
	}

	return c.Status(http.StatusOK).JSON(h.state.Create(proto))
}

func (h *Handler) handleUpdate(c *fiber.Ctx) error {
	id, err := h.getIDOrErr(c)
	if err != nil {
		h.log.Warn(err)
		return h.sendError(c, http.StatusBadRequest, "bad user id")
	}

	var patch UserUpdate
	err = c.BodyParser(&patch)
	if err != nil {
		h.log.Warn(errors.WrapFail(err, "unmarshal user patch"))
		return h.sendError(c, http.StatusBadRequest, "bad json")
	}

	u, ok := h.state.Update(id, patch)
	if !ok {
		return h.sendError(c, http.StatusNotFound, "")
	}

	return c.Status(http.StatusOK).JSON(u)
}

func (h *Handler) handleDelete(c *fiber.Ctx) error {
	id, err := h.getIDOrErr(c)
	if err != nil {
		h.log.Warn(err)
		return h.sendError(c, http.StatusBadRequest, "bad user id")
	}

	u, ok := h.state.Delete(id)
	if !ok {
		return h.sendError(c, http.StatusNotFound, "")
	}

	return c.Status(http.StatusOK).JSON(u)
}

func (h *Handler) sendError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(map[string]string{"message": msg})
}

func (h *Handler) getIDOrErr(c *fiber.Ctx) (uint64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.Errorf("got malformed user id %q", raw)
	}

	return id, nil
}
