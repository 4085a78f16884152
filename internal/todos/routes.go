package todos

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ramvik/taskhub/pkg/errors"
	"github.com/ramvik/taskhub/pkg/logger"
)

func NewHandler(repo Repo, log logger.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With("todos_handler"),
	}
}

type Handler struct {
	repo Repo
	log  logger.Logger
}

func (h *Handler) Register(r fiber.Router) {
	r.Get("/", h.handleList)
	r.Get("/:id", h.handleGet)
	r.Post("/", h.handleCreate)
	r.Put("/:id", h.handleUpdate)
	r.Delete("/:id", h.handleDelete)
}

func (h *Handler) handleList(c *fiber.Ctx) error {
	all, err := h.repo.List(c.Context())
	if err != nil {
		return h.sendRepoError(c, errors.WrapFail(err, "list todos"))
	}

	// empty list renders as [], not null
	if all == nil {
		all = []Todo{}
	}

	return c.Status(http.StatusOK).JSON(all)
}

func (h *Handler) handleGet(c *fiber.Ctx) error {
	id, err := h.getIDOrErr(c)
	if err != nil {
		h.log.Warn(err)
		return h.sendError(c, http.StatusBadRequest, "bad todo id")
	}

	t, err := h.repo.Get(c.Context(), id)
	if err != nil {
		return h.sendRepoError(c, errors.WrapFail(err, "get todo"))
	}

	return c.Status(http.StatusOK).JSON(t)
}

func (h *Handler) handleCreate(c *fiber.Ctx) error {
	var spec CreateTodo
	err := c.BodyParser(&spec)
	if err != nil {
		h.log.Warn(errors.WrapFail(err, "unmarshal todo payload"))
		return h.sendError(c, http.StatusBadRequest, "bad json")
	}

	t, err := h.repo.Create(c.Context(), spec)
	if err != nil {
		return h.sendRepoError(c, errors.WrapFail(err, "create todo"))
	}

	return c.Status(http.StatusOK).JSON(t)
}

func (h *Handler) handleUpdate(c *fiber.Ctx) error {
	id, err := h.getIDOrErr(c)
	if err != nil {
		h.log.Warn(err)
		return h.sendError(c, http.StatusBadRequest, "bad todo id")
	}

	var patch UpdateTodo
	err = c.BodyParser(&patch)
	if err != nil {
		h.log.Warn(errors.WrapFail(err, "unmarshal todo patch"))
		return h.sendError(c, http.StatusBadRequest, "bad json")
	}

	t, err := h.repo.Update(c.Context(), id, patch)
	if err != nil {
		return h.sendRepoError(c, errors.WrapFail(err, "update todo"))
	}

	return c.Status(http.StatusOK).JSON(t)
}

func (h *Handler) handleDelete(c *fiber.Ctx) error {
	id, err := h.getIDOrErr(c)
	if err != nil {
		h.log.Warn(err)
		return h.sendError(c, http.StatusBadRequest, "bad todo id")
	}

	t, err := h.repo.Delete(c.Context(), id)
	if err != nil {
		return h.sendRepoError(c, errors.WrapFail(err, "delete todo"))
	}

	return c.Status(http.StatusOK).JSON(t)
}

// sendRepoError keeps the split between the one negative result the
// store knows (absent id, 404) and backend faults (503).
func (h *Handler) sendRepoError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotFound) {
		return h.sendError(c, http.StatusNotFound, "")
	}

	h.log.Error(err)
	return h.sendError(c, http.StatusServiceUnavailable, "storage unavailable")
}

func (h *Handler) sendError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(map[string]string{"message": msg})
}

func (h *Handler) getIDOrErr(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Errorf("got malformed todo id %q", raw)
	}

	return id, nil
}
