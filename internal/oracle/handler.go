package oracle

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/paper-swap/paper_swap/internal/currency"
	"github.com/paper-swap/paper_swap/internal/fixedpoint"
)

// Handler exposes the quote publication endpoint feeding the oracle store.
type Handler struct {
	store  Store
	source string
}

// NewHandler builds an oracle HTTP handler publishing under the given source
// name.
func NewHandler(store Store, source string) *Handler {
	if source == "" {
		source = DefaultSource
	}
	return &Handler{store: store, source: source}
}

type publishRequest struct {
	Base     string `json:"base"`
	Quote    string `json:"quote"`
	Mantissa uint64 `json:"mantissa"`
	Scale    uint32 `json:"scale"`
}

// Publish stores a new rate observation for a supported pair.
func (h *Handler) Publish(c *fiber.Ctx) error {
	var req publishRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	base, err := currency.Parse(req.Base)
	if err != nil {
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	}
	quoteSym, err := currency.Parse(req.Quote)
	if err != nil {
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	}
	pair := currency.Pair{Base: base, Quote: quoteSym}
	if !pair.Supported() {
		return fiber.NewError(http.StatusUnprocessableEntity, "unsupported pair "+pair.String())
	}
	if req.Mantissa == 0 {
		return fiber.NewError(http.StatusUnprocessableEntity, "rate mantissa must be positive")
	}

	quote := Quote{
		Key:    pair.QuoteKey(h.source),
		Source: h.source,
		Rate:   fixedpoint.New(req.Mantissa, req.Scale),
		AsOf:   time.Now().UTC(),
	}
	if err := h.store.Publish(c.UserContext(), quote); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"key":   quote.Key,
		"rate":  quote.Rate.String(),
		"as_of": quote.AsOf,
	})
}
