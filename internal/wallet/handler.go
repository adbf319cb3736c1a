package wallet

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes wallet read endpoints.
type Handler struct {
	store Store
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Get returns a wallet with all of its balances.
func (h *Handler) Get(c *fiber.Ctx) error {
	w, err := h.store.Get(c.UserContext(), c.Params("walletId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(walletResponse(w))
}

// GetByOwner returns the wallet claimed by an identity.
func (h *Handler) GetByOwner(c *fiber.Ctx) error {
	w, err := h.store.GetByOwner(c.UserContext(), c.Params("identity"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(walletResponse(w))
}

func walletResponse(w Wallet) fiber.Map {
	balances := make(fiber.Map, len(w.Balances))
	for sym, bal := range w.Balances {
		balances[string(sym)] = fiber.Map{
			"mantissa": bal.Mantissa,
			"scale":    bal.Scale,
			"display":  bal.String(),
		}
	}
	return fiber.Map{
		"wallet_id":  w.ID,
		"owner_id":   w.OwnerID,
		"balances":   balances,
		"created_at": w.CreatedAt,
	}
}
