package claim

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/paper-swap/paper_swap/internal/registry"
)

// Handler exposes the wallet claim endpoint.
type Handler struct {
	service *Service
}

// NewHandler builds a claim HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type claimRequest struct {
	Identity string `json:"identity"`
}

// Claim provisions a wallet for the identity, once.
func (h *Handler) Claim(c *fiber.Ctx) error {
	var req claimRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	w, err := h.service.Claim(c.UserContext(), req.Identity)
	if err != nil {
		if errors.Is(err, registry.ErrAlreadyRegistered) {
			return fiber.NewError(http.StatusConflict, err.Error())
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	balances := make(fiber.Map, len(w.Balances))
	for sym, bal := range w.Balances {
		balances[string(sym)] = bal.String()
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"wallet_id":  w.ID,
		"owner_id":   w.OwnerID,
		"balances":   balances,
		"created_at": w.CreatedAt,
	})
}
