package swap

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/paper-swap/paper_swap/internal/oracle"
	"github.com/paper-swap/paper_swap/internal/wallet"
)

// Handler exposes swap HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a swap handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type swapRequest struct {
	WalletID string `json:"wallet_id"`
	From     string `json:"from"`
	To       string `json:"to"`
	Amount   uint64 `json:"amount"`
}

// Execute processes a swap request.
func (h *Handler) Execute(c *fiber.Ctx) error {
	var req swapRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Swap(c.UserContext(), Input{
		WalletID: req.WalletID,
		From:     req.From,
		To:       req.To,
		Amount:   req.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrUnsupportedExchange),
			errors.Is(err, ErrInsufficientAmount),
			errors.Is(err, oracle.ErrQuoteUnavailable):
			return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
		default:
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"wallet_id":    result.Wallet.ID,
		"pair":         result.Pair.String(),
		"amount":       result.Amount,
		"rate":         result.Rate.String(),
		"credited":     result.Credited.String(),
		"from_balance": result.Wallet.Balance(result.Pair.Base).String(),
		"to_balance":   result.Wallet.Balance(result.Pair.Quote).String(),
		"completed_at": result.CompletedAt,
	})
}
