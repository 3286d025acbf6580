package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/okanv/likeledger/internal/middleware"
	"github.com/okanv/likeledger/internal/repositories"
	"gorm.io/gorm"
)

// AccountHandler handles HTTP requests related to accounts
type AccountHandler struct {
	accountRepository repositories.AccountRepository
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountRepo repositories.AccountRepository) *AccountHandler {
	return &AccountHandler{accountRepository: accountRepo}
}

// RegisterAccountRoutes registers account-related routes
func (h *AccountHandler) RegisterAccountRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.GET("/accounts/:address", h.GetAccount)
}

// GetProfile retrieves the account of the calling signer
func (h *AccountHandler) GetProfile(c echo.Context) error {
	signer, ok := middleware.SignerFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "No authenticated signer")
	}

	account, err := h.accountRepository.GetAccountByAddress(string(signer.Address()))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Account not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, account)
}

// GetAccount retrieves the public account record behind a ledger address
func (h *AccountHandler) GetAccount(c echo.Context) error {
	account, err := h.accountRepository.GetAccountByAddress(c.Param("address"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Account not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"name":    account.Name,
		"address": account.Address,
	})
}
