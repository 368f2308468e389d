package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	walletdomain "github.com/billfold/billfold/internal/wallet/domain"
)

type adjustBalanceRequest struct {
	Amount int64 `json:"amount"`
}

func (s *Server) GetWallet(c *gin.Context) {
	wallet, err := s.walletSvc.GetByUserID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, wallet)
}

func (s *Server) CreditWallet(c *gin.Context) {
	s.adjustWallet(c, s.walletSvc.Credit)
}

func (s *Server) DebitWallet(c *gin.Context) {
	s.adjustWallet(c, s.walletSvc.Debit)
}

func (s *Server) adjustWallet(c *gin.Context, op func(ctx context.Context, req walletdomain.AdjustBalanceRequest) (*walletdomain.Wallet, error)) {
	var req adjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	wallet, err := op(c.Request.Context(), walletdomain.AdjustBalanceRequest{
		UserID: c.Param("id"),
		Amount: req.Amount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, wallet)
}
