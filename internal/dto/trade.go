package dto

import (
	"time"

	"github.com/foliotrack/folio_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTradeRequest defines the data needed to record a trade.
type CreateTradeRequest struct {
	SecurityID string           `json:"securityID" binding:"required"`
	Type       domain.TradeType `json:"type" binding:"required,oneof=BUY SELL"`
	Quantity   decimal.Decimal  `json:"quantity" binding:"required"`
	Price      decimal.Decimal  `json:"price" binding:"required"`
}

// TradeResponse defines the data returned for a trade.
type TradeResponse struct {
	TradeID    string           `json:"tradeID"`
	AccountID  string           `json:"accountID"`
	SecurityID string           `json:"securityID"`
	Type       domain.TradeType `json:"type"`
	Quantity   decimal.Decimal  `json:"quantity"`
	Price      decimal.Decimal  `json:"price"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// ToTradeResponse converts a domain.Trade to TradeResponse DTO
func ToTradeResponse(t *domain.Trade) TradeResponse {
	return TradeResponse{
		TradeID:    t.TradeID,
		AccountID:  t.AccountID,
		SecurityID: t.SecurityID,
		Type:       t.Type,
		Quantity:   t.Quantity,
		Price:      t.Price,
		CreatedAt:  t.CreatedAt,
	}
}

// ToListTradeResponse converts a slice of domain.Trade to response DTOs
func ToListTradeResponse(trades []domain.Trade) []TradeResponse {
	res := make([]TradeResponse, len(trades))
	for i := range trades {
		res[i] = ToTradeResponse(&trades[i])
	}
	return res
}
