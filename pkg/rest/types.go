// Wire types of the HTTP API.
package rest

import "time"

// Response is the envelope of every successful response.
type Response struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the envelope of every failed response.
type ErrorResponse struct {
	Success bool `json:"success"`
	// Error is the human readable message.
	Error string `json:"error"`
	// Code is the machine readable error code.
	Code      ErrorCode `json:"code"`
	SupportID string    `json:"supportId"`
	Timestamp time.Time `json:"timestamp"`
}

type ErrorCode string

type ScanRequest struct {
	MaxPerMarketplace *int    `json:"maxPerMarketplace" validate:"required,gt=0,lte=500"`
	Category          *string `json:"category" validate:"required,min=1"`
}

type ScanResponse struct {
	Listings  any `json:"listings"`
	Evaluated any `json:"evaluated"`
	Decisions any `json:"decisions"`
	Relisted  any `json:"relisted"`
}

type ConfigRequest struct {
	Budget            *float64 `json:"budget" validate:"required,gte=0"`
	MinProfitMargin   *float64 `json:"minProfitMargin" validate:"required,gte=0"`
	MinProfit         *float64 `json:"minProfit" validate:"required,gte=0"`
	MaxPerMarketplace *int     `json:"maxPerMarketplace" validate:"required,gt=0,lte=500"`
	Category          *string  `json:"category" validate:"required,min=1"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SoldRequest struct {
	Price *float64 `json:"price" validate:"required,gt=0"`
}
