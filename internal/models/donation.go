package models

import "time"

// DonationStatus - статус пожертвования.
type DonationStatus string

const (
	DonationStatusPending DonationStatus = "PENDING"
	DonationStatusSuccess DonationStatus = "SUCCESS"
	DonationStatusFailed  DonationStatus = "FAILED"
)

// Valid сообщает, известен ли статус.
func (s DonationStatus) Valid() bool {
	switch s {
	case DonationStatusPending, DonationStatusSuccess, DonationStatusFailed:
		return true
	}
	return false
}

// Donation - пожертвование читателя.
type Donation struct {
	ID            string         `json:"id"`
	DonorName     string         `json:"donorName"`
	Amount        float64        `json:"amount"`
	Currency      string         `json:"currency"`
	Message       *string        `json:"message,omitempty"`
	PaymentMethod *string        `json:"paymentMethod,omitempty"`
	PaymentTxnID  *string        `json:"paymentTxnId,omitempty"`
	Status        DonationStatus `json:"status"`
	CreatedAt     *time.Time     `json:"createdAt,omitempty"`
}

// DonationRequest - тело запроса создания пожертвования.
type DonationRequest struct {
	DonorName     string  `json:"donorName"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Message       *string `json:"message,omitempty"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	PaymentTxnID  *string `json:"paymentTxnId,omitempty"`
}

// PaymentCheckoutRequest - запрос на создание платежной сессии.
type PaymentCheckoutRequest struct {
	DonorName     string  `json:"donorName"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Message       *string `json:"message,omitempty"`
	PaymentMethod string  `json:"paymentMethod"`
}

// PaymentCheckoutResponse - ответ платежного шлюза бэкенда.
type PaymentCheckoutResponse struct {
	DonationID string `json:"donationId"`
	PaymentURL string `json:"paymentUrl"`
	Provider   string `json:"provider"`
}
