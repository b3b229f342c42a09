// internal/api/payments/models.go
package payments

import "time"

// CreatePaymentRequest records a confirmed bank deposit for one
// registration slot.
type CreatePaymentRequest struct {
	ApplicantInfoID int64 `json:"applicantInfoId"`
	Amount          int   `json:"amount"`
}

// PaymentView is the stored payment.
type PaymentView struct {
	ID              int64     `json:"id"`
	ApplicantInfoID int64     `json:"applicantInfoId"`
	Amount          int       `json:"amount"`
	PaymentDate     time.Time `json:"paymentDate"`
	Status          string    `json:"status"`
}

// RefundRequest reverses a payment.
type RefundRequest struct {
	Amount int `json:"amount"`
}

// RefundView is the stored refund.
type RefundView struct {
	ID         int64     `json:"id"`
	PaymentID  int64     `json:"paymentId"`
	Amount     int       `json:"amount"`
	RefundDate time.Time `json:"refundDate"`
}
