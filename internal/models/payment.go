// internal/models/payment.go
package models

import "time"

// Payment is one-to-one with an ApplicantInfo slot.
type Payment struct {
	ID              int64     `json:"id" db:"id"`
	ApplicantInfoID int64     `json:"applicantInfoId" db:"applicant_info_id"`
	Amount          int       `json:"amount" db:"amount"`
	PaymentDate     time.Time `json:"paymentDate" db:"payment_date"`
	IsDeleted       bool      `json:"-" db:"is_deleted"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// Refund is one-to-one with a Payment; its existence implies a prior payment.
type Refund struct {
	ID         int64     `json:"id" db:"id"`
	PaymentID  int64     `json:"paymentId" db:"payment_id"`
	Amount     int       `json:"amount" db:"amount"`
	RefundDate time.Time `json:"refundDate" db:"refund_date"`
	IsDeleted  bool      `json:"-" db:"is_deleted"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}
