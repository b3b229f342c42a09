// Package errors provides standardized error handling for the API layer.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Not-found errors
	ErrCodeCompetitionNotFound ErrorCode = "COMPETITION_NOT_FOUND"
	ErrCodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	ErrCodePartnerNotFound     ErrorCode = "PARTNER_NOT_FOUND"
	ErrCodeApplicationNotFound ErrorCode = "APPLICATION_NOT_FOUND"
	ErrCodeClubNotFound        ErrorCode = "CLUB_NOT_FOUND"
	ErrCodeClubApplicationNotFound ErrorCode = "CLUB_APPLICATION_NOT_FOUND"
	ErrCodePaymentNotFound     ErrorCode = "PAYMENT_NOT_FOUND"
	ErrCodeMatchNotFound       ErrorCode = "MATCH_NOT_FOUND"

	// Validation / business-rule errors
	ErrCodeInvalidCode            ErrorCode = "INVALID_CODE"
	ErrCodeMixedGenderRequired    ErrorCode = "MIXED_GENDER_REQUIRED"
	ErrCodePartnerGenderMismatch  ErrorCode = "PARTNER_GENDER_MISMATCH"
	ErrCodeSelfPartner            ErrorCode = "SELF_PARTNER"
	ErrCodePartnerTierMismatch    ErrorCode = "PARTNER_TIER_MISMATCH"
	ErrCodeMalformedApplication   ErrorCode = "MALFORMED_APPLICATION"
	ErrCodeValidationFailed       ErrorCode = "VALIDATION_FAILED"
	ErrCodePhoneAlreadyUsed       ErrorCode = "PHONE_ALREADY_USED"
	ErrCodeClubAlreadyOwned       ErrorCode = "CLUB_ALREADY_OWNED"
	ErrCodeCompetitionNotRunning  ErrorCode = "COMPETITION_NOT_RUNNING"

	// Conflict errors
	ErrCodeDuplicateRegistration ErrorCode = "DUPLICATE_REGISTRATION"
	ErrCodePaymentAlreadyExists  ErrorCode = "PAYMENT_ALREADY_EXISTS"
	ErrCodeRefundAlreadyExists   ErrorCode = "REFUND_ALREADY_EXISTS"

	// Auth errors
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"

	// Infrastructure errors
	ErrCodeDatabaseFailed ErrorCode = "DATABASE_FAILED"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error. Message carries
// the Korean-language text surfaced to API clients; Details stays internal.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCompetitionNotFoundError creates a not-found error for a competition.
func NewCompetitionNotFoundError(id int64) *StandardError {
	return newError(ErrCodeCompetitionNotFound, "대회를 찾을 수 없습니다.", fmt.Sprintf("competitionId: %d", id))
}

// NewUserNotFoundError creates a not-found error for a user.
func NewUserNotFoundError(id int64) *StandardError {
	return newError(ErrCodeUserNotFound, "사용자를 찾을 수 없습니다.", fmt.Sprintf("userId: %d", id))
}

// NewPartnerNotFoundError creates a not-found error for a doubles partner.
func NewPartnerNotFoundError(id int64) *StandardError {
	return newError(ErrCodePartnerNotFound, "파트너를 찾을 수 없습니다.", fmt.Sprintf("partnerId: %d", id))
}

// NewApplicationNotFoundError creates a not-found error for a registration lookup.
func NewApplicationNotFoundError(competitionID, userID int64) *StandardError {
	return newError(ErrCodeApplicationNotFound, "신청 내역을 찾을 수 없습니다.",
		fmt.Sprintf("competitionId: %d, userId: %d", competitionID, userID))
}

// NewClubNotFoundError creates a not-found error for a club.
func NewClubNotFoundError(id int64) *StandardError {
	return newError(ErrCodeClubNotFound, "클럽을 찾을 수 없습니다.", fmt.Sprintf("clubId: %d", id))
}

// NewClubApplicationNotFoundError creates a not-found error for a club admission request.
func NewClubApplicationNotFoundError(id int64) *StandardError {
	return newError(ErrCodeClubApplicationNotFound, "클럽 가입 신청을 찾을 수 없습니다.", fmt.Sprintf("applicationId: %d", id))
}

// NewPaymentNotFoundError creates a not-found error for a payment.
func NewPaymentNotFoundError(id int64) *StandardError {
	return newError(ErrCodePaymentNotFound, "결제 정보를 찾을 수 없습니다.", fmt.Sprintf("paymentId: %d", id))
}

// NewMatchNotFoundError creates a not-found error for a match.
func NewMatchNotFoundError(id int64) *StandardError {
	return newError(ErrCodeMatchNotFound, "경기를 찾을 수 없습니다.", fmt.Sprintf("matchId: %d", id))
}

// NewInvalidCodeError rejects a registration with a wrong competition code.
func NewInvalidCodeError() *StandardError {
	return newError(ErrCodeInvalidCode, "제출된 코드가 유효하지 않습니다.", "")
}

// NewMixedGenderRequiredError rejects a same-gender pair in a mixed competition.
func NewMixedGenderRequiredError() *StandardError {
	return newError(ErrCodeMixedGenderRequired, "혼성 경기는 서로 다른 성별의 파트너가 필요합니다.", "")
}

// NewPartnerGenderMismatchError rejects a partner whose gender does not fit the competition.
func NewPartnerGenderMismatchError() *StandardError {
	return newError(ErrCodePartnerGenderMismatch, "파트너 성별이 해당 대회에는 신청 불가능합니다.", "")
}

// NewSelfPartnerError rejects selecting oneself as doubles partner.
func NewSelfPartnerError() *StandardError {
	return newError(ErrCodeSelfPartner, "신청자 본인을 파트너로 선택할 수 없습니다.", "")
}

// NewPartnerTierMismatchError rejects a partner in a different tier.
func NewPartnerTierMismatchError() *StandardError {
	return newError(ErrCodePartnerTierMismatch, "파트너 부가 달라 신청 불가능합니다.", "")
}

// NewMalformedApplicationError rejects an application with an unrecognized match type.
func NewMalformedApplicationError(details string) *StandardError {
	return newError(ErrCodeMalformedApplication, "대회신청 정상적으로 되지 않았습니다. 신청정보를 확인해주세요.", details)
}

// NewValidationError creates a generic field validation error.
func NewValidationError(message, details string) *StandardError {
	return newError(ErrCodeValidationFailed, message, details)
}

// NewPhoneAlreadyUsedError rejects signup with a duplicated phone number.
func NewPhoneAlreadyUsedError(phone string) *StandardError {
	return newError(ErrCodePhoneAlreadyUsed, "이미 사용 중인 휴대폰 번호입니다.", fmt.Sprintf("phone: %s", phone))
}

// NewClubAlreadyOwnedError rejects creating a second club for the same staff user.
func NewClubAlreadyOwnedError(userID int64) *StandardError {
	return newError(ErrCodeClubAlreadyOwned, "이미 관리하는 클럽이 존재합니다.", fmt.Sprintf("userId: %d", userID))
}

// NewCompetitionNotRunningError rejects score recording outside the "during" window.
func NewCompetitionNotRunningError(id int64) *StandardError {
	return newError(ErrCodeCompetitionNotRunning, "대회가 진행 중이 아닙니다.", fmt.Sprintf("competitionId: %d", id))
}

// NewDuplicateRegistrationError rejects a second registration in the same competition.
func NewDuplicateRegistrationError(competitionID, userID int64) *StandardError {
	return newError(ErrCodeDuplicateRegistration, "해당 대회에 이미 신청하셨습니다.",
		fmt.Sprintf("competitionId: %d, userId: %d", competitionID, userID))
}

// NewPaymentAlreadyExistsError rejects a second payment on the same slot.
func NewPaymentAlreadyExistsError(applicantInfoID int64) *StandardError {
	return newError(ErrCodePaymentAlreadyExists, "이미 결제가 등록되었습니다.", fmt.Sprintf("applicantInfoId: %d", applicantInfoID))
}

// NewRefundAlreadyExistsError rejects a second refund on the same payment.
func NewRefundAlreadyExistsError(paymentID int64) *StandardError {
	return newError(ErrCodeRefundAlreadyExists, "이미 환불이 등록되었습니다.", fmt.Sprintf("paymentId: %d", paymentID))
}

// NewUnauthorizedError signals a missing or unusable authentication context.
func NewUnauthorizedError() *StandardError {
	return newError(ErrCodeUnauthorized, "로그인되어 있지 않습니다.", "")
}

// NewInvalidTokenError signals a malformed, expired, or blacklisted token.
func NewInvalidTokenError(details string) *StandardError {
	return newError(ErrCodeInvalidToken, "유효하지 않은 토큰입니다.", details)
}

// NewInvalidCredentialsError signals a failed signin.
func NewInvalidCredentialsError() *StandardError {
	return newError(ErrCodeInvalidCredentials, "아이디 또는 비밀번호가 올바르지 않습니다.", "")
}

// NewForbiddenError signals an authenticated but unpermitted action.
func NewForbiddenError(details string) *StandardError {
	return newError(ErrCodeForbidden, "권한이 없습니다.", details)
}

// NewDatabaseError creates a retryable storage error.
func NewDatabaseError(op string, err error) *StandardError {
	e := newError(ErrCodeDatabaseFailed, "일시적인 오류가 발생했습니다. 잠시 후 다시 시도해주세요.",
		fmt.Sprintf("op: %s, error: %v", op, err))
	e.Retryable = true
	return e
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "서버 오류가 발생했습니다.", err.Error())
}
