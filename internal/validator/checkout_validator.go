package validator

import (
	"regexp"
	"strings"

	"app/internal/usecase"
)

// フィールド単位の検証エラー。最初に失敗したルールだけを返す（集約しない）。
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	emailRegex  = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	phoneRegex  = regexp.MustCompile(`^[0-9+\s\-()]{10,20}$`)
	cardRegex   = regexp.MustCompile(`^[0-9\s]{13,19}$`)
	cvvRegex    = regexp.MustCompile(`^[0-9]{3,4}$`)
	expiryRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
)

type checkoutValidator struct{}

// Usecaseは interface を依存注入
func NewCheckoutValidator() usecase.CheckoutValidator {
	return &checkoutValidator{}
}

// チェックアウトフォームを上から順に検証する。
// 順序は固定で、最初に失敗したフィールドのエラーを返す。
// カード検証は形式のみ（決済はシミュレーション）。
func (v *checkoutValidator) ValidateCheckout(in usecase.CheckoutInput) error {
	name := strings.TrimSpace(in.Name)
	if len(name) < 2 {
		return &ValidationError{Field: "name", Message: "Please provide a valid name."}
	}

	//email形式（大文字小文字は区別しない）
	if !emailRegex.MatchString(strings.ToLower(strings.TrimSpace(in.Email))) {
		return &ValidationError{Field: "email", Message: "Please provide a valid email address."}
	}

	if !phoneRegex.MatchString(in.Phone) {
		return &ValidationError{Field: "phone", Message: "Please provide a valid phone number."}
	}

	if len(strings.TrimSpace(in.Address)) < 5 {
		return &ValidationError{Field: "address", Message: "Please provide a valid street address."}
	}

	//住所の残りはすべて必須
	if strings.TrimSpace(in.City) == "" || strings.TrimSpace(in.State) == "" ||
		strings.TrimSpace(in.Zip) == "" || strings.TrimSpace(in.Country) == "" {
		return &ValidationError{Field: "address_fields", Message: "Please complete all address fields."}
	}

	if !cardRegex.MatchString(in.CardNumber) {
		return &ValidationError{Field: "card_number", Message: "Please provide a valid card number."}
	}

	if !expiryRegex.MatchString(in.CardExpiry) {
		return &ValidationError{Field: "card_expiry", Message: "Please provide a valid expiry date (MM/YY)."}
	}

	if !cvvRegex.MatchString(in.CardCvv) {
		return &ValidationError{Field: "card_cvv", Message: "Please provide a valid CVV."}
	}

	if len(strings.TrimSpace(in.CardholderName)) < 2 {
		return &ValidationError{Field: "cardholder_name", Message: "Please provide the cardholder name."}
	}

	return nil
}
