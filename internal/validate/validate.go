// Package validate checks user-entered form values before anything
// reaches the store. Failures carry the message shown to the user.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
)

var (
	amountPattern      = regexp.MustCompile(`^\d{0,7}(\.\d{0,2})?$`)
	categoryPattern    = regexp.MustCompile(`^[a-zA-Z ]*$`)
	emailPattern       = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)
	specialCharPattern = regexp.MustCompile(`[!@#$%^&*()_+=\-{}\[\]:;"'<>,.?/]`)
)

// Error is a validation failure on a single form field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsValidationError reports whether err carries a *Error.
func IsValidationError(err error) bool {
	var vErr *Error
	return errors.As(err, &vErr)
}

// RegistrationForm holds the raw values of the sign-up form.
type RegistrationForm struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,emailaddr"`
	Phone           string `validate:"required,len=10"`
	Address         string `validate:"required"`
	Username        string `validate:"required"`
	Password        string `validate:"required,min=8,specialchar"`
	ConfirmPassword string `validate:"eqfield=Password"`
}

// TransactionForm holds the raw values of the add-transaction form.
type TransactionForm struct {
	Type     string `validate:"required,oneof=Income Expense"`
	Amount   string `validate:"required,amount"`
	Category string `validate:"required,category"`
	Date     string `validate:"required,datetime=2006-01-02"`
}

// Validator wraps a configured go-playground validator.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// New returns a Validator. now supplies the current time for the
// future-date check; nil means time.Now.
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "amount", func(fl validator.FieldLevel) bool {
		return ValidAmount(fl.Field().String())
	})
	mustRegister(v, "category", func(fl validator.FieldLevel) bool {
		return categoryPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "emailaddr", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "specialchar", func(fl validator.FieldLevel) bool {
		return specialCharPattern.MatchString(fl.Field().String())
	})
	return &Validator{v: v, now: now}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// ValidAmount reports whether s is a positive amount with at most seven
// integer digits and two decimals.
func ValidAmount(s string) bool {
	if !amountPattern.MatchString(s) {
		return false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return d.IsPositive()
}

// Registration validates the sign-up form. Whitespace around every field
// is ignored.
func (v *Validator) Registration(form RegistrationForm) error {
	form = RegistrationForm{
		Name:            strings.TrimSpace(form.Name),
		Email:           strings.TrimSpace(form.Email),
		Phone:           strings.TrimSpace(form.Phone),
		Address:         strings.TrimSpace(form.Address),
		Username:        strings.TrimSpace(form.Username),
		Password:        strings.TrimSpace(form.Password),
		ConfirmPassword: strings.TrimSpace(form.ConfirmPassword),
	}
	return translate(v.v.Struct(form))
}

// Transaction validates the add-transaction form and converts it into a
// domain transaction for username.
func (v *Validator) Transaction(username string, form TransactionForm) (*domain.Transaction, error) {
	form.Amount = strings.TrimSpace(form.Amount)
	form.Category = strings.TrimSpace(form.Category)
	form.Date = strings.TrimSpace(form.Date)
	if err := translate(v.v.Struct(form)); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(form.Amount)
	if err != nil {
		return nil, &Error{Field: "Amount", Message: "Enter a valid amount"}
	}
	date, err := time.Parse(domain.DateLayout, form.Date)
	if err != nil {
		return nil, &Error{Field: "Date", Message: "Select a valid date"}
	}
	now := v.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.After(today) {
		return nil, &Error{Field: "Date", Message: "Date cannot be in the future"}
	}

	return &domain.Transaction{
		Username: username,
		Type:     domain.TransactionType(form.Type),
		Amount:   amount,
		Category: form.Category,
		Date:     date,
	}, nil
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return &Error{Field: fe.Field(), Message: message(fe)}
}

func message(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		switch fe.Field() {
		case "Amount", "Category":
			return "Please fill all fields correctly"
		case "Type":
			return "Select a transaction type"
		case "Date":
			return "Select a valid date"
		default:
			return "All fields are required"
		}
	}

	switch fe.Field() {
	case "Email":
		return "Invalid email format"
	case "Phone":
		return "Phone number must be 10 digits"
	case "Password":
		if fe.Tag() == "min" {
			return "Password must be at least 8 characters"
		}
		return "Weak password: Add a special character"
	case "ConfirmPassword":
		return "Passwords do not match"
	case "Amount":
		return "Enter a valid amount"
	case "Category":
		return "Category may only contain letters and spaces"
	case "Type":
		return "Transaction type must be Income or Expense"
	case "Date":
		return "Select a valid date"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
