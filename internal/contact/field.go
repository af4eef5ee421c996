// Package contact holds the address book data model: validated fields,
// per-contact records, and the book that keys records by name.
package contact

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrValidation = errors.New("contact: validation failed")
	ErrNotFound   = errors.New("contact: not found")
)

// ValidationError reports a value that does not satisfy its field's format.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrValidation) match any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports a missing contact or phone.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrNotFound) match any *NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Validator checks a candidate field value.
type Validator func(value string) error

// Field is a single string value guarded by an optional Validator.
// The validator runs on construction and on every Set.
type Field struct {
	value    string
	validate Validator
}

// NewField builds a Field, running validate (if non-nil) against value.
func NewField(value string, validate Validator) (Field, error) {
	if validate != nil {
		if err := validate(value); err != nil {
			return Field{}, err
		}
	}
	return Field{value: value, validate: validate}, nil
}

// Value returns the stored value.
func (f Field) Value() string {
	return f.value
}

// Set replaces the value. On validation failure the field is left as it was.
func (f *Field) Set(value string) error {
	if f.validate != nil {
		if err := f.validate(value); err != nil {
			return err
		}
	}
	f.value = value
	return nil
}

func (f Field) String() string {
	return f.value
}

// Name identifies a contact and keys it in the AddressBook.
type Name struct {
	Field
}

// NewName rejects empty and whitespace-only names.
func NewName(value string) (Name, error) {
	f, err := NewField(value, validateName)
	if err != nil {
		return Name{}, err
	}
	return Name{Field: f}, nil
}

func validateName(value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: "name", Message: "Name cannot be empty"}
	}
	return nil
}

// PhoneLength is the exact number of digits a phone number must have.
const PhoneLength = 10

// Phone is a phone number of exactly PhoneLength ASCII digits.
type Phone struct {
	Field
}

// NewPhone validates value and returns the Phone.
func NewPhone(value string) (Phone, error) {
	f, err := NewField(value, ValidatePhone)
	if err != nil {
		return Phone{}, err
	}
	return Phone{Field: f}, nil
}

// ValidatePhone reports whether value is exactly PhoneLength ASCII digits.
func ValidatePhone(value string) error {
	if len(value) != PhoneLength {
		return &ValidationError{Field: "phone", Message: "Invalid phone number format"}
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return &ValidationError{Field: "phone", Message: "Invalid phone number format"}
		}
	}
	return nil
}

// notFoundf builds a *NotFoundError with a formatted message.
func notFoundf(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}
