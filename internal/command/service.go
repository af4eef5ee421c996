// Package command implements the named address book operations behind the
// shell: add, delete, phone, change and show all. Each returns a Result and
// never lets a domain error escape.
package command

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/smileynet/contactbook/internal/contact"
)

// Result is the outcome of a single operation. Exactly one of Message or
// Err is meaningful.
type Result struct {
	Message string
	Err     error
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// String renders the user-facing reply, prefixing failures with "Error: ".
func (r Result) String() string {
	if r.Err != nil {
		return "Error: " + errorMessage(r.Err)
	}
	return r.Message
}

// errorMessage returns the innermost domain message for err.
func errorMessage(err error) string {
	var ve *contact.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var nf *contact.NotFoundError
	if errors.As(err, &nf) {
		return nf.Message
	}
	return err.Error()
}

func ok(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

func fail(err error) Result {
	return Result{Err: err}
}

func contactNotFound(name string) error {
	return &contact.NotFoundError{Message: fmt.Sprintf("Contact %s not found", name)}
}

// Service runs operations against a single AddressBook.
// It is not safe for concurrent use.
type Service struct {
	book *contact.AddressBook
	log  *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for per-operation debug events.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService returns a Service over book. A nil book gets a fresh empty one.
func NewService(book *contact.AddressBook, opts ...Option) *Service {
	if book == nil {
		book = contact.NewAddressBook()
	}
	s := &Service{book: book, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Book returns the underlying address book.
func (s *Service) Book() *contact.AddressBook {
	return s.book
}

// Add appends phone to the named contact, creating the contact if needed.
// A new contact is only stored once its first phone validates.
func (s *Service) Add(name, phone string) Result {
	if rec, found := s.book.Find(name); found {
		if err := rec.AddPhone(phone); err != nil {
			return s.failed("add", name, err)
		}
	} else {
		rec, err := contact.NewRecord(name)
		if err != nil {
			return s.failed("add", name, err)
		}
		if err := rec.AddPhone(phone); err != nil {
			return s.failed("add", name, err)
		}
		s.book.AddRecord(rec)
	}
	s.log.Debug("phone added", zap.String("name", name), zap.String("phone", phone))
	return ok("Contact %s added with phone %s", name, phone)
}

// Delete removes the named contact. A missing contact is a normal reply,
// not an error.
func (s *Service) Delete(name string) Result {
	if _, found := s.book.Find(name); !found {
		s.log.Debug("delete of unknown contact", zap.String("name", name))
		return ok("Contact %s not found", name)
	}
	s.book.Delete(name)
	s.log.Debug("contact deleted", zap.String("name", name))
	return ok("Contact %s deleted", name)
}

// Phone returns the first phone number stored for name.
func (s *Service) Phone(name string) Result {
	rec, found := s.book.Find(name)
	if !found {
		return s.failed("phone", name, contactNotFound(name))
	}
	first, has := rec.FirstPhone()
	if !has {
		return s.failed("phone", name, contactNotFound(name))
	}
	return ok("Phone number for %s: %s", name, first)
}

// Change replaces the first phone of the named contact with newPhone.
func (s *Service) Change(name, newPhone string) Result {
	rec, found := s.book.Find(name)
	if !found {
		return s.failed("change", name, contactNotFound(name))
	}
	first, has := rec.FirstPhone()
	if !has {
		return s.failed("change", name, contactNotFound(name))
	}
	if err := rec.EditPhone(first, newPhone); err != nil {
		return s.failed("change", name, err)
	}
	s.log.Debug("phone changed", zap.String("name", name), zap.String("old", first), zap.String("new", newPhone))
	return ok("Contact %s phone changed to %s", name, newPhone)
}

// All renders every contact, one per line, in insertion order.
func (s *Service) All() Result {
	records := s.book.Records()
	if len(records) == 0 {
		return ok("No contacts saved")
	}
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = rec.String()
	}
	return ok("%s", strings.Join(lines, "\n"))
}

func (s *Service) failed(op, name string, err error) Result {
	s.log.Debug("operation failed", zap.String("op", op), zap.String("name", name), zap.Error(err))
	return fail(fmt.Errorf("%s %s: %w", op, name, err))
}
