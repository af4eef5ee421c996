package contact

import (
	"fmt"
	"strings"
)

// Record is one contact: a name plus its phone numbers in insertion order.
// Duplicate phones are allowed.
type Record struct {
	name   Name
	phones []Phone
}

// NewRecord creates a Record with no phones.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the contact's name.
func (r *Record) Name() string {
	return r.name.Value()
}

// AddPhone validates value and appends it.
func (r *Record) AddPhone(value string) error {
	p, err := NewPhone(value)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops every phone equal to value. Absent values are ignored.
func (r *Record) RemovePhone(value string) {
	kept := r.phones[:0]
	for _, p := range r.phones {
		if p.Value() != value {
			kept = append(kept, p)
		}
	}
	// Clear the tail so the backing array does not pin removed values.
	for i := len(kept); i < len(r.phones); i++ {
		r.phones[i] = Phone{}
	}
	r.phones = kept
}

// EditPhone replaces the first phone equal to oldValue with newValue.
// It returns a NotFoundError when oldValue is absent and a ValidationError
// when newValue is malformed; the record is unchanged in both cases.
func (r *Record) EditPhone(oldValue, newValue string) error {
	i := r.indexOf(oldValue)
	if i < 0 {
		return notFoundf("Phone number does not exist in the record")
	}
	return r.phones[i].Set(newValue)
}

// FindPhone returns the first phone equal to value.
func (r *Record) FindPhone(value string) (Phone, bool) {
	i := r.indexOf(value)
	if i < 0 {
		return Phone{}, false
	}
	return r.phones[i], true
}

// Phones returns a copy of the phone numbers in insertion order.
func (r *Record) Phones() []string {
	out := make([]string, len(r.phones))
	for i, p := range r.phones {
		out[i] = p.Value()
	}
	return out
}

// FirstPhone returns the earliest stored phone, if any.
func (r *Record) FirstPhone() (string, bool) {
	if len(r.phones) == 0 {
		return "", false
	}
	return r.phones[0].Value(), true
}

func (r *Record) indexOf(value string) int {
	for i, p := range r.phones {
		if p.Value() == value {
			return i
		}
	}
	return -1
}

func (r *Record) String() string {
	return fmt.Sprintf("Contact name: %s, phones: %s", r.name, strings.Join(r.Phones(), ", "))
}
