package contact

// AddressBook maps contact names to records. It is not safe for concurrent
// use; callers that share a book across goroutines must lock around it.
type AddressBook struct {
	records map[string]*Record
	order   []string // insertion order of live keys
}

// NewAddressBook returns an empty book.
func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord stores rec under its name, replacing any existing record.
// A replaced record keeps its original listing position.
func (b *AddressBook) AddRecord(rec *Record) {
	key := rec.Name()
	if _, ok := b.records[key]; !ok {
		b.order = append(b.order, key)
	}
	b.records[key] = rec
}

// Find returns the record for name.
func (b *AddressBook) Find(name string) (*Record, bool) {
	rec, ok := b.records[name]
	return rec, ok
}

// Delete removes the record for name. Missing names are ignored.
func (b *AddressBook) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		return
	}
	delete(b.records, name)
	for i, k := range b.order {
		if k == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Records returns the stored records in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, k := range b.order {
		out = append(out, b.records[k])
	}
	return out
}

// Len reports the number of stored records.
func (b *AddressBook) Len() int {
	return len(b.records)
}
