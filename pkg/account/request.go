package account

import "sort"

// AccountID identifies a stored account.
type AccountID string

// Request is the immutable account creation payload derived from a wizard
// state. Construct it with NewRequest.
type Request struct {
	username string
	email    string
	fields   map[string]string
}

// NewRequest copies fields so later changes by the caller are not observed.
func NewRequest(username, email string, fields map[string]string) Request {
	copied := make(map[string]string, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return Request{username: username, email: email, fields: copied}
}

func (r Request) Username() string { return r.username }
func (r Request) Email() string    { return r.email }

// Fields returns a copy of the flattened wizard values.
func (r Request) Fields() map[string]string {
	out := make(map[string]string, len(r.fields))
	for key, value := range r.fields {
		out[key] = value
	}
	return out
}

// Field returns a single flattened value.
func (r Request) Field(name string) string {
	return r.fields[name]
}

// FieldNames lists the field names in lexical order.
func (r Request) FieldNames() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
