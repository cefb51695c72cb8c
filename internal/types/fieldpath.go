package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned when a string does not name any form field.
var ErrUnknownField = errors.New("unknown field")

// Field identifies a top-level field of StudentRecord.
type Field int

const (
	FieldFirstName Field = iota + 1
	FieldLastName
	FieldGender
	FieldEmail
	FieldPhone
	FieldAddress
	FieldPassword
	FieldAbout
)

var fieldNames = map[Field]string{
	FieldFirstName: "firstName",
	FieldLastName:  "lastName",
	FieldGender:    "gender",
	FieldEmail:     "email",
	FieldPhone:     "phone",
	FieldAddress:   "address",
	FieldPassword:  "password",
	FieldAbout:     "about",
}

// AddressField identifies a sub-field of Address.
type AddressField int

const (
	AddressCity AddressField = iota + 1
	AddressProvince
	AddressZip
)

var addressFieldNames = map[AddressField]string{
	AddressCity:     "city",
	AddressProvince: "province",
	AddressZip:      "zip",
}

// ─────────────────────────────────────────────────────────────────────────────
// FieldPath names exactly one editable leaf of a StudentRecord. It is either
// a top-level field (firstName, email, ...) or an address sub-field.
//
// The zero FieldPath is invalid. Build paths with TopLevel / AddressPath or
// use the predeclared Path* values; strings only appear at the boundary
// (HTML input names, JSON keys) via String and ParseFieldPath.
//
// FieldPath is comparable, so it is used directly as the ErrorMap key, and
// it implements encoding.TextMarshaler so maps keyed by it encode to JSON
// objects with dotted keys ("address.city").
// ─────────────────────────────────────────────────────────────────────────────
type FieldPath struct {
	field Field
	sub   AddressField
}

// TopLevel returns the path of a top-level field. FieldAddress is not a
// leaf; use AddressPath for its sub-fields.
func TopLevel(f Field) FieldPath {
	return FieldPath{field: f}
}

// AddressPath returns the path of an address sub-field.
func AddressPath(sub AddressField) FieldPath {
	return FieldPath{field: FieldAddress, sub: sub}
}

var (
	PathFirstName = TopLevel(FieldFirstName)
	PathLastName  = TopLevel(FieldLastName)
	PathGender    = TopLevel(FieldGender)
	PathEmail     = TopLevel(FieldEmail)
	PathPhone     = TopLevel(FieldPhone)
	PathCity      = AddressPath(AddressCity)
	PathProvince  = AddressPath(AddressProvince)
	PathZip       = AddressPath(AddressZip)
	PathPassword  = TopLevel(FieldPassword)
	PathAbout     = TopLevel(FieldAbout)
)

// FieldPaths lists every leaf path in form order.
var FieldPaths = []FieldPath{
	PathFirstName,
	PathLastName,
	PathGender,
	PathEmail,
	PathPhone,
	PathCity,
	PathProvince,
	PathZip,
	PathPassword,
	PathAbout,
}

// Field returns the top-level field; FieldAddress for address sub-fields.
func (p FieldPath) Field() Field { return p.field }

// IsAddress reports whether p points into the nested Address.
func (p FieldPath) IsAddress() bool { return p.field == FieldAddress }

// Equal reports whether p and q name the same field. go-cmp uses it in
// place of reflecting on the unexported fields.
func (p FieldPath) Equal(q FieldPath) bool { return p == q }

// Valid reports whether p names an actual leaf field.
func (p FieldPath) Valid() bool {
	if p.field == FieldAddress {
		_, ok := addressFieldNames[p.sub]
		return ok
	}
	_, ok := fieldNames[p.field]
	return ok && p.sub == 0
}

// String returns the dotted form used by inputs and error keys,
// e.g. "email" or "address.city".
func (p FieldPath) String() string {
	if !p.Valid() {
		return fmt.Sprintf("FieldPath(%d,%d)", p.field, p.sub)
	}
	if p.IsAddress() {
		return fieldNames[FieldAddress] + "." + addressFieldNames[p.sub]
	}
	return fieldNames[p.field]
}

// ParseFieldPath converts the dotted form back to a FieldPath.
func ParseFieldPath(s string) (FieldPath, error) {
	head, tail, nested := strings.Cut(s, ".")

	for f, name := range fieldNames {
		if name != head {
			continue
		}
		if f == FieldAddress {
			if !nested {
				break
			}
			for sub, subName := range addressFieldNames {
				if subName == tail {
					return AddressPath(sub), nil
				}
			}
			break
		}
		if nested {
			break
		}
		return TopLevel(f), nil
	}

	return FieldPath{}, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// MarshalText implements encoding.TextMarshaler.
func (p FieldPath) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, p.String())
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *FieldPath) UnmarshalText(text []byte) error {
	parsed, err := ParseFieldPath(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
