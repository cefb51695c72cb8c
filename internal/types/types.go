// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles;
// the form, validation, storage, view and handler packages can all import
// types without depending on each other.
package types

// Gender values offered by the form's single-select input.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Genders lists the selectable genders in display order.
var Genders = []string{GenderMale, GenderFemale, GenderOther}

// Address is embedded by value in every StudentRecord.
type Address struct {
	City     string `json:"city"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
}

// StudentRecord represents one student captured by the form.
//
// The same struct is used for the in-progress draft (which may be partially
// filled or invalid) and for accepted records in the list (which have all
// passed validation). Every field is a plain value, so assigning a record
// copies it completely; there are no shared pointers between a draft and a
// stored record.
//
// json:"..." tags control the camelCase keys used by the JSON API and by
// the sqlite backend's row blobs.
type StudentRecord struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Gender    string  `json:"gender"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Address   Address `json:"address"`
	Password  string  `json:"password"`
	About     string  `json:"about"`
}

// Get returns the current value of the field at path.
func (r StudentRecord) Get(path FieldPath) string {
	if path.IsAddress() {
		switch path.sub {
		case AddressCity:
			return r.Address.City
		case AddressProvince:
			return r.Address.Province
		case AddressZip:
			return r.Address.Zip
		}
		return ""
	}

	switch path.field {
	case FieldFirstName:
		return r.FirstName
	case FieldLastName:
		return r.LastName
	case FieldGender:
		return r.Gender
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	case FieldPassword:
		return r.Password
	case FieldAbout:
		return r.About
	}
	return ""
}

// With returns a copy of r with exactly the field at path replaced by
// value. r itself is never modified; the receiver is a value, so the
// nested Address is copied along with it.
func (r StudentRecord) With(path FieldPath, value string) StudentRecord {
	if path.IsAddress() {
		switch path.sub {
		case AddressCity:
			r.Address.City = value
		case AddressProvince:
			r.Address.Province = value
		case AddressZip:
			r.Address.Zip = value
		}
		return r
	}

	switch path.field {
	case FieldFirstName:
		r.FirstName = value
	case FieldLastName:
		r.LastName = value
	case FieldGender:
		r.Gender = value
	case FieldEmail:
		r.Email = value
	case FieldPhone:
		r.Phone = value
	case FieldPassword:
		r.Password = value
	case FieldAbout:
		r.About = value
	}
	return r
}

// FullName joins first and last name the way the list displays them.
func (r StudentRecord) FullName() string {
	return r.FirstName + " " + r.LastName
}
