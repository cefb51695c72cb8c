// Package validation checks a draft StudentRecord against the form's rule
// set and reports every failing field at once.
//
// RULE TABLE
// ──────────
// Each rule is a (field path, validator tag, message) tuple. The tag is a
// go-playground/validator expression ("required", "email", "min=6", ...)
// evaluated against the single string at that path with Validate.VarCtx.
//
// All paths are always evaluated; there is no early exit across fields.
// Within one path the rules run in table order and the first failure wins,
// so an empty email reports "Email is required" rather than "Invalid email".
package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hudairyounas/student-app/internal/types"
)

// Rule is one predicate applied to one field.
type Rule struct {
	Path    types.FieldPath
	Tag     string
	Message string
}

// DefaultRules is the student form's schema.
// about has no rule and therefore always passes.
var DefaultRules = []Rule{
	{types.PathFirstName, "required", "First name is required"},
	{types.PathLastName, "required", "Last name is required"},
	{types.PathGender, "required", "Gender is required"},
	{types.PathGender, "oneof=" + strings.Join(types.Genders, " "), "Gender must be one of " + strings.Join(types.Genders, ", ")},
	{types.PathEmail, "required", "Email is required"},
	{types.PathEmail, "email", "Invalid email"},
	{types.PathPhone, "required", "Phone number is required"},
	{types.PathCity, "required", "City is required"},
	{types.PathProvince, "required", "Province is required"},
	{types.PathZip, "required", "Zip code is required"},
	{types.PathPassword, "required", "Password is required"},
	{types.PathPassword, "min=6", "Password must be at least 6 characters"},
}

// FieldError is a single failed rule.
type FieldError struct {
	Path    types.FieldPath
	Tag     string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Errors is every failed rule from one validation pass, in form order.
// It is the error returned by Validator.Validate when the draft is invalid.
type Errors []FieldError

func (errs Errors) Error() string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, ", ")
}

// ErrorMap converts the failures to the path → message mapping the
// renderer looks fields up in.
func (errs Errors) ErrorMap() types.ErrorMap {
	m := make(types.ErrorMap, len(errs))
	for _, e := range errs {
		m[e.Path] = e.Message
	}
	return m
}

// Validator evaluates a rule table. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	rules    []Rule
}

// New returns a Validator for DefaultRules.
func New() *Validator {
	return NewWithRules(DefaultRules)
}

// NewWithRules returns a Validator for an arbitrary rule table.
func NewWithRules(rules []Rule) *Validator {
	return &Validator{
		validate: validator.New(),
		rules:    rules,
	}
}

// Validate checks every rule against draft.
//
// Return values:
//
//	nil         - every field passed
//	Errors      - one or more fields failed (use errors.As to inspect)
//	ctx.Err()   - ctx ended before the pass finished; the result is discarded
//
// A tag that the validator cannot evaluate is a programming error in the
// rule table and panics inside go-playground/validator.
func (v *Validator) Validate(ctx context.Context, draft types.StudentRecord) error {
	failed := make(map[types.FieldPath]FieldError)

	for _, rule := range v.rules {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, seen := failed[rule.Path]; seen {
			continue
		}

		err := v.validate.VarCtx(ctx, draft.Get(rule.Path), rule.Tag)
		if err == nil {
			continue
		}
		if _, ok := err.(validator.ValidationErrors); !ok {
			return fmt.Errorf("validate %s: %w", rule.Path, err)
		}
		failed[rule.Path] = FieldError{Path: rule.Path, Tag: rule.Tag, Message: rule.Message}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if len(failed) == 0 {
		return nil
	}

	errs := make(Errors, 0, len(failed))
	for _, p := range types.FieldPaths {
		if fe, ok := failed[p]; ok {
			errs = append(errs, fe)
		}
	}
	return errs
}
