package domain

import (
	"fmt"
	"strings"
)

type Field string

const (
	FieldUsername             Field = "username"
	FieldEmail                Field = "email"
	FieldPassword             Field = "password"
	FieldPasswordConfirmation Field = "password_confirmation"
)

type Rule string

const (
	RuleRequired             Rule = "required"
	RuleTooShort             Rule = "too_short"
	RuleTooLong              Rule = "too_long"
	RuleInvalidFormat        Rule = "invalid_format"
	RuleConfirmationMismatch Rule = "confirmation_mismatch"
	RuleAlreadyTaken         Rule = "already_taken"
)

type ValidationError struct {
	Field Field
	Rule  Rule
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Rule)
}

// ValidationErrors is every violated rule of one create attempt, in rule
// order. A nil or empty value means valid.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (v ValidationErrors) Has(field Field, rule Rule) bool {
	for _, e := range v {
		if e.Field == field && e.Rule == rule {
			return true
		}
	}
	return false
}

func (v ValidationErrors) HasField(field Field) bool {
	for _, e := range v {
		if e.Field == field {
			return true
		}
	}
	return false
}

func (v ValidationErrors) ByField() map[Field][]Rule {
	out := make(map[Field][]Rule, len(v))
	for _, e := range v {
		out[e.Field] = append(out[e.Field], e.Rule)
	}
	return out
}
