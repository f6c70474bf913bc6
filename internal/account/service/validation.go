package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/AlibekovAA/account-core/internal/account/domain"
	"github.com/AlibekovAA/account-core/internal/common/constants"
)

var (
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	// Domain labels cannot contain dots, so leading, trailing and doubled
	// dots after the @ never match.
	emailRegex = regexp.MustCompile(`(?i)^[a-z0-9_+.-]+@[a-z0-9-]+(\.[a-z0-9-]+)*\.[a-z]+$`)
)

const (
	tagNotBlank   = "notblank"
	tagUsername   = "account_username"
	tagEmail      = "account_email"
	tagBcryptSize = "bcrypt_size"
)

type fieldRule struct {
	field domain.Field
	rule  domain.Rule
	tag   string
}

var (
	usernameRules = []fieldRule{
		{domain.FieldUsername, domain.RuleRequired, tagNotBlank},
		{domain.FieldUsername, domain.RuleTooShort, "min=" + strconv.Itoa(constants.UsernameMinLength)},
		{domain.FieldUsername, domain.RuleTooLong, "max=" + strconv.Itoa(constants.UsernameMaxLength)},
		{domain.FieldUsername, domain.RuleInvalidFormat, tagUsername},
	}

	emailRules = []fieldRule{
		{domain.FieldEmail, domain.RuleRequired, tagNotBlank},
		{domain.FieldEmail, domain.RuleInvalidFormat, tagEmail},
	}

	passwordRules = []fieldRule{
		{domain.FieldPassword, domain.RuleRequired, "required"},
		{domain.FieldPassword, domain.RuleTooShort, "min=" + strconv.Itoa(constants.PasswordMinLength)},
		{domain.FieldPassword, domain.RuleTooLong, "max=" + strconv.Itoa(constants.PasswordMaxLength)},
		{domain.FieldPassword, domain.RuleTooLong, tagBcryptSize},
	}
)

// CredentialValidator evaluates the ordered rule lists for each field and
// reports every violation. Once a field fails Required its remaining rules
// are skipped, and a rule already reported for a field is not repeated.
type CredentialValidator struct {
	validate *validator.Validate
}

func NewCredentialValidator() CredentialValidator {
	v := validator.New()
	mustRegister(v, tagNotBlank, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, tagUsername, func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
	mustRegister(v, tagEmail, func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(fl.Field().String())
	})
	mustRegister(v, tagBcryptSize, func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= constants.PasswordMaxBytes
	})
	return CredentialValidator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func (cv CredentialValidator) Validate(input domain.CreateInput) domain.ValidationErrors {
	var violations domain.ValidationErrors
	violations = append(violations, cv.ValidateUsername(input.Username)...)
	violations = append(violations, cv.ValidateEmail(input.Email)...)
	violations = append(violations, cv.ValidatePassword(input.Password, input.PasswordConfirmation)...)
	return violations
}

func (cv CredentialValidator) ValidateUsername(username string) domain.ValidationErrors {
	return cv.apply(usernameRules, username)
}

func (cv CredentialValidator) ValidateEmail(email string) domain.ValidationErrors {
	return cv.apply(emailRules, email)
}

func (cv CredentialValidator) ValidatePassword(password, confirmation string) domain.ValidationErrors {
	violations := cv.apply(passwordRules, password)
	if err := cv.validate.VarWithValue(confirmation, password, "eqcsfield"); err != nil {
		violations = append(violations, domain.ValidationError{
			Field: domain.FieldPasswordConfirmation,
			Rule:  domain.RuleConfirmationMismatch,
		})
	}
	return violations
}

func (cv CredentialValidator) apply(rules []fieldRule, value string) domain.ValidationErrors {
	var violations domain.ValidationErrors
	for _, r := range rules {
		if violations.Has(r.field, domain.RuleRequired) || violations.Has(r.field, r.rule) {
			continue
		}
		if err := cv.validate.Var(value, r.tag); err != nil {
			violations = append(violations, domain.ValidationError{Field: r.field, Rule: r.rule})
		}
	}
	return violations
}
