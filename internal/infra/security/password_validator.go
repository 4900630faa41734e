package security

import (
	"fmt"
	"unicode"

	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

// PasswordValidationError represents a single password policy violation.
type PasswordValidationError struct {
	Code    string
	Message string
}

// Error implements error for PasswordValidationError.
func (e *PasswordValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// PasswordRule validates a password according to a specific policy rule.
type PasswordRule interface {
	Validate(password string) error
}

// PasswordRuleFunc adapts a function to be used as a PasswordRule.
type PasswordRuleFunc func(password string) error

// Validate executes the underlying rule function.
func (f PasswordRuleFunc) Validate(password string) error {
	return f(password)
}

// PasswordValidator applies a sequence of password rules.
type PasswordValidator struct {
	rules []PasswordRule
}

// NewPasswordValidator constructs a validator with the provided rules.
func NewPasswordValidator(rules ...PasswordRule) *PasswordValidator {
	copied := make([]PasswordRule, len(rules))
	copy(copied, rules)
	return &PasswordValidator{rules: copied}
}

// Validate executes all rules and returns the first encountered violation.
func (v *PasswordValidator) Validate(password string) error {
	if v == nil {
		return fmt.Errorf("password validator not configured")
	}
	for _, rule := range v.rules {
		if err := rule.Validate(password); err != nil {
			return err
		}
	}
	return nil
}

const (
	minPasswordLength = 8
	minStrengthScore  = 2 // zxcvbn score 0-4
)

// DefaultPasswordValidator returns the registration password policy: minimum
// length, at least one letter and one digit, and a zxcvbn strength floor.
func DefaultPasswordValidator() *PasswordValidator {
	return NewPasswordValidator(
		PasswordRuleFunc(func(password string) error {
			if len(password) < minPasswordLength {
				return &PasswordValidationError{
					Code:    "too_short",
					Message: fmt.Sprintf("password must be at least %d characters", minPasswordLength),
				}
			}
			return nil
		}),
		PasswordRuleFunc(func(password string) error {
			var hasLetter, hasDigit bool
			for _, r := range password {
				switch {
				case unicode.IsLetter(r):
					hasLetter = true
				case unicode.IsDigit(r):
					hasDigit = true
				}
			}
			if !hasLetter || !hasDigit {
				return &PasswordValidationError{
					Code:    "missing_classes",
					Message: "password must contain at least one letter and one digit",
				}
			}
			return nil
		}),
		PasswordRuleFunc(func(password string) error {
			result := zxcvbn.PasswordStrength(password, nil)
			if result.Score < minStrengthScore {
				return &PasswordValidationError{
					Code:    "too_weak",
					Message: "password is too easy to guess",
				}
			}
			return nil
		}),
	)
}
