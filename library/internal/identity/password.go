package identity

import (
	"fmt"
	"unicode"
)

// PasswordPolicy mirrors the usual identity defaults: six characters with
// a digit, a lower and an upper case letter and a symbol.
type PasswordPolicy struct {
	MinLength          int
	RequireDigit       bool
	RequireLowercase   bool
	RequireUppercase   bool
	RequireNonAlphanum bool
}

func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:          6,
		RequireDigit:       true,
		RequireLowercase:   true,
		RequireUppercase:   true,
		RequireNonAlphanum: true,
	}
}

// Check returns every rule the password breaks.
func (p PasswordPolicy) Check(password string) []string {
	var (
		digit, lower, upper, symbol bool
		length                      int
	)
	for _, r := range password {
		length++
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case !unicode.IsLetter(r):
			symbol = true
		}
	}

	var problems []string
	if length < p.MinLength {
		problems = append(problems, fmt.Sprintf("Passwords must be at least %d characters.", p.MinLength))
	}
	if p.RequireNonAlphanum && !symbol {
		problems = append(problems, "Passwords must have at least one non alphanumeric character.")
	}
	if p.RequireDigit && !digit {
		problems = append(problems, "Passwords must have at least one digit ('0'-'9').")
	}
	if p.RequireLowercase && !lower {
		problems = append(problems, "Passwords must have at least one lowercase ('a'-'z').")
	}
	if p.RequireUppercase && !upper {
		problems = append(problems, "Passwords must have at least one uppercase ('A'-'Z').")
	}
	return problems
}
