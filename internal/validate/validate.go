// Package validate holds the declarative form rules evaluated before a
// handler runs. A failed set short-circuits the request: the handler
// re-renders the originating form with the collected messages and the
// submitted values echoed back.
package validate

import (
	"regexp"
	"strconv"
	"strings"
)

type Rule struct {
	Field   string
	Message string
	Check   func(value string) bool
}

type RuleSet []Rule

// Validate evaluates every rule against the form accessor and returns all
// failure messages, never just the first one.
func (rs RuleSet) Validate(form func(field string) string) []string {
	var errs []string
	for _, r := range rs {
		if !r.Check(strings.TrimSpace(form(r.Field))) {
			errs = append(errs, r.Message)
		}
	}
	return errs
}

func Required(field, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(v string) bool {
		return v != ""
	}}
}

func Pattern(field string, re *regexp.Regexp, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(v string) bool {
		return re.MatchString(v)
	}}
}

func IntRange(field string, min, max int, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(v string) bool {
		n, err := strconv.Atoi(v)
		return err == nil && n >= min && n <= max
	}}
}

func MinInt(field string, min int, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(v string) bool {
		n, err := strconv.Atoi(v)
		return err == nil && n >= min
	}}
}

func MinFloat(field string, min float64, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(v string) bool {
		f, err := strconv.ParseFloat(v, 64)
		return err == nil && f >= min
	}}
}

var (
	classificationNameRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	emailRe              = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func RegistrationRules() RuleSet {
	return RuleSet{
		Required("account_firstname", "Please provide a first name."),
		Required("account_lastname", "Please provide a last name."),
		Pattern("account_email", emailRe, "A valid email is required."),
		Required("account_password", "Please provide a password."),
	}
}

func LoginRules() RuleSet {
	return RuleSet{
		Pattern("account_email", emailRe, "A valid email is required."),
		Required("account_password", "Please provide a password."),
	}
}

func AccountUpdateRules() RuleSet {
	return RuleSet{
		Required("account_firstname", "Please provide a first name."),
		Required("account_lastname", "Please provide a last name."),
		Pattern("account_email", emailRe, "A valid email is required."),
	}
}

func PasswordUpdateRules() RuleSet {
	return RuleSet{
		Required("account_password", "Please provide a password."),
	}
}

func ClassificationRules() RuleSet {
	return RuleSet{
		Pattern("classification_name", classificationNameRe,
			"Classification name cannot contain spaces or special characters."),
	}
}

func InventoryRules() RuleSet {
	return RuleSet{
		MinInt("classification_id", 1, "Please choose a classification."),
		Required("inv_make", "Make is required."),
		Required("inv_model", "Model is required."),
		IntRange("inv_year", 1900, 2099, "Year must be a valid 4-digit year."),
		Required("inv_description", "Description is required."),
		Required("inv_image", "Image path is required."),
		Required("inv_thumbnail", "Thumbnail path is required."),
		MinFloat("inv_price", 0, "Price must be a positive number."),
		MinInt("inv_miles", 0, "Miles must be a positive number."),
		Required("inv_color", "Color is required."),
	}
}
