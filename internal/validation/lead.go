package validation

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/folioworks/folio-api/pkg/apperror"
	"github.com/go-playground/validator/v10"
)

// emailPattern accepts "non-space @ non-space . non-space"; it is not RFC 5322.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LeadInput is the raw contact submission.
type LeadInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,looseemail"`
	Mobile  string `json:"mobile" validate:"required"`
	Message string `json:"message"`
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
			return IsEmail(fl.Field().String())
		})
	})
	return validate
}

// IsEmail reports whether s has the loose email shape.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateLead checks required fields and the email shape. It returns a
// normalized copy (surrounding whitespace trimmed) or an apperror with base
// ErrMissingField or ErrInvalidEmail. Missing fields are reported first.
func ValidateLead(in LeadInput) (LeadInput, error) {
	out := LeadInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Mobile:  strings.TrimSpace(in.Mobile),
		Message: in.Message,
	}

	err := instance().Struct(out)
	if err == nil {
		return out, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return LeadInput{}, apperror.NewInternal("validate lead", err)
	}
	var missing []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, strings.ToLower(fe.Field()))
		}
	}
	if len(missing) > 0 {
		return LeadInput{}, apperror.NewMissingField(strings.Join(missing, ","))
	}
	return LeadInput{}, apperror.NewInvalidEmail(out.Email)
}
