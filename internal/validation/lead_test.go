package validation

import (
	"testing"

	"github.com/folioworks/folio-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLead_MissingFields(t *testing.T) {
	cases := map[string]LeadInput{
		"no name":      {Email: "a@b.co", Mobile: "123"},
		"no email":     {Name: "A", Mobile: "123"},
		"no mobile":    {Name: "A", Email: "a@b.co"},
		"blank name":   {Name: "   ", Email: "a@b.co", Mobile: "123"},
		"all missing":  {},
		"bad and none": {Email: "not-an-email"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateLead(in)
			require.ErrorIs(t, err, apperror.ErrMissingField)
			require.ErrorIs(t, err, apperror.ErrValidation)
			assert.Equal(t, "Name, email, and mobile are required", apperror.Message(err))
		})
	}
}

func TestValidateLead_Email(t *testing.T) {
	cases := []struct {
		email string
		ok    bool
	}{
		{"a@b.co", true},
		{"First.Last@Example.COM", true},
		{"x+tag@sub.domain.io", true},
		{"not-an-email", false},
		{"a@b", false},
		{"a b@c.d", false},
		{"@b.co", false},
		{"a@@b.co", false},
	}
	for _, tc := range cases {
		_, err := ValidateLead(LeadInput{Name: "A", Email: tc.email, Mobile: "123"})
		if tc.ok {
			assert.NoError(t, err, tc.email)
			continue
		}
		assert.ErrorIs(t, err, apperror.ErrInvalidEmail, tc.email)
		assert.Equal(t, "Please provide a valid email address", apperror.Message(err))
	}
}

func TestValidateLead_Normalizes(t *testing.T) {
	out, err := ValidateLead(LeadInput{Name: " A ", Email: " a@b.co ", Mobile: " 123 "})
	require.NoError(t, err)
	assert.Equal(t, LeadInput{Name: "A", Email: "a@b.co", Mobile: "123", Message: ""}, out)
}
