package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		errs := ValidateRegister("ana@example.com", "ana_k", "Ana K", "Secret123")
		assert.False(t, errs.HasErrors(), errs)
	})

	t.Run("every field wrong", func(t *testing.T) {
		errs := ValidateRegister("not-an-email", "a!", "", "short")
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "username")
		assert.Contains(t, errs, "display_name")
		assert.Contains(t, errs, "password")
	})

	t.Run("email forms", func(t *testing.T) {
		tests := []struct {
			email string
			ok    bool
		}{
			{"ana@example.com", true},
			{"ana.k+tag@mail.example.org", true},
			{"Ana <ana@example.com>", false},
			{"<ana@example.com>", false},
			{"ana@localhost", false},
			{"ana@example.", false},
			{"ana@", false},
		}
		for _, tt := range tests {
			errs := ValidateRegister(tt.email, "ana_k", "Ana K", "Secret123")
			assert.Equal(t, !tt.ok, errs.HasErrors(), tt.email)
		}
	})

	t.Run("username charset", func(t *testing.T) {
		errs := ValidateRegister("ana@example.com", "ana k", "Ana K", "Secret123")
		assert.Equal(t, "Username can only contain letters, numbers, _ and -", errs["username"])
	})

	t.Run("password missing classes", func(t *testing.T) {
		errs := ValidateRegister("ana@example.com", "ana_k", "Ana K", "alllowercase")
		assert.Equal(t, "Password must contain at least one uppercase letter, one number", errs["password"])
	})
}

func TestValidateLogin(t *testing.T) {
	assert.False(t, ValidateLogin("ana", "x").HasErrors())

	errs := ValidateLogin("  ", "")
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "password")
}

func TestNormalizePost(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{name: "trimmed", content: "  hello world \n", want: "hello world"},
		{name: "exactly 280", content: strings.Repeat("a", 280), want: strings.Repeat("a", 280)},
		{name: "281 rejected", content: strings.Repeat("a", 281), wantErr: true},
		{name: "whitespace only", content: " \t\n ", wantErr: true},
		{name: "empty", content: "", wantErr: true},
		{name: "280 multibyte runes", content: strings.Repeat("ž", 280), want: strings.Repeat("ž", 280)},
		// "e" + combining acute composes to a single code point
		{name: "composed before counting", content: strings.Repeat("e\u0301", 280), want: strings.Repeat("\u00e9", 280)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs := NormalizePost(tt.content)
			if tt.wantErr {
				assert.Contains(t, errs, "content")
				return
			}
			assert.False(t, errs.HasErrors(), errs)
			assert.Equal(t, tt.want, got)
		})
	}
}
