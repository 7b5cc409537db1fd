package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistration(t *testing.T) {
	tests := []struct {
		name       string
		payload    RegisterPayload
		wantFields []string
	}{
		{
			name:    "valid payload",
			payload: RegisterPayload{Email: "a@x.com", Password: "Abcdefg1", Name: "Ann"},
		},
		{
			name:       "everything missing",
			payload:    RegisterPayload{},
			wantFields: []string{"email", "password", "name"},
		},
		{
			name:       "invalid email",
			payload:    RegisterPayload{Email: "not-an-email", Password: "Abcdefg1", Name: "Ann"},
			wantFields: []string{"email"},
		},
		{
			name:       "email without tld",
			payload:    RegisterPayload{Email: "a@x", Password: "Abcdefg1", Name: "Ann"},
			wantFields: []string{"email"},
		},
		{
			name:       "single char tld",
			payload:    RegisterPayload{Email: "a@x.c", Password: "Abcdefg1", Name: "Ann"},
			wantFields: []string{"email"},
		},
		{
			name:       "short password",
			payload:    RegisterPayload{Email: "a@x.com", Password: "Ab1", Name: "Ann"},
			wantFields: []string{"password"},
		},
		{
			name:       "password without digit",
			payload:    RegisterPayload{Email: "a@x.com", Password: "Abcdefgh", Name: "Ann"},
			wantFields: []string{"password"},
		},
		{
			name:       "password without uppercase",
			payload:    RegisterPayload{Email: "a@x.com", Password: "abcdefg1", Name: "Ann"},
			wantFields: []string{"password"},
		},
		{
			name:       "short name",
			payload:    RegisterPayload{Email: "a@x.com", Password: "Abcdefg1", Name: "A"},
			wantFields: []string{"name"},
		},
		{
			name:       "all failures reported together",
			payload:    RegisterPayload{Email: "nope", Password: "short", Name: "x"},
			wantFields: []string{"email", "password", "name"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Registration(tt.payload)
			assert.Len(t, errs, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, errs, f)
				assert.NotEmpty(t, errs[f])
			}
		})
	}
}

func TestRegistrationNormalizes(t *testing.T) {
	p, errs := Registration(RegisterPayload{
		Email:    "  Ann@X.COM ",
		Password: "Abcdefg1",
		Name:     "  Ann <script> ",
	})
	assert.Empty(t, errs)
	assert.Equal(t, "ann@x.com", p.Email)
	assert.Equal(t, "Ann &lt;script&gt;", p.Name)
}

func TestRegistrationNameLengthCheckedBeforeEscaping(t *testing.T) {
	// Escaping expands "<" to "&lt;"; the length rule must see the raw rune count.
	_, errs := Registration(RegisterPayload{Email: "a@x.com", Password: "Abcdefg1", Name: "<"})
	assert.Contains(t, errs, "name")
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		payload    LoginPayload
		wantFields []string
	}{
		{
			name:    "valid payload",
			payload: LoginPayload{Email: "a@x.com", Password: "Abcdefg1"},
		},
		{
			// No strength re-check at login: this password has no digit
			// or uppercase and must still pass.
			name:    "weak but long enough password accepted",
			payload: LoginPayload{Email: "a@x.com", Password: "abcdefgh"},
		},
		{
			name:       "missing password",
			payload:    LoginPayload{Email: "a@x.com"},
			wantFields: []string{"password"},
		},
		{
			name:       "short password",
			payload:    LoginPayload{Email: "a@x.com", Password: "short"},
			wantFields: []string{"password"},
		},
		{
			name:       "missing email",
			payload:    LoginPayload{Password: "Abcdefg1"},
			wantFields: []string{"email"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Login(tt.payload)
			assert.Len(t, errs, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, errs, f)
			}
		})
	}
}
