package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validRegister() *RegisterRequest {
	return &RegisterRequest{
		Email:     "Jane.Doe@Example.com",
		Password:  "Str0ngPass",
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "+14155552671",
		Address:   "12 Hill Road",
	}
}

func TestValidateRegister(t *testing.T) {
	req := validRegister()
	require.NoError(t, ValidateRegister(req))
	require.Equal(t, "jane.doe@example.com", req.Email, "email should be normalized")
}

func TestValidateRegister_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"weak password", func(r *RegisterRequest) { r.Password = "weakpass" }},
		{"short first name", func(r *RegisterRequest) { r.FirstName = "J" }},
		{"numeric last name", func(r *RegisterRequest) { r.LastName = "Doe99" }},
		{"bad phone", func(r *RegisterRequest) { r.Phone = "call me" }},
		{"missing phone", func(r *RegisterRequest) { r.Phone = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegister()
			tc.mutate(req)
			require.Error(t, ValidateRegister(req))
		})
	}
}

func TestValidateLogin(t *testing.T) {
	require.NoError(t, ValidateLogin(&LoginRequest{Email: "jane@example.com", Password: "whatever"}))
	require.Error(t, ValidateLogin(&LoginRequest{Email: "bad", Password: "whatever"}))
	require.Error(t, ValidateLogin(&LoginRequest{Email: "jane@example.com"}))
}

func TestValidateChangePassword(t *testing.T) {
	require.NoError(t, ValidateChangePassword(&ChangePasswordRequest{
		CurrentPassword: "OldPass99",
		NewPassword:     "NewPass99",
	}))
	require.Error(t, ValidateChangePassword(&ChangePasswordRequest{NewPassword: "NewPass99"}))
	require.Error(t, ValidateChangePassword(&ChangePasswordRequest{
		CurrentPassword: "OldPass99",
		NewPassword:     "weak",
	}))
}
