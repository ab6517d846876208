package handler

import (
	"strings"
	"testing"
)

func TestValidator_Register(t *testing.T) {
	v := NewValidator()

	valid := registerRequest{
		Name:     "Alice Doe",
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Passw0rd!",
	}
	if err := v.Validate(&valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(r *registerRequest)
		wantMsg string
	}{
		{"empty name", func(r *registerRequest) { r.Name = "" }, "name cannot be empty"},
		{"digits in name", func(r *registerRequest) { r.Name = "Alice 2" }, "letters and spaces"},
		{"bad email", func(r *registerRequest) { r.Email = "not-an-email" }, "invalid email format"},
		{"short password", func(r *registerRequest) { r.Password = "Ab1!" }, "at least 8 characters"},
		{"no digit", func(r *registerRequest) { r.Password = "Password!" }, "at least 8 characters"},
		{"no special", func(r *registerRequest) { r.Password = "Password1" }, "at least 8 characters"},
		{"forbidden special", func(r *registerRequest) { r.Password = "Password1#" }, "at least 8 characters"},
	}
	for _, tc := range cases {
		req := valid
		tc.mutate(&req)
		err := v.Validate(&req)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.wantMsg) {
			t.Fatalf("%s: message %q does not contain %q", tc.name, err.Error(), tc.wantMsg)
		}
	}
}

func TestValidator_UpdateRequest(t *testing.T) {
	v := NewValidator()

	valid := updateRegisterRequest{
		Name:      "Alice Doe",
		Username:  "alice",
		Email:     "alice@example.com",
		BirthDate: "1990-05-17",
		JobTitle:  "Engineer",
		Location:  "Berlin",
	}
	if err := v.Validate(&valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	// Blank password is allowed on update; a present one must satisfy the policy.
	withWeak := valid
	withWeak.Password = "weak"
	if err := v.Validate(&withWeak); err == nil {
		t.Fatalf("weak password accepted on update")
	}

	badDate := valid
	badDate.BirthDate = "17/05/1990"
	err := v.Validate(&badDate)
	if err == nil || !strings.Contains(err.Error(), "2006-01-02") {
		t.Fatalf("expected date format error, got %v", err)
	}
}

func TestValidator_CollapsesDuplicateFieldErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerRequest{})
	if err == nil {
		t.Fatalf("expected error")
	}
	// One message per field, comma-joined.
	if strings.Count(err.Error(), "cannot be empty") < 2 {
		t.Fatalf("expected multiple field messages, got %q", err.Error())
	}
}
