package domain

import "testing"

func TestValidateUsername(t *testing.T) {
	valid := []string{"john_doe", "a", "user.name", "j0hn", "_x_", "9lives"}
	for _, name := range valid {
		if err := ValidateUsername(name); err != nil {
			t.Errorf("ValidateUsername(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "John.Doe", "john..", "john.", "john doe", "jöhn", "user-name", "USER"}
	for _, name := range invalid {
		if err := ValidateUsername(name); err == nil {
			t.Errorf("ValidateUsername(%q) = nil, want error", name)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	valid := []string{"Passw0rd!", "Aa1@aaaa", "XyZ9*rest?"}
	for _, pw := range valid {
		if err := ValidatePassword(pw); err != nil {
			t.Errorf("ValidatePassword(%q) = %v, want nil", pw, err)
		}
	}

	invalid := []string{
		"password",   // no uppercase, digit or special
		"PASSWORD1!", // no lowercase
		"Password!",  // no digit
		"Passw0rd",   // no special
		"Aa1@aaa",    // too short
		"Passw0rd !", // space not in the allowed set
		"Passw0rd#",  // special outside the allowed set
	}
	for _, pw := range invalid {
		if err := ValidatePassword(pw); err == nil {
			t.Errorf("ValidatePassword(%q) = nil, want error", pw)
		}
	}
}

func TestValidationErrorsAreDetectable(t *testing.T) {
	err := ValidateUsername("John")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsValidation(err) {
		t.Fatalf("IsValidation(%v) = false, want true", err)
	}
	if err.Error() == "" {
		t.Fatal("validation message must not be empty")
	}
}
