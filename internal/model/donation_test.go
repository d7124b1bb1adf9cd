package model

import "testing"

func TestValidStatus(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{StatusAvailable, true},
		{StatusRequested, true},
		{StatusReserved, true},
		{StatusCompleted, true},
		{"Available", false},
		{"pending", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidStatus(tt.status); got != tt.expected {
			t.Errorf("ValidStatus(%q) = %v, want %v", tt.status, got, tt.expected)
		}
	}
}

func TestValidCategory(t *testing.T) {
	tests := []struct {
		category string
		expected bool
	}{
		{"Furniture", true},
		{"Household", true},
		{"Other", true},
		{"furniture", false},
		{"Vehicles", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidCategory(tt.category); got != tt.expected {
			t.Errorf("ValidCategory(%q) = %v, want %v", tt.category, got, tt.expected)
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"furniture", "Furniture"},
		{"HOUSEHOLD", "Household"},
		{"Books", "Books"},
		{"vehicles", "vehicles"},
	}

	for _, tt := range tests {
		if got := NormalizeCategory(tt.in); got != tt.expected {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestValidCondition(t *testing.T) {
	tests := []struct {
		condition string
		expected  bool
	}{
		{"New", true},
		{"Like New", true},
		{"Needs Repair", true},
		{"new", false},
		{"Broken", false},
	}

	for _, tt := range tests {
		if got := ValidCondition(tt.condition); got != tt.expected {
			t.Errorf("ValidCondition(%q) = %v, want %v", tt.condition, got, tt.expected)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"", true},
		{"short", true},
		{"1234567", true},
		{"12345678", false},
		{"a-valid-password", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"", true},
		{"not-an-email", true},
		{"@example.com", true},
		{"ann@", true},
		{"ann@x.com", false},
	}

	for _, tt := range tests {
		err := ValidateEmail(tt.email)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
		}
	}
}
