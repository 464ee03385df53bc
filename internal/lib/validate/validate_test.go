package validate

import (
	"strings"
	"testing"
)

type queryFixture struct {
	ServiceName  string `json:"service_name" validate:"required"`
	CurrencyCode string `json:"currency_code" validate:"required,currency"`
	Limit        int    `json:"limit" validate:"gte=1,lte=1000"`
	PriceType    string `json:"price_type,omitempty" validate:"omitempty,oneof=Consumption Reservation DevTestConsumption"`
}

func validFixture() queryFixture {
	return queryFixture{
		ServiceName:  "Virtual Machines",
		CurrencyCode: "USD",
		Limit:        50,
	}
}

func TestStruct_ValidInput(t *testing.T) {
	s := validFixture()
	if err := Struct(&s); err != nil {
		t.Errorf("Struct() with valid input returned error: %v", err)
	}
}

func TestStruct_MissingRequired(t *testing.T) {
	s := validFixture()
	s.ServiceName = ""

	err := Struct(&s)
	if err == nil {
		t.Fatal("Struct() should return error for missing required field")
	}
	if !strings.Contains(err.Error(), "service_name is required") {
		t.Errorf("error should name the json field, got: %v", err)
	}
}

func TestStruct_Currency(t *testing.T) {
	tests := []struct {
		currency  string
		expectErr bool
	}{
		{"USD", false},
		{"eur", false},
		{"GBP", false},
		{"XYZ", true},
		{"dollars please", true},
	}

	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			s := validFixture()
			s.CurrencyCode = tt.currency
			err := Struct(s)
			if (err != nil) != tt.expectErr {
				t.Errorf("Struct() error = %v, expectErr %v", err, tt.expectErr)
			}
			if err != nil && !strings.Contains(err.Error(), "ISO 4217") {
				t.Errorf("unexpected message: %v", err)
			}
		})
	}
}

func TestStruct_LimitRange(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		expectErr bool
	}{
		{"lower bound", 1, false},
		{"upper bound", 1000, false},
		{"zero", 0, true},
		{"over max", 1001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validFixture()
			s.Limit = tt.limit
			err := Struct(s)
			if (err != nil) != tt.expectErr {
				t.Errorf("Struct() error = %v, expectErr %v", err, tt.expectErr)
			}
		})
	}
}

func TestStruct_OneOf(t *testing.T) {
	s := validFixture()
	s.PriceType = "Spot"
	err := Struct(s)
	if err == nil || !strings.Contains(err.Error(), "price_type must be one of") {
		t.Errorf("Struct() error = %v, want oneof message", err)
	}
}

func TestStruct_MultipleErrors(t *testing.T) {
	s := queryFixture{}
	err := Struct(&s)
	if err == nil {
		t.Fatal("Struct() should return error for multiple invalid fields")
	}
	if !strings.Contains(err.Error(), ";") {
		t.Errorf("multiple errors should be separated by ';', got: %v", err)
	}
}

func TestStruct_NilInput(t *testing.T) {
	err := Struct(nil)
	if err == nil || !strings.Contains(err.Error(), "nil") {
		t.Errorf("Struct(nil) error = %v, want mention of nil", err)
	}
}

func TestStruct_NotAStruct(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{"string", "not a struct"},
		{"int", 42},
		{"slice", []int{1, 2, 3}},
		{"map", map[string]int{"a": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if err == nil || !strings.Contains(err.Error(), "not a struct") {
				t.Errorf("Struct() error = %v, want 'not a struct'", err)
			}
		})
	}
}

func TestIsStruct(t *testing.T) {
	var nilPtr *queryFixture
	tests := []struct {
		name     string
		input    interface{}
		expected bool
	}{
		{"struct value", queryFixture{}, true},
		{"struct pointer", &queryFixture{}, true},
		{"nil pointer", nilPtr, false},
		{"string", "hello", false},
		{"int", 42, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStruct(tt.input); got != tt.expected {
				t.Errorf("IsStruct(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
