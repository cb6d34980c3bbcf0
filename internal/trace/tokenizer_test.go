package trace

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "suffix stripped from exception class",
			input:    "UserServiceException",
			expected: []string{"UserService"},
		},
		{
			name:     "short runs filtered",
			input:    "at Ab",
			expected: []string{},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []string{},
		},
		{
			name:     "whitespace only",
			input:    "   \n\t  ",
			expected: []string{},
		},
		{
			name:     "typical trace line",
			input:    "NullPointerException at UserService.process",
			expected: []string{"NullPointer", "User", "process"},
		},
		{
			name:     "bare suffix discarded",
			input:    "Exception",
			expected: []string{},
		},
		{
			name:     "bean suffix stripped",
			input:    "orderRepositoryBean",
			expected: []string{"orderRepository"},
		},
		{
			name:     "controller suffix stripped",
			input:    "PaymentController.handle",
			expected: []string{"Payment", "handle"},
		},
		{
			name:     "only one suffix stripped",
			input:    "CartServiceController",
			expected: []string{"CartService"},
		},
		{
			name:  "duplicates removed in first occurrence order",
			input: "OrderService OrderService InventoryService",
			expected: []string{
				"Order",
				"Inventory",
			},
		},
		{
			name:     "underscores kept in runs",
			input:    "legacy_handler failed",
			expected: []string{"legacy_handler", "failed"},
		},
		{
			name:     "numbers inside identifiers",
			input:    "Http404Exception",
			expected: []string{"Http404"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTokenizeNeverReturnsShortTokens(t *testing.T) {
	inputs := []string{
		"a b c d at is in on",
		"IOExceptionBean",
		"x1 y2 z3",
	}

	for _, input := range inputs {
		for _, token := range Tokenize(input) {
			if len(token) <= minTokenLen {
				t.Errorf("Tokenize(%q) produced short token %q", input, token)
			}
		}
	}
}
