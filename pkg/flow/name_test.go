package flow

import "testing"

func TestResolveName(t *testing.T) {
	tests := []struct {
		testerName  string
		stepName    string
		index       int
		configLabel string
		expected    string
	}{
		// Named tester, named step
		{"checkout", "cart", 0, "", "checkout-cart"},
		// Unnamed tester, named step
		{"", "cart", 0, "", "cart"},
		// Named tester, unnamed step auto-names from index
		{"checkout", "", 3, "", "checkout-step-3"},
		// Unnamed tester, unnamed step
		{"", "", 0, "", "step-0"},
		{"", "", 12, "", "step-12"},
		// Matrix label appended whenever non-empty
		{"checkout", "cart", 0, "dark", "checkout-cart-dark"},
		{"", "cart", 1, "light", "cart-light"},
		{"", "", 2, "dark", "step-2-dark"},
		{"checkout", "", 0, "light", "checkout-step-0-light"},
	}

	for _, tt := range tests {
		got := ResolveName(tt.testerName, tt.stepName, tt.index, tt.configLabel)
		if got != tt.expected {
			t.Errorf("ResolveName(%q, %q, %d, %q) = %q, want %q",
				tt.testerName, tt.stepName, tt.index, tt.configLabel, got, tt.expected)
		}
	}
}

func TestResolveName_Reproducible(t *testing.T) {
	// Resolution carries no hidden state
	a := ResolveName("t", "s", 5, "dark")
	b := ResolveName("t", "s", 5, "dark")
	if a != b {
		t.Errorf("resolution not reproducible: %q vs %q", a, b)
	}
}
