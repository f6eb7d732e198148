package flow

import (
	"fmt"
)

// ResolveName computes the collision-resistant identifier for a step.
//
// Unnamed steps auto-name from their execution index, a named tester
// prefixes every step, and a non-empty configuration label (matrix runs)
// is appended last:
//
//	("", "", 3, "")            -> "step-3"
//	("checkout", "", 3, "")    -> "checkout-step-3"
//	("", "cart", 0, "")        -> "cart"
//	("checkout", "cart", 0, "dark") -> "checkout-cart-dark"
//
// Resolution is pure: the result depends only on the four arguments, so
// composed step lists renumber automatically at execution time.
func ResolveName(testerName, stepName string, index int, configLabel string) string {
	name := stepName
	if name == "" {
		name = fmt.Sprintf("step-%d", index)
	}
	if testerName != "" {
		name = testerName + "-" + name
	}
	if configLabel != "" {
		name = name + "-" + configLabel
	}
	return name
}
