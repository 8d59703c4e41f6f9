// Package render turns the structured tree and its expression IR back into
// readable pseudo-code. It is a thin external consumer of the core
// packages — it never mutates an Expr or Node, only reads them.
package render

import "fmt"

var unaryOperators = map[string]string{
	"/Script/Engine.KismetMathLibrary:Not_PreBool":  "!%s",
	"/Script/Engine.KismetMathLibrary:NegateFloat":  "-%s",
	"/Script/Engine.KismetMathLibrary:NegateInt":    "-%s",
	"/Script/Engine.KismetMathLibrary:NegateInt64":  "-%s",
}

var binaryOperators = map[string]string{
	"/Script/Engine.KismetMathLibrary:BooleanAND": "(%s && %s)",
	"/Script/Engine.KismetMathLibrary:BooleanOR":  "(%s || %s)",
	"/Script/Engine.KismetMathLibrary:BooleanXOR": "(%s ^ %s)",

	"/Script/Engine.KismetMathLibrary:Add_IntInt":      "(%s + %s)",
	"/Script/Engine.KismetMathLibrary:Subtract_IntInt":  "(%s - %s)",
	"/Script/Engine.KismetMathLibrary:Multiply_IntInt":  "(%s * %s)",
	"/Script/Engine.KismetMathLibrary:Divide_IntInt":    "(%s / %s)",
	"/Script/Engine.KismetMathLibrary:Percent_IntInt":   "(%s %% %s)",

	"/Script/Engine.KismetMathLibrary:Add_FloatFloat":      "(%s + %s)",
	"/Script/Engine.KismetMathLibrary:Subtract_FloatFloat": "(%s - %s)",
	"/Script/Engine.KismetMathLibrary:Multiply_FloatFloat": "(%s * %s)",
	"/Script/Engine.KismetMathLibrary:Divide_FloatFloat":   "(%s / %s)",

	"/Script/Engine.KismetMathLibrary:Add_DoubleDouble":      "(%s + %s)",
	"/Script/Engine.KismetMathLibrary:Subtract_DoubleDouble": "(%s - %s)",
	"/Script/Engine.KismetMathLibrary:Multiply_DoubleDouble": "(%s * %s)",
	"/Script/Engine.KismetMathLibrary:Divide_DoubleDouble":   "(%s / %s)",

	"/Script/Engine.KismetMathLibrary:EqualEqual_IntInt":   "(%s == %s)",
	"/Script/Engine.KismetMathLibrary:NotEqual_IntInt":     "(%s != %s)",
	"/Script/Engine.KismetMathLibrary:Greater_IntInt":      "(%s > %s)",
	"/Script/Engine.KismetMathLibrary:GreaterEqual_IntInt": "(%s >= %s)",
	"/Script/Engine.KismetMathLibrary:Less_IntInt":         "(%s < %s)",
	"/Script/Engine.KismetMathLibrary:LessEqual_IntInt":    "(%s <= %s)",

	"/Script/Engine.KismetMathLibrary:EqualEqual_ByteByte":   "(%s == %s)",
	"/Script/Engine.KismetMathLibrary:NotEqual_ByteByte":     "(%s != %s)",
	"/Script/Engine.KismetMathLibrary:Greater_ByteByte":      "(%s > %s)",
	"/Script/Engine.KismetMathLibrary:GreaterEqual_ByteByte": "(%s >= %s)",
	"/Script/Engine.KismetMathLibrary:Less_ByteByte":         "(%s < %s)",
	"/Script/Engine.KismetMathLibrary:LessEqual_ByteByte":    "(%s <= %s)",

	"/Script/Engine.KismetMathLibrary:EqualEqual_DoubleDouble":   "(%s == %s)",
	"/Script/Engine.KismetMathLibrary:NotEqual_DoubleDouble":     "(%s != %s)",
	"/Script/Engine.KismetMathLibrary:Greater_DoubleDouble":      "(%s > %s)",
	"/Script/Engine.KismetMathLibrary:GreaterEqual_DoubleDouble": "(%s >= %s)",
	"/Script/Engine.KismetMathLibrary:Less_DoubleDouble":         "(%s < %s)",
	"/Script/Engine.KismetMathLibrary:LessEqual_DoubleDouble":    "(%s <= %s)",
}

// TryOperator recognizes a KismetMathLibrary function path as an operator
// and renders it inline, e.g. Add_IntInt(a,b) -> "(a + b)",
// Not_PreBool(a) -> "!a". Returns false for anything not in the table.
func TryOperator(path string, args []string) (string, bool) {
	switch len(args) {
	case 1:
		if tmpl, ok := unaryOperators[path]; ok {
			return fmt.Sprintf(tmpl, args[0]), true
		}
	case 2:
		if tmpl, ok := binaryOperators[path]; ok {
			return fmt.Sprintf(tmpl, args[0], args[1]), true
		}
	}
	return "", false
}
