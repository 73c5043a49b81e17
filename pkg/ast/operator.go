package ast

// Precedence levels for PHP operators, loosest first.
type Precedence int

const (
	_ Precedence = iota
	PrecedenceLowest
	PrecedenceKeyOr        // or
	PrecedenceKeyXor       // xor
	PrecedenceKeyAnd       // and
	PrecedenceAssignment   // = += -= ... ??=
	PrecedenceConditional  // ? : and ?:
	PrecedenceNullCoalesce // ??
	PrecedenceOr           // ||
	PrecedenceAnd          // &&
	PrecedenceBitwiseOr    // |
	PrecedenceBitwiseXor   // ^
	PrecedenceBitwiseAnd   // &
	PrecedenceEquality     // == != === !== <> <=>
	PrecedenceComparison   // < <= > >=
	PrecedencePipe         // |>
	PrecedenceConcat       // .
	PrecedenceBitShift     // << >>
	PrecedenceAddSub       // + -
	PrecedenceMulDivMod    // * / %
	PrecedenceBang         // !
	PrecedenceInstanceof   // instanceof
	PrecedencePrefix       // ++ -- ~ casts @ unary + -
	PrecedencePow          // **
	PrecedenceClone        // clone new
)

// Associativity of a binary operator.
type Associativity int

const (
	AssociativityNone Associativity = iota
	AssociativityLeft
	AssociativityRight
)

// BinaryOperator enumerates the infix operators of Binary nodes.
type BinaryOperator int

const (
	OpAddition BinaryOperator = iota
	OpSubtraction
	OpMultiplication
	OpDivision
	OpModulo
	OpExponentiation
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseXor
	OpLeftShift
	OpRightShift
	OpNullCoalesce
	OpEqual
	OpNotEqual
	OpIdentical
	OpNotIdentical
	OpAngledNotEqual
	OpLessThan
	OpLessThanOrEqual
	OpGreaterThan
	OpGreaterThanOrEqual
	OpSpaceship
	OpStringConcat
	OpInstanceof
	OpAnd
	OpOr
	OpLowAnd
	OpLowOr
	OpLowXor
	OpElvis
)

type binaryInfo struct {
	text          string
	precedence    Precedence
	associativity Associativity
}

var binaryOperators = [...]binaryInfo{
	OpAddition:           {"+", PrecedenceAddSub, AssociativityLeft},
	OpSubtraction:        {"-", PrecedenceAddSub, AssociativityLeft},
	OpMultiplication:     {"*", PrecedenceMulDivMod, AssociativityLeft},
	OpDivision:           {"/", PrecedenceMulDivMod, AssociativityLeft},
	OpModulo:             {"%", PrecedenceMulDivMod, AssociativityLeft},
	OpExponentiation:     {"**", PrecedencePow, AssociativityRight},
	OpBitwiseAnd:         {"&", PrecedenceBitwiseAnd, AssociativityLeft},
	OpBitwiseOr:          {"|", PrecedenceBitwiseOr, AssociativityLeft},
	OpBitwiseXor:         {"^", PrecedenceBitwiseXor, AssociativityLeft},
	OpLeftShift:          {"<<", PrecedenceBitShift, AssociativityLeft},
	OpRightShift:         {">>", PrecedenceBitShift, AssociativityLeft},
	OpNullCoalesce:       {"??", PrecedenceNullCoalesce, AssociativityRight},
	OpEqual:              {"==", PrecedenceEquality, AssociativityNone},
	OpNotEqual:           {"!=", PrecedenceEquality, AssociativityNone},
	OpIdentical:          {"===", PrecedenceEquality, AssociativityNone},
	OpNotIdentical:       {"!==", PrecedenceEquality, AssociativityNone},
	OpAngledNotEqual:     {"<>", PrecedenceEquality, AssociativityNone},
	OpLessThan:           {"<", PrecedenceComparison, AssociativityNone},
	OpLessThanOrEqual:    {"<=", PrecedenceComparison, AssociativityNone},
	OpGreaterThan:        {">", PrecedenceComparison, AssociativityNone},
	OpGreaterThanOrEqual: {">=", PrecedenceComparison, AssociativityNone},
	OpSpaceship:          {"<=>", PrecedenceEquality, AssociativityNone},
	OpStringConcat:       {".", PrecedenceConcat, AssociativityLeft},
	OpInstanceof:         {"instanceof", PrecedenceInstanceof, AssociativityNone},
	OpAnd:                {"&&", PrecedenceAnd, AssociativityLeft},
	OpOr:                 {"||", PrecedenceOr, AssociativityLeft},
	OpLowAnd:             {"and", PrecedenceKeyAnd, AssociativityLeft},
	OpLowOr:              {"or", PrecedenceKeyOr, AssociativityLeft},
	OpLowXor:             {"xor", PrecedenceKeyXor, AssociativityLeft},
	OpElvis:              {"?:", PrecedenceConditional, AssociativityLeft},
}

func (op BinaryOperator) String() string               { return binaryOperators[op].text }
func (op BinaryOperator) Precedence() Precedence       { return binaryOperators[op].precedence }
func (op BinaryOperator) Associativity() Associativity { return binaryOperators[op].associativity }

// IsSameAs reports whether both operators are literally the same.
func (op BinaryOperator) IsSameAs(other BinaryOperator) bool { return op == other }

// IsComparison covers equality, relational and spaceship operators.
func (op BinaryOperator) IsComparison() bool {
	switch op {
	case OpEqual, OpNotEqual, OpIdentical, OpNotIdentical, OpAngledNotEqual,
		OpLessThan, OpLessThanOrEqual, OpGreaterThan, OpGreaterThanOrEqual, OpSpaceship:
		return true
	}
	return false
}

func (op BinaryOperator) IsEquality() bool {
	switch op {
	case OpEqual, OpNotEqual, OpIdentical, OpNotIdentical, OpAngledNotEqual:
		return true
	}
	return false
}

func (op BinaryOperator) IsBitwise() bool {
	switch op {
	case OpBitwiseAnd, OpBitwiseOr, OpBitwiseXor, OpLeftShift, OpRightShift:
		return true
	}
	return false
}

func (op BinaryOperator) IsBitShift() bool {
	return op == OpLeftShift || op == OpRightShift
}

func (op BinaryOperator) IsArithmetic() bool {
	switch op {
	case OpAddition, OpSubtraction, OpMultiplication, OpDivision, OpModulo, OpExponentiation:
		return true
	}
	return false
}

func (op BinaryOperator) IsMultiplicative() bool {
	return op == OpMultiplication || op == OpDivision || op == OpModulo
}

func (op BinaryOperator) IsLogical() bool {
	switch op {
	case OpAnd, OpOr, OpLowAnd, OpLowOr, OpLowXor:
		return true
	}
	return false
}

// IsLowPrecedence reports the keyword forms `and`, `or` and `xor`.
func (op BinaryOperator) IsLowPrecedence() bool {
	return op == OpLowAnd || op == OpLowOr || op == OpLowXor
}

func (op BinaryOperator) IsConcatenation() bool { return op == OpStringConcat }
func (op BinaryOperator) IsNullCoalesce() bool  { return op == OpNullCoalesce }

// UnaryPrefixOperator enumerates prefix operators, casts included.
type UnaryPrefixOperator int

const (
	OpArrayCast UnaryPrefixOperator = iota
	OpBoolCast
	OpBooleanCast
	OpDoubleCast
	OpRealCast
	OpFloatCast
	OpIntCast
	OpIntegerCast
	OpObjectCast
	OpUnsetCast
	OpBinaryCast
	OpStringCast
	OpVoidCast
	OpErrorControl
	OpNot
	OpBitwiseNot
	OpNegation
	OpPlus
	OpPreIncrement
	OpPreDecrement
	OpReference
)

var prefixText = [...]string{
	OpArrayCast:    "(array)",
	OpBoolCast:     "(bool)",
	OpBooleanCast:  "(boolean)",
	OpDoubleCast:   "(double)",
	OpRealCast:     "(real)",
	OpFloatCast:    "(float)",
	OpIntCast:      "(int)",
	OpIntegerCast:  "(integer)",
	OpObjectCast:   "(object)",
	OpUnsetCast:    "(unset)",
	OpBinaryCast:   "(binary)",
	OpStringCast:   "(string)",
	OpVoidCast:     "(void)",
	OpErrorControl: "@",
	OpNot:          "!",
	OpBitwiseNot:   "~",
	OpNegation:     "-",
	OpPlus:         "+",
	OpPreIncrement: "++",
	OpPreDecrement: "--",
	OpReference:    "&",
}

func (op UnaryPrefixOperator) String() string { return prefixText[op] }

func (op UnaryPrefixOperator) IsCast() bool { return op <= OpVoidCast }

func (op UnaryPrefixOperator) IsErrorControl() bool { return op == OpErrorControl }

// IsSign reports the operators whose text starts with "+" or "-".
func (op UnaryPrefixOperator) IsSign() bool {
	switch op {
	case OpNegation, OpPlus, OpPreIncrement, OpPreDecrement:
		return true
	}
	return false
}

func (op UnaryPrefixOperator) Precedence() Precedence {
	switch op {
	case OpNot:
		return PrecedenceBang
	case OpReference:
		return PrecedenceBitwiseAnd
	default:
		return PrecedencePrefix
	}
}

// UnaryPostfixOperator enumerates postfix operators.
type UnaryPostfixOperator int

const (
	OpPostIncrement UnaryPostfixOperator = iota
	OpPostDecrement
)

func (op UnaryPostfixOperator) String() string {
	if op == OpPostDecrement {
		return "--"
	}
	return "++"
}

// AssignmentOperator enumerates plain and compound assignment.
type AssignmentOperator int

const (
	OpAssign AssignmentOperator = iota
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpPowAssign
	OpConcatAssign
	OpBitwiseAndAssign
	OpBitwiseOrAssign
	OpBitwiseXorAssign
	OpLeftShiftAssign
	OpRightShiftAssign
	OpCoalesceAssign
)

var assignmentText = [...]string{
	OpAssign:           "=",
	OpAddAssign:        "+=",
	OpSubAssign:        "-=",
	OpMulAssign:        "*=",
	OpDivAssign:        "/=",
	OpModAssign:        "%=",
	OpPowAssign:        "**=",
	OpConcatAssign:     ".=",
	OpBitwiseAndAssign: "&=",
	OpBitwiseOrAssign:  "|=",
	OpBitwiseXorAssign: "^=",
	OpLeftShiftAssign:  "<<=",
	OpRightShiftAssign: ">>=",
	OpCoalesceAssign:   "??=",
}

func (op AssignmentOperator) String() string { return assignmentText[op] }
