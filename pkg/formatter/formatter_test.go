package formatter

import (
	"strings"
	"sync"
	"testing"

	"phpfmt/pkg/ast"
	"phpfmt/pkg/comments"
	"phpfmt/pkg/errors"
	"phpfmt/pkg/settings"
	"phpfmt/pkg/source"
	"phpfmt/pkg/version"
)

func v(name string) *ast.Variable       { return &ast.Variable{Name: "$" + name} }
func id(name string) *ast.Identifier    { return &ast.Identifier{Name: name} }
func num(raw string) *ast.Literal       { return &ast.Literal{Kind: ast.LiteralInteger, Raw: raw} }
func str(text string) *ast.Literal      { return &ast.Literal{Kind: ast.LiteralString, Raw: "'" + text + "'"} }
func p(e ast.Expression) ast.Expression { return &ast.Parenthesized{Inner: e} }

func bin(lhs ast.Expression, op ast.BinaryOperator, rhs ast.Expression) *ast.Binary {
	return &ast.Binary{LHS: lhs, Operator: op, RHS: rhs}
}

func args(values ...ast.Expression) *ast.ArgumentList {
	list := &ast.ArgumentList{}
	for _, value := range values {
		list.Arguments = append(list.Arguments, &ast.PositionalArgument{Value: value})
	}
	return list
}

func call(name string, values ...ast.Expression) *ast.FunctionCall {
	return &ast.FunctionCall{Function: id(name), Arguments: args(values...)}
}

func mcall(object ast.Expression, method string, values ...ast.Expression) *ast.MethodCall {
	return &ast.MethodCall{Object: object, Method: id(method), Arguments: args(values...)}
}

func stmt(e ast.Expression) ast.Statement { return &ast.ExpressionStatement{Expression: e} }

func block(stmts ...ast.Statement) *ast.Block { return &ast.Block{Statements: stmts} }

func assign(lhs, rhs ast.Expression) *ast.Assignment {
	return &ast.Assignment{LHS: lhs, Operator: ast.OpAssign, RHS: rhs}
}

func params(names ...string) *ast.ParameterList {
	list := &ast.ParameterList{}
	for _, name := range names {
		list.Parameters = append(list.Parameters, &ast.Parameter{Variable: v(name)})
	}
	return list
}

func withWidth(width int) settings.Settings {
	s := settings.Default()
	s.PrintWidth = width
	return s
}

func format(s settings.Settings, stmts ...ast.Statement) string {
	return New(s, version.Latest).Format(nil, &ast.Program{Statements: stmts}, nil)
}

func check(t *testing.T, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("output mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestExpressionParentheses(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want string
	}{
		{"higher precedence on the right", bin(num("1"), ast.OpAddition, bin(num("2"), ast.OpMultiplication, num("3"))), "1 + 2 * 3;\n"},
		{"lower precedence on the left", bin(bin(num("1"), ast.OpAddition, num("2")), ast.OpMultiplication, num("3")), "(1 + 2) * 3;\n"},
		{"redundant parentheses dropped", bin(p(bin(v("a"), ast.OpAddition, v("b"))), ast.OpSubtraction, v("c")), "$a + $b - $c;\n"},
		{"right-nested subtraction", bin(v("a"), ast.OpSubtraction, p(bin(v("b"), ast.OpSubtraction, v("c")))), "$a - ($b - $c);\n"},
		{"double negation", &ast.UnaryPrefix{Operator: ast.OpNegation, Operand: &ast.UnaryPrefix{Operator: ast.OpNegation, Operand: v("a")}}, "-(-$a);\n"},
		{"negated instanceof", &ast.UnaryPrefix{Operator: ast.OpNot, Operand: bin(v("a"), ast.OpInstanceof, id("B"))}, "!($a instanceof B);\n"},
		{"cast alias", &ast.UnaryPrefix{Operator: ast.OpIntegerCast, Operand: v("a")}, "(int) $a;\n"},
		{"number in concatenation", bin(num("1"), ast.OpStringConcat, v("a")), "(1) . $a;\n"},
		{"assignment in ternary", &ast.Conditional{Condition: v("a"), Then: assign(v("b"), num("1")), Else: v("c")}, "$a ? ($b = 1) : $c;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check(t, format(settings.Default(), stmt(tt.expr)), tt.want)
		})
	}
}

func TestUnboundedOperandsKeepParentheses(t *testing.T) {
	include := &ast.Construct{Kind: ast.ConstructInclude, Values: []ast.Expression{str("a.php")}}
	printed := &ast.Construct{Kind: ast.ConstructPrint, Values: []ast.Expression{v("a")}}
	arrow := func() *ast.ArrowFunction { return &ast.ArrowFunction{Parameters: params("x"), Body: v("x")} }

	tests := []struct {
		name string
		expr ast.Expression
		want string
	}{
		{"include", bin(p(include), ast.OpStringConcat, str("b")), "(include 'a.php') . 'b';\n"},
		{"print", bin(p(printed), ast.OpAddition, num("2")), "(print $a) + 2;\n"},
		{"arrow function", bin(p(arrow()), ast.OpNullCoalesce, v("y")), "(fn($x) => $x) ?? $y;\n"},
		{"pipe stage", &ast.Pipe{Input: v("x"), Callable: p(arrow())}, "$x |> (fn($x) => $x);\n"},
		{"throw", &ast.Conditional{Condition: p(&ast.Throw{Exception: v("e")}), Then: num("1"), Else: num("2")}, "(throw $e) ? 1 : 2;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check(t, format(settings.Default(), stmt(tt.expr)), tt.want)
		})
	}
}

func TestRightNestedChainMatchesReparse(t *testing.T) {
	a, b := v("aaaaaaaaaaaa"), v("bbbbbbbbbbbbbbbbb")

	tests := []struct {
		name         string
		nested, flat ast.Expression
		want         string
	}{
		{
			"concatenation",
			bin(str("abc"), ast.OpStringConcat, p(bin(a, ast.OpStringConcat, b))),
			bin(bin(str("abc"), ast.OpStringConcat, a), ast.OpStringConcat, b),
			"'abc'\n    . $aaaaaaaaaaaa\n    . $bbbbbbbbbbbbbbbbb;\n",
		},
		{
			"bitwise or",
			bin(v("flags"), ast.OpBitwiseOr, p(bin(a, ast.OpBitwiseOr, b))),
			bin(bin(v("flags"), ast.OpBitwiseOr, a), ast.OpBitwiseOr, b),
			"$flags\n    | $aaaaaaaaaaaa\n    | $bbbbbbbbbbbbbbbbb;\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := format(withWidth(30), stmt(tt.nested))
			check(t, first, tt.want)
			check(t, format(withWidth(30), stmt(tt.flat)), first)
		})
	}

	// Subtraction is not associative: the parentheses stay.
	check(t, format(settings.Default(), stmt(bin(v("a"), ast.OpSubtraction, p(bin(v("b"), ast.OpSubtraction, v("c")))))),
		"$a - ($b - $c);\n")
}

func TestClosureArgumentIsHugged(t *testing.T) {
	closure := &ast.Closure{
		Parameters: params(),
		Body:       block(&ast.Return{Value: num("1")}),
	}
	got := format(settings.Default(), stmt(call("foo", closure)))
	check(t, got, "foo(function () {\n    return 1;\n});\n")
}

func TestLastArgumentIsHugged(t *testing.T) {
	closure := &ast.Closure{
		Parameters: params("item"),
		Body:       block(&ast.Return{Value: v("item")}),
	}
	got := format(settings.Default(), stmt(call("array_map", v("items"), closure)))
	check(t, got, "array_map($items, function ($item) {\n    return $item;\n});\n")
}

func TestShouldHugExpression(t *testing.T) {
	named := func(name string, value ast.Expression) ast.Argument {
		return &ast.NamedArgument{Name: id(name), Value: value}
	}
	arrow := func(body ast.Expression) *ast.ArrowFunction {
		return &ast.ArrowFunction{Parameters: params("x"), Body: body}
	}
	newOf := func(list *ast.ArgumentList) *ast.Instantiation {
		return &ast.Instantiation{Class: id("Foo"), Arguments: list}
	}

	tests := []struct {
		name string
		expr ast.Expression
		want bool
	}{
		{"variable", v("a"), false},
		{"simple binary", bin(v("a"), ast.OpAddition, num("1")), true},
		{"concatenation with a closure", bin(str("x"), ast.OpStringConcat, &ast.Closure{Parameters: params(), Body: block()}), true},
		{"sum with a call", bin(v("a"), ast.OpAddition, call("f")), false},
		{"arrow function", arrow(v("x")), false},
		{"arrow function returning an array", arrow(&ast.Array{}), true},
		{"arrow function returning an arrow function", arrow(arrow(&ast.Array{})), false},
		{"plain call", call("f", v("a")), true},
		{"fluent chain", mcall(mcall(mcall(v("this"), "a"), "b"), "c"), false},
		{"new without arguments", newOf(nil), true},
		{"new with a nested new", newOf(args(newOf(nil))), true},
		{"new with three simple arguments", newOf(args(v("a"), num("1"), str("b"))), true},
		{"new with four simple arguments", newOf(args(v("a"), v("b"), v("c"), v("d"))), false},
		{"new with named arguments", newOf(&ast.ArgumentList{Arguments: []ast.Argument{
			named("a", call("f")), named("b", call("g")),
		}}), true},
		{"new with a single named argument", newOf(&ast.ArgumentList{Arguments: []ast.Argument{named("a", v("a"))}}), false},
		{"new of a dynamic class", &ast.Instantiation{Class: v("class")}, false},
		{"negated array", &ast.UnaryPrefix{Operator: ast.OpNegation, Operand: &ast.Array{}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &state{settings: settings.Default(), features: version.Latest, comments: noComments{}}
			if got := f.shouldHugExpression(tt.expr, false); got != tt.want {
				t.Errorf("shouldHugExpression() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArgumentsBreakOnePerLine(t *testing.T) {
	expr := call("foo", str("aaaaaaaaaaaa"), str("bbbbbbbbbbbb"), str("cccccccccccc"))

	got := New(withWidth(40), version.Latest).Format(nil, &ast.Program{Statements: []ast.Statement{stmt(expr)}}, nil)
	check(t, got, "foo(\n    'aaaaaaaaaaaa',\n    'bbbbbbbbbbbb',\n    'cccccccccccc',\n);\n")

	// Trailing commas in calls need PHP 7.3.
	old := New(withWidth(40), version.MustParse("7.2")).Format(nil, &ast.Program{Statements: []ast.Statement{stmt(expr)}}, nil)
	check(t, old, "foo(\n    'aaaaaaaaaaaa',\n    'bbbbbbbbbbbb',\n    'cccccccccccc'\n);\n")
}

func TestMethodChain(t *testing.T) {
	chain := mcall(mcall(mcall(v("this"), "alpha"), "beta"), "gamma")

	check(t, format(settings.Default(), stmt(chain)), "$this->alpha()->beta()->gamma();\n")
	check(t, format(withWidth(20), stmt(chain)), "$this->alpha()\n    ->beta()\n    ->gamma();\n")

	short := mcall(mcall(v("object"), "alpha"), "beta")
	check(t, format(withWidth(10), stmt(short)), "$object->alpha()->beta();\n")
}

func TestAssignmentBreaksAfterOperator(t *testing.T) {
	rhs := bin(bin(v("alpha"), ast.OpAddition, v("beta")), ast.OpAddition, v("gamma"))
	got := format(withWidth(30), stmt(assign(v("value"), rhs)))
	check(t, got, "$value =\n    $alpha + $beta + $gamma;\n")
}

func TestConditionBreaks(t *testing.T) {
	cond := bin(bin(v("alphabet"), ast.OpAnd, v("betamax")), ast.OpAnd, v("gammaray"))
	got := format(withWidth(30), &ast.If{Condition: cond, Body: block()})
	check(t, got, "if (\n    $alphabet\n    && $betamax\n    && $gammaray\n) {}\n")
}

func TestClauses(t *testing.T) {
	foo := stmt(call("foo"))
	bar := stmt(call("bar"))

	tests := []struct {
		name  string
		style settings.BraceStyle
		node  ast.Statement
		want  string
	}{
		{
			"blocks with else",
			settings.SameLine,
			&ast.If{Condition: v("a"), Body: block(foo), Else: &ast.Else{Body: block(bar)}},
			"if ($a) {\n    foo();\n} else {\n    bar();\n}\n",
		},
		{
			"statements with else",
			settings.SameLine,
			&ast.If{Condition: v("a"), Body: foo, Else: &ast.Else{Body: bar}},
			"if ($a)\n    foo();\nelse\n    bar();\n",
		},
		{
			"else if",
			settings.SameLine,
			&ast.If{Condition: v("a"), Body: block(foo), Else: &ast.Else{Body: &ast.If{Condition: v("b"), Body: block(bar)}}},
			"if ($a) {\n    foo();\n} else if ($b) {\n    bar();\n}\n",
		},
		{
			"elseif chain",
			settings.SameLine,
			&ast.If{
				Condition: v("a"),
				Body:      block(foo),
				ElseIfs:   []*ast.ElseIf{{Condition: v("b"), Body: block(bar)}},
			},
			"if ($a) {\n    foo();\n} elseif ($b) {\n    bar();\n}\n",
		},
		{
			"next-line braces",
			settings.NextLine,
			&ast.While{Condition: v("a"), Body: block(foo)},
			"while ($a)\n{\n    foo();\n}\n",
		},
		{
			"do while",
			settings.SameLine,
			&ast.DoWhile{Body: block(foo), Condition: v("a")},
			"do {\n    foo();\n} while ($a);\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := settings.Default()
			s.ControlBraceStyle = tt.style
			check(t, format(s, tt.node), tt.want)
		})
	}
}

func TestEmptyControlBraces(t *testing.T) {
	cond := bin(v("alphabet"), ast.OpAnd, v("betamax"))

	tests := []struct {
		name   string
		inline bool
		body   ast.Statement
		want   string
	}{
		{"next line", false, block(), "while (\n    $alphabet\n    && $betamax\n)\n{}\n"},
		{"inline", true, block(), "while (\n    $alphabet\n    && $betamax\n) {}\n"},
		{"no body", false, &ast.Noop{}, "while (\n    $alphabet\n    && $betamax\n);\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := withWidth(20)
			s.ControlBraceStyle = settings.NextLine
			s.InlineEmptyControlBraces = tt.inline
			check(t, format(s, &ast.While{Condition: cond, Body: tt.body}), tt.want)
		})
	}
}

func TestLoops(t *testing.T) {
	loop := &ast.For{
		Initializations: []ast.Expression{assign(v("i"), num("0"))},
		Conditions:      []ast.Expression{bin(v("i"), ast.OpLessThan, num("10"))},
		Increments:      []ast.Expression{&ast.UnaryPostfix{Operand: v("i"), Operator: ast.OpPostIncrement}},
		Body:            block(),
	}
	check(t, format(settings.Default(), loop), "for ($i = 0; $i < 10; $i++) {}\n")
	check(t, format(settings.Default(), &ast.For{Body: block()}), "for (;;) {}\n")

	each := &ast.Foreach{Expression: v("items"), Key: v("k"), Value: v("item"), Body: block(&ast.Break{})}
	check(t, format(settings.Default(), each), "foreach ($items as $k => $item) {\n    break;\n}\n")
}

func TestAlternativeSyntax(t *testing.T) {
	foo := stmt(call("foo"))
	bar := stmt(call("bar"))
	colon := func(stmts ...ast.Statement) *ast.ColonBlock { return &ast.ColonBlock{Statements: stmts} }

	tests := []struct {
		name string
		node ast.Statement
		want string
	}{
		{
			"while",
			&ast.While{Condition: v("a"), Body: colon(foo)},
			"while ($a):\n    foo();\nendwhile;\n",
		},
		{
			"if with elseif and else",
			&ast.If{
				Condition: v("a"),
				Body:      colon(foo),
				ElseIfs:   []*ast.ElseIf{{Condition: v("b"), Body: colon(bar)}},
				Else:      &ast.Else{Body: colon(foo, bar)},
			},
			"if ($a):\n    foo();\nelseif ($b):\n    bar();\nelse:\n    foo();\n    bar();\nendif;\n",
		},
		{
			"empty foreach",
			&ast.Foreach{Expression: v("items"), Value: v("item"), Body: colon()},
			"foreach ($items as $item):\nendforeach;\n",
		},
		{
			"for around a closing tag",
			&ast.For{Body: colon(&ast.ClosingTag{}, &ast.OpeningTag{})},
			"for (;;): ?>\n<?php endfor;\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check(t, format(settings.Default(), tt.node), tt.want)
		})
	}
}

func TestFunctionBraces(t *testing.T) {
	fn := &ast.Function{
		Name:       id("foo"),
		Parameters: params("alphabet", "betamax"),
		Body:       block(&ast.Return{Value: v("alphabet")}),
	}

	check(t, format(settings.Default(), fn),
		"function foo($alphabet, $betamax)\n{\n    return $alphabet;\n}\n")
	check(t, format(withWidth(30), fn),
		"function foo(\n    $alphabet,\n    $betamax,\n) {\n    return $alphabet;\n}\n")

	s := settings.Default()
	s.FunctionBraceStyle = settings.SameLine
	check(t, format(s, fn), "function foo($alphabet, $betamax) {\n    return $alphabet;\n}\n")

	empty := &ast.Function{Name: id("noop"), Parameters: params(), Body: block()}
	check(t, format(settings.Default(), empty), "function noop()\n{\n}\n")
}

func TestAttributes(t *testing.T) {
	attr := func(name string, list *ast.ArgumentList) *ast.AttributeList {
		return &ast.AttributeList{Attributes: []*ast.Attribute{{Name: id(name), Arguments: list}}}
	}

	fn := &ast.Function{
		Attributes: []*ast.AttributeList{attr("Pure", nil), attr("Deprecated", args(str("x")))},
		Name:       id("check"),
		Parameters: &ast.ParameterList{Parameters: []*ast.Parameter{{
			Attributes: []*ast.AttributeList{attr("Sensitive", nil)},
			Variable:   v("password"),
		}}},
		Body: block(),
	}
	check(t, format(settings.Default(), fn),
		"#[Pure]\n#[Deprecated('x')]\nfunction check(#[Sensitive] $password)\n{\n}\n")
}

func TestClassMembers(t *testing.T) {
	mod := func(kinds ...ast.ModifierKind) []*ast.Modifier {
		var out []*ast.Modifier
		for _, k := range kinds {
			out = append(out, &ast.Modifier{Kind: k})
		}
		return out
	}

	promoted := &ast.ParameterList{Parameters: []*ast.Parameter{{
		Modifiers: mod(ast.ModifierReadonly, ast.ModifierPrivate),
		Type:      &ast.TypeHint{Text: "int"},
		Variable:  v("x"),
	}}}

	class := &ast.Class{
		Modifiers: mod(ast.ModifierFinal),
		Name:      id("Point"),
		Members: []ast.ClassMember{
			&ast.Property{
				Modifiers: mod(ast.ModifierStatic, ast.ModifierPublic),
				Items:     []*ast.PropertyItem{{Variable: v("count"), Default: num("0")}},
			},
			&ast.Method{
				Modifiers:  mod(ast.ModifierPublic),
				Name:       id("__construct"),
				Parameters: promoted,
				Body:       block(),
			},
			&ast.Method{
				Modifiers:  mod(ast.ModifierPublic, ast.ModifierAbstract),
				Name:       id("area"),
				Parameters: params(),
				ReturnType: &ast.TypeHint{Text: "float"},
			},
		},
	}

	want := "final class Point\n" +
		"{\n" +
		"    public static $count = 0;\n" +
		"\n" +
		"    public function __construct(\n" +
		"        private readonly int $x,\n" +
		"    ) {}\n" +
		"\n" +
		"    abstract public function area(): float;\n" +
		"}\n"
	check(t, format(settings.Default(), class), want)

	s := settings.Default()
	s.StaticBeforeVisibility = true
	got := format(s, class)
	if !strings.Contains(got, "static public $count = 0;") || !strings.Contains(got, "readonly private int $x,") {
		t.Errorf("static-first modifier order not applied:\n%s", got)
	}
}

func TestDuplicateModifiersPrintOnce(t *testing.T) {
	mods := []*ast.Modifier{
		{Kind: ast.ModifierStatic},
		{Kind: ast.ModifierPublic},
		{Kind: ast.ModifierStatic},
		{Kind: ast.ModifierProtected},
		{Kind: ast.ModifierPrivateSet},
		{Kind: ast.ModifierPublicSet},
	}
	prop := &ast.Property{Modifiers: mods, Items: []*ast.PropertyItem{{Variable: v("x")}}}
	class := &ast.Class{Name: id("A"), Members: []ast.ClassMember{prop}}

	check(t, format(settings.Default(), class), "class A\n{\n    public private(set) static $x;\n}\n")
}

func TestCheckReportsUnsupportedSyntax(t *testing.T) {
	pipe := stmt(&ast.Pipe{Input: v("x"), Callable: id("strlen")})
	arrow := stmt(&ast.ArrowFunction{Parameters: params(), Body: num("1")})
	readonly := &ast.Class{Name: id("A"), Members: []ast.ClassMember{&ast.Property{
		Modifiers: []*ast.Modifier{{Kind: ast.ModifierPublic}, {Kind: ast.ModifierReadonly}},
		Items:     []*ast.PropertyItem{{Variable: v("x")}},
	}}}

	tests := []struct {
		name    string
		version string
		stmts   []ast.Statement
		want    []string
	}{
		{"pipe on 8.4", "8.4", []ast.Statement{pipe, pipe}, []string{"pipe-operator"}},
		{"pipe on 8.5", "8.5", []ast.Statement{pipe}, nil},
		{"arrow function on 7.3", "7.3", []ast.Statement{arrow}, []string{"arrow-functions"}},
		{"readonly on 8.0", "8.0", []ast.Statement{readonly, arrow}, []string{"readonly-properties"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := New(settings.Default(), version.MustParse(tt.version)).Check(nil, &ast.Program{Statements: tt.stmts}, nil)
			if len(errs) != len(tt.want) {
				t.Fatalf("got %d errors, want %d: %v", len(errs), len(tt.want), errs)
			}
			for i, err := range errs {
				fe, ok := err.(*errors.FeatureError)
				if !ok {
					t.Fatalf("error %d is %T, want *errors.FeatureError", i, err)
				}
				if fe.Feature != tt.want[i] {
					t.Errorf("error %d feature = %q, want %q", i, fe.Feature, tt.want[i])
				}
			}
		})
	}
}

func TestNumericArrayFills(t *testing.T) {
	array := &ast.Array{}
	for _, n := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"} {
		array.Elements = append(array.Elements, &ast.ValueArrayElement{Value: num(n)})
	}
	got := format(withWidth(20), stmt(assign(v("a"), array)))
	check(t, got, "$a = [\n    1, 2, 3, 4, 5,\n    6, 7, 8, 9, 10,\n];\n")
}

func TestKeyedArray(t *testing.T) {
	array := &ast.Array{Elements: []ast.ArrayElement{
		&ast.KeyValueArrayElement{Key: str("name"), Value: str("phpfmt")},
		&ast.KeyValueArrayElement{Key: str("width"), Value: num("120")},
	}}
	check(t, format(settings.Default(), stmt(assign(v("config"), array))),
		"$config = ['name' => 'phpfmt', 'width' => 120];\n")
	check(t, format(withWidth(30), stmt(assign(v("config"), array))),
		"$config = [\n    'name' => 'phpfmt',\n    'width' => 120,\n];\n")
}

func TestMatch(t *testing.T) {
	m := &ast.Match{
		Subject: v("x"),
		Arms: []*ast.MatchArm{
			{Conditions: []ast.Expression{num("1"), num("2")}, Body: str("low")},
			{Body: str("other")},
		},
	}
	check(t, format(settings.Default(), &ast.Return{Value: m}),
		"return match ($x) {\n    1, 2 => 'low',\n    default => 'other',\n};\n")
}

func TestInstantiation(t *testing.T) {
	inst := &ast.Instantiation{Class: id("Foo")}
	check(t, format(settings.Default(), stmt(inst)), "new Foo();\n")
	check(t, format(settings.Default(), stmt(mcall(inst, "bar"))), "new Foo()->bar();\n")
	check(t, New(settings.Default(), version.MustParse("8.3")).Format(nil,
		&ast.Program{Statements: []ast.Statement{stmt(mcall(inst, "bar"))}}, nil), "(new Foo())->bar();\n")

	s := settings.Default()
	s.ParenthesesInNewExpression = false
	check(t, format(s, stmt(inst)), "new Foo;\n")
	check(t, format(s, stmt(mcall(inst, "bar"))), "(new Foo)->bar();\n")
}

func TestCommentsAndBlankLines(t *testing.T) {
	src := "<?php\n\n// greet\nhello();\n"
	file := source.NewStdinSource(src)

	at := func(text string) ast.Base {
		i := strings.Index(src, text)
		return ast.At(i, i+len(text))
	}
	call := &ast.FunctionCall{Base: at("hello()"), Function: &ast.Identifier{Base: at("hello"), Name: "hello"}, Arguments: &ast.ArgumentList{Base: at("()")}}
	program := &ast.Program{Base: ast.At(0, len(src)), Statements: []ast.Statement{
		&ast.OpeningTag{Base: at("<?php")},
		&ast.ExpressionStatement{Base: at("hello();"), Expression: call},
	}}

	index := comments.NewIndex(file, []ast.Span{at("// greet").Pos})
	got := New(settings.Default(), nil).Format(file, program, index)
	check(t, got, src)
	if index.Remaining() != 0 {
		t.Errorf("%d comments were not printed", index.Remaining())
	}
}

func TestFormatIsStable(t *testing.T) {
	program := &ast.Program{Statements: []ast.Statement{
		&ast.OpeningTag{},
		stmt(assign(v("total"), bin(v("price"), ast.OpMultiplication, p(bin(num("1"), ast.OpAddition, v("rate")))))),
		&ast.Echo{Values: []ast.Expression{v("total"), str("\\n")}},
	}}
	fm := New(settings.Default(), version.Latest)

	first := fm.Format(nil, program, nil)
	second := fm.Format(source.NewStdinSource(first), program, nil)
	check(t, second, first)
	check(t, first, "<?php\n$total = $price * (1 + $rate);\necho $total, '\\n';\n")
}

func TestConcurrentUse(t *testing.T) {
	fm := New(withWidth(20), version.Latest)
	program := &ast.Program{Statements: []ast.Statement{
		stmt(mcall(mcall(mcall(v("this"), "alpha"), "beta"), "gamma")),
	}}
	want := fm.Format(nil, program, nil)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = fm.Format(nil, program, nil)
		}()
	}
	wg.Wait()

	for i, got := range results {
		if got != want {
			t.Errorf("goroutine %d: got %q, want %q", i, got, want)
		}
	}
}

// opaque is an expression kind lowering does not know.
type opaque struct{ ast.Expression }

func TestUnknownNodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a node without a lowering")
		}
	}()
	format(settings.Default(), stmt(opaque{v("a")}))
}

func TestUnknownNodeReportsPosition(t *testing.T) {
	src := "<?php\n$a;\n"
	file := source.NewStdinSource(src)
	node := opaque{&ast.Variable{Base: ast.At(6, 8), Name: "$a"}}

	defer func() {
		err, ok := recover().(*errors.InvariantError)
		if !ok {
			t.Fatal("expected an *errors.InvariantError panic")
		}
		if err.Line != 2 || err.Column != 1 {
			t.Errorf("position = %d:%d, want 2:1", err.Line, err.Column)
		}
	}()
	New(settings.Default(), nil).Format(file, &ast.Program{Statements: []ast.Statement{stmt(node)}}, nil)
}
