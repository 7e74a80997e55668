package parser

import (
	"strings"
	"testing"
)

func lex(input string) []TokenKind {
	lexer := NewLexer([]byte(input), "test.java")
	var got []TokenKind
	for {
		tok := lexer.NextToken()
		if tok.Kind != TokenWhitespace && tok.Kind != TokenComment && tok.Kind != TokenLineComment {
			got = append(got, tok.Kind)
		}
		if tok.Kind == TokenEOF {
			return got
		}
	}
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"public class Main {}", []TokenKind{TokenPublic, TokenClass, TokenIdent, TokenLBrace, TokenRBrace, TokenEOF}},
		{"123 0x1F 1_000L", []TokenKind{TokenIntLiteral, TokenIntLiteral, TokenIntLiteral, TokenEOF}},
		{"3.14 1e10 2f .5", []TokenKind{TokenFloatLiteral, TokenFloatLiteral, TokenFloatLiteral, TokenFloatLiteral, TokenEOF}},
		{`"hello \"x\""`, []TokenKind{TokenStringLiteral, TokenEOF}},
		{"'a' '\\n'", []TokenKind{TokenCharLiteral, TokenCharLiteral, TokenEOF}},
		{"\"\"\"\n  text \"\" block\n\"\"\"", []TokenKind{TokenTextBlock, TokenEOF}},
		{"// comment\nclass", []TokenKind{TokenClass, TokenEOF}},
		{"/* block */ class", []TokenKind{TokenClass, TokenEOF}},
		{"== != <= >= && || !", []TokenKind{TokenEQ, TokenNE, TokenLE, TokenGE, TokenAnd, TokenOr, TokenNot, TokenEOF}},
		{"<< >> >>> >>>=", []TokenKind{TokenShl, TokenShr, TokenUShr, TokenUShrAssign, TokenEOF}},
		{"-> :: ... @", []TokenKind{TokenArrow, TokenColonColon, TokenEllipsis, TokenAt, TokenEOF}},
		{"record var yield", []TokenKind{TokenIdent, TokenIdent, TokenIdent, TokenEOF}},
		{"café", []TokenKind{TokenIdent, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := lex(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	lexer := NewLexer([]byte("a\n  bc"), "test.java")
	first := lexer.NextToken()
	lexer.NextToken()
	second := lexer.NextToken()
	if first.Span.Start.Line != 1 || first.Span.Start.Column != 1 {
		t.Errorf("first token at %v", first.Span.Start)
	}
	if second.Span.Start.Line != 2 || second.Span.Start.Column != 3 || second.Span.Start.Offset != 4 {
		t.Errorf("second token at %v offset %d", second.Span.Start, second.Span.Start.Offset)
	}
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		input string
		kind  NodeKind
	}{
		{"42", KindLiteral},
		{"x", KindIdentifier},
		{"x + y", KindBinaryExpr},
		{"x * y + z", KindBinaryExpr},
		{"-x", KindUnaryExpr},
		{"!x", KindUnaryExpr},
		{"x++", KindPostfixExpr},
		{"a ? b : c", KindTernaryExpr},
		{"x = 5", KindAssignExpr},
		{"x += 5", KindAssignExpr},
		{"(x)", KindParenExpr},
		{"obj.field", KindFieldAccess},
		{"obj.method()", KindCallExpr},
		{"Collections.<String>emptyList()", KindCallExpr},
		{"arr[0]", KindArrayAccess},
		{"new Foo()", KindNewExpr},
		{"new Foo<>() { void run() {} }", KindNewExpr},
		{"outer.new Inner()", KindNewExpr},
		{"new int[10]", KindNewArrayExpr},
		{"new String[] {\"a\", \"b\"}", KindNewArrayExpr},
		{"x -> x + 1", KindLambdaExpr},
		{"(a, b) -> a + b", KindLambdaExpr},
		{"(int a, int b) -> { return a + b; }", KindLambdaExpr},
		{"obj::method", KindMethodRef},
		{"Foo::new", KindMethodRef},
		{"int[]::new", KindMethodRef},
		{"List<String>::size", KindMethodRef},
		{"x instanceof Foo", KindInstanceofExpr},
		{"x instanceof Foo f", KindInstanceofExpr},
		{"(int) x", KindCastExpr},
		{"(String) obj", KindCastExpr},
		{"(Runnable) () -> {}", KindCastExpr},
		{"(a) + b", KindBinaryExpr},
		{"i < n && j > m", KindBinaryExpr},
		{"String.class", KindClassLiteral},
		{"String[].class", KindClassLiteral},
		{"int.class", KindClassLiteral},
		{"switch (x) { case 1 -> \"one\"; default -> \"many\"; }", KindSwitchExpr},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := ParseExpression(strings.NewReader(tt.input))
			node := p.Finish()
			if node.Kind != tt.kind {
				t.Errorf("got %v, want %v\n%s", node.Kind, tt.kind, node)
			}
			if errs := p.Errors(); len(errs) > 0 {
				t.Errorf("unexpected errors: %v", errs)
			}
		})
	}
}

func TestBinaryPrecedence(t *testing.T) {
	node := ParseExpression(strings.NewReader("a + b * c - d")).Finish()
	// ((a + (b * c)) - d)
	if node.Kind != KindBinaryExpr || node.Children[1].TokenLiteral() != "-" {
		t.Fatalf("unexpected root:\n%s", node)
	}
	left := node.Children[0]
	if left.Children[1].TokenLiteral() != "+" || left.Children[2].Children[1].TokenLiteral() != "*" {
		t.Errorf("unexpected left operand:\n%s", left)
	}
	if node.Span.Start.Offset != 0 || node.Span.End.Offset != 13 {
		t.Errorf("span = %d-%d, want 0-13", node.Span.Start.Offset, node.Span.End.Offset)
	}
}

func TestParseCompilationUnit(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty class", "class Foo {}"},
		{"package and imports", "package com.example;\nimport java.util.List;\nimport static java.util.Map.*;\nclass Foo {}"},
		{"field", "class Foo { int x, y[] = {}; }"},
		{"method", "class Foo { void bar(int x, String... rest) throws Exception {} }"},
		{"constructor", "class Foo { Foo() { this(1); } Foo(int x) { super(); } }"},
		{"generic class", "class Foo<T extends Comparable<T>> { Map<String, List<T>> m; }"},
		{"interface", "public sealed interface Shape permits Circle { default int area() { return 0; } }"},
		{"enum", "enum Color { RED(1), GREEN(2) { }, BLUE; Color() {} Color(int x) {} }"},
		{"record", "record Point(int x, int y) implements Comparable<Point> { Point { } }"},
		{"annotation type", "@interface Marker { String value() default \"\"; int[] ids() default {}; }"},
		{"annotated", "@Deprecated @SuppressWarnings({\"unchecked\", \"rawtypes\"}) public class Foo {}"},
		{"initializers", "class Foo { static { init(); } { x = 1; } }"},
		{"non-sealed", "non-sealed class Foo extends Shape {}"},
		{"statements", `class Foo {
  void run(List<String> items) {
    int total = 0;
    final var copy = new ArrayList<String>(items);
    for (int i = 0, j = 1; i < items.size(); i++, j++) { total += i; }
    for (String s : items) continue;
    while (total > 0) total--;
    do { total++; } while (total < 10);
    outer:
    if (total == 3) { break outer; } else if (total == 4) return; else { }
    synchronized (this) { assert total > 0 : "positive"; }
    Runnable r = () -> System.out.println("x");
    int[][] grid = new int[3][];
    label: for (;;) { break label; }
  }
}`},
		{"switch", `class Foo {
  int run(Object o, int k) {
    switch (k) {
    case 1:
    case 2:
      k++;
      break;
    default:
      k--;
    }
    int v = switch (k) {
      case 1, 2 -> 3;
      case 3 -> { yield 4; }
      default -> throw new IllegalStateException();
    };
    return switch (o) {
      case String s when s.isEmpty() -> 0;
      case Point(int x, var y) -> x;
      case null, default -> 1;
    };
  }
}`},
		{"try", `class Foo {
  void run() {
    try (var in = open(); Reader r = new Reader(in)) {
      read(in);
    } catch (IOException | RuntimeException e) {
      log(e);
    } catch (final Exception e) {
    } finally {
      close();
    }
  }
}`},
		{"local class", "class Foo { void run() { class Local {} record R(int a) {} R r = new R(1); } }"},
		{"generics shift", "class Foo { Map<String, Map<String, List<Integer>>> m = new HashMap<>(); }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseCompilationUnit(strings.NewReader(tt.input), WithFile("test.java"))
			node := p.Finish()
			if node == nil {
				t.Fatal("expected a node")
			}
			if node.Kind != KindCompilationUnit {
				t.Errorf("got %v, want CompilationUnit", node.Kind)
			}
			if errs := p.Errors(); len(errs) > 0 {
				t.Errorf("unexpected errors: %v\n%s", errs, node)
			}
		})
	}
}

func TestCatchClauseShape(t *testing.T) {
	src := "class Foo { void run() { try { a(); } catch (IOException | SQLException e) { throw new RuntimeException(e); } } }"
	node := ParseCompilationUnit(strings.NewReader(src)).Finish()

	var catchClause *Node
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Kind == KindCatchClause {
			catchClause = n
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(node)
	if catchClause == nil {
		t.Fatalf("no catch clause in\n%s", node)
	}

	types := catchClause.FirstChildOfKind(KindCatchType)
	if types == nil || len(types.ChildrenOfKind(KindType)) != 2 {
		t.Errorf("expected two caught types:\n%s", catchClause)
	}
	name := catchClause.FirstChildOfKind(KindIdentifier)
	if name == nil || name.TokenLiteral() != "e" {
		t.Errorf("expected variable e:\n%s", catchClause)
	}
	block := catchClause.FirstChildOfKind(KindBlock)
	if block == nil || block.Children[0].Kind != KindThrowStmt {
		t.Errorf("expected throw in catch body:\n%s", catchClause)
	}
	if got := src[catchClause.Span.Start.Offset:catchClause.Span.End.Offset]; !strings.HasPrefix(got, "catch") || !strings.HasSuffix(got, "}") {
		t.Errorf("catch span covers %q", got)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing brace", "class Foo { void run() { }"},
		{"garbage member", "class Foo { ) }"},
		{"bad expression", "class Foo { void run() { x = ; } }"},
		{"try alone", "class Foo { void run() { try { } } }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseCompilationUnit(strings.NewReader(tt.input), WithFile("Foo.java"))
			if node := p.Finish(); node == nil {
				t.Fatal("expected a partial tree")
			}
			errs := p.Errors()
			if len(errs) == 0 {
				t.Fatal("expected syntax errors")
			}
			if errs[0].Pos.File != "Foo.java" {
				t.Errorf("error file = %q", errs[0].Pos.File)
			}
		})
	}
}
