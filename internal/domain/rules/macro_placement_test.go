package rules

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/halint/internal/domain/lexer"
	"github.com/mouse-blink/halint/internal/domain/scope"
	m "github.com/mouse-blink/halint/internal/model"
)

func run(t *testing.T, src string, markers ...string) (*MacroPlacement, []m.Diagnostic) {
	t.Helper()

	var got []m.Diagnostic

	rule := NewMacroPlacement(markers, func(d m.Diagnostic) {
		got = append(got, d)
	})

	tr := scope.NewTracker(rule)
	c := lexer.NewClassifier()

	for i, text := range strings.Split(src, "\n") {
		tr.Feed(c.Line(i+1, text))
	}

	tr.Finish()
	rule.Finish(tr.Stack())

	return rule, got
}

func violation(line, column int, msg string) m.Diagnostic {
	return m.Diagnostic{
		Line:       line,
		Column:     column,
		Rule:       CategoryConstructors,
		Message:    msg,
		Severity:   m.SeverityWarning,
		Confidence: 3,
	}
}

func TestMacroPlacement(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []m.Diagnostic
	}{
		{
			name: "trailing comment after macro",
			src: `class Foo {
 private:
  DISALLOW_COPY_AND_ASSIGN(Foo);
  // comment
};`,
		},
		{
			name: "member after macro",
			src: `class SomeClass {
 private:
  DISALLOW_COPY_AND_ASSIGN(SomeClass);
  int member_;
};`,
			want: []m.Diagnostic{violation(3, 3, "DISALLOW_COPY_AND_ASSIGN should be the last thing in the class")},
		},
		{
			name: "nested classes both last",
			src: `class Outer {
 private:
  struct Inner {
    DISALLOW_IMPLICIT_CONSTRUCTORS(Inner);
  };
  DISALLOW_IMPLICIT_CONSTRUCTORS(Outer);
};`,
		},
		{
			name: "nested class member after macro",
			src: `class Outer {
  class InnerClass {
    DISALLOW_IMPLICIT_CONSTRUCTORS(InnerClass);
    int member;
  };
};`,
			want: []m.Diagnostic{violation(3, 5, "DISALLOW_IMPLICIT_CONSTRUCTORS should be the last thing in the class")},
		},
		{
			name: "nested class after outer macro",
			src: `class Outer {
  DISALLOW_COPY_AND_ASSIGN(Outer);
  struct Inner {
  };
};`,
			want: []m.Diagnostic{violation(2, 3, "DISALLOW_COPY_AND_ASSIGN should be the last thing in the class")},
		},
		{
			name: "local class followed by variable",
			src: `void Func() {
  struct LocalClass {
   private:
    DISALLOW_COPY_AND_ASSIGN(LocalClass);
  } variable;
}`,
		},
		{
			name: "macro in method body",
			src: `class Foo {
  void f() {
    DISALLOW_COPY_AND_ASSIGN(Foo);
  }
  int x;
};`,
		},
		{
			name: "argument is another class",
			src: `class Foo {
  DISALLOW_COPY_AND_ASSIGN(Bar);
  int x;
};`,
		},
		{
			name: "qualified argument",
			src: `class ns::Foo {
  DISALLOW_COPY_AND_ASSIGN(ns::Foo);
  int x;
};`,
			want: []m.Diagnostic{violation(2, 3, "DISALLOW_COPY_AND_ASSIGN should be the last thing in the class")},
		},
		{
			name: "macro split across lines",
			src: `class Foo {
  DISALLOW_COPY_AND_ASSIGN(
      Foo);
};`,
		},
		{
			name: "macro inside comment and string",
			src: `class Foo {
  // DISALLOW_COPY_AND_ASSIGN(Foo);
  const char* s = "DISALLOW_COPY_AND_ASSIGN(Foo)";
  /* DISALLOW_COPY_AND_ASSIGN(Foo); */
  int x;
};`,
		},
		{
			name: "never closed",
			src: `class Foo {
  DISALLOW_COPY_AND_ASSIGN(Foo);`,
			want: []m.Diagnostic{violation(2, 3, "DISALLOW_COPY_AND_ASSIGN in class Foo which is never closed")},
		},
		{
			name: "two violations in one file",
			src: `class A {
  DISALLOW_COPY_AND_ASSIGN(A);
  int a;
};
class B {
  DISALLOW_IMPLICIT_CONSTRUCTORS(B);
  int b;
};`,
			want: []m.Diagnostic{
				violation(2, 3, "DISALLOW_COPY_AND_ASSIGN should be the last thing in the class"),
				violation(6, 3, "DISALLOW_IMPLICIT_CONSTRUCTORS should be the last thing in the class"),
			},
		},
		{
			name: "class closed again in #else",
			src: `class A {
#if X
  DISALLOW_COPY_AND_ASSIGN(A);
};
#else
  DISALLOW_COPY_AND_ASSIGN(A);
  int x;
};
#endif`,
			want: []m.Diagnostic{violation(6, 3, "DISALLOW_COPY_AND_ASSIGN should be the last thing in the class")},
		},
		{
			name: "each branch ends with the macro",
			src: `class A {
  int x;
#if X
  DISALLOW_COPY_AND_ASSIGN(A);
#else
  DISALLOW_IMPLICIT_CONSTRUCTORS(A);
#endif
};`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := run(t, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("violations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMacroPlacement_CustomMarkers(t *testing.T) {
	src := `class Foo {
  DISALLOW_MOVE(Foo);
  DISALLOW_COPY_AND_ASSIGN(Foo);
};`

	rule, got := run(t, src, "DISALLOW_MOVE")
	require.Len(t, got, 1)
	assert.Equal(t, "DISALLOW_MOVE should be the last thing in the class", got[0].Message)
	assert.Equal(t, 2, got[0].Line)

	occ := rule.Occurrences()
	require.Len(t, occ, 1)
	assert.Equal(t, "DISALLOW_MOVE", occ[0].Macro)
	assert.Equal(t, "Foo", occ[0].Argument)
	assert.Equal(t, "Foo", occ[0].Frame.Name)
}

func TestMacroPlacement_AttachesToLocalClass(t *testing.T) {
	src := `void Func() {
  class Local {
    DISALLOW_COPY_AND_ASSIGN(Local);
  };
  int after;
}`

	rule, got := run(t, src)
	assert.Empty(t, got)

	occ := rule.Occurrences()
	require.Len(t, occ, 1)
	assert.Equal(t, m.FrameClassLike, occ[0].Frame.Kind)
	assert.Equal(t, m.FrameFunctionLike, occ[0].Frame.Parent.Kind)
}

func TestCatalog(t *testing.T) {
	cat := Catalog()
	require.NotEmpty(t, cat)

	for i := 1; i < len(cat); i++ {
		assert.Less(t, cat[i-1].Category, cat[i].Category)
	}

	assert.True(t, Known(CategoryConstructors))
	assert.True(t, Known(scope.CategoryClass))
	assert.False(t, Known("whitespace/tab"))

	info, ok := Lookup(CategoryConstructors)
	require.True(t, ok)
	assert.False(t, info.Structural)
	assert.Equal(t, m.SeverityWarning, info.Severity)
}
