package coretmpl

import (
	"errors"
	"reflect"
	"sort"
	"testing"
)

// TestCompileRegex tests basic compilation
func TestCompileRegex(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{"simple literal", "hello", false},
		{"placeholder", `key=(\S+)`, false},
		{"two groups", `<(\S+)>(\S+)!`, false},
		{"empty", "", false},
		{"unclosed group", "(", true},
		{"bad class", "[invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := CompileRegex(tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Errorf("CompileRegex() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && tmpl == nil {
				t.Error("CompileRegex() returned nil")
			}
		})
	}
}

func TestCompileRegexError(t *testing.T) {
	_, err := CompileRegex("(abc")
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("CompileRegex error = %T %v, want *CompileError", err, err)
	}
	if ce.Pattern != "(abc" {
		t.Errorf("CompileError.Pattern = %q, want %q", ce.Pattern, "(abc")
	}
	if ce.Unwrap() == nil {
		t.Error("CompileError.Unwrap() = nil")
	}
}

// TestMustCompileRegex tests panic on invalid pattern
func TestMustCompileRegex(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustCompileRegex() did not panic on invalid pattern")
		}
	}()

	MustCompileRegex("(")
}

// TestRegexTryMatch tests regex-engine matching
func TestRegexTryMatch(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		text      string
		wantStart int
		wantEnd   int
		want      []string
	}{
		{"one variable", `foo=(\S+)`, "foo=bar", 0, 7, []string{"bar"}},
		{"match in middle", `key=(\S+)`, "prefix key=value", 7, 16, []string{"value"}},
		{"two variables", `<(\S+)>(\S+)!`, "<a>b!", 0, 5, []string{"a", "b"}},
		{"stops at whitespace", `key=(\S+)`, "key=a b", 0, 5, []string{"a"}},
		{"no groups", `a\.b`, "xa.by", 1, 4, []string{}},
		{"optional group unmatched", `a(x)?b`, "ab", 0, 2, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := MustCompileRegex(tt.pattern)
			m := tmpl.TryMatch(tt.text)
			if m == nil {
				t.Fatalf("TryMatch(%q) = nil, want match", tt.text)
			}
			if m.Start() != tt.wantStart || m.End() != tt.wantEnd {
				t.Errorf("TryMatch(%q) = [%d:%d], want [%d:%d]",
					tt.text, m.Start(), m.End(), tt.wantStart, tt.wantEnd)
			}
			if !reflect.DeepEqual(m.Groups(), tt.want) {
				t.Errorf("TryMatch(%q).Groups() = %q, want %q", tt.text, m.Groups(), tt.want)
			}
		})
	}
}

func TestRegexNoMatch(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
	}{
		{`xyz(\S+)`, "abc"},
		// The placeholder needs at least one byte, unlike a contexts template.
		{`a(\S+)b`, "ab"},
		{`key=(\S+)`, "key= value"},
	}

	for _, tt := range tests {
		if m := MustCompileRegex(tt.pattern).TryMatch(tt.text); m != nil {
			t.Errorf("%q.TryMatch(%q) = [%d:%d], want nil", tt.pattern, tt.text, m.Start(), m.End())
		}
	}
}

// TestRegexEquality checks that equality and ordering follow the pattern source
func TestRegexEquality(t *testing.T) {
	a := MustCompileRegex(`<(\S+)>`)
	b := MustCompileRegex(`<(\S+)>`)
	c := MustCompileRegex(`[(\S+)]`)

	if a == b {
		t.Fatal("separate compilations should give distinct instances")
	}
	if !a.Equal(b) || !b.Equal(a) {
		t.Error("templates with the same source should be Equal")
	}
	if a.Compare(b) != 0 {
		t.Errorf("Compare(same source) = %d, want 0", a.Compare(b))
	}
	if a.Equal(c) {
		t.Error("templates with different sources should not be Equal")
	}
	if a.Compare(c) >= 0 || c.Compare(a) <= 0 {
		t.Errorf("Compare should order by source: %d, %d", a.Compare(c), c.Compare(a))
	}

	var nilTmpl *RegexTemplate
	if nilTmpl.Equal(a) || !nilTmpl.Equal(nil) {
		t.Error("nil Equal semantics")
	}

	sorted := []*RegexTemplate{c, a, b}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Compare(sorted[j]) < 0 })
	if !sorted[0].Equal(a) || !sorted[2].Equal(c) {
		t.Errorf("sorted order = %v, %v, %v", sorted[0], sorted[1], sorted[2])
	}
}

func TestRegexAccessors(t *testing.T) {
	tmpl := MustCompileRegex(`<(\S+)>(\S+)!`)

	if tmpl.Kind() != KindRegex {
		t.Errorf("Kind() = %v, want regex", tmpl.Kind())
	}
	if tmpl.Regex() != `<(\S+)>(\S+)!` || tmpl.String() != tmpl.Regex() {
		t.Errorf("Regex() = %q, String() = %q", tmpl.Regex(), tmpl.String())
	}
	if tmpl.NumVariables() != 2 {
		t.Errorf("NumVariables() = %d, want 2", tmpl.NumVariables())
	}
	want := []string{"<", ">", "!"}
	if got := tmpl.Contexts(); !reflect.DeepEqual(got, want) {
		t.Errorf("Contexts() = %q, want %q", got, want)
	}
}

func BenchmarkRegexTryMatch(b *testing.B) {
	tmpl := MustCompileRegex(`GET (\S+) HTTP/(\S+)`)
	text := "127.0.0.1 - - [10/Oct/2000:13:55:36] \"GET /apache_pb.gif HTTP/1.0\" 200 2326"
	b.SetBytes(int64(len(text)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = tmpl.TryMatch(text)
	}
}
