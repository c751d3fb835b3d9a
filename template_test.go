package coretmpl

import (
	"reflect"
	"sync"
	"testing"

	"github.com/coregx/coregex"
)

var kinds = []Kind{KindContexts, KindRegex}

func TestKindString(t *testing.T) {
	for _, k := range kinds {
		parsed, err := ParseKind(k.String())
		if err != nil || parsed != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), parsed, err)
		}
		text, err := k.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Kind
		if err := back.UnmarshalText(text); err != nil || back != k {
			t.Errorf("UnmarshalText(%q) = %v, %v", text, back, err)
		}
	}

	if _, err := ParseKind("grapheme"); err == nil {
		t.Error("ParseKind(grapheme) should fail")
	}
	if _, err := Kind(5).MarshalText(); err == nil {
		t.Error("MarshalText of unknown kind should fail")
	}
	if got := Kind(5).String(); got != "Kind(5)" {
		t.Errorf("String() = %q", got)
	}
}

func TestFromContexts(t *testing.T) {
	contexts := []string{"<", ">", "!"}

	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			tmpl, err := FromContexts(k, contexts)
			if err != nil {
				t.Fatal(err)
			}
			if tmpl.Kind() != k {
				t.Errorf("Kind() = %v, want %v", tmpl.Kind(), k)
			}
			if got := tmpl.Contexts(); !reflect.DeepEqual(got, contexts) {
				t.Errorf("Contexts() = %q, want %q", got, contexts)
			}
			if got := tmpl.Regex(); got != `<(\S+)>(\S+)!` {
				t.Errorf("Regex() = %q", got)
			}

			m := tmpl.TryMatch("<a>b!")
			if m == nil {
				t.Fatal("TryMatch = nil")
			}
			if m.Start() != 0 || m.End() != 5 || !reflect.DeepEqual(m.Groups(), []string{"a", "b"}) {
				t.Errorf("TryMatch = [%d:%d] %q", m.Start(), m.End(), m.Groups())
			}
		})
	}
}

func TestFromRegex(t *testing.T) {
	pattern := `key=(\S+)`

	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			tmpl, err := FromRegex(k, pattern)
			if err != nil {
				t.Fatal(err)
			}
			if tmpl.Kind() != k {
				t.Errorf("Kind() = %v, want %v", tmpl.Kind(), k)
			}
			if got := tmpl.Regex(); got != pattern {
				t.Errorf("Regex() = %q, want %q", got, pattern)
			}
			if got := tmpl.Contexts(); !reflect.DeepEqual(got, []string{"key=", ""}) {
				t.Errorf("Contexts() = %q", got)
			}

			m := tmpl.TryMatch("prefix key=value")
			if m == nil || m.Start() != 7 || m.End() != 16 || m.Group(0) != "value" {
				t.Errorf("TryMatch = %+v", m)
			}
		})
	}
}

func TestFromCompiled(t *testing.T) {
	re := coregex.MustCompile(`<(\S+)>`)

	rt, err := FromCompiled(KindRegex, re)
	if err != nil {
		t.Fatal(err)
	}
	if rt.Regex() != `<(\S+)>` {
		t.Errorf("Regex() = %q", rt.Regex())
	}

	ct, err := FromCompiled(KindContexts, re)
	if err != nil {
		t.Fatal(err)
	}
	if got := ct.Contexts(); !reflect.DeepEqual(got, []string{"<", ">"}) {
		t.Errorf("Contexts() = %q", got)
	}

	if _, err := FromCompiled(Kind(3), re); err == nil {
		t.Error("FromCompiled with unknown kind should fail")
	}
}

// TestRegexMaterialization checks Regex() of a contexts template against ContextsToRegex.
func TestRegexMaterialization(t *testing.T) {
	inputs := [][]string{{"a"}, {"a.b", ""}, {"", "(", ")"}, {"$", "^", "|"}}
	for _, contexts := range inputs {
		tmpl, err := NewContextsTemplate(contexts)
		if err != nil {
			t.Fatal(err)
		}
		want, _ := ContextsToRegex(contexts)
		if got := tmpl.Regex(); got != want {
			t.Errorf("Regex() = %q, want %q", got, want)
		}
		if tmpl.String() != want {
			t.Errorf("String() = %q, want %q", tmpl.String(), want)
		}
	}
}

// TestCopy checks that copies are distinct instances with equal content.
func TestCopy(t *testing.T) {
	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			orig := MustFromContexts(k, []string{"k=", ";"})
			cp := orig.Copy()

			if cp == orig {
				t.Error("Copy() returned the same instance")
			}
			if cp.Kind() != orig.Kind() {
				t.Errorf("Kind() = %v, want %v", cp.Kind(), orig.Kind())
			}
			if !reflect.DeepEqual(cp.Contexts(), orig.Contexts()) {
				t.Errorf("Contexts() = %q, want %q", cp.Contexts(), orig.Contexts())
			}
			if cp.Regex() != orig.Regex() {
				t.Errorf("Regex() = %q, want %q", cp.Regex(), orig.Regex())
			}
			if Fingerprint(cp) != Fingerprint(orig) {
				t.Error("copies should share a fingerprint")
			}
		})
	}
}

// TestRepresentationsDiverge documents the empty-capture difference between kinds.
func TestRepresentationsDiverge(t *testing.T) {
	contexts := []string{"a", "b"}

	ct := MustFromContexts(KindContexts, contexts)
	if m := ct.TryMatch("ab"); m == nil || m.Group(0) != "" {
		t.Errorf("contexts template should capture an empty group, got %+v", m)
	}

	rt := MustFromContexts(KindRegex, contexts)
	if m := rt.TryMatch("ab"); m != nil {
		t.Errorf("regex template should need a non-empty group, got [%d:%d]", m.Start(), m.End())
	}

	// Both agree when the variable is a single non-space run.
	for _, tmpl := range []Template{ct, rt} {
		m := tmpl.TryMatch("axyzb")
		if m == nil || m.Group(0) != "xyz" {
			t.Errorf("%v: TryMatch(axyzb) = %+v", tmpl.Kind(), m)
		}
	}
}

// TestConcurrentTryMatch checks that shared templates can be matched from many goroutines.
func TestConcurrentTryMatch(t *testing.T) {
	const goroutines = 16
	const iterations = 200

	for _, k := range kinds {
		tmpl := MustFromContexts(k, []string{"<", ">", "!"})

		var wg sync.WaitGroup
		errs := make(chan string, goroutines)
		for g := 0; g < goroutines; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < iterations; i++ {
					m := tmpl.TryMatch("x <ab>cd! y")
					if m == nil || m.Start() != 2 || m.End() != 9 || m.Group(0) != "ab" || m.Group(1) != "cd" {
						errs <- "unexpected match"
						return
					}
					_ = tmpl.Contexts()
					_ = tmpl.Regex()
					_ = tmpl.Copy()
				}
			}()
		}
		wg.Wait()
		close(errs)
		for e := range errs {
			t.Errorf("%v: %s", k, e)
		}
	}
}
