package series

import "testing"

func TestApplyTransformSkipsNulls(t *testing.T) {
	in := New("convert", 4)
	in.Append("pig")
	in.AppendNull()
	in.Append("latin")
	in.Append("")

	e, ok := Lookup("pig_latinnify")
	if !ok {
		t.Fatalf("pig_latinnify not registered")
	}

	out := e.Apply(in)

	if out.Name != "convert_pig_latinnify" {
		t.Fatalf("unexpected output name %q", out.Name)
	}
	if out.Len() != 4 {
		t.Fatalf("expected 4 positions, got %d", out.Len())
	}
	if v, _ := out.Value(0); v != "igpay" {
		t.Errorf("position 0 = %q, expected %q", v, "igpay")
	}
	if !out.IsNull(1) {
		t.Errorf("expected null to propagate at position 1")
	}
	if v, _ := out.Value(2); v != "atinlay" {
		t.Errorf("position 2 = %q, expected %q", v, "atinlay")
	}
	// Empty string is a value, not a null: pig latin leaves it empty
	if out.IsNull(3) {
		t.Errorf("empty string must not become null")
	}
}

func TestApplyPredicate(t *testing.T) {
	in := FromStrings("document", []string{"50542983800", "11111111111", "60204424000108"})

	e, ok := Lookup("validate_cpf_cnpj")
	if !ok {
		t.Fatalf("validate_cpf_cnpj not registered")
	}

	out := e.Apply(in)
	want := []string{"true", "false", "true"}
	for i, w := range want {
		if v, _ := out.Value(i); v != w {
			t.Errorf("position %d = %q, expected %q", i, v, w)
		}
	}
}

func TestApplyClassifier(t *testing.T) {
	in := FromStrings("document", []string{"50542983800", "60204424000108", "123"})

	e, ok := Lookup("is_cpf_or_cnpj")
	if !ok {
		t.Fatalf("is_cpf_or_cnpj not registered")
	}

	out := e.Apply(in)
	if v, _ := out.Value(0); v != "CPF" {
		t.Errorf("position 0 = %q, expected CPF", v)
	}
	if v, _ := out.Value(1); v != "CNPJ" {
		t.Errorf("position 1 = %q, expected CNPJ", v)
	}
	if !out.IsNull(2) {
		t.Errorf("unclassified value must yield a null position")
	}
}

func TestApplyFormatExpressions(t *testing.T) {
	in := FromStrings("document", []string{"50542983800", "60204424000108", "50542983801"})

	e, _ := Lookup("format_cpf_cnpj")
	out := e.Apply(in)

	want := []string{"505.429.838-00", "60.204.424/0001-08", "50542983801"}
	for i, w := range want {
		if v, _ := out.Value(i); v != w {
			t.Errorf("position %d = %q, expected %q", i, v, w)
		}
	}
}

func TestRegisterDuplicate(t *testing.T) {
	if err := Register(Transform("dup_expr_test", func(s string) string { return s })); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := Register(Transform("dup_expr_test", func(s string) string { return s })); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestNamesContainsDefaults(t *testing.T) {
	names := Names()
	set := map[string]bool{}
	for _, n := range names {
		set[n] = true
	}

	for _, want := range []string{
		"validate_cpf_cnpj", "is_cpf_or_cnpj", "format_cpf_cnpj",
		"validate_phone", "validate_phone_flexible", "format_phone",
		"remove_accents", "title_case", "pig_latinnify",
	} {
		if !set[want] {
			t.Errorf("default expression %q not registered", want)
		}
	}
}
