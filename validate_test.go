package framez

import (
	"errors"
	"strings"
	"testing"
)

func intFrame() *MemFrame {
	return NewMemFrame(
		Column{Name: "order_id", Dtype: "int64"},
		Column{Name: "price", Dtype: "float64"},
		Column{Name: "note", Dtype: "string"},
	)
}

func TestSchema_Validate_Conforming(t *testing.T) {
	schema := MustSchema(
		Col("order_id", "int64"),
		Col("price", "float64"),
		AnyCol("note"),
	)

	if err := schema.Validate(intFrame(), false); err != nil {
		t.Fatalf("expected conforming frame to pass, got %v", err)
	}
}

func TestSchema_Validate_MissingColumn(t *testing.T) {
	schema := MustSchema(Col("order_id", "int64"), AnyCol("missing_col"))

	err := schema.Validate(intFrame(), false)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	if len(schemaErr.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(schemaErr.Violations))
	}
	if schemaErr.Violations[0].Kind != ViolationMissing {
		t.Errorf("expected missing violation, got %s", schemaErr.Violations[0].Kind)
	}
	if !strings.Contains(err.Error(), "missing_col") {
		t.Errorf("error message should name the missing column: %s", err.Error())
	}
}

func TestSchema_Validate_DtypeMismatch(t *testing.T) {
	schema := MustSchema(Col("price", "int64"))

	err := schema.Validate(intFrame(), false)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	v := schemaErr.Violations[0]
	if v.Kind != ViolationDtype {
		t.Errorf("expected dtype violation, got %s", v.Kind)
	}
	if v.Column != "price" || v.Dtype != "float64" || v.Expected != "int64" {
		t.Errorf("unexpected violation fields: %+v", v)
	}
	msg := err.Error()
	for _, want := range []string{"price", "float64", "int64"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message missing %q: %s", want, msg)
		}
	}
}

func TestSchema_Validate_DtypePattern(t *testing.T) {
	schema := MustSchema(Col("col", "int.*"))

	t.Run("matches int64", func(t *testing.T) {
		f := NewMemFrame(Column{Name: "col", Dtype: "int64"})
		if err := schema.Validate(f, false); err != nil {
			t.Fatalf("int64 should match int.*: %v", err)
		}
	})

	t.Run("matches int32", func(t *testing.T) {
		f := NewMemFrame(Column{Name: "col", Dtype: "int32"})
		if err := schema.Validate(f, false); err != nil {
			t.Fatalf("int32 should match int.*: %v", err)
		}
	})

	t.Run("rejects float64", func(t *testing.T) {
		f := NewMemFrame(Column{Name: "col", Dtype: "float64"})
		err := schema.Validate(f, false)
		if err == nil {
			t.Fatal("float64 should not match int.*")
		}
		msg := err.Error()
		for _, want := range []string{"col", "float64", "int.*"} {
			if !strings.Contains(msg, want) {
				t.Errorf("error message missing %q: %s", want, msg)
			}
		}
	})

	t.Run("rejects uint64", func(t *testing.T) {
		// Full-string semantics: the pattern must cover the whole dtype.
		f := NewMemFrame(Column{Name: "col", Dtype: "uint64"})
		if err := schema.Validate(f, false); err == nil {
			t.Fatal("uint64 should not match int.*")
		}
	})
}

func TestSchema_Validate_RegexColumnPattern(t *testing.T) {
	schema := MustSchema(AnyCol("^value_.*$"))

	t.Run("matches value columns regardless of dtype", func(t *testing.T) {
		f := NewMemFrame(
			Column{Name: "value_1", Dtype: "int64"},
			Column{Name: "value_2", Dtype: "object"},
		)
		if err := schema.Validate(f, false); err != nil {
			t.Fatalf("value_1/value_2 should satisfy ^value_.*$: %v", err)
		}
	})

	t.Run("other column alone is missing", func(t *testing.T) {
		f := NewMemFrame(Column{Name: "other", Dtype: "int64"})
		err := schema.Validate(f, false)
		if err == nil {
			t.Fatal("expected missing violation for unmatched pattern")
		}
		if !strings.Contains(err.Error(), "^value_.*$") {
			t.Errorf("error message should name the pattern: %s", err.Error())
		}
	})
}

func TestSchema_Validate_RegexDtypePartialMatches(t *testing.T) {
	// A regex name spec with a dtype constraint reports each
	// non-conforming matched column individually.
	schema := MustSchema(Col("^value_.*$", "int.*"))
	f := NewMemFrame(
		Column{Name: "value_1", Dtype: "int64"},
		Column{Name: "value_2", Dtype: "float64"},
		Column{Name: "value_3", Dtype: "object"},
	)

	err := schema.Validate(f, false)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	mismatches := schemaErr.ByKind(ViolationDtype)
	if len(mismatches) != 2 {
		t.Fatalf("expected 2 dtype violations, got %d", len(mismatches))
	}
	if mismatches[0].Column != "value_2" || mismatches[1].Column != "value_3" {
		t.Errorf("expected violations for value_2 then value_3, got %+v", mismatches)
	}
}

func TestSchema_Validate_Strict(t *testing.T) {
	schema := MustSchema(Col("order_id", "int64"))
	f := NewMemFrame(
		Column{Name: "order_id", Dtype: "int64"},
		Column{Name: "extra", Dtype: "string"},
	)

	t.Run("non-strict tolerates extra columns", func(t *testing.T) {
		if err := schema.Validate(f, false); err != nil {
			t.Fatalf("non-strict should tolerate extra columns: %v", err)
		}
	})

	t.Run("strict rejects extra columns", func(t *testing.T) {
		err := schema.Validate(f, true)
		if err == nil {
			t.Fatal("strict should reject undeclared columns")
		}
		var schemaErr *SchemaError
		if !errors.As(err, &schemaErr) {
			t.Fatalf("expected *SchemaError, got %T", err)
		}
		v := schemaErr.Violations[0]
		if v.Kind != ViolationUnexpected || v.Column != "extra" {
			t.Errorf("expected unexpected violation for extra, got %+v", v)
		}
	})

	t.Run("regex matched columns are not unexpected", func(t *testing.T) {
		s := MustSchema(Col("order_id", "int64"), AnyCol("^ext.*$"))
		if err := s.Validate(f, true); err != nil {
			t.Fatalf("columns matched by a pattern should be allowed in strict mode: %v", err)
		}
	})
}

func TestSchema_Validate_AggregatesAllViolations(t *testing.T) {
	schema := MustSchema(
		AnyCol("missing_col"),
		Col("price", "int.*"),
	)
	f := NewMemFrame(
		Column{Name: "price", Dtype: "float64"},
		Column{Name: "extra", Dtype: "string"},
	)

	err := schema.Validate(f, true)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	if len(schemaErr.Violations) != 3 {
		t.Fatalf("expected 3 violations in one error, got %d", len(schemaErr.Violations))
	}

	// Stable order: missing, then dtype mismatches, then unexpected.
	kinds := []ViolationKind{
		schemaErr.Violations[0].Kind,
		schemaErr.Violations[1].Kind,
		schemaErr.Violations[2].Kind,
	}
	want := []ViolationKind{ViolationMissing, ViolationDtype, ViolationUnexpected}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("violation %d: expected %s, got %s", i, want[i], kinds[i])
		}
	}

	msg := err.Error()
	for _, want := range []string{"missing_col", "price", "extra"} {
		if !strings.Contains(msg, want) {
			t.Errorf("aggregated message missing %q: %s", want, msg)
		}
	}
}

func TestSchema_Validate_EmptySchema(t *testing.T) {
	schema := MustSchema()

	t.Run("non-strict", func(t *testing.T) {
		if err := schema.Validate(intFrame(), false); err != nil {
			t.Fatalf("empty schema should accept any frame: %v", err)
		}
	})

	t.Run("strict", func(t *testing.T) {
		// An empty schema declares no expectations; strict mode has
		// nothing to reject against.
		if err := schema.Validate(intFrame(), true); err != nil {
			t.Fatalf("empty schema should accept any frame in strict mode: %v", err)
		}
	})

	t.Run("empty frame", func(t *testing.T) {
		if err := schema.Validate(NewMemFrame(), true); err != nil {
			t.Fatalf("empty schema should accept an empty frame: %v", err)
		}
	})
}

func TestSchema_Validate_EmptyFrame(t *testing.T) {
	schema := MustSchema(Col("a", "int64"), AnyCol("b"))

	err := schema.Validate(NewMemFrame(), false)
	if err == nil {
		t.Fatal("expected all expected columns to be reported missing")
	}
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	if len(schemaErr.ByKind(ViolationMissing)) != 2 {
		t.Errorf("expected 2 missing violations, got %+v", schemaErr.Violations)
	}
}

func TestSchema_Validate_NilFrame(t *testing.T) {
	schema := MustSchema(Col("a", "int64"))

	err := schema.Validate(nil, false)
	if err == nil {
		t.Fatal("expected usage error for nil frame")
	}
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("expected *UsageError, got %T", err)
	}
}

func TestSchema_Validate_MixedLiteralAndPattern(t *testing.T) {
	// Fixed critical columns plus dynamically named ones in one schema.
	schema := MustSchema(
		Col("experiment_id", "int64"),
		Col("^run_[0-9]+$", "float.*"),
	)
	f := NewMemFrame(
		Column{Name: "experiment_id", Dtype: "int64"},
		Column{Name: "run_1", Dtype: "float64"},
		Column{Name: "run_2", Dtype: "float32"},
	)

	if err := schema.Validate(f, true); err != nil {
		t.Fatalf("mixed schema should pass: %v", err)
	}
}
