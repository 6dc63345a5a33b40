package schema_test

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gennovative/micro-fleet-common/pkg/schema"
)

func userSchema() schema.ObjectNode {
	return schema.Object().
		Key("name", schema.Required(schema.String().Min(3).Max(10).Pattern(regexp.MustCompile(`^[\w -]+$`)))).
		Key("address", schema.Required(schema.String().AllowEmpty(false))).
		Key("age", schema.Number().Min(15).Max(99))
}

func TestObject(t *testing.T) {
	t.Run("collects every error in key order", func(t *testing.T) {
		_, err := schema.Validate(userSchema(), map[string]any{"name": "ab", "address": "", "age": "10"}, schema.DefaultOptions())
		require.Error(t, err)
		errs := err.(schema.Errors)
		require.Len(t, errs, 3)
		assert.Equal(t, "string.min", errs[0].Code)
		assert.Equal(t, "string.empty", errs[1].Code)
		assert.Equal(t, "number.min", errs[2].Code)
	})

	t.Run("reports missing required keys", func(t *testing.T) {
		_, err := schema.Validate(userSchema(), map[string]any{"name": "abc"}, schema.DefaultOptions())
		require.Error(t, err)
		errs := err.(schema.Errors)
		require.Len(t, errs, 1)
		assert.Equal(t, "any.required", errs[0].Code)
		assert.Equal(t, `"address" is required`, errs[0].Message)
		assert.Equal(t, []string{"address"}, errs[0].Path)
	})

	t.Run("abort early stops at the first error", func(t *testing.T) {
		opts := schema.DefaultOptions()
		opts.AbortEarly = true
		_, err := schema.Validate(userSchema(), map[string]any{"name": "ab", "address": "", "age": "10"}, opts)
		require.Error(t, err)
		assert.Len(t, err.(schema.Errors), 1)
	})

	t.Run("unknown keys", func(t *testing.T) {
		in := map[string]any{"name": "abc", "address": "x", "extra": 1}

		out, err := schema.Validate(userSchema(), in, schema.DefaultOptions())
		require.NoError(t, err)
		assert.NotContains(t, out, "extra")

		out, err = schema.Validate(userSchema(), in, schema.Options{AllowUnknown: true})
		require.NoError(t, err)
		assert.Equal(t, 1, out.(map[string]any)["extra"])

		_, err = schema.Validate(userSchema(), in, schema.Options{})
		require.Error(t, err)
		errs := err.(schema.Errors)
		require.Len(t, errs, 1)
		assert.Equal(t, "object.unknown", errs[0].Code)
		assert.Equal(t, `"extra" is not allowed`, errs[0].Message)
	})

	t.Run("does not mutate input and cleans values", func(t *testing.T) {
		in := map[string]any{"name": "abc", "address": "x", "age": "20", "extra": true}
		out, err := schema.Validate(userSchema(), in, schema.DefaultOptions())
		require.NoError(t, err)

		want := map[string]any{"name": "abc", "address": "x", "age": 20.0}
		if diff := cmp.Diff(want, out); diff != "" {
			t.Errorf("cleaned value mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, "20", in["age"])
		assert.Contains(t, in, "extra")
	})

	t.Run("nested paths", func(t *testing.T) {
		n := schema.Object().Key("profile", schema.Object().Key("city", schema.Required(schema.String())))
		_, err := schema.Validate(n, map[string]any{"profile": map[string]any{"city": 5}}, schema.DefaultOptions())
		require.Error(t, err)
		errs := err.(schema.Errors)
		require.Len(t, errs, 1)
		assert.Equal(t, []string{"profile", "city"}, errs[0].Path)
		assert.Equal(t, `"profile.city" must be a string`, errs[0].Message)
	})

	t.Run("accepts typed maps", func(t *testing.T) {
		n := schema.Object().Key("a", schema.Number())
		out, err := schema.Validate(n, map[string]int{"a": 1}, schema.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": 1.0}, out)
	})

	t.Run("rejects non objects", func(t *testing.T) {
		_, err := schema.Validate(userSchema(), "nope", schema.DefaultOptions())
		require.Error(t, err)
		errs := err.(schema.Errors)
		assert.Equal(t, `"value" must be of type object`, errs[0].Message)
		assert.Equal(t, []string{}, errs[0].Path)
	})

	t.Run("absent top level value", func(t *testing.T) {
		out, err := schema.Validate(userSchema(), nil, schema.DefaultOptions())
		require.NoError(t, err)
		assert.Nil(t, out)

		_, err = schema.Validate(schema.Required(userSchema()), nil, schema.DefaultOptions())
		require.Error(t, err)
		assert.Equal(t, `"value" is required`, err.(schema.Errors)[0].Message)
	})

	t.Run("builders copy on write", func(t *testing.T) {
		base := schema.Object().Key("a", schema.String())
		extended := base.Key("b", schema.Number())
		assert.Equal(t, []string{"a"}, base.Keys())
		assert.Equal(t, []string{"a", "b"}, extended.Keys())

		relaxed := userSchema().MapChildren(func(_ string, child schema.Node) schema.Node {
			return schema.Optional(child)
		})
		name, ok := relaxed.Child("name")
		require.True(t, ok)
		assert.False(t, schema.IsRequired(name))
		original, _ := userSchema().Child("name")
		assert.True(t, schema.IsRequired(original))
	})
}

func TestFlags(t *testing.T) {
	t.Run("default fills absent values only", func(t *testing.T) {
		n := schema.Object().Key("status", schema.Default(schema.String(), "new"))
		out, err := schema.Validate(n, map[string]any{}, schema.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"status": "new"}, out)

		out, err = schema.Validate(n, map[string]any{"status": "done"}, schema.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"status": "done"}, out)

		stripped := schema.Object().Key("status", schema.WithoutDefault(schema.Default(schema.String(), "new")))
		out, err = schema.Validate(stripped, map[string]any{}, schema.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, out)
	})

	t.Run("only compares converted values", func(t *testing.T) {
		n := schema.Only(schema.Number(), 1, 2, 3)
		out, errs := validateField(t, n, "2")
		assert.Nil(t, errs)
		assert.Equal(t, 2.0, out)

		_, errs = validateField(t, n, 4)
		require.Len(t, errs, 1)
		assert.Equal(t, "any.only", errs[0].Code)
		assert.Equal(t, `"field" must be one of [1 2 3]`, errs[0].Message)
	})

	t.Run("only on any", func(t *testing.T) {
		n := schema.Only(schema.Any(), "a", "b")
		_, errs := validateField(t, n, "a")
		assert.Nil(t, errs)
		_, errs = validateField(t, n, "c")
		require.Len(t, errs, 1)
	})

	t.Run("required nullable accepts null but not absence", func(t *testing.T) {
		n := schema.Object().Key("note", schema.Required(schema.Nullable(schema.String())))
		out, err := schema.Validate(n, map[string]any{"note": nil}, schema.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"note": nil}, out)

		_, err = schema.Validate(n, map[string]any{}, schema.DefaultOptions())
		require.Error(t, err)
	})
}

func TestArray(t *testing.T) {
	t.Run("validates items with index paths", func(t *testing.T) {
		n := schema.Array(schema.Number().Min(0))
		_, errs := validateField(t, n, []any{1, "x", -1})
		require.Len(t, errs, 2)
		assert.Equal(t, []string{"field", "1"}, errs[0].Path)
		assert.Equal(t, "number.base", errs[0].Code)
		assert.Equal(t, []string{"field", "2"}, errs[1].Path)
		assert.Equal(t, "number.min", errs[1].Code)
	})

	t.Run("converts items and typed slices", func(t *testing.T) {
		out, errs := validateField(t, schema.Array(schema.Number()), []string{"1", "2"})
		assert.Nil(t, errs)
		assert.Equal(t, []any{1.0, 2.0}, out)
	})

	t.Run("single wraps scalars", func(t *testing.T) {
		_, errs := validateField(t, schema.Array(schema.String()), "a")
		require.Len(t, errs, 1)
		assert.Equal(t, "array.base", errs[0].Code)

		out, errs := validateField(t, schema.Array(schema.String()).Single(), "a")
		assert.Nil(t, errs)
		assert.Equal(t, []any{"a"}, out)
	})

	t.Run("length bounds", func(t *testing.T) {
		n := schema.Array(nil).Min(1).Max(2)
		_, errs := validateField(t, n, []any{})
		require.Len(t, errs, 1)
		assert.Equal(t, `"field" must contain at least 1 items`, errs[0].Message)

		_, errs = validateField(t, n, []any{1, 2, 3})
		require.Len(t, errs, 1)
		assert.Equal(t, "array.max", errs[0].Code)
	})
}
