package schema_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gennovative/micro-fleet-common/pkg/schema"
)

func validateField(t *testing.T, n schema.Node, value any) (any, schema.Errors) {
	t.Helper()
	out, err := schema.Validate(schema.Object().Key("field", n), map[string]any{"field": value}, schema.DefaultOptions())
	if err != nil {
		errs, ok := err.(schema.Errors)
		require.True(t, ok, "error must be schema.Errors")
		return nil, errs
	}
	return out.(map[string]any)["field"], nil
}

func TestString(t *testing.T) {
	t.Run("rejects non strings", func(t *testing.T) {
		_, errs := validateField(t, schema.String(), 12)
		require.Len(t, errs, 1)
		assert.Equal(t, "string.base", errs[0].Code)
		assert.Equal(t, `"field" must be a string`, errs[0].Message)
		assert.Equal(t, []string{"field"}, errs[0].Path)
		assert.Equal(t, 12, errs[0].Value)
	})

	t.Run("allows empty by default", func(t *testing.T) {
		out, errs := validateField(t, schema.String().Min(3), "")
		assert.Nil(t, errs)
		assert.Equal(t, "", out)
	})

	t.Run("rejects empty when disallowed", func(t *testing.T) {
		_, errs := validateField(t, schema.String().AllowEmpty(false), "")
		require.Len(t, errs, 1)
		assert.Equal(t, "string.empty", errs[0].Code)
		assert.Equal(t, `"field" is not allowed to be empty`, errs[0].Message)
	})

	t.Run("length bounds count characters", func(t *testing.T) {
		n := schema.String().Min(3).Max(4)
		_, errs := validateField(t, n, "ab")
		require.Len(t, errs, 1)
		assert.Equal(t, `"field" length must be at least 3 characters long`, errs[0].Message)
		assert.Equal(t, 3, errs[0].Context["limit"])

		_, errs = validateField(t, n, "abcde")
		require.Len(t, errs, 1)
		assert.Equal(t, "string.max", errs[0].Code)

		out, errs := validateField(t, n, "żółw")
		assert.Nil(t, errs)
		assert.Equal(t, "żółw", out)
	})

	t.Run("reports every failed constraint", func(t *testing.T) {
		n := schema.String().Min(3).Pattern(regexp.MustCompile(`^[a-z]+$`))
		_, errs := validateField(t, n, "A!")
		require.Len(t, errs, 2)
		assert.Equal(t, []string{"string.min", "string.pattern.base"}, errs.Codes("field"))
		assert.Equal(t, `"field" with value "A!" fails to match the required pattern: /^[a-z]+$/`, errs[1].Message)
	})

	t.Run("trims and converts case", func(t *testing.T) {
		out, errs := validateField(t, schema.String().Trim().Lowercase(), "  HeLLo ")
		assert.Nil(t, errs)
		assert.Equal(t, "hello", out)

		out, errs = validateField(t, schema.String().Uppercase(), "MiXed")
		assert.Nil(t, errs)
		assert.Equal(t, "MIXED", out)
	})

	t.Run("trimmed whitespace counts as empty", func(t *testing.T) {
		_, errs := validateField(t, schema.String().Trim().AllowEmpty(false), "   ")
		require.Len(t, errs, 1)
		assert.Equal(t, "string.empty", errs[0].Code)
	})

	t.Run("formats", func(t *testing.T) {
		_, errs := validateField(t, schema.String().Email(), "someone@example.com")
		assert.Nil(t, errs)
		_, errs = validateField(t, schema.String().Email(), "not-an-email")
		require.Len(t, errs, 1)
		assert.Equal(t, "string.email", errs[0].Code)

		_, errs = validateField(t, schema.String().URI(), "https://example.com/a?b=c")
		assert.Nil(t, errs)
		_, errs = validateField(t, schema.String().URI(), "no scheme")
		require.Len(t, errs, 1)
		assert.Equal(t, "string.uri", errs[0].Code)

		_, errs = validateField(t, schema.String().UUID(), "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		assert.Nil(t, errs)
		_, errs = validateField(t, schema.String().UUID(), "6ba7b810")
		require.Len(t, errs, 1)
		assert.Equal(t, "string.guid", errs[0].Code)
	})

	t.Run("null is a type error unless nullable", func(t *testing.T) {
		_, errs := validateField(t, schema.String(), nil)
		require.Len(t, errs, 1)
		assert.Equal(t, "string.base", errs[0].Code)

		out, errs := validateField(t, schema.Nullable(schema.String()), nil)
		assert.Nil(t, errs)
		assert.Nil(t, out)
	})

	t.Run("label overrides the key", func(t *testing.T) {
		_, errs := validateField(t, schema.Label(schema.String(), "Full name"), 1)
		require.Len(t, errs, 1)
		assert.Equal(t, `"Full name" must be a string`, errs[0].Message)
	})
}
