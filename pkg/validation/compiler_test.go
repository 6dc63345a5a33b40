package validation_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gennovative/micro-fleet-common/pkg/logger"
	"github.com/gennovative/micro-fleet-common/pkg/schema"
	"github.com/gennovative/micro-fleet-common/pkg/validation"
)

type (
	order     struct{}
	orderLine struct{}
	empty     struct{}
)

func TestCompile(t *testing.T) {
	t.Run("nothing declared", func(t *testing.T) {
		reg := newRegistry()
		s, err := reg.Compile(validation.ClassOf[empty]())
		assert.ErrorIs(t, err, validation.ErrNoValidator)
		assert.Nil(t, s)
	})

	t.Run("metadata is dropped after compile", func(t *testing.T) {
		reg := newRegistry()
		defineUser(reg)
		class := validation.ClassOf[user]()

		_, err := reg.Compile(class)
		require.NoError(t, err)
		assert.False(t, reg.Has(class))

		_, err = reg.Compile(class)
		assert.ErrorIs(t, err, validation.ErrNoValidator)
	})

	t.Run("whole keeps declaration order and includes keys", func(t *testing.T) {
		reg := newRegistry()
		defineUser(reg)

		s, err := reg.Compile(validation.ClassOf[user]())
		require.NoError(t, err)

		whole, ok := s.Whole.(schema.ObjectNode)
		require.True(t, ok)
		assert.Equal(t, []string{"id", "name", "address", "age"}, whole.Keys())
		assert.True(t, schema.IsRequired(s.Whole))

		id, _ := whole.Child("id")
		assert.Equal(t, schema.KindBigInt, id.Kind())
		assert.False(t, schema.IsRequired(id))

		name, _ := whole.Child("name")
		assert.True(t, schema.IsRequired(name))
		age, _ := whole.Child("age")
		assert.False(t, schema.IsRequired(age))
	})

	t.Run("partial makes every property optional without defaults", func(t *testing.T) {
		reg := newRegistry()
		validation.Define(reg, validation.ClassOf[order](),
			validation.Prop("status", validation.String(), validation.Default("new"), validation.Required()),
			validation.Prop("total", validation.Number(), validation.Required()),
		)

		s, err := reg.Compile(validation.ClassOf[order]())
		require.NoError(t, err)

		partial := s.Partial.(schema.ObjectNode)
		for _, key := range partial.Keys() {
			child, _ := partial.Child(key)
			assert.False(t, schema.IsRequired(child), key)
			assert.False(t, child.Flags().HasDefault, key)
		}

		whole := s.Whole.(schema.ObjectNode)
		status, _ := whole.Child("status")
		assert.True(t, status.Flags().HasDefault)
	})

	t.Run("property without type accepts anything", func(t *testing.T) {
		reg := newRegistry()
		validation.Define(reg, validation.ClassOf[order](), validation.Prop("note", validation.Required()))

		s, err := reg.Compile(validation.ClassOf[order]())
		require.NoError(t, err)
		note, _ := s.Whole.(schema.ObjectNode).Child("note")
		assert.Equal(t, schema.KindAny, note.Kind())
	})

	t.Run("rule on the wrong type panics", func(t *testing.T) {
		reg := newRegistry()
		validation.Define(reg, validation.ClassOf[order](),
			validation.Prop("total", validation.Number(), validation.Pattern(`^\d+$`)),
		)

		err := recovered(func() { _, _ = reg.Compile(validation.ClassOf[order]()) })
		require.Error(t, err)
		assert.True(t, errors.Is(err, validation.ErrRuleNotApplicable))
		assert.Contains(t, err.Error(), `"total"`)
		assert.True(t, reg.Has(validation.ClassOf[order]()))
	})

	t.Run("logs at debug level", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelDebug), logger.WithTextFormatter())
		reg := validation.NewRegistry(validation.WithLogger(log))
		defineUser(reg)

		_, err := reg.Compile(validation.ClassOf[user]())
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "validation schema compiled")
		assert.Contains(t, buf.String(), "properties=4")
		assert.Contains(t, buf.String(), "keys=1")
	})
}

func TestCompilePrimaryKey(t *testing.T) {
	t.Run("no key", func(t *testing.T) {
		reg := newRegistry()
		validation.Define(reg, validation.ClassOf[order](), validation.Prop("total", validation.Number()))

		s, err := reg.Compile(validation.ClassOf[order]())
		require.NoError(t, err)
		assert.False(t, s.HasPrimaryKey())
		assert.Empty(t, s.KeyNames)
	})

	t.Run("simple key is the bare node", func(t *testing.T) {
		reg := newRegistry()
		defineUser(reg)

		s, err := reg.Compile(validation.ClassOf[user]())
		require.NoError(t, err)
		require.True(t, s.HasPrimaryKey())
		assert.False(t, s.Composite)
		assert.Equal(t, schema.KindBigInt, s.PrimaryKey.Kind())
		assert.True(t, schema.IsRequired(s.PrimaryKey))
	})

	t.Run("several keys make a composite object", func(t *testing.T) {
		reg := newRegistry()
		validation.Define(reg, validation.ClassOf[orderLine](),
			validation.Prop("orderId", validation.ID()),
			validation.Prop("line", validation.ID(), validation.Number(), validation.Integer()),
			validation.Prop("qty", validation.Number()),
		)

		s, err := reg.Compile(validation.ClassOf[orderLine]())
		require.NoError(t, err)
		assert.True(t, s.Composite)
		assert.Equal(t, []string{"orderId", "line"}, s.KeyNames)

		pk, ok := s.PrimaryKey.(schema.ObjectNode)
		require.True(t, ok)
		assert.Equal(t, []string{"orderId", "line"}, pk.Keys())
		line, _ := pk.Child("line")
		assert.Equal(t, schema.KindNumber, line.Kind())
		assert.True(t, schema.IsRequired(line))
	})

	t.Run("composite can be forced for one key", func(t *testing.T) {
		reg := newRegistry()
		defineUser(reg)

		s, err := reg.Compile(validation.ClassOf[user](), validation.CompositePK(true))
		require.NoError(t, err)
		assert.True(t, s.Composite)
		assert.Equal(t, schema.KindObject, s.PrimaryKey.Kind())
	})

	t.Run("require key in whole", func(t *testing.T) {
		reg := newRegistry()
		defineUser(reg)

		s, err := reg.Compile(validation.ClassOf[user](), validation.RequirePK(true))
		require.NoError(t, err)
		id, _ := s.Whole.(schema.ObjectNode).Child("id")
		assert.True(t, schema.IsRequired(id))

		partialID, _ := s.Partial.(schema.ObjectNode).Child("id")
		assert.False(t, schema.IsRequired(partialID))
	})
}

func TestCompileOverride(t *testing.T) {
	t.Run("schema maps are used as is", func(t *testing.T) {
		reg := newRegistry()
		class := validation.ClassOf[order]()
		validation.Define(reg, class, validation.Prop("ignored", validation.String()))
		validation.Override(reg, class, validation.ClassOverride{
			SchemaMapModel: map[string]schema.Node{
				"total":  schema.Required(schema.Number().Min(0)),
				"status": schema.String(),
			},
			SchemaMapPK: map[string]schema.Node{"code": schema.String().Min(3)},
		})

		s, err := reg.Compile(class)
		require.NoError(t, err)
		assert.Equal(t, []string{"status", "total", "code"}, s.Whole.(schema.ObjectNode).Keys())
		assert.Equal(t, []string{"code"}, s.KeyNames)
		assert.Equal(t, schema.KindString, s.PrimaryKey.Kind())
	})

	t.Run("raw schema", func(t *testing.T) {
		reg := newRegistry()
		class := validation.ClassOf[order]()
		composite := true
		raw := schema.Object().Key("total", schema.Default(schema.Number(), 0))
		validation.Override(reg, class, validation.ClassOverride{
			RawSchema:   raw,
			SchemaMapPK: map[string]schema.Node{"id": schema.BigInt()},
			CompositePK: &composite,
			Options:     []validation.Option{validation.AbortEarly(true)},
		})

		s, err := reg.Compile(class)
		require.NoError(t, err)
		assert.True(t, s.Composite)
		assert.Len(t, s.Options, 1)

		total, _ := s.Partial.(schema.ObjectNode).Child("total")
		assert.False(t, total.Flags().HasDefault)
	})

	t.Run("raw schema must describe an object", func(t *testing.T) {
		reg := newRegistry()
		class := validation.ClassOf[order]()
		for _, raw := range []schema.Node{schema.String(), schema.Any(), schema.Array(schema.String())} {
			err := recovered(func() {
				validation.Override(reg, class, validation.ClassOverride{RawSchema: raw})
			})
			require.Error(t, err, raw.Kind())
			assert.True(t, errors.Is(err, validation.ErrRawSchemaNotObject), raw.Kind())
		}
		assert.False(t, reg.Has(class))
	})
}

func TestSchemasOpenAPI(t *testing.T) {
	reg := newRegistry()
	defineUser(reg)
	s, err := reg.Compile(validation.ClassOf[user]())
	require.NoError(t, err)

	docs := s.OpenAPI()
	require.Contains(t, docs, "whole")
	require.Contains(t, docs, "partial")
	require.Contains(t, docs, "primaryKey")

	whole := docs["whole"].Value
	assert.True(t, whole.Type.Is(openapi3.TypeObject))
	if diff := cmp.Diff([]string{"name", "address"}, whole.Required); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, docs["partial"].Value.Required)

	name := whole.Properties["name"].Value
	assert.Equal(t, uint64(3), name.MinLength)
	assert.Equal(t, `^[\w -]+$`, name.Pattern)
}
