package frontmatter

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTOML(t *testing.T) {
	raw := `title = "My Post"
date = 2023-05-20
count = 7
ratio = 0.5
draft = true
tags = ["r", "b"]

[author]
name = "Ada"
`
	fm, err := Parse(raw, FormatTOML)
	require.NoError(t, err)

	want := Frontmatter{
		"title":  String("My Post"),
		"date":   String("2023-05-20"),
		"count":  Number(7),
		"ratio":  Number(0.5),
		"draft":  Bool(true),
		"tags":   Array(String("r"), String("b")),
		"author": Object(Frontmatter{"name": String("Ada")}),
	}
	assert.True(t, want.Equal(fm), "got %s", fm)
}

func TestParseTOML_DateTimes(t *testing.T) {
	raw := "odt = 2024-01-02T03:04:05Z\nldt = 2024-01-02T03:04:05\nlt = 07:32:00\n"
	fm, err := Parse(raw, FormatTOML)
	require.NoError(t, err)

	assert.True(t, fm["odt"].Equal(String("2024-01-02T03:04:05Z")), "got %s", fm["odt"])
	assert.True(t, fm["ldt"].Equal(String("2024-01-02T03:04:05")), "got %s", fm["ldt"])
	assert.True(t, fm["lt"].Equal(String("07:32:00")), "got %s", fm["lt"])
}

func TestParseTOML_SyntaxError(t *testing.T) {
	_, err := Parse("title = \"ok\"\nbroken = \n", FormatTOML)
	require.ErrorIs(t, err, ErrParse)

	var fmErr *Error
	require.True(t, errors.As(err, &fmErr))
	assert.Equal(t, FormatTOML, fmErr.Format)
	assert.Equal(t, 2, fmErr.Line)
}

func TestParseTOML_NoAssignment(t *testing.T) {
	_, err := Parse("just words", FormatTOML)
	require.ErrorIs(t, err, ErrConversion)
}

func TestEmitTOML(t *testing.T) {
	fm := Frontmatter{
		"title": String("My Post"),
		"date":  String("2023-05-20"),
		"tags":  Array(String("r"), String("b")),
		"count": Number(3),
		"ratio": Number(2.5),
	}
	out, err := Emit(fm, FormatTOML)
	require.NoError(t, err)

	assert.Contains(t, out, `title = "My Post"`)
	assert.Contains(t, out, `date = "2023-05-20"`)
	assert.Contains(t, out, `tags = ["r", "b"]`)
	assert.Contains(t, out, "count = 3\n")
	assert.Contains(t, out, "ratio = 2.5\n")
}

func TestEmitTOML_NullOmitted(t *testing.T) {
	fm := Frontmatter{"title": String("x"), "gone": Null(), "tagged": Tagged("!t", Null())}
	out, err := Emit(fm, FormatTOML)
	require.NoError(t, err)
	assert.NotContains(t, out, "gone")
	assert.NotContains(t, out, "tagged")

	back, err := Parse(out, FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, []string{"title"}, back.Keys())
}

func TestEmitTOML_NullInArray(t *testing.T) {
	_, err := Emit(Frontmatter{"list": Array(String("a"), Null())}, FormatTOML)
	require.ErrorIs(t, err, ErrConversion)
}

func TestEmitTOML_NestedTable(t *testing.T) {
	fm := Frontmatter{
		"title":  String("x"),
		"author": Object(Frontmatter{"name": String("Ada"), "age": Number(36)}),
	}
	out, err := Emit(fm, FormatTOML)
	require.NoError(t, err)
	assert.Contains(t, out, "[author]")

	back, err := Parse(out, FormatTOML)
	require.NoError(t, err)
	assert.True(t, fm.Equal(back), "emitted:\n%s", out)
}
