package routecore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePattern_Literal(t *testing.T) {
	segs, err := ParsePattern("/about/us")
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, SegmentLiteral, segs[0].Kind)
	assert.Equal(t, "/about/us", segs[0].Text)
}

func TestParsePattern_Escape(t *testing.T) {
	segs, err := ParsePattern(`/\:x`)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, "/:x", segs[0].Text)
}

func TestParsePattern_Parameter(t *testing.T) {
	segs, err := ParsePattern("/user/:id")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, SegmentParameter, segs[1].Kind)
	assert.Equal(t, "id", segs[1].Name)
	assert.Nil(t, segs[1].Regex)
	assert.False(t, segs[1].Multi)
	assert.Equal(t, 0, segs[1].Stage)
}

func TestParsePattern_ParameterWithRegex(t *testing.T) {
	segs, err := ParsePattern(`/user/:id(\d+)`)
	require.NoError(t, err)
	require.Len(t, segs, 2)
	require.NotNil(t, segs[1].Regex)
	assert.True(t, segs[1].Regex.MatchString("42"))
	assert.False(t, segs[1].Regex.MatchString("abc"))
}

func TestParsePattern_Stage(t *testing.T) {
	segs, err := ParsePattern("/user/:id$-10")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, -10, segs[1].Stage)
}

func TestParsePattern_Multi(t *testing.T) {
	segs, err := ParsePattern("/files/:rest*")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.True(t, segs[1].Multi)
}

func TestParsePattern_MultiWithRegex(t *testing.T) {
	segs, err := ParsePattern(`/post2/:name([\w/]{1,3}$)*`)
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.True(t, segs[1].Multi)
	require.NotNil(t, segs[1].Regex)
}

func TestParsePattern_AdjacentParamsWithRegexOK(t *testing.T) {
	segs, err := ParsePattern(`/user/:short(\d{1,2}):rest`)
	require.NoError(t, err)
	require.Len(t, segs, 3)
	assert.Equal(t, "short", segs[1].Name)
	assert.Equal(t, "rest", segs[2].Name)
}

func TestParsePattern_AdjacentParamsNoRegexRejected(t *testing.T) {
	_, err := ParsePattern("/user/:a:b")
	require.Error(t, err)
	var syntaxErr *PatternSyntaxError
	require.ErrorAs(t, err, &syntaxErr)
}

func TestParsePattern_MustStartWithSlash(t *testing.T) {
	_, err := ParsePattern("about")
	require.Error(t, err)
}

func TestParsePattern_LeadingSlashIsALiteralNotAParameter(t *testing.T) {
	segs, err := ParsePattern("/:id")
	require.NoError(t, err)
	assert.Equal(t, SegmentLiteral, segs[0].Kind)
	assert.Equal(t, SegmentParameter, segs[1].Kind)
}

func TestParsePattern_MultiNoRegexMustBeLast(t *testing.T) {
	_, err := ParsePattern("/files/:rest*/more")
	require.Error(t, err)
}

func TestParsePattern_UnterminatedRegex(t *testing.T) {
	_, err := ParsePattern(`/user/:id(\d+`)
	require.Error(t, err)
}

func TestParsePattern_EmptyRegex(t *testing.T) {
	_, err := ParsePattern("/user/:id()")
	require.Error(t, err)
}

func TestParsePattern_DanglingEscape(t *testing.T) {
	_, err := ParsePattern(`/about\`)
	require.Error(t, err)
}
