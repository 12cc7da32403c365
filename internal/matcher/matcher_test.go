package matcher

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	re, err := Compile("dolor", false)
	require.NoError(t, err)
	assert.True(t, re.MatchString("dolor sit amet"))
	assert.False(t, re.MatchString("DOLOR SIT AMET"))
}

func TestCompileIgnoreCase(t *testing.T) {
	re, err := Compile("dolor", true)
	require.NoError(t, err)
	assert.True(t, re.MatchString("DOLOR SIT AMET"))
}

func TestCompileInvalidExpression(t *testing.T) {
	_, err := Compile("(unclosed", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid search pattern")
}

func TestFindMatches(t *testing.T) {
	input := "lorem ipsum\ndolor sit amet\nquick brown fox"
	var out bytes.Buffer

	re, err := Compile("dolor", false)
	require.NoError(t, err)
	require.NoError(t, FindMatches(strings.NewReader(input), &out, re, Options{}))

	assert.Equal(t, "dolor sit amet\n", out.String())
}

func TestFindMatchesLineNumbers(t *testing.T) {
	input := "alpha\nbeta\ngamma\nbeta again\n"
	var out bytes.Buffer

	re, err := Compile("beta", false)
	require.NoError(t, err)
	require.NoError(t, FindMatches(strings.NewReader(input), &out, re, Options{ShowLineNumbers: true}))

	assert.Equal(t, "2:beta\n4:beta again\n", out.String())
}

func TestFindMatchesPreservesInputOrder(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("match line\n")
	}
	var out bytes.Buffer

	re, err := Compile("match", false)
	require.NoError(t, err)
	require.NoError(t, FindMatches(strings.NewReader(sb.String()), &out, re, Options{ShowLineNumbers: true}))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 50)
	assert.Equal(t, "1:match line", lines[0])
	assert.Equal(t, "50:match line", lines[49])
}

func TestFindMatchesNoMatches(t *testing.T) {
	var out bytes.Buffer
	re, err := Compile("absent", false)
	require.NoError(t, err)
	require.NoError(t, FindMatches(strings.NewReader("nothing here\n"), &out, re, Options{}))
	assert.Zero(t, out.Len())
}

func TestFindMatchesOverlongLine(t *testing.T) {
	input := "short match\n" + strings.Repeat("x", maxLineSize+1) + "\n"
	var out bytes.Buffer

	re, err := Compile("match", false)
	require.NoError(t, err)
	err = FindMatches(strings.NewReader(input), &out, re, Options{})

	require.Error(t, err, "a line beyond the scanner limit aborts this file")
	assert.Equal(t, "short match\n", out.String(), "lines reported before the failure stay reported")
}
