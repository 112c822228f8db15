package strip

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDeclaration(t *testing.T) {
	lines := []string{
		"const x = 1;",
		"async function humanizeEmailWithAI(email) {",
		"}",
	}
	assert.Equal(t, 1, findDeclaration(lines, "humanizeEmailWithAI", 0))
	assert.Equal(t, -1, findDeclaration(lines, "generateEmail", 0))
	assert.Equal(t, -1, findDeclaration(lines, "humanizeEmailWithAI", 2))
}

func TestFindExtentBalancedFunction(t *testing.T) {
	lines := []string{
		"const before = 1;",
		"function extractContactInfo(html) {",
		"  const emails = [];",
		"  if (html) {",
		"    emails.push(find(html));",
		"  }",
		"  return emails;",
		"}",
		"const after = 2;",
	}

	ext, err := findExtent(lines, "extractContactInfo", 1)
	require.NoError(t, err)
	assert.Equal(t, Extent{Start: 1, End: 7}, ext)
	assert.Equal(t, 7, ext.Len())
}

func TestFindExtentConsumesPrecedingCommentBlock(t *testing.T) {
	lines := []string{
		"const before = 1;",
		"/**",
		" * Extracts contact info from raw HTML.",
		" */",
		"function extractContactInfo(html) {",
		"  return [];",
		"}",
	}

	ext, err := findExtent(lines, "extractContactInfo", 4)
	require.NoError(t, err)
	assert.Equal(t, Extent{Start: 1, End: 6}, ext)
}

func TestFindExtentIgnoresBracesInLiterals(t *testing.T) {
	lines := []string{
		"function generateEmail(lead) {",
		"  const tpl = `Hello ${lead.name} }}}`;",
		"  // helper comment with } brace",
		"  return tpl;",
		"}",
		"function next() {}",
	}

	ext, err := findExtent(lines, "generateEmail", 0)
	require.NoError(t, err)
	assert.Equal(t, Extent{Start: 0, End: 4}, ext)
}

func TestFindExtentUnbalancedFails(t *testing.T) {
	lines := []string{
		"function generateEmail(lead) {",
		"  const body = render(lead);",
		"  return body;",
	}

	_, err := findExtent(lines, "generateEmail", 0)
	require.Error(t, err)

	var unbalanced *UnbalancedError
	require.True(t, errors.As(err, &unbalanced))
	assert.Equal(t, "generateEmail", unbalanced.Function)
	assert.Equal(t, 1, unbalanced.Line)
}
