package strip

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/website-audit/auditctl/internal/rules"
)

func writeTempSource(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "analyzer.js")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func testRules() rules.Strip {
	return rules.Strip{
		Path: "analyzer.js",
		Imports: []rules.ImportRule{
			{Contains: []string{"createDraft", "drafts-gmail"}},
		},
		Functions: []string{"generateEmail"},
		Regions: []rules.RegionRule{{
			Kind:  "email file writes",
			Start: []string{"// 3. Save email content"},
			End:   []string{"// 4. Save client info"},
		}},
		FieldPatterns: []string{`^\s*email: email,`},
	}
}

func TestRunEndToEnd(t *testing.T) {
	source := []string{
		"import { analyze } from './modules/analyze.js';",
		"import { createDraft } from './modules/drafts-gmail.js';",
		"",
		"/**",
		" * Renders the outreach email.",
		" */",
		"function generateEmail(lead) {",
		"  const subject = buildSubject(lead);",
		"  const body = renderBody(lead);",
		"  if (!body) {",
		"    return null;",
		"  }",
		"  return { subject, body };",
		"}",
		"",
		"function analyzeWebsite(page) {",
		"  // 3. Save email content",
		"  writeFile('email.txt', email);",
		"  writeFile('critique.txt', critique);",
		"  writeFile('qa.txt', qa);",
		"  // 4. Save client info",
		"  writeFile('client.json', client);",
		"  return {",
		"    email: email,",
		"    score: score,",
		"  };",
		"}",
	}
	path := writeTempSource(t, source)

	summary, err := Run(path, testRules(), nil, nil)
	require.NoError(t, err)

	want := []string{
		"import { analyze } from './modules/analyze.js';",
		"",
		"",
		"function analyzeWebsite(page) {",
		"  // 4. Save client info",
		"  writeFile('client.json', client);",
		"  return {",
		"    score: score,",
		"  };",
		"}",
	}
	if diff := cmp.Diff(want, readLines(t, path)); diff != "" {
		t.Errorf("stripped file mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, len(source), summary.Before)
	assert.Equal(t, len(want), summary.After)
	assert.Len(t, summary.Removals, 4)
	assert.Equal(t, "generateEmail function (11 lines)", summary.Removals[1].Desc)
}

func TestRunUnbalancedLeavesFileUntouched(t *testing.T) {
	source := []string{
		"function generateEmail(lead) {",
		"  const body = renderBody(lead);",
		"  return body;",
	}
	path := writeTempSource(t, source)
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	_, runErr := Run(path, testRules(), nil, nil)
	require.Error(t, runErr)
	assert.ErrorContains(t, runErr, "never return to balance")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, after, "a failed run must not rewrite the file")
}

func TestRunMissingFile(t *testing.T) {
	_, err := Run(filepath.Join(t.TempDir(), "absent.js"), testRules(), nil, nil)
	require.Error(t, err)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	lines := []string{
		"import { createDraft } from './modules/drafts-gmail.js';",
		"keep",
	}
	snapshot := append([]string(nil), lines...)

	_, _, err := Apply(lines, testRules(), nil)
	require.NoError(t, err)
	assert.Equal(t, snapshot, lines)
}

func TestInspect(t *testing.T) {
	source := []string{
		"function generateEmail(lead) {",
		"  return renderBody(lead);",
		"}",
	}
	path := writeTempSource(t, source)

	cfg := testRules()
	cfg.Functions = []string{"generateEmail", "qaReviewEmail"}

	statuses, err := Inspect(path, cfg)
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.True(t, statuses[0].Found)
	require.NoError(t, statuses[0].Err)
	assert.Equal(t, Extent{Start: 0, End: 2}, statuses[0].Extent)

	assert.False(t, statuses[1].Found)
}

func TestInspectChecksEveryDeclaration(t *testing.T) {
	// The rewrite removes all declarations of a function, so the preflight
	// must validate all of them: a balanced first body must not mask an
	// unbalanced second one.
	source := []string{
		"function generateEmail(a) {",
		"  return renderBody(a);",
		"}",
		"async function generateEmail(b) {",
		"  return renderBody(b);",
	}
	path := writeTempSource(t, source)

	statuses, err := Inspect(path, testRules())
	require.NoError(t, err)
	require.Len(t, statuses, 1)

	assert.True(t, statuses[0].Found)
	assert.Equal(t, Extent{Start: 0, End: 2}, statuses[0].Extent)
	require.Error(t, statuses[0].Err)
	assert.ErrorContains(t, statuses[0].Err, "never return to balance")
}

func TestSplitJoinRoundTrip(t *testing.T) {
	for _, text := range []string{"", "a\nb\n", "a\nb", "\n", "a\n\nb\n"} {
		lines, trailing := splitLines(text)
		assert.Equal(t, text, joinLines(lines, trailing), "round trip of %q", text)
	}
}
