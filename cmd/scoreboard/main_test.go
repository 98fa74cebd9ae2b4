package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const festivalDoc = `
teams:
  - code: AQS
    name: Aquarius
  - code: SMD
    name: Samudra
  - code: VYU
    name: Vayu
candidates:
  - chest_number: AQS001
    name: Anwar
    team: AQS
    section: senior
  - chest_number: SMD001
    name: Chitra
    team: SMD
    section: senior
programmes:
  - id: p1
    name: Light Music
    category: arts
    subcategory: stage
    section: senior
    position_type: individual
  - id: p2
    name: Quiz
    category: general
    section: general
    position_type: general
results:
  - id: r1
    programme_id: p1
    status: published
    first_place:
      - chest_number: AQS001
        grade: A
    second_place:
      - chest_number: SMD001
  - id: r2
    programme_id: p2
    status: checked
    first_place_teams:
      - team_code: SMD
`

func writeSnapshot(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "festival.yaml")
	require.NoError(t, os.WriteFile(path, []byte(festivalDoc), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// order returns the positions of each needle in s, failing if one is missing
func order(t *testing.T, s string, needles ...string) []int {
	t.Helper()
	idx := make([]int, len(needles))
	for i, n := range needles {
		idx[i] = strings.Index(s, n)
		require.GreaterOrEqual(t, idx[i], 0, "%q missing from output:\n%s", n, s)
	}
	return idx
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "scoreboard dev\n", out)
}

func TestStandings_FromSnapshot(t *testing.T) {
	path := writeSnapshot(t)

	out, err := run(t, "standings", "--snapshot", path, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Team standings (total, public)")
	pos := order(t, out, "Aquarius", "Samudra")
	assert.Less(t, pos[0], pos[1])
	assert.NotContains(t, out, "Vayu")

	out, err = run(t, "standings", "--snapshot", path, "--no-color", "--scope", "admin", "--show-zero")
	require.NoError(t, err)
	pos = order(t, out, "Samudra", "Aquarius", "Vayu")
	assert.Less(t, pos[0], pos[1])
	assert.Less(t, pos[1], pos[2])
	assert.Contains(t, out, "17")
}

func TestStandings_Individuals(t *testing.T) {
	path := writeSnapshot(t)

	out, err := run(t, "standings", "--snapshot", path, "--no-color", "--individuals", "--section", "senior")
	require.NoError(t, err)
	assert.Contains(t, out, "Individual standings (total, public, senior)")
	pos := order(t, out, "AQS001", "SMD001")
	assert.Less(t, pos[0], pos[1])
}

func TestStandings_Errors(t *testing.T) {
	path := writeSnapshot(t)

	_, err := run(t, "standings", "--snapshot", path, "--dimension", "music")
	assert.Error(t, err)

	_, err = run(t, "standings", "--snapshot", path, "--section", "senior")
	assert.ErrorContains(t, err, "--individuals")

	_, err = run(t, "standings", "--snapshot", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = run(t, "standings", "--snapshot", path, "--db", "x.db")
	assert.Error(t, err)
}

func TestSeedThenStandingsFromDB(t *testing.T) {
	path := writeSnapshot(t)
	db := filepath.Join(t.TempDir(), "festival.db")

	out, err := run(t, "seed", "--snapshot", path, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 3 teams, 2 candidates, 2 programmes, 2 results (0 skipped)")

	out, err = run(t, "standings", "--db", db, "--no-color", "--scope", "admin")
	require.NoError(t, err)
	pos := order(t, out, "Samudra", "Aquarius")
	assert.Less(t, pos[0], pos[1])
}

func TestSeed_RequiresSnapshot(t *testing.T) {
	_, err := run(t, "seed", "--db", filepath.Join(t.TempDir(), "festival.db"))
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	path := writeSnapshot(t)
	dir := t.TempDir()
	db := filepath.Join(dir, "festival.db")

	_, err := run(t, "seed", "--snapshot", path, "--db", db)
	require.NoError(t, err)

	out, err := run(t, "export", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "code: SMD")
	assert.Contains(t, out, "chest_number: AQS001")

	target := filepath.Join(dir, "out", "festival.yaml")
	out, err = run(t, "export", "--db", db, "--out", target)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+target)
	assert.FileExists(t, target)
}
