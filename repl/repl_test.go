package repl

import (
	"bytes"
	"encoding/base64"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestdb"
	"nestdb/codec"
	"nestdb/config"
	"nestdb/storage"
)

var _ Database = (*nestdb.Engine)(nil)

func runScript(t *testing.T, script string, opts Options) string {
	t.Helper()

	if opts.Log == nil {
		opts.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	eng := nestdb.NewEngine(storage.NewMapStorage[string]())

	var out bytes.Buffer
	sess := NewSession(eng, strings.NewReader(script), &out, &out, opts)
	require.NoError(t, sess.Run())
	return out.String()
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestTransactionScenario(t *testing.T) {
	out := runScript(t, strings.Join([]string{
		"SET a 1",
		"GET a",
		"SET b 1",
		"COUNT 1",
		"BEGIN",
		"SET a 2",
		"COUNT 1",
		"COUNT 2",
		"ROLLBACK",
		"COUNT 1",
		"GET a",
		"END",
	}, "\n"), Options{})

	assert.Equal(t, []string{
		"Starting ...",
		"1",
		"2",
		"1",
		"1",
		"2",
		"1",
		"session complete, terminating ...",
	}, lines(out))
}

func TestRollbackWithoutTransaction(t *testing.T) {
	out := runScript(t, "SET a 1\nROLLBACK\nGET a\nEND\n", Options{})

	assert.Equal(t, []string{
		"Starting ...",
		"TRANSACTION NOT FOUND",
		"1",
		"session complete, terminating ...",
	}, lines(out))
}

func TestCommitThenRollbackReportsNotFound(t *testing.T) {
	out := runScript(t, strings.Join([]string{
		"BEGIN",
		"SET a 1",
		"BEGIN",
		"SET b 2",
		"COMMIT",
		"GET a",
		"GET b",
		"ROLLBACK",
		"END",
	}, "\n"), Options{})

	assert.Equal(t, []string{
		"Starting ...",
		"1",
		"2",
		"TRANSACTION NOT FOUND",
		"session complete, terminating ...",
	}, lines(out))
}

func TestMalformedInvocationsReportAndContinue(t *testing.T) {
	out := runScript(t, strings.Join([]string{
		"SET a",
		"GET",
		"DELETE a b",
		"COUNT",
		"BEGIN now",
		"ROLLBACK x",
		"COMMIT x",
		"GET a",
		"END",
	}, "\n"), Options{})

	assert.Equal(t, []string{
		"Starting ...",
		"improper command: SET accepts 2 parameters: [name] and [value]",
		"improper command: GET accepts 1 parameter: [name]",
		"improper command: DELETE accepts 1 parameter: [name]",
		"improper command: COUNT accepts 1 parameter: [value]",
		"improper command: BEGIN does not accept any parameters",
		"improper command: ROLLBACK does not accept any parameters",
		"improper command: COMMIT does not accept any parameters",
		"NULL",
		"session complete, terminating ...",
	}, lines(out))
}

func TestUnrecognizedFunction(t *testing.T) {
	out := runScript(t, "frob a\nEND\n", Options{})

	assert.Contains(t, out, "unrecognized function: frob\n")
}

func TestDumpIsUnrecognizedWithoutDebug(t *testing.T) {
	out := runScript(t, "DUMP\nEND\n", Options{})

	assert.Contains(t, out, "unrecognized function: DUMP\n")
}

func TestCommandNamesAreCaseInsensitive(t *testing.T) {
	out := runScript(t, "set a 1\nget a\ndelete a\nGet a\nend\n", Options{})

	assert.Equal(t, []string{
		"Starting ...",
		"1",
		"NULL",
		"session complete, terminating ...",
	}, lines(out))
}

func TestBlankLinesAreSkipped(t *testing.T) {
	out := runScript(t, "\n   \n\nEND\n", Options{})

	assert.Equal(t, []string{
		"Starting ...",
		"session complete, terminating ...",
	}, lines(out))
}

func TestEndStopsProcessing(t *testing.T) {
	out := runScript(t, "END\nSET a 1\nGET a\n", Options{})

	assert.Equal(t, []string{
		"Starting ...",
		"session complete, terminating ...",
	}, lines(out))
}

func TestSessionSurvivesEndOfInputWithoutEnd(t *testing.T) {
	out := runScript(t, "SET a 1\nGET a\n", Options{})

	assert.Equal(t, []string{
		"Starting ...",
		"1",
	}, lines(out))
}

func TestDumpJSON(t *testing.T) {
	out := runScript(t, strings.Join([]string{
		"SET a 1",
		"BEGIN",
		"SET a 2",
		"DUMP",
		"END",
	}, "\n"), Options{Debug: true, DumpFormat: config.DumpJSON})

	assert.Equal(t,
		`{"records":{"a":"2"},"index":{"1":[],"2":["a"]},"current_tx":1,`+
			`"levels":[{"id":1,"entries":[{"name":"a","old":"1","new":"2"}]}]}`,
		lines(out)[1])
}

func TestDumpBSONRoundTrips(t *testing.T) {
	out := runScript(t, strings.Join([]string{
		"SET a 1",
		"BEGIN",
		"DELETE a",
		"DUMP",
		"END",
	}, "\n"), Options{Debug: true, DumpFormat: config.DumpBSON})

	raw, err := base64.StdEncoding.DecodeString(lines(out)[1])
	require.NoError(t, err)

	c := codec.NewBSONCodec[nestdb.Snapshot]()
	snap, err := c.Decode(raw)
	require.NoError(t, err)

	assert.Empty(t, snap.Records)
	assert.Equal(t, uint64(1), snap.CurrentTx)
	require.Len(t, snap.Levels, 1)
	require.Len(t, snap.Levels[0].Entries, 1)
	assert.Equal(t, "a", snap.Levels[0].Entries[0].Name)
	assert.Equal(t, "1", *snap.Levels[0].Entries[0].Old)
	assert.Nil(t, snap.Levels[0].Entries[0].New)
}

func TestDebugSessionGolden(t *testing.T) {
	out := runScript(t, strings.Join([]string{
		"SET a 1",
		"SET b 1",
		"GET a",
		"COUNT 1",
		"BEGIN",
		"SET a 2",
		"DELETE b",
		"DUMP",
		"ROLLBACK",
		"COUNT 1",
		"COMMIT",
		"ROLLBACK",
		"END",
	}, "\n"), Options{Debug: true, DumpFormat: config.DumpText})

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "debug_session", []byte(out))
}
