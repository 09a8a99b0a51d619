package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

type result struct {
	stdout string
	stderr string
	code   int
}

func runCLI(t *testing.T, dsn string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--driver", "sqlite", "--dsn", dsn, "--currency", "USD", "--log-level", "error"}, args...)
	code := Execute(full, &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func mustRun(t *testing.T, dsn string, args ...string) string {
	t.Helper()
	res := runCLI(t, dsn, args...)
	assert.Equal(t, 0, res.code, "args %v failed: %s", args, res.stderr)
	return res.stdout
}

func newDB(t *testing.T) string {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "cli.db")
	mustRun(t, dsn, "group", "create", "Trip", "-m", "alice=Alice", "-m", "bob=Bob", "-m", "carol")
	return dsn
}

func TestGroupCommands(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "cli.db")

	out := mustRun(t, dsn, "group", "list")
	assert.Contains(t, out, "No groups yet")

	out = mustRun(t, dsn, "group", "create", "Trip", "-m", "alice=Alice", "-m", "bob=Bob")
	assert.Contains(t, out, "Created group Trip")
	assert.Contains(t, out, "with 2 members")

	out = mustRun(t, dsn, "group", "list")
	assert.Contains(t, out, "Trip")

	out = mustRun(t, dsn, "member", "add", "trip", "-m", "carol=Carol", "-m", "alice=Alice")
	assert.Contains(t, out, "Added 1 member(s)")

	out = mustRun(t, dsn, "group", "show", "Trip")
	assert.Contains(t, out, "Carol")
	assert.Contains(t, out, "Alice")

	res := runCLI(t, dsn, "member", "add", "Trip", "-m", "alice=Alicia")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "different name")
}

func TestExpenseAndSettle(t *testing.T) {
	dsn := newDB(t)

	out := mustRun(t, dsn, "expense", "add", "Trip", "--payer", "alice", "--amount", "90", "--title", "Dinner")
	assert.Contains(t, out, "Recorded Dinner")
	assert.Contains(t, out, "90.00 USD")
	assert.Contains(t, out, "30.00 USD")

	out = mustRun(t, dsn, "balances", "Trip")
	assert.Contains(t, out, "+60.00 USD")
	assert.Contains(t, out, "-30.00 USD")

	out = mustRun(t, dsn, "settle", "Trip")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, 2, len(lines))
	assert.Contains(t, lines[0], "Bob pays Alice")
	assert.Contains(t, lines[1], "carol pays Alice")

	out = mustRun(t, dsn, "payment", "add", "Trip", "--from", "bob", "--to", "alice", "--amount", "30.00")
	assert.Contains(t, out, "Recorded payment")

	out = mustRun(t, dsn, "settle", "Trip")
	assert.NotContains(t, out, "Bob pays")
	assert.Contains(t, out, "carol pays Alice")

	mustRun(t, dsn, "payment", "add", "Trip", "--from", "carol", "--to", "alice", "--amount", "30")
	out = mustRun(t, dsn, "settle", "Trip")
	assert.Contains(t, out, "All settled up")

	out = mustRun(t, dsn, "expense", "list", "Trip")
	assert.Contains(t, out, "Dinner")
	assert.Contains(t, out, "payment")
	assert.Contains(t, out, "Payment to Alice")
}

func TestExpenseAllocations(t *testing.T) {
	dsn := newDB(t)

	out := mustRun(t, dsn, "expense", "add", "Trip", "--payer", "bob", "--amount", "10", "--weight", "alice=2;bob=1")
	assert.Contains(t, out, "6.67 USD")
	assert.Contains(t, out, "3.33 USD")

	out = mustRun(t, dsn, "expense", "add", "Trip", "--payer", "bob", "--amount", "10", "--share", "alice=7.50;carol=2.50")
	assert.Contains(t, out, "7.50 USD")
	assert.Contains(t, out, "2.50 USD")

	out = mustRun(t, dsn, "expense", "add", "Trip", "--payer", "alice", "--amount", "0.01", "-m", "carol", "-m", "bob")
	assert.Contains(t, out, "Split with Bob, carol")
}

func TestExpenseShow(t *testing.T) {
	dsn := newDB(t)
	mustRun(t, dsn, "expense", "add", "Trip", "--payer", "alice", "--amount", "1.00", "--title", "Coffee", "--description", "Morning")

	out := mustRun(t, dsn, "expense", "list", "Trip")
	var id string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 1 && fields[0] == "1" {
			id = fields[1]
		}
	}
	assert.NotEqual(t, "", id)

	out = mustRun(t, dsn, "expense", "show", "Trip", id)
	assert.Contains(t, out, "Coffee")
	assert.Contains(t, out, "Morning")
	assert.Contains(t, out, "0.34 USD")

	res := runCLI(t, dsn, "expense", "show", "Trip", "nope")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "expense not found")
}

func TestErrors(t *testing.T) {
	dsn := newDB(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"ZeroAmount", []string{"expense", "add", "Trip", "--payer", "alice", "--amount", "0"}, "amount must be positive"},
		{"NegativeAmount", []string{"expense", "add", "Trip", "--payer", "alice", "--amount=-5"}, "amount must be positive"},
		{"TooPrecise", []string{"expense", "add", "Trip", "--payer", "alice", "--amount", "1.234"}, "decimal places"},
		{"NotANumber", []string{"expense", "add", "Trip", "--payer", "alice", "--amount", "ten"}, "invalid amount"},
		{"UnknownMember", []string{"expense", "add", "Trip", "--payer", "alice", "--amount", "5", "-m", "zed"}, "not part of the group"},
		{"UnknownPayer", []string{"payment", "add", "Trip", "--from", "zed", "--to", "alice", "--amount", "5"}, "not part of the group"},
		{"SelfPayment", []string{"payment", "add", "Trip", "--from", "alice", "--to", "alice", "--amount", "5"}, "must be different"},
		{"ShareMismatch", []string{"expense", "add", "Trip", "--payer", "alice", "--amount", "5", "--share", "alice=1"}, "sum to the total"},
		{"UnknownGroup", []string{"balances", "Nowhere"}, "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, dsn, tt.args...)
			assert.Equal(t, 1, res.code)
			assert.Contains(t, res.stderr, tt.want)
		})
	}

	out := mustRun(t, dsn, "expense", "list", "Trip")
	assert.Contains(t, out, "No expenses yet")
}

func TestMemberViews(t *testing.T) {
	dsn := newDB(t)
	mustRun(t, dsn, "group", "create", "Home", "-m", "alice=Alice", "-m", "dave=Dave")
	mustRun(t, dsn, "expense", "add", "Trip", "--payer", "alice", "--amount", "90", "--title", "Hotel")
	mustRun(t, dsn, "expense", "add", "Home", "--payer", "dave", "--amount", "20", "--title", "Groceries")

	out := mustRun(t, dsn, "group", "list", "--member", "dave")
	assert.Contains(t, out, "Home")
	assert.NotContains(t, out, "Trip")

	out = mustRun(t, dsn, "balances", "--member", "alice")
	assert.Contains(t, out, "60.00 USD")
	assert.Contains(t, out, "-10.00 USD")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "+50.00 USD")

	out = mustRun(t, dsn, "balances", "Home", "--member", "alice")
	assert.Contains(t, out, "-10.00 USD")
	assert.NotContains(t, out, "Trip")
	assert.NotContains(t, out, "Total")

	out = mustRun(t, dsn, "activity", "alice")
	assert.Contains(t, out, "Hotel")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Dave")
	assert.Equal(t, 3, len(strings.Split(strings.TrimSpace(out), "\n")))

	out = mustRun(t, dsn, "activity", "alice", "--limit", "1")
	assert.Equal(t, 2, len(strings.Split(strings.TrimSpace(out), "\n")))

	res := runCLI(t, dsn, "activity", "zed")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "not part of the group")

	res = runCLI(t, dsn, "balances")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "a group or --member is required")
}

func TestUsageErrors(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "cli.db")

	res := runCLI(t, dsn, "bogus")
	assert.Equal(t, 2, res.code)

	res = runCLI(t, dsn, "--currency", "XYZ", "group", "list")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "unknown currency code")
}

func TestVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Execute([]string{"--version"}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "dev")
}

func TestMetricsFile(t *testing.T) {
	dsn := newDB(t)
	path := filepath.Join(t.TempDir(), "mrsplit.prom")

	mustRun(t, dsn, "--metrics-file", path, "expense", "add", "Trip", "--payer", "alice", "--amount", "3")

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `mrsplit_expenses_recorded_total{kind="expense"} 1`)
}

func TestParseMembers(t *testing.T) {
	members, err := parseMembers([]string{"alice=Alice Smith", "bob", " carol = "})
	assert.NoError(t, err)
	assert.Equal(t, 3, len(members))
	assert.Equal(t, "Alice Smith", members[0].Name)
	assert.Equal(t, "bob", members[1].Name)
	assert.Equal(t, "carol", members[2].Name)

	_, err = parseMembers([]string{"=Nobody"})
	assert.Error(t, err)
}

func TestTableAlignsWideCharacters(t *testing.T) {
	var buf bytes.Buffer
	app := &App{Out: &buf, styles: newStyles(&buf)}

	tbl := newTable("NAME", "AMOUNT").alignRight(1)
	tbl.row("世界", "1.00")
	tbl.row("ab", "10.00")
	tbl.render(app)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, 3, len(lines))
	assert.Equal(t, "世界    1.00", lines[1])
	assert.Equal(t, "ab     10.00", lines[2])
}
