package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/mrsplit/internal/models"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.ExpenseRecorded(models.KindExpense, 100)
	m.ExpenseRecorded(models.KindExpense, 50)
	m.ExpenseRecorded(models.KindPayment, 30)
	m.Rejected("unknown_member")
	m.Settled(2)

	if got := testutil.ToFloat64(m.expenses.WithLabelValues("expense")); got != 2 {
		t.Errorf("expenses{kind=expense} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.amount.WithLabelValues("expense")); got != 150 {
		t.Errorf("amount{kind=expense} = %v, want 150", got)
	}
	if got := testutil.ToFloat64(m.rejected.WithLabelValues("unknown_member")); got != 1 {
		t.Errorf("rejected{reason=unknown_member} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.transfers); got != 1 {
		t.Errorf("transfers histogram count = %d, want 1", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ExpenseRecorded(models.KindExpense, 10)

	path := filepath.Join(t.TempDir(), "mrsplit.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), `mrsplit_expenses_recorded_total{kind="expense"} 1`) {
		t.Errorf("unexpected textfile contents:\n%s", data)
	}
}
