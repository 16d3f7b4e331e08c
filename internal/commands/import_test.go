package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fintrack-dev/fintrack/internal/importer"
	"github.com/fintrack-dev/fintrack/internal/ledger"
	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/store"
)

// flakyStore accepts failAfter appends and then fails every later one.
type flakyStore struct {
	failAfter int
	appended  []model.Record
}

func (s *flakyStore) FetchAll(context.Context, string) ([]model.Record, error) {
	return s.appended, nil
}

func (s *flakyStore) Append(_ context.Context, _ string, rec model.Record) (string, error) {
	if len(s.appended) >= s.failAfter {
		return "", store.Wrap("append", errors.New("disk full"))
	}
	s.appended = append(s.appended, rec)
	return rec.Date, nil
}

func testApp(st ledger.Store) *app {
	logger := zap.NewNop()
	return &app{logger: logger, ledger: ledger.NewService(st, logger)}
}

func testCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

const statementHeader = "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"

func writeStatement(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stmt.csv")
	require.NoError(t, os.WriteFile(path, []byte(statementHeader+body), 0o644))
	return path
}

func TestImportStatement_StorageFailureReportsProgress(t *testing.T) {
	path := writeStatement(t,
		"DEBIT,01/03/2025,A,-1.00,DEBIT_CARD,0,\n"+
			"DEBIT,01/04/2025,B,-2.00,DEBIT_CARD,0,\n"+
			"DEBIT,01/05/2025,C,-3.00,DEBIT_CARD,0,\n")
	st := &flakyStore{failAfter: 2}

	res, err := importStatement(testCommand(), testApp(st), &importer.ChaseParser{}, "alice", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 rows stored before failure at row 4")

	var se *store.Error
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, importResult{total: 3, added: 2}, res)
	assert.Len(t, st.appended, 2)
	assert.Equal(t, "stmt.csv: partial, 2 of 3 rows added before a storage failure", res.summary("stmt.csv", true))
}

func TestImportStatement_SkipsInvalidRows(t *testing.T) {
	// Without an owner every row fails validation.
	path := writeStatement(t,
		"DEBIT,01/03/2025,A,-1.00,,0,\n"+
			"CREDIT,01/04/2025,B,2.00,ACH_CREDIT,0,\n")
	st := &flakyStore{failAfter: 10}

	res, err := importStatement(testCommand(), testApp(st), &importer.ChaseParser{}, "", path)
	require.NoError(t, err)
	assert.Equal(t, importResult{total: 2, skipped: 2}, res)
	assert.Empty(t, st.appended)
}
