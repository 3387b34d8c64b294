package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
)

// fakeStep описывает ожидаемый запрос и ответ на него.
// contains — фрагмент SQL, по которому проверяется порядок запросов.
type fakeStep struct {
	contains string
	columns  []string
	rows     [][]driver.Value
	affected int64
	err      error
}

// fakeScript — сценарий запросов одного теста.
type fakeScript struct {
	mu    sync.Mutex
	steps []fakeStep
	pos   int
	args  [][]driver.NamedValue
	tx    []string
}

var (
	fakeScriptsMu sync.Mutex
	fakeScripts   = map[string]*fakeScript{}
)

func init() {
	sql.Register("storageFake", fakeDriver{})
}

// openFake открывает DB, который отвечает на запросы строго по сценарию.
func openFake(t *testing.T, steps ...fakeStep) (*DB, *fakeScript) {
	t.Helper()
	s := &fakeScript{steps: steps}
	name := t.Name()
	fakeScriptsMu.Lock()
	fakeScripts[name] = s
	fakeScriptsMu.Unlock()

	conn, err := sql.Open("storageFake", name)
	if err != nil {
		t.Fatalf("не удалось открыть мок БД: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
		fakeScriptsMu.Lock()
		delete(fakeScripts, name)
		fakeScriptsMu.Unlock()
	})
	return NewDB(conn), s
}

func (s *fakeScript) next(query string, args []driver.NamedValue) (fakeStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos >= len(s.steps) {
		return fakeStep{}, fmt.Errorf("неожиданный запрос: %s", query)
	}
	st := s.steps[s.pos]
	s.pos++
	if !strings.Contains(query, st.contains) {
		return fakeStep{}, fmt.Errorf("ожидался запрос с %q, получен: %s", st.contains, query)
	}
	s.args = append(s.args, args)
	return st, nil
}

// done проверяет, что все шаги сценария выполнены.
func (s *fakeScript) done(t *testing.T) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos != len(s.steps) {
		t.Fatalf("выполнено %d из %d запросов", s.pos, len(s.steps))
	}
}

type fakeDriver struct{}

func (fakeDriver) Open(name string) (driver.Conn, error) {
	fakeScriptsMu.Lock()
	defer fakeScriptsMu.Unlock()
	s, ok := fakeScripts[name]
	if !ok {
		return nil, fmt.Errorf("сценарий %s не найден", name)
	}
	return &fakeConn{script: s}, nil
}

type fakeConn struct{ script *fakeScript }

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("not implemented")
}
func (c *fakeConn) Close() error { return nil }
func (c *fakeConn) Begin() (driver.Tx, error) {
	c.script.mu.Lock()
	c.script.tx = append(c.script.tx, "BEGIN")
	c.script.mu.Unlock()
	return &fakeTx{script: c.script}, nil
}

func (c *fakeConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	st, err := c.script.next(query, args)
	if err != nil {
		return nil, err
	}
	if st.err != nil {
		return nil, st.err
	}
	return &fakeRows{columns: st.columns, data: st.rows}, nil
}

func (c *fakeConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	st, err := c.script.next(query, args)
	if err != nil {
		return nil, err
	}
	if st.err != nil {
		return nil, st.err
	}
	return fakeResult{affected: st.affected}, nil
}

type fakeTx struct{ script *fakeScript }

func (tx *fakeTx) Commit() error   { return tx.record("COMMIT") }
func (tx *fakeTx) Rollback() error { return tx.record("ROLLBACK") }

func (tx *fakeTx) record(op string) error {
	tx.script.mu.Lock()
	defer tx.script.mu.Unlock()
	tx.script.tx = append(tx.script.tx, op)
	return nil
}

type fakeRows struct {
	columns []string
	data    [][]driver.Value
	idx     int
}

func (r *fakeRows) Columns() []string { return r.columns }
func (r *fakeRows) Close() error      { return nil }
func (r *fakeRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.idx])
	r.idx++
	return nil
}

type fakeResult struct{ affected int64 }

func (fakeResult) LastInsertId() (int64, error)   { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.affected, nil }
