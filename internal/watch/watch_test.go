package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pengelbrecht/investors/internal/investor"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const oneInvestor = `
- id: "1"
  name: Marie Bernard
  expertise: Fintech
  investments: 12
  portfolio: 2.5M€
`

const twoInvestors = oneInvestor + `
- id: "2"
  name: Thomas Dubois
  expertise: E-commerce
  investments: 8
  portfolio: 500K€
`

func writeData(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// start runs w in the background and returns the result channel plus a stop
// function that cancels and waits for Run to return.
func start(t *testing.T, w *Watcher) (<-chan Result, func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	results := make(chan Result, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(r Result) { results <- r })
	}()
	return results, func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop")
		}
	}
}

func next(t *testing.T, results <-chan Result) Result {
	t.Helper()
	select {
	case r := <-results:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
		return Result{}
	}
}

func TestRun_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "investors.yaml")
	writeData(t, path, oneInvestor)

	w, err := New(path, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	results, stop := start(t, w)
	defer stop()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)
	writeData(t, path, twoInvestors)

	r := next(t, results)
	require.NoError(t, r.Err)
	require.Len(t, r.Investors, 2)
	assert.Equal(t, "Thomas Dubois", r.Investors[1].Name)
}

func TestRun_ReportsLoadErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "investors.yaml")
	writeData(t, path, oneInvestor)

	w, err := New(path, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	results, stop := start(t, w)
	defer stop()

	time.Sleep(100 * time.Millisecond)
	writeData(t, path, "- id: 1\n  name: \"\"\n")

	r := next(t, results)
	assert.ErrorIs(t, r.Err, investor.ErrInvalidRecord)
	assert.Nil(t, r.Investors)
}

func TestRun_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "investors.yaml")
	writeData(t, path, oneInvestor)

	var calls int
	w, err := New(path,
		WithDebounce(20*time.Millisecond),
		WithLoader(func(string) ([]*investor.Investor, error) {
			calls++
			return nil, errors.New("unexpected")
		}),
	)
	require.NoError(t, err)
	results, stop := start(t, w)

	time.Sleep(100 * time.Millisecond)
	writeData(t, filepath.Join(dir, "notes.txt"), "hello")

	select {
	case r := <-results:
		t.Fatalf("unexpected reload: %v", r.Err)
	case <-time.After(300 * time.Millisecond):
	}
	stop()
	assert.Zero(t, calls)
}

func TestRun_DebouncesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "investors.yaml")
	writeData(t, path, oneInvestor)

	w, err := New(path, WithDebounce(200*time.Millisecond))
	require.NoError(t, err)
	results, stop := start(t, w)
	defer stop()

	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 5; i++ {
		writeData(t, path, twoInvestors)
		time.Sleep(10 * time.Millisecond)
	}

	r := next(t, results)
	require.NoError(t, r.Err)
	assert.Len(t, r.Investors, 2)

	select {
	case <-results:
		t.Fatal("burst produced more than one reload")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestRun_MissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing", "investors.yaml"))
	require.NoError(t, err)
	err = w.Run(context.Background(), func(Result) {})
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)

	w, err := New("data/investors.yaml")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(w.Path()))
	assert.Equal(t, DefaultDebounce, w.debounce)
}
