package testutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	pserrors "github.com/randalmurphal/promptstream/errors"
	"github.com/randalmurphal/promptstream/notify"
	"github.com/randalmurphal/promptstream/random"
)

func TestExpander_Finite(t *testing.T) {
	e := NewExpander(2)
	seq, err := e.Expand("T", random.New(1))
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	for _, want := range []string{"T#1", "T#2"} {
		got, err := seq.Next()
		if err != nil || got != want {
			t.Errorf("Next() = %q, %v; want %q", got, err, want)
		}
	}
	if _, err := seq.Next(); !pserrors.IsExhausted(err) {
		t.Errorf("Next() past end error = %v, want exhausted", err)
	}
	if e.Calls("T") != 1 || e.TotalCalls() != 1 {
		t.Errorf("Calls = %d/%d, want 1/1", e.Calls("T"), e.TotalCalls())
	}
}

func TestExpander_Random(t *testing.T) {
	e := NewRandomExpander("b", "c")
	seq, _ := e.Expand("a", random.New(5))
	for i := 0; i < 10; i++ {
		got, err := seq.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if got != "a:b" && got != "a:c" {
			t.Errorf("Next() = %q, want a:b or a:c", got)
		}
	}
}

func TestExpander_FailAndPanic(t *testing.T) {
	e := NewExpander(0)
	boom := errors.New("boom")

	e.FailWith(boom)
	if _, err := e.Expand("T", random.New(1)); !errors.Is(err, boom) {
		t.Errorf("Expand() error = %v, want boom", err)
	}
	e.FailWith(nil)

	e.PanicWith("kaboom")
	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		_, _ = e.Expand("T", random.New(1))
	}()
	e.PanicWith(nil)

	if _, err := e.Expand("T", random.New(1)); err != nil {
		t.Errorf("Expand() after heal error = %v", err)
	}
	if e.Calls("T") != 3 {
		t.Errorf("Calls = %d, want 3", e.Calls("T"))
	}
}

func TestRecordingNotifier(t *testing.T) {
	r := &RecordingNotifier{}
	ctx := context.Background()
	_ = r.Notify(ctx, notify.Event{Type: notify.EventSequenceBound})
	_ = r.Notify(ctx, notify.Event{Type: notify.EventRecoveryFailed})
	_ = r.Notify(ctx, notify.Event{Type: notify.EventRecoveryFailed})

	if len(r.Events()) != 3 {
		t.Errorf("len(Events) = %d, want 3", len(r.Events()))
	}
	if r.Count(notify.EventRecoveryFailed) != 2 {
		t.Errorf("Count = %d, want 2", r.Count(notify.EventRecoveryFailed))
	}
	if types := r.Types(); types[0] != notify.EventSequenceBound {
		t.Errorf("Types()[0] = %s", types[0])
	}

	r.Reset()
	if len(r.Events()) != 0 {
		t.Error("Reset should clear events")
	}
}

func TestSetupWildcardDir(t *testing.T) {
	files := map[string]string{
		"colors.txt":         "red\nblue\n",
		"animals/birds.txt":  "owl\n",
		"styles/styles.yaml": "painting:\n  - oil\n",
	}

	dir := SetupWildcardDir(t, files)
	if filepath.Base(dir) != "wildcards" {
		t.Errorf("dir = %s, want a wildcards folder", dir)
	}

	for path := range files {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(path))); os.IsNotExist(err) {
			t.Errorf("file %s does not exist", path)
		}
	}
}

func TestTempFile(t *testing.T) {
	path := TempFile(t, "config.yaml", []byte("seed: 3\n"))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "seed: 3\n" {
		t.Errorf("content = %q", data)
	}
}

func TestTestContext(t *testing.T) {
	ctx := TestContext(t)
	if ctx.Err() != nil {
		t.Error("context should not be canceled during test")
	}

	ctx = TestContextWithTimeout(t, time.Minute)
	if _, ok := ctx.Deadline(); !ok {
		t.Error("expected deadline")
	}
}
