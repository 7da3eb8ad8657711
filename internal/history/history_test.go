package history

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "presses.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seed(t *testing.T, s *Store) time.Time {
	t.Helper()
	base := time.Date(2026, 10, 16, 12, 0, 0, 0, time.Local)
	entries := []Entry{
		{Button: "ok", Gesture: "click", Mouse: 1, Count: 1, Time: base},
		{Button: "repeat", Gesture: "mousehold", Mouse: 1, Count: 1, Time: base.Add(time.Second)},
		{Button: "repeat", Gesture: "mousehold", Mouse: 1, Count: 1, Repeat: true, Time: base.Add(2 * time.Second)},
		{Button: "ok", Gesture: "keypress", Count: 1, Time: base.Add(3 * time.Second)},
	}
	for _, e := range entries {
		if err := s.Record(context.Background(), e); err != nil {
			t.Fatalf("Record(%+v): %v", e, err)
		}
	}
	return base
}

func TestCounts(t *testing.T) {
	s := openStore(t)
	base := seed(t, s)

	counts, err := s.Counts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []Count{
		{Button: "ok", Presses: 2, Repeats: 0, Last: base.Add(3 * time.Second)},
		{Button: "repeat", Presses: 2, Repeats: 1, Last: base.Add(2 * time.Second)},
	}
	if len(counts) != len(want) {
		t.Fatalf("counts = %+v", counts)
	}
	for i := range want {
		got := counts[i]
		if got.Button != want[i].Button || got.Presses != want[i].Presses ||
			got.Repeats != want[i].Repeats || !got.Last.Equal(want[i].Last) {
			t.Errorf("counts[%d] = %+v, want %+v", i, got, want[i])
		}
	}
}

func TestRecent(t *testing.T) {
	s := openStore(t)
	seed(t, s)

	recent, err := s.Recent(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2", len(recent))
	}
	if recent[0].Button != "ok" || recent[0].Gesture != "keypress" || recent[0].Mouse != 0 {
		t.Errorf("newest = %+v", recent[0])
	}
	if !recent[1].Repeat || recent[1].Gesture != "mousehold" {
		t.Errorf("second = %+v", recent[1])
	}

	all, err := s.Recent(context.Background(), 0)
	if err != nil || len(all) != 4 {
		t.Errorf("Recent(0) = %d entries, %v", len(all), err)
	}
}

func TestRecordDefaultsTime(t *testing.T) {
	s := openStore(t)
	before := time.Now()
	if err := s.Record(context.Background(), Entry{Button: "x", Gesture: "none", Count: 1}); err != nil {
		t.Fatal(err)
	}
	recent, _ := s.Recent(context.Background(), 1)
	if len(recent) != 1 || recent[0].Time.Before(before) {
		t.Errorf("recent = %+v", recent)
	}
}

func TestClearAndClose(t *testing.T) {
	s := openStore(t)
	seed(t, s)

	if err := s.Clear(context.Background()); err != nil {
		t.Fatal(err)
	}
	counts, _ := s.Counts(context.Background())
	if len(counts) != 0 {
		t.Errorf("counts after Clear = %+v", counts)
	}

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
	if err := s.Record(context.Background(), Entry{Button: "x"}); !errors.Is(err, ErrClosed) {
		t.Errorf("Record after Close = %v, want ErrClosed", err)
	}
	if _, err := s.Counts(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Counts after Close = %v, want ErrClosed", err)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presses.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	seed(t, s)
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if s.Path() != path {
		t.Errorf("Path() = %q", s.Path())
	}
	recent, _ := s.Recent(context.Background(), 0)
	if len(recent) != 4 {
		t.Errorf("entries after reopen = %d, want 4", len(recent))
	}
}

func TestReport(t *testing.T) {
	s := openStore(t)
	base := seed(t, s)
	counts, _ := s.Counts(context.Background())
	entries, _ := s.Recent(context.Background(), 0)

	var buf bytes.Buffer
	r := NewReport(&buf)
	if err := r.Counts(counts); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"BUTTON", "PRESSES", "ok", "repeat", "4 presses", base.Add(3 * time.Second).Format(timeLayout)} {
		if !strings.Contains(out, want) {
			t.Errorf("counts report missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := r.Entries(Since(entries, base.Add(2*time.Second))); err != nil {
		t.Fatal(err)
	}
	out = buf.String()
	if strings.Count(out, "\n") != 3 {
		t.Errorf("entries report has %d lines, want header plus 2:\n%s", strings.Count(out, "\n"), out)
	}
	if !strings.Contains(out, "repeat") || !strings.Contains(out, "keypress") {
		t.Errorf("entries report:\n%s", out)
	}

	buf.Reset()
	if err := r.Counts(nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "no presses recorded") {
		t.Errorf("empty report = %q", buf.String())
	}
}
