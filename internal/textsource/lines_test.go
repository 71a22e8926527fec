package textsource

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestReadLines(t *testing.T) {
	var got []string
	err := ReadLines(context.Background(), strings.NewReader("  hello \n\nworld\n"), func(tr Transcript) {
		got = append(got, tr.Text)
	})
	if err != nil {
		t.Fatalf("ReadLines error: %v", err)
	}

	want := []string{"hello", "", "world"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadLinesCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ReadLines(ctx, pr, func(Transcript) {})
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("ReadLines error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ReadLines did not return after cancel")
	}
}

func TestDisplayText(t *testing.T) {
	tests := []struct {
		transcript, reply, want string
	}{
		{"안녕", "reply", "안녕"},
		{"", "reply", "reply"},
		{"", "", "말해보세요"},
	}
	for _, tt := range tests {
		if got := DisplayText(tt.transcript, tt.reply, "말해보세요"); got != tt.want {
			t.Errorf("DisplayText(%q, %q) = %q, want %q", tt.transcript, tt.reply, got, tt.want)
		}
	}
}
