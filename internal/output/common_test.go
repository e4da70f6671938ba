package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLimitTop(t *testing.T) {
	items := []int{1, 2, 3}

	tests := []struct {
		name string
		top  int
		want []int
	}{
		{name: "NoLimitWhenZero", top: 0, want: []int{1, 2, 3}},
		{name: "NoLimitWhenNegative", top: -1, want: []int{1, 2, 3}},
		{name: "Limited", top: 2, want: []int{1, 2}},
		{name: "NoLimitWhenTopExceedsLength", top: 5, want: []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := limitTop(items, tt.top)
			if len(got) != len(tt.want) {
				t.Fatalf("len(limitTop(..., %d)) = %d, want %d", tt.top, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("limitTop(..., %d)[%d] = %d, want %d", tt.top, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWindowLabel(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	tests := []struct {
		name   string
		window time.Duration
		loc    *time.Location
		want   string
	}{
		{name: "Week", window: 7 * 24 * time.Hour, loc: time.UTC, want: "last 7 days (UTC)"},
		{name: "OneDay", window: 24 * time.Hour, loc: tokyo, want: "last 1 day (JST)"},
		{name: "Disabled", window: 0, loc: nil, want: "all history (UTC)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := windowLabel(tt.window, tt.loc); got != tt.want {
				t.Errorf("windowLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessageLinesAndSubject(t *testing.T) {
	msg := "first line\n    second line\n    third"

	lines := messageLines(msg)
	want := []string{"first line", "second line", "third"}
	if len(lines) != len(want) {
		t.Fatalf("messageLines() = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	if got := subject(msg); got != "first line" {
		t.Errorf("subject() = %q", got)
	}
	if got := messageLines(""); got != nil {
		t.Errorf("messageLines(\"\") = %q, want nil", got)
	}
}

func TestErrorStrings(t *testing.T) {
	if errorStrings(nil) != nil {
		t.Error("errorStrings(nil) should be nil")
	}
	got := errorStrings([]error{errors.New("a"), errors.New("b")})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("errorStrings() = %q", got)
	}
}

func TestOpenOutputWriter(t *testing.T) {
	t.Run("ExplicitWriter", func(t *testing.T) {
		var buf bytes.Buffer
		out, file, err := openOutputWriter(OutputOptions{Writer: &buf, OutputPath: "ignored"})
		if err != nil || file != nil || out != &buf {
			t.Fatalf("openOutputWriter() = %v, %v, %v", out, file, err)
		}
	})

	t.Run("Stdout", func(t *testing.T) {
		out, file, err := openOutputWriter(OutputOptions{})
		if err != nil || file != nil || out != os.Stdout {
			t.Fatalf("openOutputWriter() = %v, %v, %v", out, file, err)
		}
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.txt")
		out, file, err := openOutputWriter(OutputOptions{OutputPath: path})
		if err != nil {
			t.Fatalf("openOutputWriter: %v", err)
		}
		if file == nil || out != file {
			t.Fatal("expected the created file to be returned")
		}
		file.Close()
		if _, err := os.Stat(path); err != nil {
			t.Errorf("file not created: %v", err)
		}
	})
}
