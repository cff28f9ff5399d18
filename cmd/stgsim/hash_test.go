package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/maruel/subcommands"
)

// testApp captures the output of a subcommand run.
type testApp struct {
	*subcommands.DefaultApplication
	out, err bytes.Buffer
}

func (a *testApp) GetOut() io.Writer { return &a.out }
func (a *testApp) GetErr() io.Writer { return &a.err }

func newTestApp() *testApp {
	return &testApp{DefaultApplication: getApplication()}
}

func TestHashRun(t *testing.T) {
	for _, tc := range []struct {
		name   string
		run    hashRun
		values []string
		want   string
	}{
		{
			name:   "strings",
			values: []string{"a", "The quick brown fox jumps over the lazy dog"},
			want: "ca2e9442  a\n" +
				"519e91f5  The quick brown fox jumps over the lazy dog\n",
		},
		{
			name:   "direct",
			run:    hashRun{direct: true},
			values: []string{"5", "0x5", "-1"},
			want:   "e6a547a7  5\ne6a547a7  0x5\ne9c2d586  -1\n",
		},
		{
			name:   "crc32c",
			run:    hashRun{crc32c: true},
			values: []string{"123456789"},
			want:   "e3069283  123456789\n",
		},
		{
			name:   "combine",
			run:    hashRun{combine: true},
			values: []string{"The quick brown fox ", "jumps over the lazy dog"},
			want:   "519e91f5\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := tc.run.run(&out, tc.values); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, out.String()); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHashRun_BadInteger(t *testing.T) {
	c := hashRun{direct: true}
	if err := c.run(&bytes.Buffer{}, []string{"nope"}); err == nil {
		t.Fatal("run accepted a non-integer")
	}
}

func TestReadLines(t *testing.T) {
	got, err := readLines(strings.NewReader("x\ny\n\nz"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"x", "y", "", "z"}, got); diff != "" {
		t.Errorf("readLines mismatch (-want +got):\n%s", diff)
	}
}

func TestHashCommand(t *testing.T) {
	app := newTestApp()
	if code := subcommands.Run(app, []string{"hash", "-direct", "5"}); code != 0 {
		t.Fatalf("hash -direct 5 exited %d: %s", code, app.err.String())
	}
	if diff := cmp.Diff("e6a547a7  5\n", app.out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestHashCommand_ExclusiveModes(t *testing.T) {
	app := newTestApp()
	if code := subcommands.Run(app, []string{"hash", "-direct", "-crc32c", "5"}); code != 2 {
		t.Errorf("hash -direct -crc32c exited %d, want 2", code)
	}
	if app.out.Len() != 0 {
		t.Errorf("unexpected output %q", app.out.String())
	}
	if !strings.Contains(app.err.String(), "mutually exclusive") {
		t.Errorf("stderr = %q, want a usage error", app.err.String())
	}
}
