package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	derrors "github.com/matzehuels/designpanel/pkg/errors"
)

var exampleScripts = []string{
	"../../examples/scripts/drag-right-edge.toml",
	"../../examples/scripts/select-and-nudge.yaml",
	"../../examples/scripts/click-away.toml",
}

func TestReplayExamples(t *testing.T) {
	var out bytes.Buffer
	if err := replay(context.Background(), &out, log.New(io.Discard), exampleScripts, false); err != nil {
		t.Fatalf("replay() error = %v\n%s", err, out.String())
	}

	for _, want := range []string{"drag past the right edge", "{top: 0px, left: 399px}", "expectations hold"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestReplayJSON(t *testing.T) {
	var out bytes.Buffer
	if err := replay(context.Background(), &out, log.New(io.Discard), exampleScripts[:2], true); err != nil {
		t.Fatalf("replay() error = %v", err)
	}

	var reports []replayReport
	if err := json.Unmarshal(out.Bytes(), &reports); err != nil {
		t.Fatalf("decode: %v\n%s", err, out.String())
	}
	if len(reports) != 2 {
		t.Fatalf("reports = %d, want 2", len(reports))
	}
	if !reports[0].OK || reports[0].Tree.Child.Left != "399px" {
		t.Errorf("first report = %+v", reports[0])
	}
	if !reports[1].Tree.Child.Editing {
		t.Errorf("second report not editing: %+v", reports[1])
	}
}

func TestReplayFailedExpectation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrong.toml")
	body := "[[steps]]\naction = \"drag\"\ndx = 10\n\n[expect]\nleft = \"11px\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err := replay(context.Background(), &out, log.New(io.Discard), []string{path}, false)
	if !derrors.Is(err, derrors.ErrCodeExpectation) {
		t.Fatalf("replay() error = %v, want EXPECTATION_FAILED", err)
	}
	if !strings.Contains(out.String(), "left = 10px, want 11px") {
		t.Errorf("output missing failure:\n%s", out.String())
	}
}

func TestReplayMissingScript(t *testing.T) {
	err := replay(context.Background(), io.Discard, log.New(io.Discard), []string{"nope.toml"}, false)
	if !derrors.Is(err, derrors.ErrCodeFileNotFound) {
		t.Errorf("replay() error = %v, want FILE_NOT_FOUND", err)
	}
}
