package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/a11yscan/a11yscan/internal/merge"
	"github.com/a11yscan/a11yscan/internal/model"
	"github.com/a11yscan/a11yscan/internal/report"
)

func TestMergeCmd(t *testing.T) {
	dir := t.TempDir()
	writer := report.NewWriter(dir)
	records := []model.ViolationRecord{
		{Page: "about", ID: "color-contrast", Target: "p", FailureSummary: "s1"},
		{Page: "about", ID: "color-contrast", Target: "p", FailureSummary: "s1"},
	}
	if _, err := writer.WriteRecords("about", records); err != nil {
		t.Fatal(err)
	}

	cmd := NewMergeCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--dir", dir, "--summary"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("merge command failed: %v", err)
	}

	for _, name := range []string{merge.MasterListFile, merge.WorkListFile, "summary.md"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("output %s not written: %v", name, err)
		}
	}

	work, err := report.ReadRecords(filepath.Join(dir, merge.WorkListFile))
	if err != nil {
		t.Fatalf("reading work list: %v", err)
	}
	if len(work) != 1 {
		t.Errorf("work list holds %d records, want 1", len(work))
	}
}

func TestMergeCmdEmptyDirectory(t *testing.T) {
	cmd := NewMergeCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--dir", t.TempDir()})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for directory without result files")
	}
}
