package assets

import (
	"testing"
)

func TestVerifyDirCompleteTree(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, fullFileSet(nil))

	missing, err := VerifyDir(dir, nil)
	if err != nil {
		t.Fatalf("VerifyDir error: %v", err)
	}

	if len(missing) != 0 {
		t.Errorf("missing = %v; want none", missing)
	}
}

func TestVerifyDirReportsMissing(t *testing.T) {
	dir := t.TempDir()

	files := fullFileSet([]string{"M1"})
	delete(files, "onnx/vocoder.onnx")
	writeTree(t, dir, files)

	missing, err := VerifyDir(dir, []string{"M1"})
	if err != nil {
		t.Fatalf("VerifyDir error: %v", err)
	}

	if len(missing) != 1 || missing[0] != "onnx/vocoder.onnx" {
		t.Errorf("missing = %v; want [onnx/vocoder.onnx]", missing)
	}
}

func TestVerifyDirStyleSubset(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, fullFileSet([]string{"M1", "F3"}))

	missing, err := VerifyDir(dir, []string{"M1", "F3"})
	if err != nil {
		t.Fatalf("VerifyDir error: %v", err)
	}

	if len(missing) != 0 {
		t.Errorf("missing = %v; want none", missing)
	}

	missing, err = VerifyDir(dir, []string{"M1", "F4"})
	if err != nil {
		t.Fatalf("VerifyDir error: %v", err)
	}

	if len(missing) != 1 || missing[0] != "voice_styles/F4.json" {
		t.Errorf("missing = %v; want [voice_styles/F4.json]", missing)
	}
}
