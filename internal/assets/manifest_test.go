package assets

import (
	"reflect"
	"testing"
)

func TestRequiredFiles(t *testing.T) {
	files := RequiredFiles()

	if len(files) != 6 {
		t.Fatalf("len(RequiredFiles()) = %d; want 6", len(files))
	}

	want := []string{
		"onnx/duration_predictor.onnx",
		"onnx/text_encoder.onnx",
		"onnx/vector_estimator.onnx",
		"onnx/vocoder.onnx",
		"onnx/tts.json",
		"onnx/unicode_indexer.json",
	}

	if !reflect.DeepEqual(files, want) {
		t.Errorf("RequiredFiles() = %v; want %v", files, want)
	}
}

func TestDefaultStyles(t *testing.T) {
	styles := DefaultStyles()

	if len(styles) != 10 {
		t.Fatalf("len(DefaultStyles()) = %d; want 10", len(styles))
	}

	if styles[0] != "M1" || styles[9] != "F5" {
		t.Errorf("unexpected style ordering: %v", styles)
	}

	// Mutating the returned slice must not affect later calls.
	styles[0] = "mutated"
	if DefaultStyles()[0] != "M1" {
		t.Error("DefaultStyles() returned a shared backing slice")
	}
}

func TestParseStyles(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"two styles", "M1,F3", []string{"M1", "F3"}},
		{"whitespace trimmed", " M1 , F3 ", []string{"M1", "F3"}},
		{"single style", "M2", []string{"M2"}},
		{"empty entries dropped", "M1,,F3,", []string{"M1", "F3"}},
		{"empty selects defaults", "", DefaultStyles()},
		{"only separators selects defaults", ", ,", DefaultStyles()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStyles(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseStyles(%q) = %v; want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStyleFile(t *testing.T) {
	if got := StyleFile("M1"); got != "voice_styles/M1.json" {
		t.Errorf("StyleFile(M1) = %q; want voice_styles/M1.json", got)
	}
}

func TestAllFiles(t *testing.T) {
	all := AllFiles(nil)
	if len(all) != 16 {
		t.Fatalf("len(AllFiles(nil)) = %d; want 16", len(all))
	}

	subset := AllFiles([]string{"F2"})
	if len(subset) != 7 {
		t.Fatalf("len(AllFiles([F2])) = %d; want 7", len(subset))
	}

	if subset[6] != "voice_styles/F2.json" {
		t.Errorf("last entry = %q; want voice_styles/F2.json", subset[6])
	}
}
