package assets

import "strings"

// Directory names inside a complete asset tree.
const (
	ONNXDir        = "onnx"
	VoiceStylesDir = "voice_styles"
)

// requiredONNX lists the model graphs every installation needs.
var requiredONNX = []string{
	"duration_predictor.onnx",
	"text_encoder.onnx",
	"vector_estimator.onnx",
	"vocoder.onnx",
}

// requiredJSON lists the runtime configuration files shipped next to the graphs.
var requiredJSON = []string{
	"tts.json",
	"unicode_indexer.json",
}

var defaultStyles = []string{
	"M1", "M2", "M3", "M4", "M5",
	"F1", "F2", "F3", "F4", "F5",
}

// RequiredFiles returns the relative paths of the mandatory model and config
// files, in download order. All of them live under the onnx/ directory.
func RequiredFiles() []string {
	out := make([]string, 0, len(requiredONNX)+len(requiredJSON))
	for _, name := range requiredONNX {
		out = append(out, ONNXDir+"/"+name)
	}

	for _, name := range requiredJSON {
		out = append(out, ONNXDir+"/"+name)
	}

	return out
}

// DefaultStyles returns every voice style shipped with the model.
func DefaultStyles() []string {
	return append([]string(nil), defaultStyles...)
}

// ParseStyles splits a comma-separated style list, trimming whitespace and
// dropping empty entries. An empty selection means every default style.
func ParseStyles(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}

	if len(out) == 0 {
		return DefaultStyles()
	}

	return out
}

// StyleFile returns the relative path of one voice style file.
func StyleFile(style string) string {
	return VoiceStylesDir + "/" + style + ".json"
}

// AllFiles returns every file in a full asset set: the required files plus
// one style file per entry in styles (all default styles when styles is nil).
func AllFiles(styles []string) []string {
	if styles == nil {
		styles = DefaultStyles()
	}

	out := RequiredFiles()
	for _, style := range styles {
		out = append(out, StyleFile(style))
	}

	return out
}
