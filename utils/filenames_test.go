package utils

import "testing"

func TestTemplateFilename(t *testing.T) {
	tests := []struct {
		color, size, orientation, kind string
		want                           string
	}{
		{"silver", "saville", "landscape", "main", "silver_saville_main.svg"},
		{"gold", "dracula", "portrait", "rear", "gold_dracula_rear.svg"},
		{"silver", "baby_jesus", "landscape", "main", "silver_baby_jesus_main.svg"},
		{"silver", "baby_jesus", "portrait", "main", "silver_baby_jesus_portrait_main.svg"},
		{"white", "baby_jesus", "portrait", "master_design_file", "white_baby_jesus_portrait_master_design_file.svg"},
	}
	for _, tt := range tests {
		if got := TemplateFilename(tt.color, tt.size, tt.orientation, tt.kind); got != tt.want {
			t.Errorf("TemplateFilename(%q, %q, %q, %q) = %q, want %q",
				tt.color, tt.size, tt.orientation, tt.kind, got, tt.want)
		}
	}
}

func TestExportFolderName(t *testing.T) {
	got := ExportFolderName("M0042", "No Smoking", "silver", "dracula", "self_adhesive")
	want := "M0042 Self Adhesive No Smoking aluminium sign Silver Dracula"
	if got != want {
		t.Errorf("ExportFolderName = %q, want %q", got, want)
	}

	got = ExportFolderName("", "", "GOLD", "baby_jesus", "pre_drilled")
	want = "UNKNOWN Pre-Drilled Sign aluminium sign Gold Baby_Jesus"
	if got != want {
		t.Errorf("ExportFolderName = %q, want %q", got, want)
	}
}

func TestImageKindNumbers(t *testing.T) {
	for _, kind := range ImageKinds {
		if _, ok := ImageKindNumbers[kind]; !ok {
			t.Errorf("kind %q has no export number", kind)
		}
	}
}
