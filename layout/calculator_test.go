package layout

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeBoundsCSV(t *testing.T, rows string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "layout_modes.csv")
	content := "template,size,orientation,layout_mode,element,x,y,width,height\n" + rows
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseLayoutMode(t *testing.T) {
	tests := []struct {
		in   string
		want LayoutMode
	}{
		{"A", ModeA},
		{"b", ModeB},
		{" C ", ModeC},
		{"D", ModeD},
		{"E", ModeE},
		{"F", ModeF},
		{"", ModeA},
		{"Z", ModeDefault},
		{"q", ModeDefault},
	}
	for _, tt := range tests {
		if got := ParseLayoutMode(tt.in); got != tt.want {
			t.Errorf("ParseLayoutMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if ModeC.Letter() != "C" {
		t.Errorf("ModeC.Letter() = %q, want C", ModeC.Letter())
	}
	if ModeDefault.Letter() != "" {
		t.Errorf("ModeDefault.Letter() = %q, want empty", ModeDefault.Letter())
	}
}

func TestCalculateUnknownModeGetsDefaultGeometry(t *testing.T) {
	calc := &Calculator{BoundsPath: filepath.Join(t.TempDir(), "missing.csv")}
	bounds, err := ResolveSignBounds("saville", "landscape")
	if err != nil {
		t.Fatal(err)
	}

	res := calc.Calculate(bounds, ParseLayoutMode("Z"), nil, 1.0, 1.0, "saville", "landscape")

	wantW := bounds.InnerWidth() * 0.6
	wantH := bounds.InnerHeight() * 0.6
	if math.Abs(res.Icon.Width-wantW) > eps || math.Abs(res.Icon.Height-wantH) > eps {
		t.Errorf("icon size = %vx%v, want %vx%v", res.Icon.Width, res.Icon.Height, wantW, wantH)
	}
	if math.Abs(res.Icon.CenterX()-bounds.CenterX()) > eps ||
		math.Abs(res.Icon.CenterY()-bounds.CenterY()) > eps {
		t.Errorf("icon not centered: (%v,%v)", res.Icon.CenterX(), res.Icon.CenterY())
	}
}

func TestCalculateFallbackModeA(t *testing.T) {
	calc := &Calculator{BoundsPath: filepath.Join(t.TempDir(), "missing.csv")}
	bounds, err := ResolveSignBounds("dracula", "landscape")
	if err != nil {
		t.Fatal(err)
	}

	res := calc.Calculate(bounds, ModeA, nil, 1.0, 1.0, "dracula", "landscape")

	wantW := bounds.InnerWidth() * 0.7
	wantH := bounds.InnerHeight() * 0.7
	if math.Abs(res.Icon.Width-wantW) > eps || math.Abs(res.Icon.Height-wantH) > eps {
		t.Errorf("icon size = %vx%v, want %vx%v", res.Icon.Width, res.Icon.Height, wantW, wantH)
	}
	if math.Abs(res.Icon.CenterX()-bounds.CenterX()) > eps {
		t.Errorf("icon centerX = %v, want %v", res.Icon.CenterX(), bounds.CenterX())
	}
	if math.Abs(res.Icon.CenterY()-bounds.CenterY()) > eps {
		t.Errorf("icon centerY = %v, want %v", res.Icon.CenterY(), bounds.CenterY())
	}
}

func TestCalculateCentroidInvariantAcrossScale(t *testing.T) {
	calc := &Calculator{BoundsPath: filepath.Join(t.TempDir(), "missing.csv")}
	bounds, err := ResolveSignBounds("saville", "landscape")
	if err != nil {
		t.Fatal(err)
	}

	for _, mode := range []LayoutMode{ModeA, ModeD} {
		base := calc.Calculate(bounds, mode, nil, 1.0, 1.0, "saville", "landscape")
		for scale := 0.5; scale <= 1.5+eps; scale += 0.1 {
			res := calc.Calculate(bounds, mode, nil, scale, 1.0, "saville", "landscape")
			if math.Abs(res.Icon.CenterX()-base.Icon.CenterX()) > eps {
				t.Errorf("mode %s scale %v: centerX drifted: %v != %v",
					mode.Letter(), scale, res.Icon.CenterX(), base.Icon.CenterX())
			}
			if math.Abs(res.Icon.CenterY()-base.Icon.CenterY()) > eps {
				t.Errorf("mode %s scale %v: centerY drifted: %v != %v",
					mode.Letter(), scale, res.Icon.CenterY(), base.Icon.CenterY())
			}
		}
	}
}

func TestCalculateDataDrivenCentroidInvariant(t *testing.T) {
	path := writeBoundsCSV(t, "main,saville,landscape,A,icon,40,30,50,40\n")
	calc := &Calculator{BoundsPath: path}
	bounds, err := ResolveSignBounds("saville", "landscape")
	if err != nil {
		t.Fatal(err)
	}

	base := calc.Calculate(bounds, ModeA, nil, 1.0, 1.0, "saville", "landscape")
	for scale := 0.5; scale <= 1.5+eps; scale += 0.25 {
		res := calc.Calculate(bounds, ModeA, nil, scale, 1.0, "saville", "landscape")
		if math.Abs(res.Icon.CenterX()-base.Icon.CenterX()) > eps ||
			math.Abs(res.Icon.CenterY()-base.Icon.CenterY()) > eps {
			t.Errorf("scale %v moved centroid: (%v,%v) != (%v,%v)", scale,
				res.Icon.CenterX(), res.Icon.CenterY(), base.Icon.CenterX(), base.Icon.CenterY())
		}
		if math.Abs(res.Icon.Width-50*scale) > eps {
			t.Errorf("scale %v: width = %v, want %v", scale, res.Icon.Width, 50*scale)
		}
	}
}

func TestCalculateDataDrivenPrecedence(t *testing.T) {
	path := writeBoundsCSV(t, "main,saville,landscape,A,icon,5,5,10,10\n")
	calc := &Calculator{BoundsPath: path}
	bounds, err := ResolveSignBounds("saville", "landscape")
	if err != nil {
		t.Fatal(err)
	}

	res := calc.Calculate(bounds, ModeA, nil, 1.0, 1.0, "saville", "landscape")
	fallback := fallbackLayout(bounds, ModeA, nil, 1.0, 1.0)

	if res.Icon == fallback.Icon {
		t.Error("configured icon box should take precedence over the geometric fallback")
	}
	want := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	if res.Icon != want {
		t.Errorf("icon = %+v, want %+v", res.Icon, want)
	}
}

func TestCalculateDataDrivenFontSize(t *testing.T) {
	path := writeBoundsCSV(t,
		"main,saville,landscape,A,icon,40,30,50,40\n"+
			"main,saville,landscape,A,text_1,30,70,40,10\n")
	calc := &Calculator{BoundsPath: path}
	bounds, err := ResolveSignBounds("saville", "landscape")
	if err != nil {
		t.Fatal(err)
	}

	res := calc.Calculate(bounds, ModeA, []string{"WARN"}, 1.0, 2.0, "saville", "landscape")
	if len(res.Text) != 1 {
		t.Fatalf("got %d text elements, want 1", len(res.Text))
	}
	te := res.Text[0]
	// min(40/(4*3.2), 10/3.0) * 2.0 = 6.25
	if math.Abs(te.FontSize-6.25) > eps {
		t.Errorf("font size = %v, want 6.25", te.FontSize)
	}
	if math.Abs(te.X-50) > eps {
		t.Errorf("text x = %v, want 50 (box horizontal center)", te.X)
	}
	if math.Abs(te.Y-77.5) > eps {
		t.Errorf("text y = %v, want 77.5 (75%% down the box)", te.Y)
	}
	if te.Anchor != "middle" {
		t.Errorf("anchor = %q, want middle", te.Anchor)
	}
}

func TestCalculateMissingTextSlotOmitted(t *testing.T) {
	path := writeBoundsCSV(t,
		"main,saville,landscape,A,icon,40,30,50,40\n"+
			"main,saville,landscape,A,text_1,30,70,40,10\n")
	calc := &Calculator{BoundsPath: path}
	bounds, err := ResolveSignBounds("saville", "landscape")
	if err != nil {
		t.Fatal(err)
	}

	// Second line has no text_2 box configured: silently omitted.
	res := calc.Calculate(bounds, ModeA, []string{"ONE", "TWO"}, 1.0, 1.0, "saville", "landscape")
	if len(res.Text) != 1 {
		t.Fatalf("got %d text elements, want 1", len(res.Text))
	}
	if res.Text[0].Text != "ONE" {
		t.Errorf("text = %q, want ONE", res.Text[0].Text)
	}
}

func TestCalculateEmptyLinesFiltered(t *testing.T) {
	path := writeBoundsCSV(t,
		"main,saville,landscape,A,icon,40,30,50,40\n"+
			"main,saville,landscape,A,text_1,30,70,40,10\n")
	calc := &Calculator{BoundsPath: path}
	bounds, err := ResolveSignBounds("saville", "landscape")
	if err != nil {
		t.Fatal(err)
	}

	// Leading empties shift later lines into earlier slots.
	res := calc.Calculate(bounds, ModeA, []string{"", "", "LAST"}, 1.0, 1.0, "saville", "landscape")
	if len(res.Text) != 1 || res.Text[0].Text != "LAST" {
		t.Fatalf("got %+v, want single LAST element in slot 1", res.Text)
	}
}

func TestCalculateModeBOffset(t *testing.T) {
	calc := &Calculator{BoundsPath: filepath.Join(t.TempDir(), "missing.csv")}
	bounds, err := ResolveSignBounds("dick", "landscape")
	if err != nil {
		t.Fatal(err)
	}

	for _, mode := range []LayoutMode{ModeB, ModeC} {
		res := calc.Calculate(bounds, mode, nil, 1.0, 1.0, "dick", "landscape")
		wantH := bounds.InnerHeight() * 0.90
		if math.Abs(res.Icon.Height-wantH) > eps {
			t.Errorf("mode %s: height = %v, want %v", mode.Letter(), res.Icon.Height, wantH)
		}
		if math.Abs(res.Icon.Width-res.Icon.Height) > eps {
			t.Errorf("mode %s: icon should be square, got %vx%v", mode.Letter(), res.Icon.Width, res.Icon.Height)
		}
		if math.Abs(res.Icon.CenterX()-bounds.CenterX()) > eps {
			t.Errorf("mode %s: not horizontally centered", mode.Letter())
		}
		wantY := bounds.CenterY() - res.Icon.Height/2 + res.Icon.Height*0.08
		if math.Abs(res.Icon.Y-wantY) > eps {
			t.Errorf("mode %s: y = %v, want %v", mode.Letter(), res.Icon.Y, wantY)
		}
	}
}

func TestCalculateModeBTextStack(t *testing.T) {
	calc := &Calculator{BoundsPath: filepath.Join(t.TempDir(), "missing.csv")}
	bounds, err := ResolveSignBounds("barzan", "landscape")
	if err != nil {
		t.Fatal(err)
	}

	res := calc.Calculate(bounds, ModeB, []string{"LINE 1", "LINE 2"}, 1.0, 1.0, "barzan", "landscape")
	if len(res.Text) != 2 {
		t.Fatalf("got %d text elements, want 2", len(res.Text))
	}
	firstY := res.Icon.Y + res.Icon.Height + bounds.InnerHeight()*0.05
	if math.Abs(res.Text[0].Y-firstY) > eps {
		t.Errorf("first line y = %v, want %v", res.Text[0].Y, firstY)
	}
	if math.Abs(res.Text[1].Y-(firstY+5.0+2)) > eps {
		t.Errorf("second line y = %v, want %v", res.Text[1].Y, firstY+5.0+2)
	}
	if res.Text[0].FontSize != 5.0 {
		t.Errorf("font size = %v, want 5.0", res.Text[0].FontSize)
	}
}

func TestCalculateReloadsBoundsEachCall(t *testing.T) {
	path := writeBoundsCSV(t, "main,saville,landscape,A,icon,5,5,10,10\n")
	calc := &Calculator{BoundsPath: path}
	bounds, err := ResolveSignBounds("saville", "landscape")
	if err != nil {
		t.Fatal(err)
	}

	first := calc.Calculate(bounds, ModeA, nil, 1.0, 1.0, "saville", "landscape")
	if (first.Icon != Rect{X: 5, Y: 5, Width: 10, Height: 10}) {
		t.Fatalf("first icon = %+v", first.Icon)
	}

	// Hot-edit the CSV between calls.
	content := "template,size,orientation,layout_mode,element,x,y,width,height\n" +
		"main,saville,landscape,A,icon,20,20,30,30\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	second := calc.Calculate(bounds, ModeA, nil, 1.0, 1.0, "saville", "landscape")
	if (second.Icon != Rect{X: 20, Y: 20, Width: 30, Height: 30}) {
		t.Errorf("edit did not take effect: icon = %+v", second.Icon)
	}
}

func TestLoadBoundsTableMalformedRows(t *testing.T) {
	path := writeBoundsCSV(t,
		"main,saville,landscape,A,icon,5,5,10,10\n"+
			"main,saville,landscape,B,icon,bad,5,10,10\n"+
			"main,saville,landscape,C,icon\n")
	table := LoadBoundsTable(path)
	if len(table) != 1 {
		t.Errorf("got %d entries, want 1 (malformed rows skipped)", len(table))
	}
	if _, ok := table[BoundsKey{"main", "saville", "landscape", "A", "icon"}]; !ok {
		t.Error("valid row missing from table")
	}
}
