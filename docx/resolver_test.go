package docx

import (
	"reflect"
	"testing"
)

func TestFormatting_SetAttrReplacesInPlace(t *testing.T) {
	var f Formatting
	f.setAttr("color", "#000000")
	f.setAttr("font-size", "12pt")
	f.setAttr("color", "#FFFFFF")

	want := []string{"color:#FFFFFF", "font-size:12pt"}
	if !reflect.DeepEqual(f.Attrs, want) {
		t.Errorf("Attrs = %v, want %v", f.Attrs, want)
	}
	if got := f.Style(); got != "color:#FFFFFF;font-size:12pt" {
		t.Errorf("Style() = %q", got)
	}
}

func TestFormatting_Tags(t *testing.T) {
	var f Formatting
	f.addTag("strong")
	f.addTag("em")
	f.addTag("strong")
	if want := []string{"strong", "em"}; !reflect.DeepEqual(f.Tags, want) {
		t.Errorf("Tags = %v, want %v", f.Tags, want)
	}

	f.removeTag("strong")
	f.removeTag("u")
	if want := []string{"em"}; !reflect.DeepEqual(f.Tags, want) {
		t.Errorf("Tags = %v, want %v", f.Tags, want)
	}
	if !f.HasTag("em") || f.HasTag("strong") {
		t.Errorf("HasTag mismatch for %v", f.Tags)
	}
}

func TestFormatting_CloneIsIndependent(t *testing.T) {
	f := Formatting{Tags: []string{"strong"}, Attrs: []string{"color:#000000"}}
	c := f.Clone()
	c.addTag("em")
	c.setAttr("color", "#111111")

	if len(f.Tags) != 1 || f.Attrs[0] != "color:#000000" {
		t.Errorf("original mutated: %+v", f)
	}
}

func TestIsOff(t *testing.T) {
	for _, val := range []string{"0", "false", "FALSE", "off", "none"} {
		if !isOff(val) {
			t.Errorf("isOff(%q) = false", val)
		}
	}
	for _, val := range []string{"", "1", "true", "on"} {
		if isOff(val) {
			t.Errorf("isOff(%q) = true", val)
		}
	}
}

func TestUnitConversions(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(string) (string, bool)
		in     string
		want   string
		wantOK bool
	}{
		{"half points", halfPoints, "24", "12", true},
		{"odd half points", halfPoints, "23", "11.5", true},
		{"half points invalid", halfPoints, "x", "", false},
		{"tenths", tenths, "240", "24", true},
		{"tenths fractional", tenths, "115", "11.5", true},
		{"tenths zero", tenths, "0", "0", true},
		{"tenths invalid", tenths, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.fn(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("got (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
