package docx

import (
	"reflect"
	"testing"
)

func TestParseStyleSheet(t *testing.T) {
	data := stylesXMLFor(`
<w:style w:type="paragraph" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
<w:style w:type="paragraph" w:styleId="Loud">
  <w:name w:val="Loud"/>
  <w:rPr><w:b/><w:i/><w:u w:val="single"/><w:color w:val="FF0000"/><w:sz w:val="28"/></w:rPr>
</w:style>
<w:style w:type="paragraph"><w:name w:val="No id"/></w:style>`)

	ss, err := ParseStyleSheet([]byte(data))
	if err != nil {
		t.Fatalf("ParseStyleSheet failed: %v", err)
	}
	if ss.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ss.Len())
	}

	def, ok := ss.Lookup("Loud")
	if !ok {
		t.Fatal("Loud not found")
	}
	if def.Name != "Loud" {
		t.Errorf("Name = %q, want Loud", def.Name)
	}
	if want := []string{"strong", "em", "u"}; !reflect.DeepEqual(def.Tags, want) {
		t.Errorf("Tags = %v, want %v", def.Tags, want)
	}
	if want := []string{"color:#FF0000", "font-size:14pt"}; !reflect.DeepEqual(def.Attrs, want) {
		t.Errorf("Attrs = %v, want %v", def.Attrs, want)
	}

	normal, ok := ss.Lookup("Normal")
	if !ok {
		t.Fatal("Normal not found")
	}
	if len(normal.Tags) != 0 || len(normal.Attrs) != 0 {
		t.Errorf("Normal should carry no formatting, got %+v", normal)
	}

	if _, ok := ss.Lookup("Missing"); ok {
		t.Error("Lookup(Missing) should fail")
	}
}

func TestParseStyleSheet_Empty(t *testing.T) {
	ss, err := ParseStyleSheet(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ss.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ss.Len())
	}
}

func TestParseStyleSheet_Malformed(t *testing.T) {
	ss, err := ParseStyleSheet([]byte("<w:styles><w:style"))
	if err == nil {
		t.Error("expected error for malformed styles")
	}
	if ss == nil || ss.Len() != 0 {
		t.Errorf("expected empty sheet alongside error, got %v", ss)
	}
}

func TestStyleSheet_DuplicateIDLastWins(t *testing.T) {
	data := stylesXMLFor(`
<w:style w:styleId="S"><w:rPr><w:b/></w:rPr></w:style>
<w:style w:styleId="S"><w:rPr><w:i/></w:rPr></w:style>`)

	ss, err := ParseStyleSheet([]byte(data))
	if err != nil {
		t.Fatalf("ParseStyleSheet failed: %v", err)
	}
	def, _ := ss.Lookup("S")
	if want := []string{"em"}; !reflect.DeepEqual(def.Tags, want) {
		t.Errorf("Tags = %v, want %v", def.Tags, want)
	}
}

func TestStyleSheet_BasedOn(t *testing.T) {
	data := stylesXMLFor(`
<w:style w:styleId="Base"><w:rPr><w:b/><w:color w:val="111111"/><w:sz w:val="20"/></w:rPr></w:style>
<w:style w:styleId="Child"><w:basedOn w:val="Base"/><w:rPr><w:b w:val="0"/><w:color w:val="222222"/></w:rPr></w:style>
<w:style w:styleId="Dangling"><w:basedOn w:val="Nowhere"/><w:rPr><w:i/></w:rPr></w:style>
<w:style w:styleId="A"><w:basedOn w:val="B"/><w:rPr><w:i/></w:rPr></w:style>
<w:style w:styleId="B"><w:basedOn w:val="A"/><w:rPr><w:b/></w:rPr></w:style>`)

	ss, err := ParseStyleSheet([]byte(data))
	if err != nil {
		t.Fatalf("ParseStyleSheet failed: %v", err)
	}

	tests := []struct {
		id    string
		tags  []string
		attrs []string
	}{
		{"Base", []string{"strong"}, []string{"color:#111111", "font-size:10pt"}},
		{"Child", nil, []string{"color:#222222", "font-size:10pt"}},
		{"Dangling", []string{"em"}, nil},
		{"A", []string{"strong", "em"}, nil},
		{"B", []string{"em", "strong"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			def, ok := ss.Lookup(tt.id)
			if !ok {
				t.Fatalf("%s not found", tt.id)
			}
			if len(def.Tags) != len(tt.tags) || (len(tt.tags) > 0 && !reflect.DeepEqual(def.Tags, tt.tags)) {
				t.Errorf("Tags = %v, want %v", def.Tags, tt.tags)
			}
			if len(def.Attrs) != len(tt.attrs) || (len(tt.attrs) > 0 && !reflect.DeepEqual(def.Attrs, tt.attrs)) {
				t.Errorf("Attrs = %v, want %v", def.Attrs, tt.attrs)
			}
		})
	}
}

func TestStyleDefinition_FormattingIsACopy(t *testing.T) {
	def := StyleDefinition{ID: "S", Tags: []string{"strong"}, Attrs: []string{"color:#000000"}}

	f := def.Formatting()
	f.Tags[0] = "em"
	f.Attrs[0] = "font-size:1pt"

	if def.Tags[0] != "strong" || def.Attrs[0] != "color:#000000" {
		t.Errorf("definition was mutated: %+v", def)
	}
}

func TestStyleSheet_NilSafe(t *testing.T) {
	var ss *StyleSheet
	if ss.Len() != 0 {
		t.Error("nil sheet should be empty")
	}
	if _, ok := ss.Lookup("x"); ok {
		t.Error("nil sheet should resolve nothing")
	}
}
