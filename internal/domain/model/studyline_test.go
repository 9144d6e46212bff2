package model

import "testing"

func TestBuildStudyLineRXWithItems(t *testing.T) {
	sel := StudySelection{
		Active:  StudyRX,
		Details: StudyDetails{Items: []string{"Panorámica", "Lateral"}},
	}

	got := BuildStudyLine(sel, "Pérez")
	want := "Estudio: Radiografías Digitales: Panorámica, Lateral | Referido: Pérez"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildStudyLineNoSelectionNoDoctor(t *testing.T) {
	got := BuildStudyLine(StudySelection{}, "")
	if got != "Estudio: — | Referido: —" {
		t.Fatalf("unexpected line %q", got)
	}
}

func TestBuildStudyLineNotesMarker(t *testing.T) {
	sel := StudySelection{Active: StudyPhotos, Details: StudyDetails{Notes: "serie completa"}}
	got := BuildStudyLine(sel, "López")
	want := "Estudio: Fotografías: (con observaciones) | Referido: López"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildStudyLineBareTitleWhenEmptyDetails(t *testing.T) {
	cases := []struct {
		tag  StudyTag
		want string
	}{
		{StudyRX, "Estudio: Radiografías Digitales | Referido: —"},
		{StudyScan, "Estudio: Escaneo Intraoral | Referido: —"},
		{StudyPrint3D, "Estudio: Impresión 3D | Referido: —"},
		{StudyOrt2D, "Estudio: Ortodoncia 2D | Referido: —"},
	}
	for _, tc := range cases {
		if got := BuildStudyLine(StudySelection{Active: tc.tag}, ""); got != tc.want {
			t.Fatalf("tag %s: expected %q, got %q", tc.tag, tc.want, got)
		}
	}
}

func TestBuildStudyLineJoinsOrderedParts(t *testing.T) {
	cases := []struct {
		name string
		sel  StudySelection
		want string
	}{
		{
			"scan scope and specs",
			StudySelection{Active: StudyScan, Details: StudyDetails{Scope: "Arcada completa", Specs: "STL"}},
			"Estudio: Escaneo Intraoral: Arcada completa • STL | Referido: Ruiz",
		},
		{
			"print3d skips empty scope",
			StudySelection{Active: StudyPrint3D, Details: StudyDetails{Base: "Resina", Specs: "2 modelos"}},
			"Estudio: Impresión 3D: Resina • 2 modelos | Referido: Ruiz",
		},
		{
			"ort3d trace only",
			StudySelection{Active: StudyOrt3D, Details: StudyDetails{Trace: "Ricketts"}},
			"Estudio: Ortodoncia 3D: Ricketts | Referido: Ruiz",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildStudyLine(tc.sel, "Ruiz"); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestBuildStudyLineDeterministic(t *testing.T) {
	sel := StudySelection{
		Active:  StudyRX,
		Details: StudyDetails{Items: []string{"Panorámica"}, Notes: "control"},
	}

	first := BuildStudyLine(sel, "Pérez")
	for i := 0; i < 5; i++ {
		if got := BuildStudyLine(sel, "Pérez"); got != first {
			t.Fatalf("call %d diverged: %q vs %q", i, got, first)
		}
	}
	if len(sel.Details.Items) != 1 || sel.Details.Items[0] != "Panorámica" {
		t.Fatal("inputs must not be mutated")
	}
}

func TestBuildStudyLineIgnoresFieldsOutsideSchema(t *testing.T) {
	// A scan selection carrying stray rx fields must render as scan only.
	sel := StudySelection{
		Active:  StudyScan,
		Details: StudyDetails{Items: []string{"Panorámica"}, Notes: "x", Scope: "Maxilar"},
	}
	got := BuildStudyLine(sel, "")
	want := "Estudio: Escaneo Intraoral: Maxilar | Referido: —"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
