package model

import "strings"

const partSeparator = " • "

// BuildStudyLine renders the canonical one-line study description embedded in
// every persisted order. It is a pure function of the selection snapshot and
// the referring doctor's name; recomputing it after any edit yields the same
// string for the same inputs.
func BuildStudyLine(sel StudySelection, referringDoctorName string) string {
	doctor := trim(referringDoctorName)
	if doctor == "" {
		doctor = Placeholder
	}
	return "Estudio: " + studyText(sel) + " | Referido: " + doctor
}

func studyText(sel StudySelection) string {
	if sel.Active == "" {
		return Placeholder
	}

	title := StudyTitle(sel.Active)
	d := sel.Details.Normalize(sel.Active)

	switch sel.Active {
	case StudyRX, StudyPhotos:
		if len(d.Items) > 0 {
			return title + ": " + strings.Join(d.Items, ", ")
		}
		if d.Notes != "" {
			return title + ": (con observaciones)"
		}
		return title
	case StudyScan:
		return joinTitled(title, d.Scope, d.Specs)
	case StudyPrint3D:
		return joinTitled(title, d.Base, d.Scope, d.Specs)
	case StudyOrt3D, StudyOrt2D:
		return joinTitled(title, d.Trace, d.Specs)
	}
	return title
}

func joinTitled(title string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return title
	}
	return title + ": " + strings.Join(kept, partSeparator)
}
