package model

// StudyTag identifies one diagnostic study category.
type StudyTag string

const (
	StudyOrt3D   StudyTag = "ort3d"
	StudyOrt2D   StudyTag = "ort2d"
	StudyRX      StudyTag = "rx"
	StudyPhotos  StudyTag = "photos"
	StudyScan    StudyTag = "scan"
	StudyPrint3D StudyTag = "print3d"
)

// StudyTags lists every selectable study category.
var StudyTags = []StudyTag{StudyOrt3D, StudyOrt2D, StudyRX, StudyPhotos, StudyScan, StudyPrint3D}

var studyTitles = map[StudyTag]string{
	StudyOrt3D:   "Ortodoncia 3D",
	StudyOrt2D:   "Ortodoncia 2D",
	StudyRX:      "Radiografías Digitales",
	StudyPhotos:  "Fotografías",
	StudyScan:    "Escaneo Intraoral",
	StudyPrint3D: "Impresión 3D",
}

// ValidStudyTag reports whether tag belongs to the fixed enumeration.
func ValidStudyTag(tag StudyTag) bool {
	_, ok := studyTitles[tag]
	return ok
}

// StudyTitle resolves the display title of a tag, or the placeholder for none.
func StudyTitle(tag StudyTag) string {
	if title, ok := studyTitles[tag]; ok {
		return title
	}
	return Placeholder
}

// Placeholder stands in for any absent value in rendered lines.
const Placeholder = "—"

// StudyDetails holds the option values of one study block. Which fields are
// meaningful depends on the owning tag; Normalize clears the rest.
type StudyDetails struct {
	// rx, photos
	Items []string `json:"items,omitempty"`
	Notes string   `json:"notes,omitempty"`
	// ort3d, ort2d
	Trace string `json:"trace,omitempty"`
	// print3d
	Base string `json:"base,omitempty"`
	// scan, print3d
	Scope string `json:"scope,omitempty"`
	// ort3d, ort2d, scan, print3d
	Specs string `json:"specs,omitempty"`
}

type detailField int

const (
	fieldItems detailField = iota
	fieldNotes
	fieldTrace
	fieldBase
	fieldScope
	fieldSpecs
)

// detailSchema declares which option fields each tag owns.
var detailSchema = map[StudyTag][]detailField{
	StudyOrt3D:   {fieldTrace, fieldSpecs},
	StudyOrt2D:   {fieldTrace, fieldSpecs},
	StudyRX:      {fieldItems, fieldNotes},
	StudyPhotos:  {fieldItems, fieldNotes},
	StudyScan:    {fieldScope, fieldSpecs},
	StudyPrint3D: {fieldBase, fieldScope, fieldSpecs},
}

// Normalize returns details reduced to the fields tag owns, with unset
// optional values resolved to empty string or empty list, never nil.
func (d StudyDetails) Normalize(tag StudyTag) StudyDetails {
	out := StudyDetails{Items: []string{}}
	for _, f := range detailSchema[tag] {
		switch f {
		case fieldItems:
			for _, item := range d.Items {
				if trimmed := trim(item); trimmed != "" {
					out.Items = append(out.Items, trimmed)
				}
			}
		case fieldNotes:
			out.Notes = trim(d.Notes)
		case fieldTrace:
			out.Trace = trim(d.Trace)
		case fieldBase:
			out.Base = trim(d.Base)
		case fieldScope:
			out.Scope = trim(d.Scope)
		case fieldSpecs:
			out.Specs = trim(d.Specs)
		}
	}
	return out
}

// StudySelection is the persisted snapshot of the intake selection: the single
// active tag and its normalized details. An empty Active means none selected.
type StudySelection struct {
	Active  StudyTag     `json:"active,omitempty"`
	Details StudyDetails `json:"details"`
}
