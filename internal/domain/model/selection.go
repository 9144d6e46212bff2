package model

import "strings"

func trim(s string) string { return strings.TrimSpace(s) }

// Selection tracks which study block is active during intake and the raw
// option values typed into each block. At most one block is active at a time;
// activating a block clears the inputs of the previously active one so stale
// values never leak into a payload.
type Selection struct {
	active StudyTag
	raw    map[StudyTag]StudyDetails
}

// NewSelection returns an empty selection with no active block.
func NewSelection() *Selection {
	return &Selection{raw: make(map[StudyTag]StudyDetails)}
}

// ActiveTag returns the active study tag, or "" when none is active.
func (s *Selection) ActiveTag() StudyTag {
	return s.active
}

// Activate makes tag the single active block. Any previously active block is
// deactivated and its raw inputs cleared. Unknown tags are ignored.
func (s *Selection) Activate(tag StudyTag) {
	if !ValidStudyTag(tag) || tag == s.active {
		return
	}
	if s.active != "" {
		delete(s.raw, s.active)
	}
	s.active = tag
}

// Deactivate turns the block off and clears its raw inputs, so a later
// reactivation starts blank.
func (s *Selection) Deactivate(tag StudyTag) {
	if tag != s.active {
		return
	}
	delete(s.raw, tag)
	s.active = ""
}

// SetDetails stores raw option values for the active block. Values for
// inactive blocks are discarded.
func (s *Selection) SetDetails(tag StudyTag, details StudyDetails) {
	if tag != s.active {
		return
	}
	s.raw[tag] = details
}

// CurrentDetails returns the normalized details of tag. Inactive or unknown
// tags yield the empty shape.
func (s *Selection) CurrentDetails(tag StudyTag) StudyDetails {
	return s.raw[tag].Normalize(tag)
}

// Preview renders a short human string for live feedback on one block.
func (s *Selection) Preview(tag StudyTag) string {
	if tag != s.active {
		return Placeholder
	}
	return studyText(StudySelection{Active: tag, Details: s.CurrentDetails(tag)})
}

// Snapshot freezes the selection into its persistable form.
func (s *Selection) Snapshot() StudySelection {
	if s.active == "" {
		return StudySelection{Details: StudyDetails{Items: []string{}}}
	}
	return StudySelection{Active: s.active, Details: s.CurrentDetails(s.active)}
}
