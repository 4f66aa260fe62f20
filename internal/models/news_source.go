package models

import "strings"

// NewsSource is a named publisher, scoped to the user who created it
type NewsSource struct {
	NewsSourceID        int    `json:"newsSourceId" bson:"_id" validate:"gt=0"`
	NewsSourceName      string `json:"newsSourceName" bson:"newsSourceName" validate:"required,max=255"`
	NewsSourceDesc      string `json:"newsSourceDesc" bson:"newsSourceDesc"`
	NewsSourceCreatedBy string `json:"newsSourceCreatedBy" bson:"newsSourceCreatedBy" validate:"required"`
}

// DocumentID implements storage.Document.
func (s NewsSource) DocumentID() int { return s.NewsSourceID }

// OwnerID implements storage.Document.
func (s NewsSource) OwnerID() string { return s.NewsSourceCreatedBy }

// Normalize trims identifier-like fields
func (s *NewsSource) Normalize() {
	s.NewsSourceCreatedBy = strings.TrimSpace(s.NewsSourceCreatedBy)
	s.NewsSourceName = strings.TrimSpace(s.NewsSourceName)
}

// NewsSourceUpdate carries the mutable fields of a NewsSource.
// A nil field leaves the stored value untouched.
type NewsSourceUpdate struct {
	NewsSourceName      *string `json:"newsSourceName" validate:"omitempty,max=255"`
	NewsSourceDesc      *string `json:"newsSourceDesc"`
	NewsSourceCreatedBy *string `json:"newsSourceCreatedBy" validate:"omitempty,min=1"`
}

// Apply copies the present fields onto s.
func (u NewsSourceUpdate) Apply(s *NewsSource) {
	if u.NewsSourceCreatedBy != nil {
		s.NewsSourceCreatedBy = strings.TrimSpace(*u.NewsSourceCreatedBy)
	}
	if u.NewsSourceDesc != nil {
		s.NewsSourceDesc = *u.NewsSourceDesc
	}
	if u.NewsSourceName != nil {
		s.NewsSourceName = *u.NewsSourceName
	}
}
