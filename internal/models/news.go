package models

import (
	"strings"
	"time"
)

// Reminder is attached to a News record and embedded by value
type Reminder struct {
	ReminderID string     `json:"reminderId" bson:"reminderId"`
	Schedule   *time.Time `json:"schedule,omitempty" bson:"schedule,omitempty"`
}

// News is an article saved by a user.
// PublishedAt is assigned by the service when the record is created and never changes.
type News struct {
	NewsID      int        `json:"newsId" bson:"_id" validate:"gt=0"`
	UserID      string     `json:"userId" bson:"userId" validate:"required"`
	Title       string     `json:"title" bson:"title"`
	Author      string     `json:"author" bson:"author"`
	Description string     `json:"description" bson:"description"`
	PublishedAt time.Time  `json:"publishedAt" bson:"publishedAt"`
	Content     string     `json:"content" bson:"content"`
	URL         string     `json:"url" bson:"url" validate:"omitempty,url"`
	URLToImage  string     `json:"urlToImage" bson:"urlToImage" validate:"omitempty,url"`
	Reminder    Reminder   `json:"reminder" bson:"reminder"`
	NewsSource  NewsSource `json:"newsSource" bson:"newsSource" validate:"-"`
}

// DocumentID implements storage.Document.
func (n News) DocumentID() int { return n.NewsID }

// OwnerID implements storage.Document.
func (n News) OwnerID() string { return n.UserID }

// Normalize trims identifier-like fields before validation
func (n *News) Normalize() {
	n.UserID = strings.TrimSpace(n.UserID)
	n.URL = strings.TrimSpace(n.URL)
	n.URLToImage = strings.TrimSpace(n.URLToImage)
}

// NewsUpdate carries the fields of a News record that may change after creation.
// A nil field leaves the stored value untouched.
type NewsUpdate struct {
	Title       *string   `json:"title"`
	Author      *string   `json:"author"`
	Description *string   `json:"description"`
	Content     *string   `json:"content"`
	URL         *string   `json:"url" validate:"omitempty,url"`
	URLToImage  *string   `json:"urlToImage" validate:"omitempty,url"`
	Reminder    *Reminder `json:"reminder"`
}

// Apply copies the present fields onto n. NewsID, UserID and PublishedAt are never touched.
func (u NewsUpdate) Apply(n *News) {
	if u.Author != nil {
		n.Author = *u.Author
	}
	if u.Content != nil {
		n.Content = *u.Content
	}
	if u.Description != nil {
		n.Description = *u.Description
	}
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.URL != nil {
		n.URL = strings.TrimSpace(*u.URL)
	}
	if u.URLToImage != nil {
		n.URLToImage = strings.TrimSpace(*u.URLToImage)
	}
	if u.Reminder != nil {
		n.Reminder = *u.Reminder
	}
}
