package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

type User struct {
	ID        string `gorm:"primary_key;type:varchar(36)"`
	GoogleID  string `gorm:"unique_index;not null"`
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Solved    []SolvedQuestion `gorm:"foreignkey:UserID"`
}

type SolvedQuestion struct {
	ID        uint   `gorm:"primary_key"`
	UserID    string `gorm:"unique_index:idx_solved_user_title;not null"`
	Title     string `gorm:"unique_index:idx_solved_user_title;not null"`
	CreatedAt time.Time
}

type Discussion struct {
	ID        string `gorm:"primary_key;type:varchar(36)"`
	Title     string `gorm:"not null"`
	Content   string `gorm:"type:text;not null"`
	UserID    string `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	Tags      []DiscussionTag `gorm:"foreignkey:DiscussionID"`
}

// DiscussionTag keeps the tag order of the owning discussion in Position.
type DiscussionTag struct {
	ID           uint   `gorm:"primary_key"`
	DiscussionID string `gorm:"index;not null"`
	Name         string `gorm:"index;not null"`
	Position     int
}

type QuestionDiscussion struct {
	ID            string `gorm:"primary_key;type:varchar(36)"`
	Title         string `gorm:"not null"`
	Content       string `gorm:"type:text;not null"`
	QuestionTitle string `gorm:"index;not null"`
	UserID        string `gorm:"index;not null"`
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
}

// Comment belongs to either a Discussion or a QuestionDiscussion, so DiscussionID
// carries no foreign key. ParentCommentID nil marks a top-level comment.
type Comment struct {
	ID              string  `gorm:"primary_key;type:varchar(36)"`
	Text            string  `gorm:"type:text;not null"`
	UserID          string  `gorm:"index;not null"`
	DiscussionID    string  `gorm:"index;not null"`
	ParentCommentID *string `gorm:"index"`
	CreatedAt       time.Time
}

// Vote is one entry of a voter set: at most one row per (target, user).
type Vote struct {
	ID         uint   `gorm:"primary_key"`
	TargetType string `gorm:"unique_index:idx_vote_target_user;not null"`
	TargetID   string `gorm:"unique_index:idx_vote_target_user;not null"`
	UserID     string `gorm:"unique_index:idx_vote_target_user;not null"`
	Value      int    `gorm:"not null"`
	CreatedAt  time.Time
}

type Feedback struct {
	ID        string `gorm:"primary_key;type:varchar(36)"`
	UserID    string `gorm:"index;not null"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (u *User) BeforeCreate(scope *gorm.Scope) error {
	return assignID(scope, u.ID)
}

func (d *Discussion) BeforeCreate(scope *gorm.Scope) error {
	return assignID(scope, d.ID)
}

func (d *QuestionDiscussion) BeforeCreate(scope *gorm.Scope) error {
	return assignID(scope, d.ID)
}

func (c *Comment) BeforeCreate(scope *gorm.Scope) error {
	return assignID(scope, c.ID)
}

func (f *Feedback) BeforeCreate(scope *gorm.Scope) error {
	return assignID(scope, f.ID)
}

func assignID(scope *gorm.Scope, current string) error {
	if current != "" {
		return nil
	}
	return scope.SetColumn("ID", uuid.NewString())
}

// All lists every row type for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{}, &SolvedQuestion{},
		&Discussion{}, &DiscussionTag{},
		&QuestionDiscussion{},
		&Comment{}, &Vote{}, &Feedback{},
	}
}
