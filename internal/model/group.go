package model

import "time"

// Group is a topic a post may belong to. Deleting a group keeps its posts;
// their group reference is nulled (see Post.GroupID constraint).
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Slug        string `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Group) TableName() string { return "groups" }
