package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a single blog entry. Feeds order posts by CreatedAt descending with
// ID descending as the tie-break so page boundaries are reproducible.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"not null" json:"text"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	// GroupID is nullable: deleting a group detaches its posts rather than
	// removing them.
	GroupID *uint  `gorm:"index" json:"group_id,omitempty"`
	Group   *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	// Image holds the storage reference returned by the file store; the
	// content itself is opaque to the application.
	Image string `json:"image,omitempty"`
	// CommentsCount is not persisted; scanned from a query-time subquery alias
	CommentsCount int            `gorm:"->;-:migration" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
