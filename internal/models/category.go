package models

// Category groups projects under a unique name.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`

	Projects []Project `gorm:"foreignKey:CategoryID" json:"projects,omitempty"`

	// ProjectsCount is not persisted; computed at query time
	ProjectsCount int64 `gorm:"->;-:migration" json:"projects_count"`
}

// Tag is a free-form label attached to projects.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;index" json:"name"`

	Projects []Project `gorm:"many2many:project_tags" json:"-"`
}
