// internal/models/category.go
package models

// Category groups products by display name. Names are unique as persisted
// (case-sensitive); products reference categories by name, not by id.
type Category struct {
	BaseModel
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
}
