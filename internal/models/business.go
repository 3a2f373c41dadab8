// internal/models/business.go
package models

// BusinessDetail is a singleton record holding the storefront contact info.
type BusinessDetail struct {
	BaseModel
	WhatsApp string `json:"whatsapp" gorm:"size:50"`
	Address  string `json:"address" gorm:"type:text"`
	Email    string `json:"email" gorm:"size:255"`
}
