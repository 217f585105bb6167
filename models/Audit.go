package models

import "gorm.io/gorm"

// AuditLog records admin moderation actions (approve, reject, suspend)
// with before/after snapshots.
type AuditLog struct {
	gorm.Model
	AdminUserID  uint   `json:"adminUserID" gorm:"index"`
	Action       string `json:"action" gorm:"type:varchar(60);index"`
	ResourceType string `json:"resourceType" gorm:"type:varchar(40);index"`
	ResourceID   uint   `json:"resourceID" gorm:"index"`
	BeforeJSON   string `json:"beforeJSON" gorm:"type:text"`
	AfterJSON    string `json:"afterJSON" gorm:"type:text"`
	IPAddress    string `json:"ipAddress" gorm:"type:varchar(64)"`
}
