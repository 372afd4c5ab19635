package models

// AuditLog records a sensitive platform action for traceability.
type AuditLog struct {
	Base
	KYCRecordID string `gorm:"type:uuid;index" json:"kyc_record_id"`
	Action      string `gorm:"not null" json:"action"`
	EntityType  string `gorm:"not null" json:"entity_type"`
	EntityID    string `json:"entity_id"`
	IPAddress   string `json:"ip_address"`
	Details     string `gorm:"type:text" json:"details,omitempty"`
}
