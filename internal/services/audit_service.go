package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"proptoken/internal/logger"
	"proptoken/internal/models"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *auditService) Log(kycRecordID, action, entityType, entityID, ipAddress string, details map[string]interface{}) {
	var detailsJSON string
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log details", "error", err, "action", action)
			detailsJSON = "{}"
		} else {
			detailsJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		KYCRecordID: kycRecordID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		IPAddress:   ipAddress,
		Details:     detailsJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"kyc_record_id", kycRecordID,
			"action", action,
			"entity_type", entityType,
			"entity_id", entityID,
		)
	}
}
