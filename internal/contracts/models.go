package contracts

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"docustamp/contract-portal-backend/internal/stamp"
)

// GenerateRequest is the document generation payload. TemplateNames
// controls both which templates are stamped and the page order of the
// merged output.
type GenerateRequest struct {
	TemplateNames []string      `json:"template_names"`
	Context       stamp.Context `json:"context"`
}

// GeneratedDocument is the outcome of one generation request.
type GeneratedDocument struct {
	Bytes      []byte
	StorageKey string
	PageCount  int
}

// ContractRecord is the audit row written after a document is persisted.
type ContractRecord struct {
	ID            uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	CustomerID    string         `json:"customer_id" gorm:"index;not null"`
	StorageKey    string         `json:"storage_key" gorm:"uniqueIndex;not null"`
	TemplateNames datatypes.JSON `json:"template_names" gorm:"type:jsonb"`
	PageCount     int            `json:"page_count"`
	ByteSize      int            `json:"byte_size"`
	CreatedAt     time.Time      `json:"created_at" gorm:"autoCreateTime"`
}
