package stores

import (
	"context"
	"database/sql"
	"time"
)

// Resolution is one recorded configuration resolution. The raw settings
// and the resolved configuration are stored as JSON blobs so the history
// survives schema changes in either shape.
type Resolution struct {
	ID             string    `json:"id"`
	SourceFile     string    `json:"source_file"`
	Host           string    `json:"host"`
	CrossCompiling bool      `json:"cross_compiling"`
	PlatformTag    string    `json:"platform_tag"`
	RawSettings    string    `json:"raw_settings"` // JSON blob
	Config         string    `json:"config"`       // JSON blob
	ResolvedAt     time.Time `json:"resolved_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// ViolationRecord is a policy violation persisted against a resolution.
type ViolationRecord struct {
	ID           int64     `json:"id"`
	ResolutionID string    `json:"resolution_id"`
	Policy       string    `json:"policy"`
	Severity     string    `json:"severity"`
	Message      string    `json:"message"`
	Remediation  *string   `json:"remediation,omitempty"`
	DetectedAt   time.Time `json:"detected_at"`
}

// Store defines the interface for the persistence layer
type Store interface {
	// Lifecycle
	Init(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error

	// Transaction support
	BeginTx(ctx context.Context) (*sql.Tx, error)
	CommitTx(tx *sql.Tx) error
	RollbackTx(tx *sql.Tx) error

	// Resolution operations
	CreateResolution(ctx context.Context, res *Resolution) error
	GetResolution(ctx context.Context, id string) (*Resolution, error)
	LatestResolution(ctx context.Context) (*Resolution, error)
	ListResolutions(ctx context.Context, limit, offset int) ([]*Resolution, error)
	ListResolutionsByHost(ctx context.Context, host string, limit, offset int) ([]*Resolution, error)
	DeleteResolution(ctx context.Context, id string) error

	// Violation operations
	AddViolations(ctx context.Context, resolutionID string, violations []*ViolationRecord) error
	ListViolations(ctx context.Context, resolutionID string) ([]*ViolationRecord, error)

	// Utility
	HealthCheck(ctx context.Context) error
}
