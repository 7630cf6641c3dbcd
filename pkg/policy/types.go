package policy

import (
	"time"

	"github.com/benfogle/crossbuild/pkg/settings"
)

// Severity represents the severity level of a policy violation.
type Severity string

const (
	// SeverityInfo is for informational messages.
	SeverityInfo Severity = "info"

	// SeverityWarning is for findings that should be reviewed but do not
	// block a build.
	SeverityWarning Severity = "warning"

	// SeverityError is for violations that make a configuration not allowed.
	SeverityError Severity = "error"

	// SeverityCritical is for violations that must be addressed immediately.
	SeverityCritical Severity = "critical"
)

// Policy represents a policy rule with its Rego code.
type Policy struct {
	// Name is the unique name of the policy.
	Name string `json:"name"`

	// Description provides a human-readable description.
	Description string `json:"description"`

	// Rego contains the Rego policy code.
	Rego string `json:"rego"`

	// Severity is the default severity for violations.
	Severity Severity `json:"severity"`

	// Enabled indicates if the policy is active.
	Enabled bool `json:"enabled"`

	// Tags are labels for organizing policies.
	Tags []string `json:"tags,omitempty"`

	// CreatedAt is when the policy was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the policy was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// Violation represents a single policy violation.
type Violation struct {
	// Policy is the name of the policy that was violated.
	Policy string `json:"policy"`

	// Host is the host triple text of the offending configuration.
	Host string `json:"host,omitempty"`

	// Message is a human-readable violation message.
	Message string `json:"message"`

	// Severity is the violation severity level.
	Severity Severity `json:"severity"`

	// Remediation provides a suggested fix.
	Remediation string `json:"remediation,omitempty"`

	// DetectedAt is when the violation was detected.
	DetectedAt time.Time `json:"detected_at"`
}

// Result is the outcome of evaluating all enabled policies against one
// configuration.
type Result struct {
	// Allowed is false when any error or critical violation occurred.
	Allowed bool `json:"allowed"`

	// Violations lists all violations across all policies.
	Violations []Violation `json:"violations,omitempty"`

	// Warnings lists policies that failed to evaluate.
	Warnings []string `json:"warnings,omitempty"`

	// EvaluatedAt is when the evaluation completed.
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// Input is the document handed to Rego evaluation.
type Input struct {
	// Config is the resolved configuration under evaluation.
	Config *settings.Config `json:"config"`

	// CrossCompiling mirrors Config.IsCrossCompiling for convenient
	// access from Rego.
	CrossCompiling bool `json:"cross_compiling"`

	// Context carries evaluation metadata.
	Context *Context `json:"context"`
}

// Context carries metadata about one evaluation.
type Context struct {
	// Timestamp is when the evaluation started.
	Timestamp time.Time `json:"timestamp"`

	// Operation is the operation being performed ("validate", "resolve").
	Operation string `json:"operation"`
}
