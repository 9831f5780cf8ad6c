// Package health reports whether the parts an enola command depends on are
// usable.
package health

import (
	"regexp"
	"strings"
	"time"

	"github.com/enola-dev/enola-sub007/errors"
)

const (
	StateHealthy   = "healthy"
	StateDegraded  = "degraded"
	StateUnhealthy = "unhealthy"
)

var (
	httpURLRegex     = regexp.MustCompile(`https?://[^\s]+`)
	natsURLRegex     = regexp.MustCompile(`nats://[^\s]+`)
	unixPathRegex    = regexp.MustCompile(`/[a-zA-Z0-9/_.-]+`)
	windowsPathRegex = regexp.MustCompile(`[A-Z]:\\[^:\s]+`)
	ipAddrRegex      = regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`)
	portRegex        = regexp.MustCompile(`:\d{2,5}\b`)
	credentialRegex  = regexp.MustCompile(`(?i)(password|token|key|secret|credential)[^a-zA-Z]*[:=][^,\s}]+`)
)

// Status represents the health state of a component or system
type Status struct {
	Component   string        `json:"component"`
	Healthy     bool          `json:"healthy"`
	Status      string        `json:"status"`
	Message     string        `json:"message"`
	Timestamp   time.Time     `json:"timestamp"`
	Duration    time.Duration `json:"duration,omitempty"`
	SubStatuses []Status      `json:"sub_statuses,omitempty"`
}

func (s Status) IsHealthy() bool   { return s.Status == StateHealthy }
func (s Status) IsDegraded() bool  { return s.Status == StateDegraded }
func (s Status) IsUnhealthy() bool { return s.Status == StateUnhealthy }

func newStatus(component, state, message string) Status {
	return Status{
		Component: component,
		Healthy:   state == StateHealthy,
		Status:    state,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func NewHealthy(component, message string) Status {
	return newStatus(component, StateHealthy, message)
}

func NewUnhealthy(component, message string) Status {
	return newStatus(component, StateUnhealthy, message)
}

func NewDegraded(component, message string) Status {
	return newStatus(component, StateDegraded, message)
}

// FromError turns the outcome of a check into a status. Transient errors
// degrade the component since a retry may succeed; any other error makes it
// unhealthy. Messages are sanitized.
func FromError(component string, err error, okMessage string) Status {
	switch {
	case err == nil:
		return NewHealthy(component, okMessage)
	case errors.IsTransient(err):
		return NewDegraded(component, sanitizeErrorMessage(err.Error()))
	}
	return NewUnhealthy(component, sanitizeErrorMessage(err.Error()))
}

// sanitizeErrorMessage masks URLs, paths, addresses, ports and credentials
// so a status can be shown or shipped without leaking them.
func sanitizeErrorMessage(err string) string {
	if err == "" {
		return ""
	}

	sanitized := httpURLRegex.ReplaceAllString(err, "[URL]")
	sanitized = natsURLRegex.ReplaceAllString(sanitized, "[URL]")

	sanitized = unixPathRegex.ReplaceAllString(sanitized, "[PATH]")
	sanitized = windowsPathRegex.ReplaceAllString(sanitized, "[PATH]")

	sanitized = ipAddrRegex.ReplaceAllString(sanitized, "[IP]")
	sanitized = portRegex.ReplaceAllString(sanitized, "[PORT]")

	lower := strings.ToLower(sanitized)
	for _, word := range []string{"password", "token", "key", "secret", "credential"} {
		if strings.Contains(lower, word) {
			return credentialRegex.ReplaceAllString(sanitized, "[REDACTED]")
		}
	}
	return sanitized
}

// Aggregate creates a status by aggregating sub-statuses
// The aggregation rules are:
// - If all sub-statuses are healthy, the aggregate is healthy
// - If any sub-status is unhealthy, the aggregate is unhealthy
// - If no sub-status is unhealthy but at least one is degraded, the aggregate is degraded
func Aggregate(component string, subStatuses []Status) Status {
	if len(subStatuses) == 0 {
		return NewHealthy(component, "No sub-components to aggregate")
	}

	hasUnhealthy := false
	hasDegraded := false
	for _, sub := range subStatuses {
		if sub.IsUnhealthy() {
			hasUnhealthy = true
		} else if sub.IsDegraded() {
			hasDegraded = true
		}
	}

	var status Status
	switch {
	case hasUnhealthy:
		status = NewUnhealthy(component, "One or more sub-components are unhealthy")
	case hasDegraded:
		status = NewDegraded(component, "One or more sub-components are degraded")
	default:
		status = NewHealthy(component, "All sub-components are healthy")
	}

	status.SubStatuses = make([]Status, len(subStatuses))
	copy(status.SubStatuses, subStatuses)
	return status
}
