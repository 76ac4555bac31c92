// Package analytics provides visit event capture and processing.
package analytics

import (
	"fmt"
	"strings"
)

const maxMetaLength = 500

// ValidateVisitEventPayload validates visit event payload fields.
func ValidateVisitEventPayload(payload VisitEventPayload) error {
	if payload.PagePath == "" {
		return fmt.Errorf("page_path is required")
	}
	if !strings.HasPrefix(payload.PagePath, "/") {
		return fmt.Errorf("page_path must start with /")
	}
	if len(payload.PagePath) > maxMetaLength {
		return fmt.Errorf("page_path too long")
	}
	if payload.IPAddress == "" {
		return fmt.Errorf("ip_address is required")
	}
	if len(payload.IPAddress) > 64 {
		return fmt.Errorf("ip_address too long")
	}
	if payload.VisitedAt <= 0 {
		return fmt.Errorf("visited_at must be set")
	}
	if len(payload.UserAgent) > maxMetaLength {
		return fmt.Errorf("user_agent too long")
	}
	if len(payload.Referrer) > maxMetaLength {
		return fmt.Errorf("referrer too long")
	}
	return nil
}
