package todo

import (
	"fmt"
	"strings"
)

// ValidationKind names the business rule a candidate list violated.
type ValidationKind string

const (
	KindMissingField       ValidationKind = "missing_field"
	KindInvalidStatus      ValidationKind = "invalid_status"
	KindInvalidPriority    ValidationKind = "invalid_priority"
	KindDuplicateID        ValidationKind = "duplicate_id"
	KindMultipleInProgress ValidationKind = "multiple_in_progress"
)

// ValidationError rejects a candidate list before any mutation happens.
type ValidationError struct {
	Kind   ValidationKind
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Validate checks a candidate list against the write-time business rules.
// Checks run in a fixed order so the reported error is deterministic; the
// first failing check wins. An empty list is valid (it clears the todos).
func Validate(todos []Task) error {
	for i, t := range todos {
		if strings.TrimSpace(t.ID) == "" {
			return &ValidationError{
				Kind:   KindMissingField,
				Detail: fmt.Sprintf("todo at index %d is missing required field %q", i, "id"),
			}
		}
		if strings.TrimSpace(t.Content) == "" {
			return &ValidationError{
				Kind:   KindMissingField,
				Detail: fmt.Sprintf("todo %q is missing required field %q", t.ID, "content"),
			}
		}
		if !t.Status.Valid() {
			return &ValidationError{
				Kind: KindInvalidStatus,
				Detail: fmt.Sprintf("todo %q has invalid status %q (allowed: %s, %s, %s)",
					t.ID, t.Status, StatusPending, StatusInProgress, StatusCompleted),
			}
		}
		if !t.Priority.Valid() {
			return &ValidationError{
				Kind: KindInvalidPriority,
				Detail: fmt.Sprintf("todo %q has invalid priority %q (allowed: %s, %s, %s)",
					t.ID, t.Priority, PriorityHigh, PriorityMedium, PriorityLow),
			}
		}
	}

	seen := make(map[string]struct{}, len(todos))
	for _, t := range todos {
		if _, dup := seen[t.ID]; dup {
			return &ValidationError{
				Kind:   KindDuplicateID,
				Detail: fmt.Sprintf("duplicate todo id %q", t.ID),
			}
		}
		seen[t.ID] = struct{}{}
	}

	var inProgress []string
	for _, t := range todos {
		if t.Status == StatusInProgress {
			inProgress = append(inProgress, t.ID)
		}
	}
	if len(inProgress) > 1 {
		return &ValidationError{
			Kind: KindMultipleInProgress,
			Detail: fmt.Sprintf("only one todo may be in_progress, found %d: %s",
				len(inProgress), strings.Join(inProgress, ", ")),
		}
	}

	return nil
}
