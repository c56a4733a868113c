package domain

import "fmt"

// Status is the declared lifecycle status of a proposal.
type Status string

const (
	// StatusDraft is the initial status of a new proposal.
	StatusDraft Status = "Draft"
	// StatusActive marks process proposals that are in continuous use.
	StatusActive Status = "Active"
	// StatusAccepted marks proposals approved but not yet completed.
	StatusAccepted Status = "Accepted"
	// StatusRejected marks proposals that were turned down.
	StatusRejected Status = "Rejected"
	// StatusWithdrawn marks proposals withdrawn by their authors.
	StatusWithdrawn Status = "Withdrawn"
	// StatusDeferred marks proposals postponed indefinitely.
	StatusDeferred Status = "Deferred"
	// StatusFinal marks completed proposals.
	StatusFinal Status = "Final"
	// StatusSuperseded marks proposals replaced by a newer one.
	StatusSuperseded Status = "Superseded"
)

// Statuses lists all valid statuses in display order.
// Grouped views and summary counts follow this order.
var Statuses = []Status{
	StatusDraft,
	StatusActive,
	StatusAccepted,
	StatusRejected,
	StatusWithdrawn,
	StatusDeferred,
	StatusFinal,
	StatusSuperseded,
}

// ParseStatus validates a raw status string from a header.
func ParseStatus(raw string) (Status, error) {
	for _, s := range Statuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", raw)
}

// successors describes the editorial status partial order:
// Draft fans out to the review outcomes, Accepted proceeds to
// completion or replacement. The pipeline never enforces transitions
// (that is an editorial concern); this exists for display tooling.
var successors = map[Status][]Status{
	StatusDraft:    {StatusAccepted, StatusRejected, StatusWithdrawn, StatusDeferred},
	StatusAccepted: {StatusFinal, StatusSuperseded},
}

// Successors returns the statuses a proposal may legally move to next.
// Terminal statuses return nil.
func (s Status) Successors() []Status {
	return successors[s]
}

// Kind is the proposal category.
type Kind string

const (
	// KindStandards is a standards-track proposal describing a new
	// feature or behavior.
	KindStandards Kind = "Standards Track"
	// KindInformational describes a design issue or guideline without
	// proposing a new feature.
	KindInformational Kind = "Informational"
	// KindProcess describes a process surrounding the project itself.
	KindProcess Kind = "Process"
)

// Kinds lists all valid kinds in display order.
var Kinds = []Kind{KindStandards, KindInformational, KindProcess}

// ParseKind validates a raw type string from a header.
func ParseKind(raw string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == raw {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown type %q", raw)
}
