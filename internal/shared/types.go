package shared

// Asynq task types
const (
	TypeSweepOrphanImages  = "image:sweep_orphans"
	TypeJournalMemberAdded = "journal:member_added"
)

// Queue names
const (
	QueueDefault     = "default"
	QueueLow         = "low"
	QueueMaintenance = "maintenance"
)

// SweepOrphansPayload overrides the configured retention when non-zero.
type SweepOrphansPayload struct {
	RetentionSeconds int64 `json:"retentionSeconds,omitempty"`
}

// MemberAddedPayload is sent to the new member.
type MemberAddedPayload struct {
	JournalID   string `json:"journalId"`
	JournalName string `json:"journalName"`
	JournalSlug string `json:"journalSlug"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	AddedBy     string `json:"addedBy"`
	Role        string `json:"role"`
}
