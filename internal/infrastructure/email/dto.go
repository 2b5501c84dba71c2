package email

// MemberAddedData is what the new journal member is told.
type MemberAddedData struct {
	Email       string
	Name        string
	JournalName string
	JournalURL  string
}

type EmailRequest struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}
