package mail

type FollowUpEmailData struct {
	Owner           string
	LeadName        string
	Company         string
	DaysSince       int
	SuggestedAction string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}
