package mail

type LeadNotificationData struct {
	FullName string
	Email    string
	Phone    string
	Company  string
	Source   string
	Notes    string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string

	// SalesInbox recibe los avisos de leads nuevos.
	SalesInbox string
}
