package Models

type EmailConfig struct {
	SMTPServer   string
	SMTPPort     int
	Username     string
	Password     string
	FromEmail    string
	FromName     string
	TLSEnabled   bool
	SkipTLSCheck bool
}

type EmailMessage struct {
	To      []string
	CC      []string
	Subject string
	Body    string
	IsHTML  bool
}
