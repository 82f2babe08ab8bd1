package mailer

import "embed"

const (
	FromName             = "Sportmap"
	maxRetries           = 3
	UserWelcomeTemplate  = "user_invitation.tmpl"
	ReportNoticeTemplate = "report_notification.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}
