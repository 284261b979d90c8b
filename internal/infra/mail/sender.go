package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/logizar/logizar-crm/internal/entity"
	"github.com/logizar/logizar-crm/internal/infra/queue"
)

const leadNotificationTemplate = `
<h2>Nuevo lead desde el formulario web</h2>
<p><strong>Nombre:</strong> {{.FullName}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Teléfono:</strong> {{.Phone}}</p>
{{if .Company}}<p><strong>Empresa:</strong> {{.Company}}</p>{{end}}
<p><strong>Fuente:</strong> {{.Source}}</p>
{{if .Notes}}<p><strong>Mensaje:</strong> {{.Notes}}</p>{{end}}
<p>Entró al pipeline en la etapa Nuevo. Conviene contactarlo hoy.</p>
`

func NewEmailSender(host string, port int, user, password, salesInbox string) *EmailSender {
	return &EmailSender{
		Host:       host,
		Port:       port,
		User:       user,
		Password:   password,
		SalesInbox: salesInbox,
	}
}

// SendLeadNotification avisa a la casilla de ventas que entró un lead
// por el formulario público.
func (s *EmailSender) SendLeadNotification(payload queue.LeadCapturedPayload) error {
	data := LeadNotificationData{
		FullName: payload.FullName,
		Email:    payload.Email,
		Phone:    payload.Phone,
		Company:  payload.Company,
		Source:   entity.SourceLabel(payload.Source),
		Notes:    payload.Notes,
	}

	t, err := template.New("lead-notification").Parse(leadNotificationTemplate)
	if err != nil {
		return fmt.Errorf("error al armar el template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("error al procesar el template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "no-responder@logizar.com")
	m.SetHeader("To", s.SalesInbox)
	m.SetHeader("Subject", fmt.Sprintf("Nuevo lead: %s", payload.FullName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error al enviar el email SMTP: %w", err)
	}

	return nil
}
