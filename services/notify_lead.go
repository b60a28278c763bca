package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rpupo63/diaver-site-backend/config"
	"github.com/rpupo63/diaver-site-backend/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// LeadNotifier tells staff about new contact requests by email and SMS.
// Either channel is skipped when it has no sender or no recipients.
type LeadNotifier struct {
	email    *EmailSender
	emailTo  []string
	sms      *SMSSender
	smsTo    []string
	maxInFly int
}

func NewLeadNotifier(email *EmailSender, emailTo []string, sms *SMSSender, smsTo []string) *LeadNotifier {
	return &LeadNotifier{email: email, emailTo: emailTo, sms: sms, smsTo: smsTo, maxInFly: 4}
}

// NewLeadNotifierFromConfig builds the channels whose credentials are present.
func NewLeadNotifierFromConfig(c map[string]string) *LeadNotifier {
	var email *EmailSender
	if key := config.GetString(c, "RESEND_API_KEY", ""); key != "" {
		from := config.GetString(c, "RESEND_FROM_EMAIL", "")
		if from == "" {
			log.Warn().Msg("RESEND_API_KEY is set but RESEND_FROM_EMAIL is empty, email notifications disabled")
		} else {
			email = NewEmailSender(key, from).WithBaseURL(config.GetString(c, "RESEND_BASE_URL", DefaultResendBaseURL))
		}
	}

	var sms *SMSSender
	sid := config.GetString(c, "TWILIO_ACCOUNT_SID", "")
	token := config.GetString(c, "TWILIO_AUTH_TOKEN", "")
	from := config.GetString(c, "TWILIO_FROM_NUMBER", "")
	if sid != "" && token != "" && from != "" {
		sms = NewSMSSender(sid, token, from)
	}

	n := NewLeadNotifier(email, config.GetStrings(c, "LEAD_NOTIFY_EMAILS", nil), sms, config.GetStrings(c, "LEAD_NOTIFY_PHONES", nil))
	log.Info().Bool("email", n.emailEnabled()).Bool("sms", n.smsEnabled()).Msg("Lead notifications configured")
	return n
}

func (n *LeadNotifier) emailEnabled() bool {
	return n != nil && n.email != nil && len(n.emailTo) > 0
}

func (n *LeadNotifier) smsEnabled() bool {
	return n != nil && n.sms != nil && len(n.smsTo) > 0
}

// Enabled reports whether at least one channel would send something.
func (n *LeadNotifier) Enabled() bool {
	return n.emailEnabled() || n.smsEnabled()
}

// NotifyLead sends every configured notification concurrently. Every
// channel is attempted; the first failure is returned after all finish.
func (n *LeadNotifier) NotifyLead(ctx context.Context, lead models.Lead) error {
	if !n.Enabled() {
		return nil
	}

	var g errgroup.Group
	g.SetLimit(n.maxInFly)

	if n.emailEnabled() {
		g.Go(func() error {
			if err := n.email.Send(ctx, LeadEmailSubject(lead), LeadEmailBody(lead), n.emailTo); err != nil {
				log.Error().Err(err).Int64("leadId", lead.ID).Msg("Failed to email lead notification")
				return err
			}
			return nil
		})
	}

	if n.smsEnabled() {
		text := LeadSMSText(lead)
		for _, phone := range n.smsTo {
			g.Go(func() error {
				if err := n.sms.Send(phone, text); err != nil {
					log.Error().Err(err).Int64("leadId", lead.ID).Msg("Failed to text lead notification")
					return err
				}
				return nil
			})
		}
	}

	return g.Wait()
}

func LeadEmailSubject(lead models.Lead) string {
	return fmt.Sprintf("Новая заявка с сайта: %s", lead.Name)
}

// LeadEmailBody renders the lead as a small HTML table.
func LeadEmailBody(lead models.Lead) string {
	rows := [][2]string{
		{"Имя", lead.Name},
		{"Email", lead.Email},
		{"Телефон", lead.Phone},
		{"Компания", lead.Company},
		{"Услуга", lead.Service},
		{"Сообщение", lead.Message},
		{"Дата", lead.Date.Format("02.01.2006 15:04")},
	}

	var b strings.Builder
	b.WriteString("<h2>Новая заявка</h2><table>")
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		fmt.Fprintf(&b, "<tr><th align=\"left\">%s</th><td>%s</td></tr>", row[0], html.EscapeString(row[1]))
	}
	b.WriteString("</table>")
	return b.String()
}

// LeadSMSText is a one-line summary that fits a couple of SMS segments.
func LeadSMSText(lead models.Lead) string {
	parts := []string{"Новая заявка: " + lead.Name}
	if lead.Phone != "" {
		parts = append(parts, lead.Phone)
	}
	parts = append(parts, lead.Email)
	if lead.Service != "" {
		parts = append(parts, lead.Service)
	}
	return strings.Join(parts, ", ")
}
