// internal/pkg/email/service.go
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/skatious/storefront-backend/internal/config"
	"github.com/skatious/storefront-backend/internal/domain/order"
)

// Service sends transactional email over SMTP
type Service struct {
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new email service
func NewService(cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		config: cfg,
		logger: logger,
	}
}

// message is a single outgoing email
type message struct {
	To      []string
	Subject string
	HTML    string
}

func (s *Service) send(msg *message) error {
	if s.config.Email.SMTPHost == "" {
		s.logger.WithFields(logrus.Fields{
			"to":      strings.Join(msg.To, ", "),
			"subject": msg.Subject,
		}).Info("SMTP not configured, skipping email")
		return nil
	}

	from := fmt.Sprintf("%s <%s>", s.config.Email.FromName, s.config.Email.FromEmail)

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(msg.To, ", ")))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(msg.HTML)

	addr := fmt.Sprintf("%s:%d", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	auth := smtp.PlainAuth("", s.config.Email.SMTPUser, s.config.Email.SMTPPass, s.config.Email.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.Email.FromEmail, msg.To, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

var passwordResetTemplate = template.Must(template.New("reset").Parse(`
<html>
<body style="font-family: sans-serif;">
  <h2>Reset your password</h2>
  <p>Hi {{.Name}},</p>
  <p>We received a request to reset your SKATIOUS account password.
     Use the link below within the next hour:</p>
  <p><a href="{{.ResetURL}}">Reset password</a></p>
  <p>If you did not request this, you can ignore this email.</p>
</body>
</html>`))

// SendPasswordReset sends the password reset link to the account owner
func (s *Service) SendPasswordReset(toEmail, name, token string) error {
	var body bytes.Buffer
	err := passwordResetTemplate.Execute(&body, map[string]string{
		"Name":     name,
		"ResetURL": fmt.Sprintf("%s/reset-password?token=%s", s.config.App.BaseURL, token),
	})
	if err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}

	return s.send(&message{
		To:      []string{toEmail},
		Subject: "Reset your SKATIOUS password",
		HTML:    body.String(),
	})
}

var orderConfirmationTemplate = template.Must(template.New("order").Parse(`
<html>
<body style="font-family: sans-serif;">
  <h2>Thanks for your order!</h2>
  <p>Hi {{.Name}},</p>
  <p>Your order <strong>{{.OrderNumber}}</strong> has been placed.</p>
  <table cellpadding="6">
    {{range .Items}}
    <tr><td>{{.Name}} ({{.Size}})</td><td>x{{.Quantity}}</td><td>&#8377;{{printf "%.2f" .Total}}</td></tr>
    {{end}}
  </table>
  {{if .DiscountCode}}<p>Discount {{.DiscountCode}} ({{.DiscountPercentage}}%): &#8377;{{printf "%.2f" .DiscountAmount}}</p>{{end}}
  <p><strong>Total: &#8377;{{printf "%.2f" .Total}}</strong></p>
</body>
</html>`))

type confirmationItem struct {
	Name     string
	Size     string
	Quantity int
	Total    float64
}

// SendOrderConfirmation emails the order summary after checkout
func (s *Service) SendOrderConfirmation(ord *order.Order, name string) error {
	items := make([]confirmationItem, 0, len(ord.Items))
	for _, item := range ord.Items {
		items = append(items, confirmationItem{
			Name:     item.Name,
			Size:     item.Size,
			Quantity: item.Quantity,
			Total:    float64(item.TotalPrice) / 100,
		})
	}

	var body bytes.Buffer
	err := orderConfirmationTemplate.Execute(&body, map[string]interface{}{
		"Name":               name,
		"OrderNumber":        ord.OrderNumber,
		"Items":              items,
		"DiscountCode":       ord.DiscountCode,
		"DiscountPercentage": ord.DiscountPercentage,
		"DiscountAmount":     float64(ord.DiscountAmount) / 100,
		"Total":              ord.GetFormattedTotal(),
	})
	if err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}

	return s.send(&message{
		To:      []string{ord.Email},
		Subject: fmt.Sprintf("Order confirmed: %s", ord.OrderNumber),
		HTML:    body.String(),
	})
}
