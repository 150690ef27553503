package services

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/FamilyQT/initializers"
)

type EmailService struct {
	client *resend.Client
	from   string
}

var emailService *EmailService

// InitEmailService initializes the email service with Resend API
func InitEmailService() {
	apiKey := os.Getenv("RESEND_API_KEY")

	if apiKey == "" {
		initializers.Log.Warn("RESEND_API_KEY not set, weekly report emails are disabled")
		return
	}

	from := os.Getenv("REPORT_FROM")
	if from == "" {
		from = "FamilyQT <noreply@familyqt.app>"
	}

	emailService = &EmailService{
		client: resend.NewClient(apiKey),
		from:   from,
	}

	initializers.Log.Info("email service initialized with Resend")
}

// GetEmailService returns nil when no API key is configured.
func GetEmailService() *EmailService {
	return emailService
}

// ReportRecipients reads REPORT_RECIPIENTS, a comma separated address list.
func ReportRecipients() []string {
	var out []string
	for _, addr := range strings.Split(os.Getenv("REPORT_RECIPIENTS"), ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

var weeklyReportTemplate = template.Must(template.New("weekly").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, 'Apple SD Gothic Neo', sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #d97706;">가족 주간 리포트</h2>
  <p>{{.Start}} ~ {{.End}}</p>
  <p>전체 큐티 {{.Totals.QtTotal}}회 · 말씀 {{.Totals.BibleTotal}}장 · 새 기도제목 {{.Prayers.Total}}건</p>
  <table style="border-collapse: collapse; width: 100%;">
    <tr>
      <th style="text-align:left; border-bottom: 1px solid #ddd;">이름</th>
      <th style="border-bottom: 1px solid #ddd;">큐티</th>
      <th style="border-bottom: 1px solid #ddd;">말씀</th>
      <th style="border-bottom: 1px solid #ddd;">필사</th>
      <th style="border-bottom: 1px solid #ddd;">기록일</th>
    </tr>
    {{range .Rows}}
    <tr>
      <td>{{.UserName}}</td>
      <td style="text-align:center;">{{.QtTotal}}</td>
      <td style="text-align:center;">{{.BibleTotal}}</td>
      <td style="text-align:center;">{{.WritingTotal}}</td>
      <td style="text-align:center;">{{.RecordCount}}</td>
    </tr>
    {{end}}
  </table>
</body>
</html>`))

func RenderWeeklyReport(report WeeklyReport) (string, error) {
	var buf bytes.Buffer
	if err := weeklyReportTemplate.Execute(&buf, report); err != nil {
		return "", fmt.Errorf("render weekly report: %w", err)
	}
	return buf.String(), nil
}

func (s *EmailService) SendWeeklyReport(to []string, report WeeklyReport) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("email service not initialized")
	}
	if len(to) == 0 {
		return fmt.Errorf("no report recipients configured")
	}

	html, err := RenderWeeklyReport(report)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      to,
		Subject: fmt.Sprintf("[FamilyQT] 주간 리포트 %s ~ %s", report.Start, report.End),
		Html:    html,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	initializers.Log.Infow("sent weekly report", "recipients", len(to), "emailId", sent.Id)
	return nil
}
