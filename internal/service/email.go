package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"studiofin-backend/internal/domain"
)

type emailService struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

func NewEmailService(apiKey, fromName, fromAddress string) EmailService {
	return &emailService{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail(fromName, fromAddress),
	}
}

func (s *emailService) SendOverdueNotice(ctx context.Context, email, name string, bills []domain.BillRow) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nThe following bills are overdue:\n\n", name)
	for _, bill := range bills {
		fmt.Fprintf(&b, "  - %s: %s, due %s\n", bill.Description, bill.Amount.StringFixed(2), bill.DueDate.Format("2006-01-02"))
	}
	b.WriteString("\nPlease review them in the dashboard.\n\nBest regards,\nStudioFin")

	subject := fmt.Sprintf("Overdue bills notice (%d)", len(bills))
	to := sgmail.NewEmail(name, email)
	message := sgmail.NewSingleEmail(s.from, subject, to, b.String(), "")

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send overdue notice: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected overdue notice: status %d", resp.StatusCode)
	}
	return nil
}
