package ticket

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Ticket carries everything needed to render a confirmation for one paid
// booking.
type Ticket struct {
	PaymentID  uuid.UUID
	ShowtimeID uuid.UUID
	Email      *string
	MovieTitle string
	CinemaName string
	HallName   string
	StartsAt   time.Time
	EndsAt     time.Time
	Seats      []string
}

// Issuer generates the QR ticket image and emails the confirmation. Both are
// best-effort; settlement never depends on them.
type Issuer interface {
	Issue(ticket *Ticket)
}

type issuer struct {
	ticketCfg utils.TicketConfig
	emailCfg  utils.EmailConfig
	log       *zap.Logger
}

func NewIssuer(ticketCfg utils.TicketConfig, emailCfg utils.EmailConfig, log *zap.Logger) Issuer {
	return &issuer{
		ticketCfg: ticketCfg,
		emailCfg:  emailCfg,
		log:       log.With(zap.String("component", "ticket_issuer")),
	}
}

func (i *issuer) Issue(ticket *Ticket) {
	qrURL, err := i.writeQR(ticket)
	if err != nil {
		i.log.Error("Failed to generate ticket QR",
			zap.Error(err),
			zap.String("payment_id", ticket.PaymentID.String()),
		)
	}

	if ticket.Email == nil || i.emailCfg.Host == "" {
		return
	}

	if err := i.sendEmail(ticket, qrURL); err != nil {
		i.log.Error("Failed to send ticket email",
			zap.Error(err),
			zap.String("payment_id", ticket.PaymentID.String()),
		)
		return
	}

	i.log.Info("Ticket email sent",
		zap.String("payment_id", ticket.PaymentID.String()),
	)
}

func (i *issuer) writeQR(ticket *Ticket) (string, error) {
	if err := os.MkdirAll(i.ticketCfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create ticket dir: %w", err)
	}

	payload := fmt.Sprintf("ticket:%s:%s", ticket.PaymentID.String(), ticket.ShowtimeID.String())
	filename := ticket.PaymentID.String() + ".png"
	path := filepath.Join(i.ticketCfg.Dir, filename)

	if err := qrcode.WriteFile(payload, qrcode.Medium, 256, path); err != nil {
		return "", fmt.Errorf("write QR image: %w", err)
	}

	return i.ticketCfg.PublicURL + "/tickets/" + filename, nil
}

func (i *issuer) sendEmail(ticket *Ticket, qrURL string) error {
	var body strings.Builder
	body.WriteString("<h2>Your booking is confirmed</h2>")
	body.WriteString(fmt.Sprintf("<p><b>%s</b></p>", ticket.MovieTitle))
	body.WriteString(fmt.Sprintf("<p>%s — %s</p>", ticket.CinemaName, ticket.HallName))
	body.WriteString(fmt.Sprintf("<p>%s, %s - %s</p>",
		ticket.StartsAt.Format("Monday, 2 January 2006"),
		ticket.StartsAt.Format("15:04"),
		ticket.EndsAt.Format("15:04"),
	))
	body.WriteString(fmt.Sprintf("<p>Seats: %s</p>", strings.Join(ticket.Seats, ", ")))
	if qrURL != "" {
		body.WriteString(fmt.Sprintf(`<p><img src="%s" alt="ticket QR"/></p>`, qrURL))
	}
	body.WriteString(fmt.Sprintf("<p>Booking reference: %s</p>", ticket.PaymentID.String()))

	msg := gomail.NewMessage()
	msg.SetHeader("From", i.emailCfg.From)
	msg.SetHeader("To", *ticket.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Your tickets for %s", ticket.MovieTitle))
	msg.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(i.emailCfg.Host, i.emailCfg.Port, i.emailCfg.User, i.emailCfg.Password)
	return dialer.DialAndSend(msg)
}
