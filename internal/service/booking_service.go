package service

import (
	"fmt"
	"net/url"

	"psidiario/internal/models"
)

// BookingLinks are the outbound channels for requesting an appointment.
type BookingLinks struct {
	WhatsAppURL  string `json:"whatsappUrl"`
	EmailAddress string `json:"emailAddress"`
	MailtoURL    string `json:"mailtoUrl"`
}

// BookingService builds the external booking links for the Agendamento
// screen. The channels themselves are outside this system; we only compose
// the URLs.
type BookingService struct {
	whatsAppURL  string
	emailAddress string
}

// NewBookingService returns a BookingService with the configured channels.
func NewBookingService(whatsAppURL, emailAddress string) *BookingService {
	return &BookingService{whatsAppURL: whatsAppURL, emailAddress: emailAddress}
}

// Links composes the booking links for the given user. The mailto URL
// carries a subject and body templated from the user's full name.
func (s *BookingService) Links(user models.User) BookingLinks {
	subject := fmt.Sprintf("Agendamento de Consulta - %s", user.FullName)
	body := fmt.Sprintf("Olá, gostaria de solicitar o agendamento de uma consulta.\n\nNome: %s", user.FullName)

	q := url.Values{}
	q.Set("subject", subject)
	q.Set("body", body)

	return BookingLinks{
		WhatsAppURL:  s.whatsAppURL,
		EmailAddress: s.emailAddress,
		MailtoURL:    fmt.Sprintf("mailto:%s?%s", s.emailAddress, q.Encode()),
	}
}
