package notify

import (
	"HospitalAdmin/config"
	"HospitalAdmin/models"
	"context"
	"fmt"
	"html"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// Mailer sends patient e-mails over SMTP. A Mailer without a host is
// disabled and sends nothing.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	send   func(m *gomail.Message) error
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	m := &Mailer{from: cfg.User}
	if cfg.Host == "" {
		return m
	}
	m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	m.send = func(msg *gomail.Message) error { return m.dialer.DialAndSend(msg) }
	return m
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.send != nil
}

// SendAppointmentConfirmation mails the patient the details of a scheduled
// appointment. It runs in the background and only logs failures.
func (m *Mailer) SendAppointmentConfirmation(ctx context.Context, patient models.Patient, appointment models.Appointment) {
	if !m.Enabled() || patient.Email == nil || *patient.Email == "" {
		return
	}
	msg := appointmentMessage(m.from, patient, appointment)
	go func() {
		if err := m.send(msg); err != nil {
			log.Error().Err(err).Str("appointment_id", appointment.ID).Msg("failed to send appointment confirmation")
			return
		}
		log.Info().Str("appointment_id", appointment.ID).Msg("appointment confirmation sent")
	}()
}

func appointmentMessage(from string, patient models.Patient, appointment models.Appointment) *gomail.Message {
	when := appointment.AppointmentDate.UTC().Format("Monday, 2 January 2006 at 15:04 MST")
	doctor := "our medical team"
	if appointment.DoctorName != nil && *appointment.DoctorName != "" {
		doctor = *appointment.DoctorName
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", *patient.Email)
	m.SetHeader("Subject", "Appointment Confirmation")

	text := fmt.Sprintf("Dear %s,\n\nYour appointment with %s is scheduled for %s.\nPurpose: %s\n",
		patient.FullName(), doctor, when, appointment.Purpose)
	m.SetBody("text/plain", text)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Appointment Confirmation</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4;">
	<div style="background-color: #ffffff; margin: 20px auto; padding: 20px; border-radius: 8px; max-width: 600px;">
		<h1 style="color: #333333;">Appointment Confirmation</h1>
		<p>Dear %s,</p>
		<p>Your appointment with <strong>%s</strong> is scheduled for <strong>%s</strong>.</p>
		<p>Purpose: %s</p>
	</div>
</body>
</html>`, html.EscapeString(patient.FullName()), html.EscapeString(doctor), when, html.EscapeString(appointment.Purpose))
	m.AddAlternative("text/html", htmlBody)
	return m
}
