package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"fleetreserve/internal/config"
	"fleetreserve/internal/db"
)

const notifyTimeLayout = "02 Jan 2006 15:04 MST"

// NotifyService sends best-effort reservation and fleet notifications.
// Everything here is fire-and-forget: a failed email or SMS is logged,
// never surfaced to the request that triggered it.
type NotifyService struct {
	cfg *config.Config
}

func NewNotifyService(cfg *config.Config) *NotifyService {
	return &NotifyService{cfg: cfg}
}

func (n *NotifyService) ReservationCreated(res *db.Reservation) {
	n.sendReservationUpdate(res, "confirmed")
}

func (n *NotifyService) ReservationCancelled(res *db.Reservation) {
	n.sendReservationUpdate(res, "cancelled")
}

func (n *NotifyService) sendReservationUpdate(res *db.Reservation, status string) {
	subject := fmt.Sprintf("Your vehicle reservation is %s - %s %s", status, res.VehicleMake, res.VehicleModel)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour reservation has been %s.\n\n"+
			"Vehicle: %s %s (%s)\n"+
			"From: %s\n"+
			"To: %s\n"+
			"Destination: %s\n\n"+
			"FleetReserve",
		res.UserFirstName, status,
		res.VehicleMake, res.VehicleModel, res.VehiclePlate,
		res.StartTime.UTC().Format(notifyTimeLayout),
		res.EndTime.UTC().Format(notifyTimeLayout),
		res.Destination,
	)

	if err := n.SendEmail(res.UserEmail, res.UserFirstName+" "+res.UserLastName, subject, body); err != nil {
		log.Printf("reservation %d: failed to send %s email to %s: %v", res.ID, status, res.UserEmail, err)
	}

	if res.UserPhone != nil && *res.UserPhone != "" {
		sms := fmt.Sprintf("FleetReserve: your reservation of %s (%s) has been %s. Pickup: %s.",
			res.VehicleModel, res.VehiclePlate, status,
			res.StartTime.UTC().Format("02/01 15:04"))
		if err := n.SendSMS(*res.UserPhone, sms); err != nil {
			log.Printf("reservation %d: failed to send %s SMS to %s: %v", res.ID, status, *res.UserPhone, err)
		}
	}
}

// SendInspectionSummary mails fleet administrators a list of vehicles
// with inspections or vignettes expiring soon.
func (n *NotifyService) SendInspectionSummary(vehicles []db.Vehicle, recipients []string) {
	if len(vehicles) == 0 || len(recipients) == 0 {
		return
	}

	var b strings.Builder
	b.WriteString("The following vehicles have inspections or vignettes expiring soon:\n\n")
	for i := range vehicles {
		v := &vehicles[i]
		b.WriteString(fmt.Sprintf("- %s %s (%s):", v.Make, v.Model, v.LicensePlate))
		appendExpiry(&b, "technical inspection", v.TechnicalInspectionExpiryDate)
		appendExpiry(&b, "emission inspection", v.EmissionInspectionExpiryDate)
		appendExpiry(&b, "highway vignette", v.HighwayVignetteExpiryDate)
		b.WriteString("\n")
	}

	subject := fmt.Sprintf("Fleet inspection reminder: %d vehicle(s) need attention", len(vehicles))
	for _, email := range recipients {
		if err := n.SendEmail(email, "", subject, b.String()); err != nil {
			log.Printf("failed to send inspection summary to %s: %v", email, err)
		}
	}
}

func appendExpiry(b *strings.Builder, label string, date *time.Time) {
	if date != nil {
		b.WriteString(fmt.Sprintf(" %s expires %s;", label, date.Format("2006-01-02")))
	}
}

func (n *NotifyService) SendEmail(toEmail, toName, subject, body string) error {
	if n.cfg.SendGridAPIKey == "" || n.cfg.SendGridFromEmail == "" {
		log.Printf("SendGrid not configured, skipping email to %s", toEmail)
		return nil
	}

	from := mail.NewEmail(n.cfg.SendGridFromName, n.cfg.SendGridFromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(n.cfg.SendGridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("SendGrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (n *NotifyService) SendSMS(toNumber, messageBody string) error {
	if n.cfg.TwilioAccountSID == "" || n.cfg.TwilioAuthToken == "" || n.cfg.TwilioFromNumber == "" {
		log.Printf("Twilio not configured, skipping SMS to %s", toNumber)
		return nil
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: n.cfg.TwilioAccountSID,
		Password: n.cfg.TwilioAuthToken,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(n.cfg.TwilioFromNumber)
	params.SetBody(messageBody)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}
