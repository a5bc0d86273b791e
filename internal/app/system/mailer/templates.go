// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/manojdintakurti/hokie-event-sphere/internal/domain/models"
)

// RSVPEmailData holds data for the RSVP confirmation templates.
type RSVPEmailData struct {
	SiteName       string
	AttendeeName   string
	AttendeeEmail  string
	AttendeePhone  string
	EventTitle     string
	EventDate      string // pre-formatted, e.g. "Friday, March 14th, 2026"
	EventTimeRange string // e.g. "6:00 PM - 9:00 PM"
	Venue          string
	FeeLine        string // empty when the event is free
	Description    template.HTML
	OrganizerEmail string
	EventLink      string
	Year           int
}

// BuildRSVPConfirmation creates the confirmation email for a recorded RSVP.
// Event descriptions are sanitized at ingest, so embedding them as HTML
// here is safe.
func BuildRSVPConfirmation(siteName, frontendURL string, ev *models.Event, rsvp models.RSVP) Email {
	data := RSVPEmailData{
		SiteName:       siteName,
		AttendeeName:   rsvp.Name,
		AttendeeEmail:  rsvp.Email,
		AttendeePhone:  rsvp.Phone,
		EventTitle:     ev.Title,
		EventDate:      FormatEventDate(ev.StartDate),
		EventTimeRange: FormatEventTime(ev.StartTime) + " - " + FormatEventTime(ev.EndTime),
		Venue:          ev.Venue,
		Description:    template.HTML(ev.Description),
		OrganizerEmail: ev.OrganizerEmail,
		EventLink:      frontendURL + "/events/" + ev.ID.Hex(),
		Year:           rsvp.CreatedAt.Year(),
	}
	if ev.RegistrationFee != nil && *ev.RegistrationFee > 0 {
		data.FeeLine = fmt.Sprintf("$%.2f", *ev.RegistrationFee)
	}

	return Email{
		To:       rsvp.Email,
		Subject:  fmt.Sprintf("RSVP Confirmation - %s", ev.Title),
		TextBody: buildRSVPText(data),
		HTMLBody: buildRSVPHTML(data),
	}
}

func buildRSVPText(data RSVPEmailData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Thank you for your RSVP, %s!\n\n", data.AttendeeName)
	buf.WriteString("Your registration for the following event has been confirmed:\n\n")
	fmt.Fprintf(&buf, "%s\n", data.EventTitle)
	fmt.Fprintf(&buf, "Date: %s\n", data.EventDate)
	fmt.Fprintf(&buf, "Time: %s\n", data.EventTimeRange)
	fmt.Fprintf(&buf, "Location: %s\n", data.Venue)
	if data.FeeLine != "" {
		fmt.Fprintf(&buf, "Registration Fee: %s\n", data.FeeLine)
	}
	fmt.Fprintf(&buf, "\nView the event: %s\n\n", data.EventLink)
	fmt.Fprintf(&buf, "Questions? Contact the organizer at %s.\n", data.OrganizerEmail)
	return buf.String()
}

func buildRSVPHTML(data RSVPEmailData) string {
	tmpl := template.Must(template.New("rsvp_confirmation").Parse(rsvpHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const rsvpHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>RSVP Confirmation</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background-color: #622D87; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
    .content { background-color: #ffffff; padding: 20px; border-radius: 0 0 5px 5px; border: 1px solid #e0e0e0; }
    .event-details { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; border-left: 4px solid #622D87; }
    .button { display: inline-block; padding: 12px 28px; background-color: #622D87; color: #ffffff; text-decoration: none; border-radius: 5px; }
    .footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666666; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>RSVP Confirmation</h1>
    </div>
    <div class="content">
      <h2>Thank you for your RSVP, {{.AttendeeName}}!</h2>
      <p>Your registration for the following event has been confirmed:</p>

      <div class="event-details">
        <h3>{{.EventTitle}}</h3>
        <p><strong>&#128197; Date:</strong> {{.EventDate}}</p>
        <p><strong>&#9200; Time:</strong> {{.EventTimeRange}}</p>
        <p><strong>&#128205; Location:</strong> {{.Venue}}</p>
        {{if .FeeLine}}<p><strong>&#128176; Registration Fee:</strong> {{.FeeLine}}</p>{{end}}
      </div>

      <h3>Event Description:</h3>
      <p>{{.Description}}</p>

      <div class="event-details">
        <h3>Your RSVP Details:</h3>
        <p><strong>Name:</strong> {{.AttendeeName}}</p>
        <p><strong>Email:</strong> {{.AttendeeEmail}}</p>
        {{if .AttendeePhone}}<p><strong>Phone:</strong> {{.AttendeePhone}}</p>{{end}}
      </div>

      <p>If you need to make any changes to your RSVP or have questions, please contact the event organizer at {{.OrganizerEmail}}</p>

      <div style="text-align: center;">
        <a href="{{.EventLink}}" class="button">View Event Details</a>
      </div>
    </div>
    <div class="footer">
      <p>This is an automated message from {{.SiteName}}</p>
      <p>&copy; {{.Year}} {{.SiteName}}. All rights reserved.</p>
    </div>
  </div>
</body>
</html>`
