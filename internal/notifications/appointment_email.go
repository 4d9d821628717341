package notifications

import (
	"bytes"
	"html/template"

	"roofingcity-backend/internal/models"
	"roofingcity-backend/internal/schedule"
)

const appointmentConfirmationTemplate = `<!DOCTYPE html>
<html>
<body>
  <p>Hi {{.Name}},</p>
  <p>We received your appointment request. Here are the details:</p>
  <ul>
    <li>Service: {{.Service}}</li>
    <li>Date: {{.Date}}</li>
    <li>Time: {{.Time}}</li>
    <li>Reference number: {{.AppointmentID}}</li>
  </ul>
  <p>We'll contact you within 24 hours to confirm the details. If anything
  changes in the meantime, call us at {{.BusinessPhone}}.</p>
  <p>{{.BusinessName}}</p>
</body>
</html>`

var appointmentConfirmationTmpl = template.Must(template.New("appointment_confirmation").Parse(appointmentConfirmationTemplate))

type appointmentConfirmationData struct {
	Name          string
	Service       string
	Date          string
	Time          string
	AppointmentID string
	BusinessName  string
	BusinessPhone string
}

func buildAppointmentConfirmationHTML(appointment models.Appointment, businessName, businessPhone string) (string, error) {
	data := appointmentConfirmationData{
		Name:          appointment.Name,
		Service:       appointment.Service,
		Date:          schedule.DateLabel(appointment.ScheduledAt),
		Time:          schedule.TimeLabel(appointment.ScheduledAt),
		AppointmentID: appointment.ID,
		BusinessName:  businessName,
		BusinessPhone: businessPhone,
	}
	var buf bytes.Buffer
	if err := appointmentConfirmationTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
