package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var interviewTemplate = template.Must(template.New("interview").Parse(`
<div style="font-family: Arial; line-height: 1.6; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #10b981;">Interview Scheduled</h2>
  <p>Dear <b>{{.UserName}}</b>,</p>

  <p>Your application for <b>{{.JobTitle}}</b> at <b>{{.HospitalName}}</b>
  has been approved.</p>

  <p><b>Interview Date:</b> {{.InterviewDate}}</p>

  <p><b>Contact Person:</b><br/>
  {{.PersonName}}<br/>
  {{.PersonEmail}}</p>

  <p>Best of luck!<br/>DocSpace Team</p>
</div>
`))

var rejectionTemplate = template.Must(template.New("rejection").Parse(`
<div style="font-family: Arial; line-height: 1.6; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #ef4444;">Application Update</h2>
  <p>Dear <b>{{.UserName}}</b>,</p>

  <p>Thank you for your interest in the <b>{{.JobTitle}}</b> position at <b>{{.HospitalName}}</b>.</p>

  <p>After careful consideration, we regret to inform you that we will not be moving forward with your application at this time.</p>

  <p>We appreciate the time you took to apply and encourage you to explore other opportunities on DocSpace.</p>

  <p>Best regards,<br/>{{.HospitalName}}<br/>DocSpace Team</p>
</div>
`))

// InterviewEmail holds the fields rendered into the interview-scheduled mail.
type InterviewEmail struct {
	UserName      string
	JobTitle      string
	HospitalName  string
	InterviewDate string
	PersonName    string
	PersonEmail   string
}

// RejectionEmail holds the fields rendered into the application-rejected mail.
type RejectionEmail struct {
	UserName     string
	JobTitle     string
	HospitalName string
}

func renderInterview(data InterviewEmail) (subject, html string, err error) {
	var buf bytes.Buffer
	if err := interviewTemplate.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return fmt.Sprintf("Interview Scheduled – %s", data.HospitalName), buf.String(), nil
}

func renderRejection(data RejectionEmail) (subject, html string, err error) {
	var buf bytes.Buffer
	if err := rejectionTemplate.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return fmt.Sprintf("Application Update – %s", data.HospitalName), buf.String(), nil
}
