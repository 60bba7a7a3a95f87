// internal/services/notification/templates.go
package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"internship-recommender/internal/models"
)

const (
	SubjectOTP          = "Your Verification Code - PM Internship Recommender"
	subjectConfirmation = "Application Confirmation - %s"

	// DisplayTimeLayout renders e.g. "March 14, 2025 at 09:26 AM".
	DisplayTimeLayout = "January 02, 2006 at 03:04 PM"

	notAvailable = "N/A"
)

var otpTemplate = template.Must(template.New("otp").Parse(`<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
    <h1 style="margin: 0; font-size: 28px;">PM Internship Recommender</h1>
    <p style="margin: 10px 0 0 0; opacity: 0.9;">Your verification code is ready</p>
  </div>
  <div style="background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px;">
    <h2 style="color: #333; margin-top: 0;">Email Verification</h2>
    <p style="color: #666; line-height: 1.6;">Thank you for signing up! To complete your registration, please use the verification code below:</p>
    <div style="background: white; border: 2px dashed #667eea; border-radius: 8px; padding: 20px; text-align: center; margin: 20px 0;">
      <div style="font-size: 32px; font-weight: bold; color: #667eea; letter-spacing: 5px; font-family: monospace;">{{.Code}}</div>
    </div>
    <p style="color: #666; font-size: 14px;"><strong>Important:</strong> This code will expire in {{.ExpiresInMinutes}} minutes. If you didn't request this code, please ignore this email.</p>
    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee;">
      <p style="color: #999; font-size: 12px; margin: 0;">This is an automated message. Please do not reply to this email.</p>
    </div>
  </div>
</body>
</html>`))

var confirmationEmailTemplate = template.Must(template.New("confirmation").Parse(`<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
    <h1 style="margin: 0; font-size: 28px;">Application Received!</h1>
    <p style="margin: 10px 0 0 0; opacity: 0.9;">Your internship application has been submitted</p>
  </div>
  <div style="background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px;">
    <h2 style="color: #333; margin-top: 0;">Application Details</h2>
    <div style="background: white; padding: 20px; border-radius: 8px; margin: 20px 0;">
      <p style="margin: 5px 0;"><strong>Application ID:</strong> {{.ApplicationID}}</p>
      <p style="margin: 5px 0;"><strong>Position:</strong> {{.InternshipTitle}}</p>
      <p style="margin: 5px 0;"><strong>Company:</strong> {{.CompanyName}}</p>
      <p style="margin: 5px 0;"><strong>Status:</strong> <span style="color: #28a745;">{{.Status}}</span></p>
      <p style="margin: 5px 0;"><strong>Submitted:</strong> {{.Submitted}}</p>
    </div>
    <p style="color: #666; line-height: 1.6;">Thank you for your interest in this position. We have received your application and will review it carefully. You will be contacted within 5-7 business days regarding the next steps.</p>
    <div style="background: #e3f2fd; border-left: 4px solid #2196f3; padding: 15px; margin: 20px 0;">
      <p style="margin: 0; color: #1976d2;"><strong>What's Next?</strong></p>
      <ul style="margin: 10px 0; color: #1976d2;">
        <li>Our team will review your application</li>
        <li>Shortlisted candidates will be contacted for interviews</li>
        <li>You'll receive updates via email</li>
      </ul>
    </div>
    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee;">
      <p style="color: #999; font-size: 12px; margin: 0;">This is an automated message. Please do not reply to this email.</p>
    </div>
  </div>
</body>
</html>`))

var confirmationDocumentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Application Confirmation - {{.ApplicationID}}</title>
  <style>
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; background: #f8f9fa; }
    .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center; }
    .content { background: white; padding: 30px; border-radius: 0 0 10px 10px; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); }
    .success-icon { font-size: 48px; margin-bottom: 10px; }
    .application-details { background: #f8f9fa; border-left: 4px solid #007bff; padding: 20px; margin: 20px 0; border-radius: 5px; }
    .detail-row { display: flex; justify-content: space-between; margin: 10px 0; padding: 5px 0; border-bottom: 1px solid #eee; }
    .detail-label { font-weight: bold; color: #666; }
    .detail-value { color: #333; }
    .status { background: #d4edda; color: #155724; padding: 5px 10px; border-radius: 15px; font-size: 12px; font-weight: bold; }
    .next-steps { background: #fff3cd; border: 1px solid #ffeaa7; padding: 20px; border-radius: 5px; margin: 20px 0; }
    .footer { text-align: center; margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; color: #666; font-size: 12px; }
    @media print {
      body { background: white; }
      .header { background: #667eea !important; -webkit-print-color-adjust: exact; }
    }
  </style>
</head>
<body>
  <div class="header">
    <div class="success-icon">&#x2705;</div>
    <h1>Application Confirmation</h1>
    <p>Your internship application has been successfully submitted</p>
  </div>
  <div class="content">
    <h2>Application Details</h2>
    <div class="application-details">
      <div class="detail-row"><span class="detail-label">Application ID:</span><span class="detail-value">{{.ApplicationID}}</span></div>
      <div class="detail-row"><span class="detail-label">Position:</span><span class="detail-value">{{.InternshipTitle}}</span></div>
      <div class="detail-row"><span class="detail-label">Company:</span><span class="detail-value">{{.CompanyName}}</span></div>
      <div class="detail-row"><span class="detail-label">Applicant:</span><span class="detail-value">{{.ApplicantName}}</span></div>
      <div class="detail-row"><span class="detail-label">Email:</span><span class="detail-value">{{.ApplicantEmail}}</span></div>
      <div class="detail-row"><span class="detail-label">Phone:</span><span class="detail-value">{{.ApplicantPhone}}</span></div>
      <div class="detail-row"><span class="detail-label">Submitted:</span><span class="detail-value">{{.Submitted}}</span></div>
      <div class="detail-row"><span class="detail-label">Status:</span><span class="detail-value"><span class="status">{{.Status}}</span></span></div>
    </div>
    <div class="next-steps">
      <h3>What happens next?</h3>
      <ul>
        <li>Our team will review your application within 5-7 business days</li>
        <li>Shortlisted candidates will be contacted for interviews</li>
        <li>You'll receive updates via email regarding your application status</li>
        <li>Keep this confirmation for your records</li>
      </ul>
    </div>
    <p style="margin-top: 30px; font-size: 14px; color: #666;"><strong>Important:</strong> This is an automated confirmation. Please do not reply to this document. If you have any questions, please contact our support team.</p>
  </div>
  <div class="footer">
    <p>Generated on {{.Submitted}}</p>
    <p>PM Internship Recommender System</p>
  </div>
</body>
</html>`))

type otpView struct {
	Code             string
	ExpiresInMinutes int
}

type confirmationView struct {
	ApplicationID   string
	InternshipTitle string
	CompanyName     string
	ApplicantName   string
	ApplicantEmail  string
	ApplicantPhone  string
	Status          string
	Submitted       string
}

func newConfirmationView(req models.ConfirmationRequest, now time.Time) confirmationView {
	return confirmationView{
		ApplicationID:   orNA(req.ApplicationID),
		InternshipTitle: orNA(req.InternshipTitle),
		CompanyName:     orNA(req.CompanyName),
		ApplicantName:   orNA(req.ApplicantName),
		ApplicantEmail:  orNA(req.ApplicantEmail),
		ApplicantPhone:  orNA(req.ApplicantPhone),
		Status:          models.ApplicationStatusUnderReview,
		Submitted:       now.Format(DisplayTimeLayout),
	}
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// RenderOTP builds the verification code email.
func RenderOTP(to, code string, ttl time.Duration) (models.Email, error) {
	var buf bytes.Buffer
	if err := otpTemplate.Execute(&buf, otpView{Code: code, ExpiresInMinutes: int(ttl / time.Minute)}); err != nil {
		return models.Email{}, fmt.Errorf("render otp email: %w", err)
	}
	return models.Email{To: to, Subject: SubjectOTP, HTML: buf.String()}, nil
}

// RenderConfirmation builds the application confirmation email.
func RenderConfirmation(req models.ConfirmationRequest, now time.Time) (models.Email, error) {
	var buf bytes.Buffer
	if err := confirmationEmailTemplate.Execute(&buf, newConfirmationView(req, now)); err != nil {
		return models.Email{}, fmt.Errorf("render confirmation email: %w", err)
	}
	return models.Email{
		To:      req.ApplicantEmail,
		Subject: fmt.Sprintf(subjectConfirmation, req.InternshipTitle),
		HTML:    buf.String(),
	}, nil
}

// RenderConfirmationDocument builds the standalone HTML document offered for
// download. Absent fields print as N/A.
func RenderConfirmationDocument(req models.ConfirmationRequest, now time.Time) (string, error) {
	var buf bytes.Buffer
	if err := confirmationDocumentTemplate.Execute(&buf, newConfirmationView(req, now)); err != nil {
		return "", fmt.Errorf("render confirmation document: %w", err)
	}
	return buf.String(), nil
}

// DocumentFilename is the attachment name for the confirmation document.
func DocumentFilename(applicationID string) string {
	if applicationID == "" {
		applicationID = "unknown"
	}
	return fmt.Sprintf("application-confirmation-%s.html", applicationID)
}
