package application

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"internship-recommender/internal/common/config"
	"internship-recommender/internal/common/errors"
	"internship-recommender/internal/common/logger"
	"internship-recommender/internal/common/observability"
	"internship-recommender/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.Local)

func newTestService(t *testing.T, scheme string) *Service {
	svc := NewService(config.ApplicationsConfig{IDScheme: scheme}, logger.NewTestLogger(t), observability.Nop())
	svc.now = func() time.Time { return fixedNow }
	svc.newUUID = func() string { return "3f2b8c1a-0000-4000-8000-000000000000" }
	return svc
}

func decode(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var body map[string]interface{}
	require.NoError(t, dec.Decode(&body))
	return body
}

func validBody() string {
	return `{
		"internshipId": 101,
		"internshipTitle": "Data Analyst Intern",
		"companyName": "Acme",
		"fullName": "Asha Verma",
		"email": "asha@example.com",
		"phone": "9999999999",
		"coverLetter": "Hello",
		"resume": {"name": "asha.pdf"}
	}`
}

func TestSubmit_Success(t *testing.T) {
	svc := newTestService(t, config.IDSchemeTimestamp)

	app, err := svc.Submit(context.Background(), decode(t, validBody()))
	require.NoError(t, err)

	assert.Equal(t, "APP-101-092653", app.ApplicationID)
	assert.Equal(t, "Asha Verma", app.ApplicantName)
	assert.Equal(t, "asha@example.com", app.ApplicantEmail)
	assert.Equal(t, "9999999999", app.ApplicantPhone)
	assert.Equal(t, "asha.pdf", app.ResumeFileName)
	assert.Equal(t, "", app.PortfolioURL)
	assert.Equal(t, "2025-03-14T09:26:53.589793", app.SubmittedAt)
	assert.Equal(t, models.ApplicationStatusUnderReview, app.Status)

	out, err := json.Marshal(app)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"internshipId":101`)
}

func TestSubmit_StringInternshipIDEchoed(t *testing.T) {
	svc := newTestService(t, config.IDSchemeTimestamp)
	body := decode(t, validBody())
	body["internshipId"] = "INT-7"

	app, err := svc.Submit(context.Background(), body)
	require.NoError(t, err)
	assert.Equal(t, "INT-7", app.InternshipID)
	assert.Equal(t, "APP-INT-7-092653", app.ApplicationID)
}

func TestSubmit_UUIDScheme(t *testing.T) {
	svc := newTestService(t, config.IDSchemeUUID)

	app, err := svc.Submit(context.Background(), decode(t, validBody()))
	require.NoError(t, err)
	assert.Equal(t, "APP-101-3F2B8C1A", app.ApplicationID)
}

func TestSubmit_RequiredFieldsInOrder(t *testing.T) {
	svc := newTestService(t, config.IDSchemeTimestamp)

	tests := []struct {
		name   string
		mutate func(map[string]interface{})
		want   string
	}{
		{"everything missing", func(b map[string]interface{}) {
			for k := range b {
				delete(b, k)
			}
		}, "internshipId is required"},
		{"zero internship id", func(b map[string]interface{}) { b["internshipId"] = json.Number("0") }, "internshipId is required"},
		{"empty name", func(b map[string]interface{}) { b["fullName"] = "" }, "fullName is required"},
		{"null email", func(b map[string]interface{}) { b["email"] = nil }, "email is required"},
		{"phone and letter missing", func(b map[string]interface{}) {
			delete(b, "phone")
			delete(b, "coverLetter")
		}, "phone is required"},
		{"cover letter missing", func(b map[string]interface{}) { delete(b, "coverLetter") }, "coverLetter is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := decode(t, validBody())
			tt.mutate(body)

			_, err := svc.Submit(context.Background(), body)
			require.Error(t, err)
			stdErr, ok := err.(*errors.StandardError)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeValidationFailed, stdErr.Code)
			assert.Equal(t, tt.want, stdErr.Message)
		})
	}
}

func TestSubmit_NumericPhoneBecomesText(t *testing.T) {
	svc := newTestService(t, config.IDSchemeTimestamp)
	body := decode(t, validBody())
	body["phone"] = json.Number("12345")
	body["companyName"] = json.Number("42")

	app, err := svc.Submit(context.Background(), body)
	require.NoError(t, err)
	assert.Equal(t, "12345", app.ApplicantPhone)
	assert.Equal(t, "42", app.CompanyName)
	assert.Equal(t, float64(101), app.InternshipID)

	req, err := svc.Confirmation(decode(t, `{"applicationId":"APP-1-000000","applicantEmail":"a@example.com","applicantPhone":9876543210,"internshipTitle":"Intern","companyName":"Acme"}`), true)
	require.NoError(t, err)
	assert.Equal(t, "9876543210", req.ApplicantPhone)
}

func TestSubmit_RejectsWrongTypes(t *testing.T) {
	svc := newTestService(t, config.IDSchemeTimestamp)
	body := decode(t, validBody())
	body["resume"] = "asha.pdf"

	_, err := svc.Submit(context.Background(), body)
	require.Error(t, err)
	stdErr := err.(*errors.StandardError)
	assert.Equal(t, errors.ErrCodeApplicationInvalid, stdErr.Code)
	assert.Contains(t, stdErr.Details, "resume")
}

func TestConfirmation(t *testing.T) {
	svc := newTestService(t, config.IDSchemeTimestamp)
	full := `{"applicationId":"APP-1-000000","applicantEmail":"a@example.com","internshipTitle":"Intern","companyName":"Acme","applicantName":"Asha"}`

	req, err := svc.Confirmation(decode(t, full), true)
	require.NoError(t, err)
	assert.Equal(t, "APP-1-000000", req.ApplicationID)
	assert.Equal(t, "Asha", req.ApplicantName)

	_, err = svc.Confirmation(decode(t, `{"applicationId":"APP-1-000000","applicantEmail":"a@example.com"}`), true)
	require.Error(t, err)
	assert.Equal(t, MessageMissingConfirmationFields, err.(*errors.StandardError).Message)

	req, err = svc.Confirmation(decode(t, `{}`), false)
	require.NoError(t, err)
	assert.Empty(t, req.ApplicationID)
}

func TestPresent(t *testing.T) {
	assert.False(t, present(nil))
	assert.False(t, present(""))
	assert.False(t, present(false))
	assert.False(t, present(0.0))
	assert.False(t, present([]interface{}{}))
	assert.False(t, present(map[string]interface{}{}))
	assert.True(t, present("x"))
	assert.True(t, present(json.Number("12")))
	assert.True(t, present(true))
}
