// internal/models/application.go
package models

const ApplicationStatusUnderReview = "Under Review"

// ApplicationSubmission is the body of POST /applications.
// InternshipID keeps whatever JSON scalar the client sent.
type ApplicationSubmission struct {
	InternshipID    interface{} `json:"internshipId"`
	InternshipTitle string      `json:"internshipTitle"`
	CompanyName     string      `json:"companyName"`
	FullName        string      `json:"fullName"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	CoverLetter     string      `json:"coverLetter"`
	PortfolioURL    string      `json:"portfolioUrl"`
	LinkedinURL     string      `json:"linkedinUrl"`
	Resume          *ResumeRef  `json:"resume"`
}

type ResumeRef struct {
	Name string `json:"name"`
}

type Application struct {
	ApplicationID   string      `json:"applicationId"`
	InternshipID    interface{} `json:"internshipId"`
	InternshipTitle string      `json:"internshipTitle"`
	CompanyName     string      `json:"companyName"`
	ApplicantName   string      `json:"applicantName"`
	ApplicantEmail  string      `json:"applicantEmail"`
	ApplicantPhone  string      `json:"applicantPhone"`
	CoverLetter     string      `json:"coverLetter"`
	PortfolioURL    string      `json:"portfolioUrl"`
	LinkedinURL     string      `json:"linkedinUrl"`
	ResumeFileName  string      `json:"resumeFileName"`
	SubmittedAt     string      `json:"submittedAt"`
	Status          string      `json:"status"`
}

// ConfirmationRequest carries the fields used by the confirmation email and
// the downloadable confirmation document.
type ConfirmationRequest struct {
	ApplicationID   string `json:"applicationId"`
	ApplicantName   string `json:"applicantName"`
	ApplicantEmail  string `json:"applicantEmail"`
	ApplicantPhone  string `json:"applicantPhone"`
	InternshipTitle string `json:"internshipTitle"`
	CompanyName     string `json:"companyName"`
}
