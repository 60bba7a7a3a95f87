// internal/services/application/schema.go
package application

import "internship-recommender/internal/common/validation"

// submissionSchema checks value types only; presence is checked separately so
// the first missing field can be named. Numbers are accepted wherever text is
// expected and are rendered as strings before decoding.
var submissionSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"internshipId":    {"type": ["string", "number", "null"]},
		"internshipTitle": {"type": ["string", "number", "null"]},
		"companyName":     {"type": ["string", "number", "null"]},
		"fullName":        {"type": ["string", "number", "null"]},
		"email":           {"type": ["string", "number", "null"]},
		"phone":           {"type": ["string", "number", "null"]},
		"coverLetter":     {"type": ["string", "number", "null"]},
		"portfolioUrl":    {"type": ["string", "number", "null"]},
		"linkedinUrl":     {"type": ["string", "number", "null"]},
		"resume": {
			"type": ["object", "null"],
			"properties": {"name": {"type": ["string", "null"]}}
		}
	}
}`)

var confirmationSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"applicationId":   {"type": ["string", "number", "null"]},
		"applicantName":   {"type": ["string", "number", "null"]},
		"applicantEmail":  {"type": ["string", "number", "null"]},
		"applicantPhone":  {"type": ["string", "number", "null"]},
		"internshipTitle": {"type": ["string", "number", "null"]},
		"companyName":     {"type": ["string", "number", "null"]}
	}
}`)
