// Package draft generates the outreach email subject and body for a job
// posting with the Anthropic API.
package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/pkg/anthropic"
)

const systemPrompt = `You write short cold outreach emails from a job applicant to a recruiter at the hiring company.

Rules:
- The email expresses interest in the specific role and briefly connects the applicant to it.
- Greeting must be exactly "Hi there," on its own line. The send step substitutes the recruiter's first name.
- Sign-off must be exactly "Best," on its own line, with nothing after it. The send step appends the sender's name.
- Under 150 words. Plain text, no markdown.
- Subject line under 80 characters, mentioning the role.

Respond with only a JSON object: {"subject": "...", "body": "..."}`

// maxDescriptionChars caps how much of the posting goes into the prompt.
const maxDescriptionChars = 6000

// Drafter generates outreach drafts for job postings.
type Drafter struct {
	client anthropic.Client
	model  string
}

// NewDrafter creates a Drafter using the given model.
func NewDrafter(client anthropic.Client, model string) *Drafter {
	return &Drafter{client: client, model: model}
}

type draftPayload struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Draft produces the email subject and body for a job posting.
func (d *Drafter) Draft(ctx context.Context, job model.JobPosting) (subject, body string, err error) {
	desc := job.Description
	if len(desc) > maxDescriptionChars {
		desc = desc[:maxDescriptionChars]
	}

	user := fmt.Sprintf("Role: %s\nCompany: %s\nCategory: %s\nLocation: %s\n\nJob description:\n%s",
		job.JobTitle, job.Company, job.JobFamily, job.Location, desc)

	resp, err := d.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     d.model,
		MaxTokens: 1024,
		System:    systemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", "", eris.Wrap(err, "draft: create message")
	}
	resp.Usage.LogCost(d.model, "draft")

	var payload draftPayload
	if err := json.Unmarshal([]byte(stripFences(resp.Text)), &payload); err != nil {
		return "", "", eris.Wrap(err, "draft: parse response")
	}
	if payload.Subject == "" || payload.Body == "" {
		return "", "", eris.New("draft: response missing subject or body")
	}
	return payload.Subject, payload.Body, nil
}

// stripFences removes a surrounding markdown code fence if the model added
// one despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
