package model

import "time"

// JobFamily buckets a posting into a discipline used to pick recruiter
// search terms.
type JobFamily string

const (
	FamilySoftwareEngineering  JobFamily = "Software Engineering"
	FamilyDataScienceML        JobFamily = "Data Science / ML"
	FamilyDataAnalytics        JobFamily = "Data Analytics"
	FamilyBusinessAnalytics    JobFamily = "Business Analytics"
	FamilyBusinessDevelopment  JobFamily = "Business Development / Sales"
	FamilyProductManagement    JobFamily = "Product Management"
	FamilyDesignUX             JobFamily = "Design / UX"
	FamilyDevOpsInfra          JobFamily = "DevOps / Infrastructure"
	FamilyCybersecurity        JobFamily = "Cybersecurity"
	FamilyMarketing            JobFamily = "Marketing"
	FamilyFinance              JobFamily = "Finance / Accounting"
	FamilyLegal                JobFamily = "Legal / Compliance"
	FamilyResearch             JobFamily = "Research"
	FamilyOperations           JobFamily = "Operations"
	FamilyPolicy               JobFamily = "Policy / Government Affairs"
	FamilyOther                JobFamily = "Other"
)

// JobPosting is a scraped and analyzed job posting. Scraping and LLM field
// extraction happen upstream; this system consumes the extracted fields.
type JobPosting struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Platform string `json:"platform"`

	JobTitle  string    `json:"job_title"`
	Company   string    `json:"company"`
	JobFamily JobFamily `json:"job_family"`
	Location  string    `json:"location,omitempty"`

	Description string `json:"description"`

	// Outreach draft, filled by the drafter.
	EmailSubject string `json:"email_subject,omitempty"`
	EmailBody    string `json:"email_body,omitempty"`

	ScrapedAt time.Time `json:"scraped_at"`
}
