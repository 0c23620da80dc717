package model

import "strings"

// Email is one purchase-order email handed to the pipeline: the original
// message plus the full thread body reconstructed by the upstream fetcher.
type Email struct {
	MessageID string `json:"message_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Date      string `json:"date"`
	Footer    string `json:"footer"`
	Body      string `json:"body"` // full thread body, all quoted messages
}

// FormatText renders the email into the standard block layout the extraction
// prompts expect: header and footer from the original message, full thread
// body, and the entry id.
func (e Email) FormatText() string {
	var b strings.Builder
	b.WriteString("--- EMAIL HEADER ---\n")
	b.WriteString("From: " + e.From + "\n")
	b.WriteString("Subject: " + e.Subject + "\n")
	b.WriteString("Date: " + e.Date + "\n\n")
	b.WriteString("--- EMAIL BODY ---\n")
	b.WriteString(e.Body + "\n\n")
	b.WriteString("--- EMAIL FOOTER ---\n")
	b.WriteString(e.Footer + "\n\n")
	b.WriteString("--- ENTRY ID ---\n")
	b.WriteString(e.MessageID)
	return b.String()
}

// FormatWithMetadata prepends the subject/sender metadata block. Only the
// customer-identification phase sees this variant: the subject line often
// carries the customer name and must be visible to that prompt.
func (e Email) FormatWithMetadata() string {
	var b strings.Builder
	b.WriteString("EMAIL METADATA:\n")
	b.WriteString("Subject: " + e.Subject + "\n")
	b.WriteString("From: " + e.From + "\n")
	b.WriteString("To: " + e.To + "\n")
	b.WriteString("Date: " + e.Date + "\n\n")
	b.WriteString("EMAIL CONTENT:\n")
	b.WriteString(e.FormatText())
	return b.String()
}
