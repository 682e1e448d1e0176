// Package notification tells the firm's staff about new submissions.
package notification

import "context"

// Message is an outgoing email
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
	// Tags label the message for the provider's analytics
	Tags map[string]string
}

// Mailer sends email. Implementations: the Resend client and a logging stub.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
