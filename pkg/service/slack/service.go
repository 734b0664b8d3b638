package slack

import "context"

// Service is an optional secondary notification sink: the target user is
// looked up by email and receives the notification as a direct message.
type Service interface {
	// SendDirectMessage DMs the Slack user registered under the given email
	SendDirectMessage(ctx context.Context, email, title, message string) error
}
