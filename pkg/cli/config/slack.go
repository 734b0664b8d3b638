package config

import (
	"github.com/urfave/cli/v3"

	"github.com/worklane/worklane/pkg/service/slack"
	"github.com/worklane/worklane/pkg/utils/logging"
)

// Slack holds CLI flags for the optional Slack DM sink
type Slack struct {
	botToken string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token for DM delivery (optional)",
			Category:    "Slack",
			Sources:     cli.EnvVars("WORKLANE_SLACK_BOT_TOKEN"),
			Destination: &s.botToken,
		},
	}
}

// IsConfigured reports whether a bot token was provided
func (s *Slack) IsConfigured() bool {
	return s.botToken != ""
}

// Configure returns the Slack DM service, or nil when not configured
func (s *Slack) Configure() (slack.Service, error) {
	if s.botToken == "" {
		logging.Default().Info("Slack bot token not configured, DM delivery disabled")
		return nil, nil
	}

	svc, err := slack.New(s.botToken)
	if err != nil {
		return nil, err
	}

	logging.Default().Info("Slack DM delivery enabled")
	return svc, nil
}
