package blocks

import (
	"fmt"
	"strings"
	"time"

	"github.com/Andikeys/cloudops-autopilot/domain/entity"
	"github.com/slack-go/slack"
)

// IncidentAlert renders the alert message posted for HIGH and CRITICAL
// incidents.
func IncidentAlert(incident *entity.Incident) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject("plain_text",
				fmt.Sprintf("🚨 CloudOps Alert: %s Incident Detected", incident.Severity),
				true, false,
			),
		),
		slack.NewSectionBlock(
			nil,
			[]*slack.TextBlockObject{
				slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Incident ID:* %s", incident.IncidentID), false, false),
				slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Severity:* %s", incident.Severity), false, false),
				slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Source:* %s", incident.Source), false, false),
				slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Event Type:* %s", incident.EventType), false, false),
				slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Time:* %s", incident.CreatedAt.Format(time.RFC3339)), false, false),
			},
			nil,
		),
		slack.NewSectionBlock(
			slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Summary:* %s", incident.Analysis.Summary), false, false),
			nil, nil,
		),
	}

	if len(incident.Analysis.Recommendations) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("mrkdwn",
				fmt.Sprintf("*Recommended Actions:*\n%s", bulletList(incident.Analysis.Recommendations)),
				false, false,
			),
			nil, nil,
		))
	}

	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject("mrkdwn", incident.Analysis.SeverityReasoning, false, false),
	))

	return blocks
}

// AlertFallbackText is the plain-text form used for notification previews.
func AlertFallbackText(incident *entity.Incident) string {
	return fmt.Sprintf("CloudOps Alert: %s incident in %s. ID: %s. Check dashboard for details.",
		incident.Severity, incident.Source, incident.IncidentID)
}

func bulletList(items []string) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "• %s\n", item)
	}
	return strings.TrimRight(b.String(), "\n")
}
