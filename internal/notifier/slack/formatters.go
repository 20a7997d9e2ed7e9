package slack

import (
	"fmt"

	"github.com/slack-go/slack"
)

func (s *Notifier) formatClipPublished(playerID, clipName, videoURL string) slack.Message {
	header := slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, ":clapper: New highlight published", false, false))
	body := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*%s* is live on player `%s`\n<%s|Watch the clip>", clipName, playerID, videoURL), false, false),
		nil, nil,
	)
	return slack.NewBlockMessage(header, body)
}

func (s *Notifier) formatUploadFailed(playerID, fileName, reason string) slack.Message {
	header := slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, ":warning: Highlight upload failed", false, false))
	body := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("`%s` for player `%s` did not go through:\n> %s\nThe item is parked in the queue for a manual retry.", fileName, playerID, reason), false, false),
		nil, nil,
	)
	return slack.NewBlockMessage(header, body)
}

func (s *Notifier) formatScoutingReview(playerID, reportID, review string) slack.Message {
	if len(review) > 500 {
		review = review[:500] + "…"
	}
	header := slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, ":mag: Scouting review ready", false, false))
	body := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("Report `%s` on player `%s`:\n%s", reportID, playerID, review), false, false),
		nil, nil,
	)
	return slack.NewBlockMessage(header, body)
}
