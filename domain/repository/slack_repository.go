package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Andikeys/cloudops-autopilot/domain/entity"
	"github.com/Andikeys/cloudops-autopilot/presentation/blocks"
	"github.com/Songmu/retry"
	ttlcache "github.com/jellydator/ttlcache/v3"
	"github.com/slack-go/slack"
)

var ErrSlackChannelNotFound = fmt.Errorf("slack channel not found")

// SlackClient is the slice of the Slack API the notifier uses.
type SlackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	GetConversationsContext(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error)
}

// SlackRepository publishes incident alerts to a Slack channel. Retrying is
// handled here; callers treat a returned error as final.
type SlackRepository struct {
	client       SlackClient
	alertChannel string
	mention      string
	channelCache *ttlcache.Cache[string, string]
}

func NewSlackRepository(client SlackClient, cfg SlackConfig) *SlackRepository {
	r := &SlackRepository{
		client:       client,
		alertChannel: cfg.AlertChannel,
		mention:      cfg.Mention,
		channelCache: ttlcache.New(ttlcache.WithTTL[string, string](time.Hour)),
	}
	go r.channelCache.Start()
	return r
}

func (r *SlackRepository) PublishIncident(ctx context.Context, incident *entity.Incident) error {
	channelID, err := r.resolveChannel(ctx, r.alertChannel)
	if err != nil {
		return fmt.Errorf("failed to resolve alert channel %s: %w", r.alertChannel, err)
	}

	fallback := blocks.AlertFallbackText(incident)
	err = retry.Retry(3, time.Second, func() error {
		_, _, err := r.client.PostMessageContext(
			ctx,
			channelID,
			slack.MsgOptionText(blocks.AddMention(fallback, r.mention), false),
			slack.MsgOptionBlocks(blocks.IncidentAlert(incident)...),
		)
		if err != nil {
			slog.Warn("PostMessage", slog.Any("channelID", channelID), slog.Any("err", err))
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to post alert: %w", err)
	}
	return nil
}

// resolveChannel turns a "#name" reference into a channel ID, caching the
// lookup. Plain IDs pass through untouched.
func (r *SlackRepository) resolveChannel(ctx context.Context, channel string) (string, error) {
	if !strings.HasPrefix(channel, "#") {
		return channel, nil
	}
	name := strings.TrimPrefix(channel, "#")

	if item := r.channelCache.Get(name); item != nil {
		return item.Value(), nil
	}

	params := &slack.GetConversationsParameters{
		ExcludeArchived: true,
		Limit:           1000,
	}
	for {
		channels, cursor, err := r.client.GetConversationsContext(ctx, params)
		if err != nil {
			return "", fmt.Errorf("failed to list conversations: %w", err)
		}
		for _, c := range channels {
			if c.Name == name {
				r.channelCache.Set(name, c.ID, ttlcache.DefaultTTL)
				return c.ID, nil
			}
		}
		if cursor == "" {
			break
		}
		params.Cursor = cursor
	}
	return "", ErrSlackChannelNotFound
}
