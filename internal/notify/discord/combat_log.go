// Package discord relays the engine's combat log to a Discord channel.
package discord

import (
	"fmt"
	"log"
	"strings"
	"sync"

	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/KirkDiggler/tactics-engine/internal/events"
	"github.com/bwmarrin/discordgo"
)

const (
	// ListenerID identifies the relay on the event bus
	ListenerID = "discord-combat-log"

	// maxDescription is Discord's limit for an embed description
	maxDescription = 4096

	combatLogColor = 0x3498db
	listenerOrder  = 100
)

// Session is the part of a discordgo session the relay needs
type Session interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// CombatLog collects combat log lines from the bus and posts them to a
// channel as embeds when flushed
type CombatLog struct {
	session   Session
	channelID string

	mu    sync.Mutex
	lines []string
}

type CombatLogConfig struct {
	Session   Session
	ChannelID string
}

func NewCombatLog(cfg *CombatLogConfig) *CombatLog {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Session == nil {
		panic("session is required")
	}
	if cfg.ChannelID == "" {
		panic("channel id is required")
	}
	return &CombatLog{session: cfg.Session, channelID: cfg.ChannelID}
}

// Subscribe registers the relay for message and ability events
func (l *CombatLog) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.EventTypeMessage, l)
	bus.Subscribe(events.EventTypeAbilityActivated, l)
}

// Unsubscribe removes the relay from the bus
func (l *CombatLog) Unsubscribe(bus *events.Bus) {
	bus.Unsubscribe(events.EventTypeMessage, ListenerID)
	bus.Unsubscribe(events.EventTypeAbilityActivated, ListenerID)
}

// HandleEvent implements events.EventListener
func (l *CombatLog) HandleEvent(event events.Event) error {
	var line string
	switch e := event.(type) {
	case *events.MessageEvent:
		line = e.Text
	case *events.AbilityActivatedEvent:
		line = fmt.Sprintf("**%s** uses %s", e.ActorName, e.AbilityID)
	default:
		return nil
	}
	if line == "" {
		return nil
	}

	l.mu.Lock()
	l.lines = append(l.lines, line)
	l.mu.Unlock()
	return nil
}

// Priority runs the relay after gameplay listeners
func (l *CombatLog) Priority() int { return listenerOrder }

// ID implements events.EventListener
func (l *CombatLog) ID() string { return ListenerID }

// Pending returns the number of lines waiting to be posted
func (l *CombatLog) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

// Flush posts the collected lines under title, splitting them across as
// many embeds as Discord's size limit requires
func (l *CombatLog) Flush(title string) error {
	l.mu.Lock()
	lines := l.lines
	l.lines = nil
	l.mu.Unlock()

	if len(lines) == 0 {
		return nil
	}

	pages := paginate(lines, maxDescription)
	for i, page := range pages {
		embed := &discordgo.MessageEmbed{
			Title:       title,
			Description: page,
			Color:       combatLogColor,
		}
		if len(pages) > 1 {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%d/%d", i+1, len(pages))}
		}

		if _, err := l.session.ChannelMessageSendEmbed(l.channelID, embed); err != nil {
			log.Printf("CombatLog: failed to post to channel %s: %v", l.channelID, err)
			return rpgerr.Wrapf(err, "failed to post combat log page %d", i+1).
				WithMeta("channel_id", l.channelID)
		}
	}
	return nil
}

func paginate(lines []string, limit int) []string {
	var (
		pages []string
		b     strings.Builder
	)
	for _, line := range lines {
		if len(line) > limit {
			line = line[:limit-3] + "..."
		}
		if b.Len() > 0 && b.Len()+1+len(line) > limit {
			pages = append(pages, b.String())
			b.Reset()
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	if b.Len() > 0 {
		pages = append(pages, b.String())
	}
	return pages
}
