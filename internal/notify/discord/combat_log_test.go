package discord

import (
	"errors"
	"strings"
	"testing"

	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/KirkDiggler/tactics-engine/internal/events"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSession records the embeds posted to each channel
type mockSession struct {
	channels []string
	embeds   []*discordgo.MessageEmbed
	err      error
}

func (m *mockSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.channels = append(m.channels, channelID)
	m.embeds = append(m.embeds, embed)
	return &discordgo.Message{ChannelID: channelID}, nil
}

func TestCombatLog_RelaysBusMessages(t *testing.T) {
	session := &mockSession{}
	bus := events.NewBus()
	relay := NewCombatLog(&CombatLogConfig{Session: session, ChannelID: "chan-1"})
	relay.Subscribe(bus)

	messenger := events.NewBusMessenger(bus)
	messenger.AddMessage("Aria casts Fireball")
	messenger.Emit(&events.AbilityActivatedEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeAbilityActivated},
		ActorName: "Aria",
		AbilityID: "Fireball",
	})
	messenger.AddFadeAway("-12", grid.Point{}, "red")

	assert.Equal(t, 2, relay.Pending())
	require.NoError(t, relay.Flush("Round 1"))

	require.Len(t, session.embeds, 1)
	assert.Equal(t, []string{"chan-1"}, session.channels)
	assert.Equal(t, "Round 1", session.embeds[0].Title)
	assert.Equal(t, "Aria casts Fireball\n**Aria** uses Fireball", session.embeds[0].Description)
	assert.Nil(t, session.embeds[0].Footer)
	assert.Equal(t, 0, relay.Pending())

	require.NoError(t, relay.Flush("Round 2"), "nothing to post")
	assert.Len(t, session.embeds, 1)

	relay.Unsubscribe(bus)
	assert.Equal(t, 0, bus.ListenerCount(events.EventTypeMessage))
}

func TestCombatLog_SplitsLongLogs(t *testing.T) {
	session := &mockSession{}
	relay := NewCombatLog(&CombatLogConfig{Session: session, ChannelID: "chan-1"})

	line := strings.Repeat("x", 1000)
	for range 5 {
		require.NoError(t, relay.HandleEvent(events.NewMessageEvent(line)))
	}
	require.NoError(t, relay.HandleEvent(events.NewMessageEvent(strings.Repeat("y", maxDescription+10))))

	require.NoError(t, relay.Flush("Battle"))
	require.Len(t, session.embeds, 3)
	for i, e := range session.embeds {
		assert.LessOrEqual(t, len(e.Description), maxDescription)
		require.NotNil(t, e.Footer)
		assert.Equal(t, []string{"1/3", "2/3", "3/3"}[i], e.Footer.Text)
	}
	assert.True(t, strings.HasSuffix(session.embeds[2].Description, "..."))
}

func TestCombatLog_FlushError(t *testing.T) {
	session := &mockSession{err: errors.New("rate limited")}
	relay := NewCombatLog(&CombatLogConfig{Session: session, ChannelID: "chan-9"})
	require.NoError(t, relay.HandleEvent(events.NewMessageEvent("hello")))

	err := relay.Flush("Round 1")
	require.Error(t, err)
	assert.Equal(t, "chan-9", rpgerr.GetMeta(err)["channel_id"])
}

func TestNewCombatLog_RequiresSessionAndChannel(t *testing.T) {
	assert.Panics(t, func() { NewCombatLog(nil) })
	assert.Panics(t, func() { NewCombatLog(&CombatLogConfig{ChannelID: "c"}) })
	assert.Panics(t, func() { NewCombatLog(&CombatLogConfig{Session: &mockSession{}}) })
}
