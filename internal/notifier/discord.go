package notifier

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/canteen-api/internal/models"
)

type Notifier interface {
	NotifyReservation(reservation models.Reservation, canteenName string) error
	NotifyCanteenDeleted(canteen models.Canteen, cancelled int) error
}

// MessageSender is the part of *discordgo.Session the notifier uses.
type MessageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   MessageSender
	channelID string
}

func NewDiscordNotifier(session MessageSender, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

// NewDiscordSession opens a bot session for the given token.
func NewDiscordSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("discord bot token is empty")
	}
	return discordgo.New("Bot " + token)
}

func (n *DiscordNotifier) NotifyReservation(reservation models.Reservation, canteenName string) error {
	status := "🍽️ reserved"
	if reservation.Status == models.ReservationCancelled {
		status = "❌ cancelled"
	}

	message := fmt.Sprintf("**Reservation %s**\n**Canteen:** %s\n**When:** %s %s (%d min)\n**Student:** %s\n**ID:** %s",
		status,
		canteenName,
		reservation.Date,
		reservation.Time,
		reservation.Duration,
		reservation.StudentID,
		reservation.ID,
	)

	return n.send(message)
}

func (n *DiscordNotifier) NotifyCanteenDeleted(canteen models.Canteen, cancelled int) error {
	message := fmt.Sprintf("🚧 **Canteen closed**\n**Canteen:** %s (%s)\n**Cancelled reservations:** %d",
		canteen.Name,
		canteen.Location,
		cancelled,
	)

	return n.send(message)
}

func (n *DiscordNotifier) send(message string) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	if _, err := n.session.ChannelMessageSend(n.channelID, message); err != nil {
		return fmt.Errorf("failed to send discord message: %w", err)
	}

	return nil
}
