package listener

import (
	"fmt"
	"strings"
	"time"

	"relaybot/internal/domain"
)

// Reply builders are pure functions over audit state so they can be tested
// without a live bot connection. All replies use HTML markup.

func startReply(firstName string) string {
	return fmt.Sprintf(
		"👋 Hello, %s!\n\n"+
			"I relay messages to channels and groups.\n"+
			"Add me to your group and make me an admin.\n\n"+
			"Commands:\n"+
			"/help — Usage\n"+
			"/info — Bot info",
		firstName,
	)
}

func helpReply() string {
	return "📖 <b>Bot Guide</b>\n\n" +
		"<b>What I can do:</b>\n" +
		"✅ Post to channels and groups\n" +
		"✅ Edit messages\n" +
		"✅ Delete messages\n" +
		"✅ Send photos and videos\n\n" +
		"<b>Setup:</b>\n" +
		"1. Add the bot to your group or channel\n" +
		"2. Make it an admin\n" +
		"3. Drive it through the HTTP API"
}

func infoReply(self domain.SelfInfo, sent, admins int) string {
	return fmt.Sprintf(
		"🤖 <b>Bot Info</b>\n\n"+
			"<b>Name:</b> %s\n"+
			"<b>Username:</b> @%s\n"+
			"<b>ID:</b> <code>%d</code>\n\n"+
			"<b>Stats:</b>\n"+
			"📤 Messages sent: %d\n"+
			"👥 Admins: %d\n\n"+
			"<b>Status:</b> ✅ Active",
		self.FirstName, self.Username, self.ID, sent, admins,
	)
}

const statsDeniedReply = "⛔ This command is for admins only."

func statsReply(total int, latest *domain.Outcome, admins int, last []domain.Outcome) string {
	latestStr := "none yet"
	if latest != nil {
		latestStr = latest.Time.Format(time.RFC3339)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>Bot Statistics</b>\n\n")
	fmt.Fprintf(&b, "📤 Total messages sent: %d\n", total)
	fmt.Fprintf(&b, "🕐 Last message: %s\n", latestStr)
	fmt.Fprintf(&b, "👥 Admins: %d\n\n", admins)
	fmt.Fprintf(&b, "<b>Last %d messages:</b>", len(last))
	for _, o := range last {
		fmt.Fprintf(&b, "\n• %s - %s", o.Time.Format(time.RFC3339), o.Target)
	}
	return b.String()
}
