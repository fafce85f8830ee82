// Package view — тексты сообщений бота.
package view

const StartMessage = `👋 <b>Game deals bot</b>

I post discounted game listings into the forum topics of this group.

<b>Commands</b>
/update [store] [amount] — refresh the deal topics right now (admins)
/random [min_price] — one random deal
/flip [min_price] [max_price] — flip through deals with buttons
/auto enable|disable — toggle the daily delivery (admins)
/auto time &lt;hour&gt; — set the delivery hour, 0-23 UTC (admins)`

const (
	UpdateUsage          = "Usage: /update [steam|gog|all] [amount]"
	UpdateStarted        = "Started updating the deal topics, give me a minute..."
	UpdateAlreadyRunning = "I'm already updating this server, please wait until it finishes."
	UpdateFinished       = "Done! Delivered %d deals."
	TooManyDeals         = "That's too many, I can fetch at most %d deals at once."
	NoDealsFound         = "Nothing is on sale for those filters right now :("
	GuildNotProvisioned  = "This group is not set up yet. Re-add me to the group to provision the deal topics."
)

const (
	RandomUsage   = "Usage: /random [min_price]"
	RandomNothing = "Couldn't find a random deal, try again."
)

const (
	FlipUsage    = "Usage: /flip [min_price] [max_price]"
	FlipExpired  = "This flipbook has expired, run /flip again."
	FlipNotYours = "This flipbook belongs to someone else. Run /flip to get your own."
)

const (
	AutoUsage    = "Usage: /auto enable|disable or /auto time <hour>"
	AutoEnabled  = "Daily delivery enabled. I'll post fresh deals at %02d:00 UTC."
	AutoDisabled = "Daily delivery disabled."
	AutoTimeSet  = "Delivery hour set to %02d:00 UTC."
	InvalidHour  = "The hour has to be between 0 and 23."
)

const (
	Welcome       = "Deal topics are ready! Use /update to fill them or /auto enable to get fresh deals daily."
	WelcomeBack   = "Welcome back! Your deal topics and settings are right where you left them."
	ForumRequired = "I can only work in forum supergroups: enable Topics in the group settings and re-add me."
)
