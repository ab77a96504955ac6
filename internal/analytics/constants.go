package analytics

// Property names sent with captures
const (
	PropertySource      = "source"
	PropertyAmount      = "amount"
	PropertyQuestID     = "quest_id"
	PropertyLevel       = "level"
	PropertyXPTotal     = "xp_total"
	PropertyBadgeID     = "badge_id"
	PropertyImpactTotal = "impact_total"
	PropertySchema      = "schema_version"
)

// anonymousDistinctID is used when an event carries no user id
const anonymousDistinctID = "anonymous"

// Log messages
const (
	LogMsgCaptureFailed     = "Analytics capture failed"
	LogMsgPayloadUnreadable = "Analytics payload could not be decoded"
	LogMsgSinkDisabled      = "Analytics sink disabled, no API key configured"
	LogMsgSinkCloseFailed   = "Analytics client close failed"
)
