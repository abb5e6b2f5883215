// Package entity manages the registry of chat-platform entities (users,
// groups, guilds, channels) that every other store keys against.
package entity

import "fmt"

// Type identifies which platform object an entity row describes. The set
// is closed: rows with a type outside it are rejected at the boundary
// instead of surfacing later as unmatchable keys.
type Type string

const (
	TypeConsoleUser Type = "console_user"

	TypeOneBotV11User         Type = "onebot_v11_user"
	TypeOneBotV11Group        Type = "onebot_v11_group"
	TypeOneBotV11Guild        Type = "onebot_v11_guild"
	TypeOneBotV11GuildUser    Type = "onebot_v11_guild_user"
	TypeOneBotV11GuildChannel Type = "onebot_v11_guild_channel"

	TypeQQGuild     Type = "qq_guild"
	TypeQQChannel   Type = "qq_channel"
	TypeQQGroup     Type = "qq_group"
	TypeQQUser      Type = "qq_user"
	TypeQQGuildUser Type = "qq_guild_user"

	TypeTelegramUser    Type = "telegram_user"
	TypeTelegramGroup   Type = "telegram_group"
	TypeTelegramChannel Type = "telegram_channel"
)

var knownTypes = map[Type]struct{}{
	TypeConsoleUser:           {},
	TypeOneBotV11User:         {},
	TypeOneBotV11Group:        {},
	TypeOneBotV11Guild:        {},
	TypeOneBotV11GuildUser:    {},
	TypeOneBotV11GuildChannel: {},
	TypeQQGuild:               {},
	TypeQQChannel:             {},
	TypeQQGroup:               {},
	TypeQQUser:                {},
	TypeQQGuildUser:           {},
	TypeTelegramUser:          {},
	TypeTelegramGroup:         {},
	TypeTelegramChannel:       {},
}

// AllTypes returns every supported entity type.
func AllTypes() []Type {
	out := make([]Type, 0, len(knownTypes))
	for t := range knownTypes {
		out = append(out, t)
	}
	return out
}

// Valid reports whether t names a supported entity type.
func (t Type) Valid() bool {
	_, ok := knownTypes[t]
	return ok
}

func (t Type) String() string { return string(t) }

// ParseType validates a raw string against the supported set.
func ParseType(raw string) (Type, error) {
	t := Type(raw)
	if !t.Valid() {
		return "", fmt.Errorf("entity: unsupported entity type %q", raw)
	}
	return t, nil
}
