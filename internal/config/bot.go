package config

type Bot struct {
	Enabled     bool   `env:"BOT_ENABLED" envDefault:"false"`
	Token       string `env:"BOT_TOKEN" json:"-"`
	AdminChatID int64  `env:"BOT_ADMIN_CHAT_ID"`
}
