package constants

const (
	AppName               = "cohort"
	DefaultKeyringSession = "session-token"
	DefaultKeyringAIKey   = "ai-api-key"
	DefaultConfigPath     = "~/.config/cohort/cohort.db"
	Version               = "v0.3.0"

	// MemberAvatarCap limits how many member avatars a habit header renders.
	MemberAvatarCap = 50

	// CompletionWindowDays is the window for the check-in percentage.
	CompletionWindowDays = 30

	// ActivityGridWeeks is the width of the profile activity grid.
	ActivityGridWeeks = 10
)

const (
	// FallbackMotto is used when motto generation fails or is unavailable.
	FallbackMotto = "One day at a time."

	// FallbackHealthTip is used when tip generation fails or is unavailable.
	FallbackHealthTip = "Drink a glass of water before every meal."
)

const (
	DefaultTheme    = "light"
	DefaultLanguage = "en"
)
