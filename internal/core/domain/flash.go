package domain

// FlashLevel mirrors the severity classes a page renders messages with.
type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashError   FlashLevel = "error"
	FlashInfo    FlashLevel = "info"
)

// Flash is a one-shot, user-facing message shown on the next rendered page.
type Flash struct {
	Level   FlashLevel `json:"level"`
	Message string     `json:"message"`
}
