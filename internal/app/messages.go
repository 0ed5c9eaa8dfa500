package app

import "ctxmap/internal/types"

type sessionsMsg struct {
	sessions []types.Session
	err      error
}

type sessionMsg struct {
	id      string
	session *types.Session
	err     error
}

type messagesMsg struct {
	id       string
	messages []types.Message
	err      error
}
