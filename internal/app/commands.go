package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
)

func fetchSessionsCmd(api SessionAPI, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		sessions, err := api.ListSessions(ctx)
		return sessionsMsg{sessions: sessions, err: err}
	}
}

func fetchSessionCmd(api SessionAPI, timeout time.Duration, sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		session, err := api.GetSession(ctx, sessionID)
		return sessionMsg{id: sessionID, session: session, err: err}
	}
}

func fetchMessagesCmd(api SessionAPI, timeout time.Duration, sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		messages, err := api.ListMessages(ctx, sessionID)
		return messagesMsg{id: sessionID, messages: messages, err: err}
	}
}
