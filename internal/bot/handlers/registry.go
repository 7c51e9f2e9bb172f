package handlers

import (
	tgbot "github.com/go-telegram/bot"

	"github.com/stmcap/glossarybot/internal/access"
	"github.com/stmcap/glossarybot/internal/glossary"
)

// RegisteredHandler carries everything needed to register one handler.
// When Match is set it takes precedence over HandlerType, Pattern and
// MatchType.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
	Match       tgbot.MatchFunc
}

// RegisterAllCommands initializes and returns a map of all bot handlers
// keyed by a descriptive name.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	journaled := []tgbot.Middleware{Journaled(deps)}
	users := []tgbot.Middleware{Journaled(deps), RequireAccess(deps, access.User)}
	admins := []tgbot.Middleware{Journaled(deps), AdminOnly(deps)}
	callbacks := []tgbot.Middleware{AnswerCallback(deps), Journaled(deps), RequireAccess(deps, access.User)}

	handlers["/start"] = RegisteredHandler{
		Match:      IsCommand("start"),
		Handler:    NewStartHandler(deps),
		Middleware: users,
	}
	handlers["/type"] = RegisteredHandler{
		Match:      IsCommand("type"),
		Handler:    NewTypeHandler(deps),
		Middleware: users,
	}
	handlers["/help"] = RegisteredHandler{
		Match:      IsCommand("help"),
		Handler:    NewHelpHandler(deps),
		Middleware: journaled,
	}
	handlers["/send_all"] = RegisteredHandler{
		Match:      IsCommand("send_all"),
		Handler:    NewSendAllHandler(deps),
		Middleware: admins,
	}
	handlers["text"] = RegisteredHandler{
		Match:      IsPlainText,
		Handler:    NewQueryHandler(deps),
		Middleware: users,
	}
	handlers["callback:definition"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     glossary.DefinitionPrefix,
		Handler:     NewDefinitionCallbackHandler(deps),
		MatchType:   tgbot.MatchTypePrefix,
		Middleware:  callbacks,
	}
	handlers["callback:group"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     glossary.GroupPrefix,
		Handler:     NewGroupCallbackHandler(deps),
		MatchType:   tgbot.MatchTypePrefix,
		Middleware:  callbacks,
	}
	handlers["callback:back"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     glossary.BackToGroups,
		Handler:     NewBackCallbackHandler(deps),
		MatchType:   tgbot.MatchTypeExact,
		Middleware:  callbacks,
	}

	return handlers
}
