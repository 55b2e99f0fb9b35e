package bot

import "strings"

const (
	ReplyHello   = "Hey there!"
	ReplyHowAreU = "I am good!"
	ReplyBye     = "Sayonara"
	ReplyUnknown = "I do not understand what you are trying to do..."
)

type RouteKind int

const (
	// RouteIgnore means no reply at all.
	RouteIgnore RouteKind = iota
	RouteKeyword
	RouteURL
)

type Route struct {
	Kind    RouteKind
	Content string
}

func IsGroupChat(chatType string) bool {
	return chatType == "group" || chatType == "supergroup"
}

// Classify decides what to do with a text message. In group chats the bot
// only answers when mention appears literally in the text; the mention is
// removed before the rest is classified.
func Classify(chatType, text, mention string) Route {
	if IsGroupChat(chatType) {
		if mention == "" || !strings.Contains(text, mention) {
			return Route{Kind: RouteIgnore}
		}
		text = strings.ReplaceAll(text, mention, "")
	}
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		return Route{Kind: RouteURL, Content: text}
	}
	return Route{Kind: RouteKeyword, Content: text}
}

// Respond is the canned keyword responder.
func Respond(text string) string {
	text = strings.ToLower(text)
	switch {
	case strings.Contains(text, "hello"):
		return ReplyHello
	case strings.Contains(text, "how are you"):
		return ReplyHowAreU
	case strings.Contains(text, "bye"):
		return ReplyBye
	default:
		return ReplyUnknown
	}
}
