package blocks

// AddMention prefixes a message with a channel-wide mention when the
// configuration asks for one.
func AddMention(message, mention string) string {
	switch mention {
	case "here":
		return "<!here> " + message
	case "channel":
		return "<!channel> " + message
	case "none":
		return message
	default:
		return message
	}
}
