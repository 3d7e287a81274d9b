package pipeline

// User-facing replacement text for non-allowed outcomes. The transport
// layer surfaces these verbatim.
const (
	// MsgLockedOut replaces input from users who are already blocked.
	MsgLockedOut = "Your account has been temporarily restricted due to security concerns. Please contact support."

	// MsgRepeatedWarnings replaces input from users whose warning count
	// just reached the lockout threshold.
	MsgRepeatedWarnings = "Your account has been temporarily restricted due to repeated security warnings."

	// MsgRephrase asks the user to restate a flagged request.
	MsgRephrase = "Your message contains potentially inappropriate content. Please rephrase your question about real estate in a professional manner."

	// MsgBlocked replaces input rejected for a policy violation.
	MsgBlocked = "Your message has been blocked due to inappropriate content. Please ask questions related to real estate in a respectful and legal manner."

	// MsgEscalated replaces input flagged for a serious violation.
	MsgEscalated = "Your message has been flagged for serious policy violations. Your account has been temporarily restricted."

	// MsgOutputFallback replaces generated responses that failed the
	// output filter.
	MsgOutputFallback = "I apologize, but I cannot provide a response to that query. Please ask me about real estate properties, market insights, or general housing information, and I'll be happy to help."

	// MsgDisclaimer is appended to generated responses that warrant a
	// warning but are still delivered.
	MsgDisclaimer = "\n\nDisclaimer: This information is for general purposes only. Please consult with qualified professionals for specific advice regarding real estate transactions, legal matters, or financial decisions."
)

// safeErrorMessages are canned replies callers can surface when request
// handling fails outside the filtering path.
var safeErrorMessages = map[string]string{
	"general":       "I apologize, but I encountered an issue processing your request. Please try rephrasing your question about real estate.",
	"inappropriate": "Please keep our conversation focused on real estate topics and maintain a professional tone.",
	"technical":     "I'm experiencing technical difficulties. Please try your real estate question again in a moment.",
	"blocked":       "Your request cannot be processed. Please ensure you're asking about legitimate real estate topics.",
}

// SafeErrorMessage returns an appropriate canned reply for the given
// error kind. Unknown kinds fall back to the general message.
func SafeErrorMessage(kind string) string {
	if msg, ok := safeErrorMessages[kind]; ok {
		return msg
	}
	return safeErrorMessages["general"]
}
