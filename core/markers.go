package core

// SplitMarker is the literal instruction string that signals a message text
// carries multiple client messages to be sent separately. Catalog result
// formatting embeds it; the result-item classifier splits on it.
const SplitMarker = "IMPORTANT: Send each message separately"

// SplitLabel prefixes each sub-message line of a split text, as in
// "MESSAGE 1A: <content>".
const SplitLabel = "MESSAGE "
