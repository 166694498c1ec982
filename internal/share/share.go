// Package share turns a quote into the payload a client needs to share it
// on a given target.
package share

import (
	"net/url"
	"strings"

	"github.com/jsamuelsen/quoteflow/internal/domain"
)

// Target is a share destination.
type Target string

// Supported targets.
const (
	TargetTwitter   Target = "twitter"
	TargetFacebook  Target = "facebook"
	TargetInstagram Target = "instagram"
	TargetClipboard Target = "clipboard"
)

// Action tells the client what to do with a payload.
type Action string

// Actions.
const (
	ActionOpenURL  Action = "open-url"
	ActionCopyText Action = "copy-text"
)

const (
	twitterIntentURL = "https://twitter.com/intent/tweet"
	facebookShareURL = "https://www.facebook.com/sharer/sharer.php"
)

// Payload is the result of formatting a quote for a target.
type Payload struct {
	Action  Action
	Payload string
}

// Targets lists every supported target.
func Targets() []Target {
	return []Target{TargetTwitter, TargetFacebook, TargetInstagram, TargetClipboard}
}

// ParseTarget validates a target name.
func ParseTarget(name string) (Target, error) {
	for _, t := range Targets() {
		if string(t) == name {
			return t, nil
		}
	}

	return "", domain.NewValidationErrorWithValue("target", "unsupported share target", name)
}

// Text is the plain share text: the quote in double quotes followed by an
// em-dash attribution.
func Text(record domain.QuoteRecord) string {
	return `"` + record.Text + `" — ` + record.Author
}

// Format builds the payload for target. pageURL is only used by the
// Facebook share link.
func Format(record domain.QuoteRecord, target Target, pageURL string) (Payload, error) {
	text := Text(record)

	switch target {
	case TargetTwitter:
		return Payload{
			Action:  ActionOpenURL,
			Payload: twitterIntentURL + "?text=" + EncodeComponent(text),
		}, nil
	case TargetFacebook:
		return Payload{
			Action:  ActionOpenURL,
			Payload: facebookShareURL + "?u=" + EncodeComponent(pageURL) + "&quote=" + EncodeComponent(text),
		}, nil
	case TargetInstagram, TargetClipboard:
		return Payload{Action: ActionCopyText, Payload: text}, nil
	default:
		return Payload{}, domain.NewValidationErrorWithValue("target", "unsupported share target", string(target))
	}
}

// componentUnescaper undoes the escapes url.QueryEscape applies beyond the
// browser's encodeURIComponent.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s the way encodeURIComponent does:
// spaces become %20 and !'()* are left alone.
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
