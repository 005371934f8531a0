package prompt

import (
	"fmt"
	"net/url"

	"github.com/chatbox-platform/chatbox/internal/transcript"
)

// InvalidImageReferenceError reports a client-supplied image reference
// that is not an absolute http(s) URL. It identifies the offending value.
type InvalidImageReferenceError struct {
	Ref string
}

func (e *InvalidImageReferenceError) Error() string {
	return fmt.Sprintf("image reference must be an absolute http or https URL: %q", e.Ref)
}

// Build converts stored transcript turns plus the newest user turn into
// the outbound message list for one inference call. It never mutates the
// given turns.
//
// With no image references the stored turns pass through verbatim. With
// image references, every reference is validated up front — on the first
// invalid one Build fails and no list is produced — then the final user
// turn's content is replaced by a multipart body: one text part followed
// by one image part per reference, in input order.
func Build(turns []transcript.Turn, newUserText string, imageRefs []string) ([]Message, error) {
	if len(imageRefs) > 0 {
		// Eager validation pass before any list construction, so a bad
		// reference can never leave a half-built request behind.
		for _, ref := range imageRefs {
			if !validImageRef(ref) {
				return nil, &InvalidImageReferenceError{Ref: ref}
			}
		}
	}

	msgs := make([]Message, 0, len(turns)+1)
	for _, t := range turns {
		msgs = append(msgs, Message{Role: t.Role, Content: PlainText(t.Content)})
	}

	if len(imageRefs) == 0 {
		return msgs, nil
	}

	// The final element should be the user turn the caller just recorded.
	// If bookkeeping is out of sync, append a synthetic user turn rather
	// than silently dropping the user's message.
	if len(msgs) == 0 || msgs[len(msgs)-1].Role != transcript.RoleUser {
		msgs = append(msgs, Message{Role: transcript.RoleUser, Content: PlainText(newUserText)})
	}

	parts := make([]Part, 0, len(imageRefs)+1)
	parts = append(parts, TextPart(newUserText))
	for _, ref := range imageRefs {
		parts = append(parts, ImagePart(ref))
	}
	msgs[len(msgs)-1].Content = MultiPart(parts)

	return msgs, nil
}

func validImageRef(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
