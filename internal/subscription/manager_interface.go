package subscription

import "github.com/VitaminP8/dsaboard/internal/model"

// Manager fans out newly created comments to the listeners of a discussion.
// The channel returned by Subscribe is closed by its cancel func, or by the
// manager when the listener falls too far behind.
type Manager interface {
	Subscribe(discussionID string) (<-chan *model.Comment, func())
	Publish(discussionID string, comment *model.Comment)
}
