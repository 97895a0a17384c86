package cache

// Kind names one class of cached server data.
type Kind string

const (
	KindPosts         Kind = "posts"
	KindPost          Kind = "post"
	KindUserPosts     Kind = "userPosts"
	KindComments      Kind = "comments"
	KindReplies       Kind = "replies"
	KindCurrentUser   Kind = "currentUser"
	KindUserProfile   Kind = "userProfile"
	KindSavedPosts    Kind = "savedPosts"
	KindSuggestions   Kind = "followSuggestions"
	KindNotifications Kind = "notifications"
	KindUnreadCount   Kind = "unreadCount"
)

// Key addresses exactly one cache entry: an entity kind plus its scope
// parameters. Keys are comparable and used directly as map keys.
type Key struct {
	Kind  Kind
	Scope string
}

// String renders the key in its stable encoded form, also used to address
// persisted snapshots.
func (k Key) String() string {
	if k.Scope == "" {
		return string(k.Kind)
	}
	return string(k.Kind) + ":" + k.Scope
}

func Posts() Key                    { return Key{Kind: KindPosts} }
func Post(postID string) Key        { return Key{Kind: KindPost, Scope: postID} }
func UserPosts(userID string) Key   { return Key{Kind: KindUserPosts, Scope: userID} }
func Comments(postID string) Key    { return Key{Kind: KindComments, Scope: postID} }
func CurrentUser() Key              { return Key{Kind: KindCurrentUser} }
func UserProfile(userID string) Key { return Key{Kind: KindUserProfile, Scope: userID} }
func SavedPosts() Key               { return Key{Kind: KindSavedPosts} }
func Suggestions() Key              { return Key{Kind: KindSuggestions} }
func Notifications() Key            { return Key{Kind: KindNotifications} }
func UnreadCount() Key              { return Key{Kind: KindUnreadCount} }

// Replies scopes on both the post and the comment.
func Replies(postID, commentID string) Key {
	return Key{Kind: KindReplies, Scope: postID + "/" + commentID}
}
