package cache

// Mutation enumerates every server mutation the client performs.
type Mutation int

const (
	MutationCreatePost Mutation = iota
	MutationEditPost
	MutationDeletePost
	MutationLikePost
	MutationFollowUser
	MutationSavePost
	MutationAddComment
	MutationEditComment
	MutationDeleteComment
	MutationLikeComment
	MutationAddReply
	MutationReadNotification
	MutationUploadPhoto
)

// Scope carries the identifiers a mutation touched.
type Scope struct {
	PostID    string
	CommentID string
	UserID    string // target user of a follow toggle
	AuthorID  string // author of the affected post (the acting user for own posts)
}

// Affected enumerates the query keys a mutation makes stale. The mapping
// is maintained by hand, one case per mutation: under-invalidation shows
// stale UI, over-invalidation only costs an extra fetch, so unclear cases
// err on the side of more keys.
//
// Saved/bookmarked is modeled as a relationship on the current user, so a
// save toggle invalidates the current user and the saved-posts collection
// rather than any post key.
func Affected(m Mutation, scope Scope) []Key {
	switch m {
	case MutationCreatePost:
		return []Key{Posts(), UserPosts(scope.AuthorID)}
	case MutationEditPost, MutationDeletePost:
		return []Key{Posts(), Post(scope.PostID), UserPosts(scope.AuthorID)}
	case MutationLikePost:
		return []Key{Posts(), Post(scope.PostID), UserPosts(scope.AuthorID)}
	case MutationFollowUser:
		return []Key{CurrentUser(), UserProfile(scope.UserID)}
	case MutationSavePost:
		return []Key{CurrentUser(), SavedPosts()}
	case MutationAddComment, MutationEditComment, MutationDeleteComment:
		// The posts collection displays comment counts.
		return []Key{Comments(scope.PostID), Posts()}
	case MutationLikeComment:
		return []Key{Comments(scope.PostID)}
	case MutationAddReply:
		return []Key{Replies(scope.PostID, scope.CommentID), Comments(scope.PostID)}
	case MutationReadNotification:
		return []Key{Notifications(), UnreadCount()}
	case MutationUploadPhoto:
		// The avatar shows up on every post the user authored.
		return []Key{CurrentUser(), Posts(), UserPosts(scope.AuthorID)}
	default:
		return nil
	}
}
