package ledger

import (
	"hash/fnv"
	"sync"
)

const shardCount = 32

// post is the stored record. likes always equals len(likers).
type post struct {
	id     uint64
	likes  uint64
	likers map[Address]struct{}
}

type shard struct {
	mu    sync.RWMutex
	posts map[Address]*post
}

// Registry is a concurrent, account-keyed store of posts. Each account owns
// at most one post; only the owning signer can create it, and any signer can
// like it. Writes to the same account are serialized by the shard lock, so
// every operation is an atomic read-modify-write over a single post.
type Registry struct {
	shards [shardCount]*shard
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	for i := range r.shards {
		r.shards[i] = &shard{posts: make(map[Address]*post)}
	}
	return r
}

func (r *Registry) shardFor(owner Address) *shard {
	h := fnv.New32a()
	h.Write([]byte(owner))
	return r.shards[h.Sum32()%shardCount]
}

// CreatePost publishes a post under the signer's account. The post id is
// caller-chosen and carried as-is; no cross-account uniqueness is enforced.
// Returns ErrAlreadyExists if the account has already published, regardless
// of the id supplied.
func (r *Registry) CreatePost(s Signer, postID uint64) error {
	owner := s.Address()
	sh := r.shardFor(owner)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, ok := sh.posts[owner]; ok {
		return ErrAlreadyExists
	}
	sh.posts[owner] = &post{
		id:     postID,
		likers: make(map[Address]struct{}),
	}
	return nil
}

// LikePost records a like by the signer on the post owned by owner. Liking a
// post twice is a silent no-op; liking your own post is allowed. The returned
// bool reports whether the like was newly inserted, decided under the shard
// lock so racing duplicates see it exactly once. Returns ErrNotFound if the
// owner has no post.
func (r *Registry) LikePost(s Signer, owner Address) (bool, error) {
	liker := s.Address()
	sh := r.shardFor(owner)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	p, ok := sh.posts[owner]
	if !ok {
		return false, ErrNotFound
	}
	if _, liked := p.likers[liker]; liked {
		return false, nil
	}
	p.likers[liker] = struct{}{}
	p.likes++
	return true, nil
}

// GetPost returns a copy of the post under owner, or ErrNotFound.
func (r *Registry) GetPost(owner Address) (PostView, error) {
	sh := r.shardFor(owner)

	sh.mu.RLock()
	defer sh.mu.RUnlock()

	p, ok := sh.posts[owner]
	if !ok {
		return PostView{}, ErrNotFound
	}
	view := PostView{
		ID:     p.id,
		Owner:  owner,
		Likes:  p.likes,
		Likers: make([]Address, 0, len(p.likers)),
	}
	for liker := range p.likers {
		view.Likers = append(view.Likers, liker)
	}
	return view, nil
}

// HasLiked reports whether liker has liked the post under owner. Returns
// ErrNotFound if the owner has no post.
func (r *Registry) HasLiked(owner, liker Address) (bool, error) {
	sh := r.shardFor(owner)

	sh.mu.RLock()
	defer sh.mu.RUnlock()

	p, ok := sh.posts[owner]
	if !ok {
		return false, ErrNotFound
	}
	_, liked := p.likers[liker]
	return liked, nil
}
