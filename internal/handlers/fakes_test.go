package handlers

import (
	"context"
	"fmt"
	"sync"

	"github.com/okanv/likeledger/internal/models"
)

// In-memory stand-ins for the persistence layer. The like write path runs
// behind a goroutine, so all fakes are safe for concurrent use.

type fakePostRepo struct {
	mu   sync.Mutex
	docs map[string]*models.PostDocument
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{docs: make(map[string]*models.PostDocument)}
}

func (f *fakePostRepo) CreatePost(_ context.Context, doc *models.PostDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[doc.OwnerAddress] = doc
	return nil
}

func (f *fakePostRepo) GetPostByOwner(_ context.Context, ownerAddress string) (*models.PostDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[ownerAddress]
	if !ok {
		return nil, fmt.Errorf("post not found")
	}
	return doc, nil
}

func (f *fakePostRepo) IncrementLikesCount(_ context.Context, ownerAddress string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if doc, ok := f.docs[ownerAddress]; ok {
		doc.LikesCount++
	}
	return nil
}

type fakeLikeRepo struct {
	mu   sync.Mutex
	rows map[string]models.Like
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{rows: make(map[string]models.Like)}
}

func (f *fakeLikeRepo) key(owner, liker string) string {
	return owner + "/" + liker
}

func (f *fakeLikeRepo) RecordLike(like *models.Like) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[f.key(like.OwnerAddress, like.LikerAddress)] = *like
	return nil
}

func (f *fakeLikeRepo) GetLikersByOwner(ownerAddress string) ([]models.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var likes []models.Like
	for _, row := range f.rows {
		if row.OwnerAddress == ownerAddress {
			likes = append(likes, row)
		}
	}
	return likes, nil
}

func (f *fakeLikeRepo) GetLikesCountByOwner(ownerAddress string) (int64, error) {
	likes, _ := f.GetLikersByOwner(ownerAddress)
	return int64(len(likes)), nil
}

func (f *fakeLikeRepo) HasLiked(ownerAddress, likerAddress string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[f.key(ownerAddress, likerAddress)]
	return ok, nil
}

type fakeLikeCache struct {
	mu     sync.Mutex
	likers map[string]map[string]struct{}
	counts map[string]uint64
}

func newFakeLikeCache() *fakeLikeCache {
	return &fakeLikeCache{
		likers: make(map[string]map[string]struct{}),
		counts: make(map[string]uint64),
	}
}

func (f *fakeLikeCache) AddLiker(ownerAddress, likerAddress string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	set, ok := f.likers[ownerAddress]
	if !ok {
		set = make(map[string]struct{})
		f.likers[ownerAddress] = set
	}
	if _, present := set[likerAddress]; present {
		return nil
	}
	set[likerAddress] = struct{}{}
	f.counts[ownerAddress]++
	return nil
}

func (f *fakeLikeCache) IsLiker(ownerAddress, likerAddress string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.likers[ownerAddress][likerAddress]
	return ok, nil
}

func (f *fakeLikeCache) GetLikesCount(ownerAddress string) (uint64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count, ok := f.counts[ownerAddress]
	return count, ok, nil
}

func (f *fakeLikeCache) SetLikesCount(ownerAddress string, likes uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[ownerAddress] = likes
	return nil
}
