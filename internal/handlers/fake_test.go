package handlers_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"postboard/internal/models"
	"postboard/internal/store"
)

// fakeStore is an in-memory stand-in for the Postgres store, enforcing
// the same unique constraints and sentinel errors.
type fakeStore struct {
	mu       sync.Mutex
	users    map[int64]models.User
	posts    map[int64]models.Post
	votes    map[[2]int64]struct{}
	nextUser int64
	nextPost int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: make(map[int64]models.User),
		posts: make(map[int64]models.Post),
		votes: make(map[[2]int64]struct{}),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, email, passwordHash string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return models.User{}, store.ErrDuplicate
		}
	}
	f.nextUser++
	user := models.User{ID: f.nextUser, Email: email, Password: passwordHash}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id int64) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (f *fakeStore) deleteUser(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}

func (f *fakeStore) CreatePost(_ context.Context, post models.Post) (models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextPost++
	post.ID = f.nextPost
	f.posts[post.ID] = post
	return post, nil
}

func (f *fakeStore) GetPost(_ context.Context, id int64) (models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return models.Post{}, store.ErrNotFound
	}
	return post, nil
}

func (f *fakeStore) GetPostWithVotes(_ context.Context, id int64) (models.PostWithVotes, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return models.PostWithVotes{}, store.ErrNotFound
	}
	return models.PostWithVotes{Post: post, Votes: f.countVotes(id)}, nil
}

func (f *fakeStore) ListPosts(_ context.Context, search string, limit, offset int) ([]models.PostWithVotes, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]int64, 0, len(f.posts))
	for id, p := range f.posts {
		if strings.Contains(p.Title, search) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]models.PostWithVotes, 0, len(ids))
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, models.PostWithVotes{Post: f.posts[id], Votes: f.countVotes(id)})
	}
	return out, nil
}

func (f *fakeStore) countVotes(postID int64) int64 {
	var n int64
	for key := range f.votes {
		if key[1] == postID {
			n++
		}
	}
	return n
}

func (f *fakeStore) UpdatePost(_ context.Context, post models.Post) (models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.posts[post.ID]
	if !ok {
		return models.Post{}, store.ErrNotFound
	}
	post.OwnerID = existing.OwnerID
	post.CreatedAt = existing.CreatedAt
	f.posts[post.ID] = post
	return post, nil
}

func (f *fakeStore) DeletePost(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.posts, id)
	for key := range f.votes {
		if key[1] == id {
			delete(f.votes, key)
		}
	}
	return nil
}

func (f *fakeStore) CreateVote(_ context.Context, userID, postID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{userID, postID}
	if _, ok := f.votes[key]; ok {
		return store.ErrDuplicate
	}
	f.votes[key] = struct{}{}
	return nil
}

func (f *fakeStore) DeleteVote(_ context.Context, userID, postID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{userID, postID}
	if _, ok := f.votes[key]; !ok {
		return store.ErrNotFound
	}
	delete(f.votes, key)
	return nil
}
