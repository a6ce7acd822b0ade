// Package servicetest provides an in-memory BusinessStore for tests.
package servicetest

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deppfellow/bizreviews/internal/model"
)

// MemStore keeps businesses in insertion order, which matches the _id
// ordering of the real collection because ids are generated monotonically.
// When Err is set every call fails with it.
type MemStore struct {
	mu    sync.Mutex
	docs  []model.Business
	calls int

	Err error
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

// Calls returns how many store methods have been invoked.
func (m *MemStore) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MemStore) index(id primitive.ObjectID) int {
	for i := range m.docs {
		if m.docs[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *MemStore) reviewIndex(bi int, rid primitive.ObjectID) int {
	for i, r := range m.docs[bi].Reviews {
		if r.ID == rid {
			return i
		}
	}
	return -1
}

func (m *MemStore) FindPage(_ context.Context, skip, limit int64) ([]model.Business, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}

	out := []model.Business{}
	for i := skip; i < int64(len(m.docs)) && int64(len(out)) < limit; i++ {
		out = append(out, m.docs[i])
	}
	return out, nil
}

func (m *MemStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.Business, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}

	i := m.index(id)
	if i < 0 {
		return nil, nil
	}
	b := m.docs[i]
	b.Reviews = append([]model.Review{}, b.Reviews...)
	return &b, nil
}

func (m *MemStore) Insert(_ context.Context, b *model.Business) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return primitive.NilObjectID, m.Err
	}

	doc := *b
	doc.ID = primitive.NewObjectID()
	if doc.Reviews == nil {
		doc.Reviews = []model.Review{}
	}
	m.docs = append(m.docs, doc)
	return doc.ID, nil
}

func (m *MemStore) ReplaceScalars(_ context.Context, id primitive.ObjectID, f model.BusinessFields) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return false, m.Err
	}

	i := m.index(id)
	if i < 0 {
		return false, nil
	}
	m.docs[i].Name, m.docs[i].Town, m.docs[i].Rating = f.Name, f.Town, f.Rating
	return true, nil
}

func (m *MemStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return false, m.Err
	}

	i := m.index(id)
	if i < 0 {
		return false, nil
	}
	m.docs = append(m.docs[:i], m.docs[i+1:]...)
	return true, nil
}

func (m *MemStore) PushReview(_ context.Context, businessID primitive.ObjectID, review model.Review) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return false, m.Err
	}

	i := m.index(businessID)
	if i < 0 {
		return false, nil
	}
	m.docs[i].Reviews = append(m.docs[i].Reviews, review)
	return true, nil
}

func (m *MemStore) FindReviews(_ context.Context, businessID primitive.ObjectID) ([]model.Review, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return nil, false, m.Err
	}

	i := m.index(businessID)
	if i < 0 {
		return nil, false, nil
	}
	return append([]model.Review{}, m.docs[i].Reviews...), true, nil
}

func (m *MemStore) FindReview(_ context.Context, businessID, reviewID primitive.ObjectID) (*model.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}

	i := m.index(businessID)
	if i < 0 {
		return nil, nil
	}
	j := m.reviewIndex(i, reviewID)
	if j < 0 {
		return nil, nil
	}
	r := m.docs[i].Reviews[j]
	return &r, nil
}

func (m *MemStore) ReplaceReviewScalars(_ context.Context, businessID, reviewID primitive.ObjectID, f model.ReviewFields) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return false, m.Err
	}

	i := m.index(businessID)
	if i < 0 {
		return false, nil
	}
	j := m.reviewIndex(i, reviewID)
	if j < 0 {
		return false, nil
	}
	r := &m.docs[i].Reviews[j]
	r.Username, r.Comment, r.Stars = f.Username, f.Comment, f.Stars
	return true, nil
}

func (m *MemStore) PullReview(_ context.Context, businessID, reviewID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return false, m.Err
	}

	i := m.index(businessID)
	if i < 0 {
		return false, nil
	}
	j := m.reviewIndex(i, reviewID)
	if j < 0 {
		return false, nil
	}
	reviews := m.docs[i].Reviews
	m.docs[i].Reviews = append(reviews[:j], reviews[j+1:]...)
	return true, nil
}
