package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/deppfellow/bizreviews/internal/errs"
	"github.com/deppfellow/bizreviews/internal/lib/pagination"
	"github.com/deppfellow/bizreviews/internal/model"
	"github.com/deppfellow/bizreviews/internal/service/servicetest"
	"github.com/deppfellow/bizreviews/internal/storeerr"
)

func newTestBusinessService(store BusinessStore) *BusinessService {
	return NewBusinessService(store, pagination.Options{DefaultSize: 10, MaxSize: 100})
}

func assertHTTPStatus(t *testing.T, err error, want int) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T (%v)", err, err)
	}
	if httpErr.Status != want {
		t.Fatalf("expected status %d, got %d (%s)", want, httpErr.Status, httpErr.Message)
	}
	return httpErr
}

func TestBusinessCreateThenGet(t *testing.T) {
	ctx := context.Background()
	svc := newTestBusinessService(servicetest.NewMemStore())

	id, err := svc.Create(ctx, model.BusinessFields{Name: "Pizza Mountain", Town: "Coleraine", Rating: 5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(ctx, id.Hex())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != id.Hex() || got.Name != "Pizza Mountain" || got.Town != "Coleraine" || got.Rating != 5 {
		t.Errorf("unexpected business: %+v", got)
	}
	if got.Reviews == nil || len(got.Reviews) != 0 {
		t.Errorf("expected empty non-nil reviews, got %#v", got.Reviews)
	}
}

func TestBusinessListPagination(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewMemStore()
	svc := newTestBusinessService(store)

	var ids []string
	for i := 0; i < 15; i++ {
		id, err := svc.Create(ctx, model.BusinessFields{Name: fmt.Sprintf("biz-%02d", i), Town: "Derry", Rating: 3})
		if err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
		ids = append(ids, id.Hex())
	}

	tests := []struct {
		name    string
		pn, ps  string
		wantIDs []string
	}{
		{name: "defaults", wantIDs: ids[:10]},
		{name: "second page", pn: "2", ps: "10", wantIDs: ids[10:]},
		{name: "size only", ps: "4", wantIDs: ids[:4]},
		{name: "page only", pn: "2", wantIDs: ids[10:]},
		{name: "past the end", pn: "9", ps: "10", wantIDs: []string{}},
		{name: "size clamped", ps: "1000", wantIDs: ids},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(ctx, tt.pn, tt.ps)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if got == nil {
				t.Fatal("expected non-nil slice")
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("expected %d items, got %d", len(tt.wantIDs), len(got))
			}
			for i := range got {
				if got[i].ID != tt.wantIDs[i] {
					t.Errorf("item %d: expected %s, got %s", i, tt.wantIDs[i], got[i].ID)
				}
			}
		})
	}
}

func TestBusinessListRejectsBadPagination(t *testing.T) {
	svc := newTestBusinessService(servicetest.NewMemStore())

	for _, q := range [][2]string{{"0", ""}, {"", "-1"}, {"abc", "10"}, {"1", "1.5"}} {
		_, err := svc.List(context.Background(), q[0], q[1])
		httpErr := assertHTTPStatus(t, err, http.StatusBadRequest)
		if len(httpErr.Errors) != 1 {
			t.Errorf("pn=%q ps=%q: expected one field error, got %v", q[0], q[1], httpErr.Errors)
		}
	}
}

func TestBusinessInvalidIDNeverReachesStore(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewMemStore()
	svc := newTestBusinessService(store)

	for _, id := range []string{"", "xyz", "65f1c0ffee", "65f1c0ffee65f1c0ffee65fZ", "65f1c0ffee65f1c0ffee65f1c0"} {
		_, err := svc.Get(ctx, id)
		httpErr := assertHTTPStatus(t, err, http.StatusBadRequest)
		if httpErr.Message != errs.MsgInvalidBusinessID {
			t.Errorf("Get(%q): unexpected message %q", id, httpErr.Message)
		}

		_, err = svc.Update(ctx, id, model.BusinessFields{Name: "n", Town: "t", Rating: 1})
		assertHTTPStatus(t, err, http.StatusBadRequest)

		err = svc.Delete(ctx, id)
		assertHTTPStatus(t, err, http.StatusBadRequest)
	}

	if store.Calls() != 0 {
		t.Errorf("expected no store calls, got %d", store.Calls())
	}
}

func TestBusinessAbsentIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestBusinessService(servicetest.NewMemStore())
	absent := primitive.NewObjectID().Hex()

	_, err := svc.Get(ctx, absent)
	assertHTTPStatus(t, err, http.StatusNotFound)

	_, err = svc.Update(ctx, absent, model.BusinessFields{Name: "n", Town: "t", Rating: 1})
	assertHTTPStatus(t, err, http.StatusNotFound)

	err = svc.Delete(ctx, absent)
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestBusinessUpdateKeepsReviews(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewMemStore()
	svc := newTestBusinessService(store)
	reviews := NewReviewService(store)

	id, err := svc.Create(ctx, model.BusinessFields{Name: "Old", Town: "Belfast", Rating: 2})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reviews.Add(ctx, id.Hex(), model.ReviewFields{Username: "ann", Comment: "ok", Stars: 3}); err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update(ctx, id.Hex(), model.BusinessFields{Name: "New", Town: "Newry", Rating: 4})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated != id {
		t.Errorf("expected id %s, got %s", id.Hex(), updated.Hex())
	}

	got, err := svc.Get(ctx, id.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "New" || got.Town != "Newry" || got.Rating != 4 {
		t.Errorf("update not applied: %+v", got)
	}
	if len(got.Reviews) != 1 {
		t.Errorf("expected reviews to survive update, got %d", len(got.Reviews))
	}
}

func TestBusinessDeleteCascadesToReviews(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewMemStore()
	svc := newTestBusinessService(store)
	reviews := NewReviewService(store)

	id, err := svc.Create(ctx, model.BusinessFields{Name: "Gone", Town: "Omagh", Rating: 1})
	if err != nil {
		t.Fatal(err)
	}
	rid, err := reviews.Add(ctx, id.Hex(), model.ReviewFields{Username: "bob", Comment: "meh", Stars: 2})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, id.Hex()); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err = svc.Get(ctx, id.Hex())
	assertHTTPStatus(t, err, http.StatusNotFound)

	_, err = reviews.List(ctx, id.Hex())
	assertHTTPStatus(t, err, http.StatusNotFound)

	_, err = reviews.Get(ctx, id.Hex(), rid.Hex())
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestBusinessStoreErrorsPassThrough(t *testing.T) {
	store := servicetest.NewMemStore()
	store.Err = storeerr.Wrap(mongo.ErrClientDisconnected, "business", "find page")
	svc := newTestBusinessService(store)

	_, err := svc.List(context.Background(), "", "")
	if storeerr.ErrCode(err) != storeerr.Unavailable {
		t.Errorf("expected unavailable store error, got %v", err)
	}

	assertHTTPStatus(t, storeerr.HandleError(err), http.StatusServiceUnavailable)
}
