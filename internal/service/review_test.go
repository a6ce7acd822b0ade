package service

import (
	"context"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deppfellow/bizreviews/internal/errs"
	"github.com/deppfellow/bizreviews/internal/model"
	"github.com/deppfellow/bizreviews/internal/service/servicetest"
)

func seedBusiness(t *testing.T, store *servicetest.MemStore) string {
	t.Helper()
	id, err := newTestBusinessService(store).Create(context.Background(), model.BusinessFields{
		Name: "Harbour Bar", Town: "Portrush", Rating: 4,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return id.Hex()
}

func TestReviewAddThenList(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewMemStore()
	svc := NewReviewService(store)
	bid := seedBusiness(t, store)

	first, err := svc.Add(ctx, bid, model.ReviewFields{Username: "ann", Comment: "great", Stars: 5})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	second, err := svc.Add(ctx, bid, model.ReviewFields{Username: "bob", Comment: "fine", Stars: 3})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct review ids")
	}

	got, err := svc.List(ctx, bid)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(got))
	}
	if got[0].ID != first.Hex() || got[1].ID != second.Hex() {
		t.Errorf("reviews out of order: %+v", got)
	}
	if got[0].Username != "ann" || got[0].Comment != "great" || got[0].Stars != 5 {
		t.Errorf("unexpected first review: %+v", got[0])
	}
}

func TestReviewListEmptyBusiness(t *testing.T) {
	store := servicetest.NewMemStore()
	bid := seedBusiness(t, store)

	got, err := NewReviewService(store).List(context.Background(), bid)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", got)
	}
}

func TestReviewAddToAbsentBusiness(t *testing.T) {
	_, err := NewReviewService(servicetest.NewMemStore()).Add(context.Background(), primitive.NewObjectID().Hex(),
		model.ReviewFields{Username: "ann", Comment: "x", Stars: 1})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestReviewGetEditDelete(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewMemStore()
	svc := NewReviewService(store)
	bid := seedBusiness(t, store)

	rid, err := svc.Add(ctx, bid, model.ReviewFields{Username: "ann", Comment: "great", Stars: 5})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Edit(ctx, bid, rid.Hex(), model.ReviewFields{Username: "ann", Comment: "changed my mind", Stars: 2}); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	got, err := svc.Get(ctx, bid, rid.Hex())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != rid.Hex() || got.Comment != "changed my mind" || got.Stars != 2 {
		t.Errorf("edit not applied: %+v", got)
	}

	if err := svc.Delete(ctx, bid, rid.Hex()); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err = svc.Get(ctx, bid, rid.Hex())
	assertHTTPStatus(t, err, http.StatusNotFound)

	// a second delete still succeeds
	if err := svc.Delete(ctx, bid, rid.Hex()); err != nil {
		t.Errorf("repeat Delete: %v", err)
	}
}

func TestReviewKeyIncludesBusiness(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewMemStore()
	svc := NewReviewService(store)
	owner := seedBusiness(t, store)
	other := seedBusiness(t, store)

	original := model.ReviewFields{Username: "ann", Comment: "original", Stars: 4}
	rid, err := svc.Add(ctx, owner, original)
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Get(ctx, other, rid.Hex())
	httpErr := assertHTTPStatus(t, err, http.StatusNotFound)
	if httpErr.Message != errs.MsgInvalidReviewID {
		t.Errorf("unexpected message %q", httpErr.Message)
	}

	if err := svc.Edit(ctx, other, rid.Hex(), model.ReviewFields{Username: "x", Comment: "y", Stars: 1}); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if err := svc.Delete(ctx, other, rid.Hex()); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := svc.Get(ctx, owner, rid.Hex())
	if err != nil {
		t.Fatalf("Get through owner: %v", err)
	}
	if got.Username != original.Username || got.Comment != original.Comment || got.Stars != original.Stars {
		t.Errorf("review changed through another business: %+v", got)
	}
}

func TestReviewEditUnmatchedSucceeds(t *testing.T) {
	store := servicetest.NewMemStore()
	bid := seedBusiness(t, store)

	err := NewReviewService(store).Edit(context.Background(), bid, primitive.NewObjectID().Hex(),
		model.ReviewFields{Username: "x", Comment: "y", Stars: 1})
	if err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestReviewInvalidIDs(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewMemStore()
	svc := NewReviewService(store)
	valid := primitive.NewObjectID().Hex()
	fields := model.ReviewFields{Username: "a", Comment: "b", Stars: 1}

	tests := []struct {
		name    string
		bid     string
		rid     string
		message string
	}{
		{name: "bad business id", bid: "nope", rid: valid, message: errs.MsgInvalidBusinessID},
		{name: "bad review id", bid: valid, rid: "nope", message: errs.MsgInvalidReviewID},
		{name: "both bad", bid: "x", rid: "y", message: errs.MsgInvalidBusinessID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks := map[string]error{}
			_, checks["get"] = svc.Get(ctx, tt.bid, tt.rid)
			checks["edit"] = svc.Edit(ctx, tt.bid, tt.rid, fields)
			checks["delete"] = svc.Delete(ctx, tt.bid, tt.rid)

			for op, err := range checks {
				httpErr := assertHTTPStatus(t, err, http.StatusBadRequest)
				if httpErr.Message != tt.message {
					t.Errorf("%s: expected %q, got %q", op, tt.message, httpErr.Message)
				}
			}
		})
	}

	_, err := svc.Add(ctx, "nope", fields)
	assertHTTPStatus(t, err, http.StatusBadRequest)
	_, err = svc.List(ctx, "nope")
	assertHTTPStatus(t, err, http.StatusBadRequest)

	if store.Calls() != 0 {
		t.Errorf("expected no store calls, got %d", store.Calls())
	}
}
