package items

import (
	"context"
	"encoding/json"
	"testing"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

type testRoomLoader struct{ db *gorm.DB }

func (l testRoomLoader) FindByID(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	if err := l.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

type testContainerLoader struct{ db *gorm.DB }

func (l testContainerLoader) FindByID(ctx context.Context, id int64) (*models.Container, error) {
	var container models.Container
	if err := l.db.WithContext(ctx).First(&container, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &container, nil
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc, err := NewService(NewRepository(db), testRoomLoader{db: db}, testContainerLoader{db: db})
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return svc, db
}

func assertErrorCode(t *testing.T, err error, code pkgerrors.Code) *pkgerrors.Error {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s (%v)", code, typed.Code(), err)
	}
	return typed
}

func assertReason(t *testing.T, err *pkgerrors.Error, reason string) {
	t.Helper()
	details, ok := err.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected map details, got %T", err.Details())
	}
	if details["reason"] != reason {
		t.Fatalf("expected reason %q, got %q", reason, details["reason"])
	}
}

func TestServiceCreate(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	room := seedRoom(t, db, "garage")
	box := seedContainer(t, db, "toolbox", &room.ID)

	dto, err := svc.Create(ctx, CreateItemInput{Name: " Hammer ", Quantity: 2, RoomID: room.ID, ContainerID: &box.ID})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if dto.Name != "Hammer" {
		t.Fatalf("expected trimmed name, got %q", dto.Name)
	}
	if dto.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", dto.Quantity)
	}
	if dto.Room == nil || dto.Room.ID != room.ID {
		t.Fatalf("expected room reference on response")
	}
	if dto.Container == nil || dto.Container.ID != box.ID {
		t.Fatalf("expected container reference on response")
	}
}

func TestServiceCreate_UnknownRoom(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateItemInput{Name: "hammer", Quantity: 1, RoomID: 999})
	typed := assertErrorCode(t, err, pkgerrors.CodeNotFound)
	assertReason(t, typed, "room_not_found")
}

func TestServiceCreate_UnknownContainer(t *testing.T) {
	svc, db := newTestService(t)
	room := seedRoom(t, db, "garage")

	missing := int64(999)
	_, err := svc.Create(context.Background(), CreateItemInput{Name: "hammer", Quantity: 1, RoomID: room.ID, ContainerID: &missing})
	typed := assertErrorCode(t, err, pkgerrors.CodeNotFound)
	assertReason(t, typed, "container_not_found")
}

func TestServiceCreate_RejectsBadInput(t *testing.T) {
	svc, db := newTestService(t)
	room := seedRoom(t, db, "garage")

	_, err := svc.Create(context.Background(), CreateItemInput{Name: "   ", Quantity: 1, RoomID: room.ID})
	assertErrorCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(context.Background(), CreateItemInput{Name: "hammer", Quantity: -1, RoomID: room.ID})
	assertErrorCode(t, err, pkgerrors.CodeValidation)
}

func TestServiceList_RejectsContainerRoomMismatch(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	room := seedRoom(t, db, "garage")
	other := seedRoom(t, db, "attic")
	foreign := seedContainer(t, db, "bin", &other.ID)

	_, err := svc.List(ctx, ListInput{Filters: ListFilters{
		RoomIDs:      []int64{room.ID},
		ContainerIDs: []int64{foreign.ID},
	}})
	typed := assertErrorCode(t, err, pkgerrors.CodeValidation)
	if typed.Message() != "container_room_mismatch" {
		t.Fatalf("expected container_room_mismatch message, got %q", typed.Message())
	}
}

func TestServiceList_AcceptsConsistentFilters(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	room := seedRoom(t, db, "garage")
	box := seedContainer(t, db, "toolbox", &room.ID)
	seedItem(t, db, "wrench", 1, room.ID, &box.ID)
	seedItem(t, db, "ladder", 1, room.ID, nil)

	page, err := svc.List(ctx, ListInput{Filters: ListFilters{
		RoomIDs:      []int64{room.ID},
		ContainerIDs: []int64{box.ID},
	}})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected 1 row (container precedence), got %d", page.Total)
	}
	if page.Page != 1 || page.PageSize != pagination.DefaultPageSize {
		t.Fatalf("expected normalized defaults, got page=%d pageSize=%d", page.Page, page.PageSize)
	}
}

func TestServiceList_EmptyPageMarshalsAsArray(t *testing.T) {
	svc, _ := newTestService(t)

	page, err := svc.List(context.Background(), ListInput{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	raw, err := json.Marshal(page)
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if string(decoded["data"]) != "[]" {
		t.Fatalf("expected empty data array, got %s", decoded["data"])
	}
}

func TestServiceListByRoom(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	room := seedRoom(t, db, "garage")
	other := seedRoom(t, db, "attic")
	seedItem(t, db, "wrench", 1, room.ID, nil)
	seedItem(t, db, "ladder", 1, other.ID, nil)

	page, err := svc.ListByRoom(ctx, room.ID, pagination.Params{})
	if err != nil {
		t.Fatalf("ListByRoom returned error: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected only the room's items, got %d", page.Total)
	}
	if page.PageSize != RoomItemsDefaultPageSize {
		t.Fatalf("expected default page size %d, got %d", RoomItemsDefaultPageSize, page.PageSize)
	}

	_, err = svc.ListByRoom(ctx, 999, pagination.Params{})
	typed := assertErrorCode(t, err, pkgerrors.CodeNotFound)
	assertReason(t, typed, "room_not_found")
}

func TestServiceUpdate_AppliesOnlyPresentFields(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	room := seedRoom(t, db, "garage")
	box := seedContainer(t, db, "toolbox", &room.ID)
	item := seedItem(t, db, "wrench", 3, room.ID, &box.ID)

	var patch UpdatePatch
	if err := json.Unmarshal([]byte(`{"quantity": 7}`), &patch); err != nil {
		t.Fatalf("failed to decode patch: %v", err)
	}

	dto, err := svc.Update(ctx, item.ID, patch)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if dto.Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", dto.Quantity)
	}
	if dto.Name != "wrench" {
		t.Fatalf("expected name untouched, got %q", dto.Name)
	}
	if dto.ContainerID == nil || *dto.ContainerID != box.ID {
		t.Fatalf("expected container untouched")
	}
}

func TestServiceUpdate_NullContainerDetaches(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	room := seedRoom(t, db, "garage")
	box := seedContainer(t, db, "toolbox", &room.ID)
	item := seedItem(t, db, "wrench", 3, room.ID, &box.ID)

	var patch UpdatePatch
	if err := json.Unmarshal([]byte(`{"container_id": null}`), &patch); err != nil {
		t.Fatalf("failed to decode patch: %v", err)
	}

	dto, err := svc.Update(ctx, item.ID, patch)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if dto.ContainerID != nil {
		t.Fatalf("expected container cleared, got %v", *dto.ContainerID)
	}
	if dto.Container != nil {
		t.Fatalf("expected no container reference after detach")
	}
}

func TestServiceUpdate_RejectsInvalidPatch(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	room := seedRoom(t, db, "garage")
	item := seedItem(t, db, "wrench", 3, room.ID, nil)

	cases := []struct {
		name string
		body string
	}{
		{name: "null name", body: `{"name": null}`},
		{name: "empty name", body: `{"name": "  "}`},
		{name: "null quantity", body: `{"quantity": null}`},
		{name: "negative quantity", body: `{"quantity": -2}`},
		{name: "null room", body: `{"room_id": null}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var patch UpdatePatch
			if err := json.Unmarshal([]byte(tc.body), &patch); err != nil {
				t.Fatalf("failed to decode patch: %v", err)
			}
			_, err := svc.Update(ctx, item.ID, patch)
			assertErrorCode(t, err, pkgerrors.CodeValidation)
		})
	}
}

func TestServiceUpdate_UnknownItem(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), 999, UpdatePatch{})
	typed := assertErrorCode(t, err, pkgerrors.CodeNotFound)
	assertReason(t, typed, "item_not_found")
}

func TestServiceDeleteOrReduce(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	room := seedRoom(t, db, "garage")

	intPtr := func(v int) *int { return &v }

	t.Run("partial quantity reduces", func(t *testing.T) {
		item := seedItem(t, db, "screws", 10, room.ID, nil)

		result, err := svc.DeleteOrReduce(ctx, item.ID, intPtr(3))
		if err != nil {
			t.Fatalf("DeleteOrReduce returned error: %v", err)
		}
		if result.Message != "Item quantity reduced" {
			t.Fatalf("unexpected message %q", result.Message)
		}
		if result.Quantity == nil || *result.Quantity != 7 {
			t.Fatalf("expected remaining quantity 7, got %v", result.Quantity)
		}

		var reloaded models.Item
		if err := db.First(&reloaded, "id = ?", item.ID).Error; err != nil {
			t.Fatalf("expected row to survive: %v", err)
		}
		if reloaded.Quantity != 7 {
			t.Fatalf("expected stored quantity 7, got %d", reloaded.Quantity)
		}
	})

	t.Run("quantity at or above current deletes", func(t *testing.T) {
		item := seedItem(t, db, "bolt", 4, room.ID, nil)

		result, err := svc.DeleteOrReduce(ctx, item.ID, intPtr(4))
		if err != nil {
			t.Fatalf("DeleteOrReduce returned error: %v", err)
		}
		if result.Message != "Item deleted" {
			t.Fatalf("unexpected message %q", result.Message)
		}
		if result.Quantity != nil {
			t.Fatalf("expected no quantity on delete result")
		}

		var reloaded models.Item
		err = db.First(&reloaded, "id = ?", item.ID).Error
		if err != gorm.ErrRecordNotFound {
			t.Fatalf("expected row gone, got %v", err)
		}
	})

	t.Run("missing quantity deletes", func(t *testing.T) {
		item := seedItem(t, db, "nut", 4, room.ID, nil)

		result, err := svc.DeleteOrReduce(ctx, item.ID, nil)
		if err != nil {
			t.Fatalf("DeleteOrReduce returned error: %v", err)
		}
		if result.Message != "Item deleted" {
			t.Fatalf("unexpected message %q", result.Message)
		}
	})

	t.Run("zero quantity deletes", func(t *testing.T) {
		item := seedItem(t, db, "washer", 4, room.ID, nil)

		result, err := svc.DeleteOrReduce(ctx, item.ID, intPtr(0))
		if err != nil {
			t.Fatalf("DeleteOrReduce returned error: %v", err)
		}
		if result.Message != "Item deleted" {
			t.Fatalf("unexpected message %q", result.Message)
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := svc.DeleteOrReduce(ctx, 999, nil)
		typed := assertErrorCode(t, err, pkgerrors.CodeNotFound)
		assertReason(t, typed, "item_not_found")
	})
}

func TestServiceUpsertInContainer(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	room := seedRoom(t, db, "garage")
	box := seedContainer(t, db, "toolbox", &room.ID)
	seedItem(t, db, "Screws", 10, room.ID, &box.ID)

	dto, err := svc.UpsertInContainer(ctx, box.ID, UpsertItemInput{Name: "screws", Quantity: 5})
	if err != nil {
		t.Fatalf("UpsertInContainer returned error: %v", err)
	}
	if dto.Quantity != 15 {
		t.Fatalf("expected merged quantity 15, got %d", dto.Quantity)
	}
	if dto.Name != "Screws" {
		t.Fatalf("expected original casing kept, got %q", dto.Name)
	}

	dto, err = svc.UpsertInContainer(ctx, box.ID, UpsertItemInput{Name: "tape", Quantity: 1})
	if err != nil {
		t.Fatalf("UpsertInContainer returned error: %v", err)
	}
	if dto.RoomID != room.ID {
		t.Fatalf("expected new item to inherit the container's room")
	}
	if dto.ContainerID == nil || *dto.ContainerID != box.ID {
		t.Fatalf("expected new item assigned to container")
	}
}

func TestServiceUpsertInContainer_Errors(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpsertInContainer(ctx, 999, UpsertItemInput{Name: "tape", Quantity: 1})
	typed := assertErrorCode(t, err, pkgerrors.CodeNotFound)
	assertReason(t, typed, "container_not_found")

	orphan := seedContainer(t, db, "crate", nil)
	_, err = svc.UpsertInContainer(ctx, orphan.ID, UpsertItemInput{Name: "tape", Quantity: 1})
	assertErrorCode(t, err, pkgerrors.CodeValidation)
}

func TestServiceUpsertLooseInRoom(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	room := seedRoom(t, db, "garage")
	box := seedContainer(t, db, "toolbox", &room.ID)
	seedItem(t, db, "screws", 8, room.ID, &box.ID)
	loose := seedItem(t, db, "screws", 2, room.ID, nil)

	dto, err := svc.UpsertLooseInRoom(ctx, room.ID, UpsertItemInput{Name: "SCREWS", Quantity: 3})
	if err != nil {
		t.Fatalf("UpsertLooseInRoom returned error: %v", err)
	}
	if dto.ID != loose.ID {
		t.Fatalf("expected merge into the loose item, got item %d", dto.ID)
	}
	if dto.Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", dto.Quantity)
	}

	var boxed models.Item
	if err := db.First(&boxed, "container_id = ?", box.ID).Error; err != nil {
		t.Fatalf("failed to reload boxed item: %v", err)
	}
	if boxed.Quantity != 8 {
		t.Fatalf("expected boxed quantity untouched, got %d", boxed.Quantity)
	}

	_, err = svc.UpsertLooseInRoom(ctx, 999, UpsertItemInput{Name: "tape", Quantity: 1})
	typed := assertErrorCode(t, err, pkgerrors.CodeNotFound)
	assertReason(t, typed, "room_not_found")
}
