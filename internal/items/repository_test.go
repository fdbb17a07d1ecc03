package items

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Floor{}, &models.Room{}, &models.Container{}, &models.Item{}))
	return conn
}

func seedRoom(t *testing.T, db *gorm.DB, name string) *models.Room {
	t.Helper()
	room := &models.Room{Name: &name}
	require.NoError(t, db.Create(room).Error)
	return room
}

func seedContainer(t *testing.T, db *gorm.DB, name string, roomID *int64) *models.Container {
	t.Helper()
	container := &models.Container{Name: &name, RoomID: roomID}
	require.NoError(t, db.Create(container).Error)
	return container
}

func seedItem(t *testing.T, db *gorm.DB, name string, quantity int, roomID int64, containerID *int64) *models.Item {
	t.Helper()
	item := &models.Item{Name: name, Quantity: quantity, RoomID: roomID, ContainerID: containerID}
	require.NoError(t, db.Create(item).Error)
	return item
}

func TestRepositoryList_NameFilterIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, "garage")
	seedItem(t, db, "Drill Bits", 1, room.ID, nil)
	seedItem(t, db, "Paint Roller", 1, room.ID, nil)

	rows, total, err := repo.List(ctx, ListFilters{Name: "dRiLl"}, pagination.Params{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Drill Bits", rows[0].Name)
}

func TestRepositoryList_ContainerFilterTakesPrecedence(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, "garage")
	other := seedRoom(t, db, "attic")
	box := seedContainer(t, db, "toolbox", &room.ID)

	inBox := seedItem(t, db, "wrench", 1, room.ID, &box.ID)
	seedItem(t, db, "ladder", 1, other.ID, nil)

	rows, total, err := repo.List(ctx, ListFilters{
		RoomIDs:      []int64{room.ID, other.ID},
		ContainerIDs: []int64{box.ID},
	}, pagination.Params{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, inBox.ID, rows[0].ID)
	require.NotNil(t, rows[0].Container)
	assert.Equal(t, box.ID, rows[0].Container.ID)
}

func TestRepositoryList_PaginatesInIDOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, "garage")
	for i := 0; i < 5; i++ {
		seedItem(t, db, fmt.Sprintf("item-%d", i), 1, room.ID, nil)
	}

	rows, total, err := repo.List(ctx, ListFilters{}, pagination.Params{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "item-2", rows[0].Name)
	assert.Equal(t, "item-3", rows[1].Name)
}

func TestRepositoryCountMismatchedContainers(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, "garage")
	other := seedRoom(t, db, "attic")
	matching := seedContainer(t, db, "toolbox", &room.ID)
	foreign := seedContainer(t, db, "bin", &other.ID)
	orphan := seedContainer(t, db, "crate", nil)

	count, err := repo.CountMismatchedContainers(ctx, []int64{matching.ID}, []int64{room.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	count, err = repo.CountMismatchedContainers(ctx, []int64{matching.ID, foreign.ID, orphan.ID}, []int64{room.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRepositoryFindByScopeName(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, "garage")
	box := seedContainer(t, db, "toolbox", &room.ID)
	loose := seedItem(t, db, "Screws", 10, room.ID, nil)
	boxed := seedItem(t, db, "Screws", 4, room.ID, &box.ID)

	found, err := repo.FindByScopeName(ctx, "screws", room.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, loose.ID, found.ID)

	found, err = repo.FindByScopeName(ctx, "SCREWS", room.ID, &box.ID)
	require.NoError(t, err)
	assert.Equal(t, boxed.ID, found.ID)

	_, err = repo.FindByScopeName(ctx, "missing", room.ID, nil)
	assert.Error(t, err)
}
