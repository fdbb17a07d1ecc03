package repo

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	return conn
}

func TestNewBaseStoresConnection(t *testing.T) {
	db := newTestDB(t)
	base := NewBase(db)

	if base.db != db {
		t.Fatalf("expected base db to match provided connection")
	}
}

func TestBaseDB_BindsContext(t *testing.T) {
	db := newTestDB(t)
	base := NewBase(db)

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	withCtx := base.DB(ctx)

	if withCtx == nil {
		t.Fatalf("expected non-nil DB when context provided")
	}
	if withCtx.Statement == nil {
		t.Fatalf("expected statement created after WithContext")
	}
	if withCtx.Statement.Context != ctx {
		t.Fatalf("expected context to flow through, got %v", withCtx.Statement.Context)
	}

	withoutCtx := base.DB(nil)
	if withoutCtx != db {
		t.Fatalf("expected nil context to return raw connection")
	}
}

func TestPaginateScope(t *testing.T) {
	db := newTestDB(t)

	type widget struct {
		ID   int64
		Name string
	}
	if err := db.AutoMigrate(&widget{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	for i := 0; i < 7; i++ {
		if err := db.Create(&widget{Name: "w"}).Error; err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	}

	var rows []widget
	err := db.Order("id ASC").
		Scopes(Paginate(pagination.Params{Page: 3, PageSize: 3})).
		Find(&rows).Error
	if err != nil {
		t.Fatalf("paginated query failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected the last partial page to hold 1 row, got %d", len(rows))
	}
	if rows[0].ID != 7 {
		t.Fatalf("expected row 7, got %d", rows[0].ID)
	}
}
