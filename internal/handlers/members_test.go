package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dojodesk/dojodesk/internal/types"
)

// memberRouter stands in for the admin guard by planting a verified
// admin id in the context before each handler runs.
func memberRouter(h *MemberHandler) *gin.Engine {
	return newRouterWith(func(r *gin.Engine) {
		r.Use(func(ctx *gin.Context) {
			ctx.Set(types.ContextAdminKey, uint(2))
			ctx.Next()
		})

		r.POST("/admin/delete-member", h.DeleteMember)
		r.POST("/admin/update-belt", h.UpdateBeltLevel)
		r.POST("/admin/update-address", h.UpdateAddress)
		r.POST("/admin/increment-classes", h.IncrementClasses)
		r.POST("/admin/add-child", h.AddChild)
	})
}

func TestMutations_RequireGuardContext(t *testing.T) {
	db, _, cleanup := setupMockDB(t)
	defer cleanup()

	h := NewMemberHandler(db)

	r := newRouterWith(func(r *gin.Engine) {
		r.POST("/admin/delete-member", h.DeleteMember)
	})

	w := performJSON(t, r, "POST", "/admin/delete-member", gin.H{"mid": 3})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Deleting a member retires its subscription, referral and
// guardianship rows in the same transaction; soft deletes bypass the
// schema-level cascades, so stale edges would otherwise keep showing
// up in referral counts.
func TestDeleteMember_Success(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "members" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "subscribed_to" SET "deleted_at".*WHERE member_id =`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "referred_by" SET "deleted_at".*referrer_id = \$2 OR member_id = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "parent_of" SET "deleted_at".*parent_id = \$2 OR child_id = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	r := memberRouter(NewMemberHandler(db))

	w := performJSON(t, r, "POST", "/admin/delete-member", gin.H{"mid": 3})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMember_NotFound(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "members" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	r := memberRouter(NewMemberHandler(db))

	w := performJSON(t, r, "POST", "/admin/delete-member", gin.H{"mid": 999})

	assert.Equal(t, http.StatusNotFound, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Member not found", body["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMember_RollsBackWhenEdgeDeleteFails(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "members" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "subscribed_to" SET "deleted_at"`).
		WillReturnError(fmt.Errorf("connection reset"))
	mock.ExpectRollback()

	r := memberRouter(NewMemberHandler(db))

	w := performJSON(t, r, "POST", "/admin/delete-member", gin.H{"mid": 3})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMember_MissingID(t *testing.T) {
	db, _, cleanup := setupMockDB(t)
	defer cleanup()

	r := memberRouter(NewMemberHandler(db))

	w := performJSON(t, r, "POST", "/admin/delete-member", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBeltLevel_Success(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE "members" SET "belt_level"=\$1`).
		WithArgs("black", sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := memberRouter(NewMemberHandler(db))

	w := performJSON(t, r, "POST", "/admin/update-belt", gin.H{"mid": 3, "beltLevel": "black"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBeltLevel_NotFound(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE "members" SET "belt_level"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := memberRouter(NewMemberHandler(db))

	w := performJSON(t, r, "POST", "/admin/update-belt", gin.H{"mid": 42, "beltLevel": "black"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateAddress_Success(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE "members" SET "address"=\$1`).
		WithArgs("12 Tatami Lane", sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := memberRouter(NewMemberHandler(db))

	w := performJSON(t, r, "POST", "/admin/update-address", gin.H{"mid": 3, "address": "12 Tatami Lane"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The increment must be a single UPDATE with an in-database addition,
// never a read-modify-write from the handler.
func TestIncrementClasses_AtomicUpdate(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE "members" SET "classes_attended"=classes_attended \+ \$1`).
		WithArgs(1, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := memberRouter(NewMemberHandler(db))

	w := performJSON(t, r, "POST", "/admin/increment-classes", gin.H{"mid": 3})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementClasses_NotFound(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE "members" SET "classes_attended"=classes_attended \+ \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := memberRouter(NewMemberHandler(db))

	w := performJSON(t, r, "POST", "/admin/increment-classes", gin.H{"mid": 404})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddChild_Success(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`INSERT INTO "parent_of"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	r := memberRouter(NewMemberHandler(db))

	w := performJSON(t, r, "POST", "/admin/add-child", gin.H{"mid": 3, "childId": 9})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddChild_StoreRejection(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`INSERT INTO "parent_of"`).
		WillReturnError(fmt.Errorf(`insert or update on table "parent_of" violates foreign key constraint`))

	r := memberRouter(NewMemberHandler(db))

	w := performJSON(t, r, "POST", "/admin/add-child", gin.H{"mid": 3, "childId": 12345})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Contains(t, body["error"], "foreign key constraint")
}
