package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/birthdays/internal/apperror"
	"github.com/geocoder89/birthdays/internal/calendar"
	"github.com/geocoder89/birthdays/internal/domain/user"
)

const storeTimeout = 3 * time.Second

type UserStore interface {
	Store(ctx context.Context, u user.User) error
	Retrieve(ctx context.Context, name string) (user.User, error)
}

type UsersHandler struct {
	users     UserStore
	validator *user.Validator
	now       func() time.Time
}

// NewUsersHandler wires the handler; now defaults to time.Now and is only
// replaced in tests.
func NewUsersHandler(users UserStore, v *user.Validator, now func() time.Time) *UsersHandler {
	if now == nil {
		now = time.Now
	}

	return &UsersHandler{
		users:     users,
		validator: v,
		now:       now,
	}
}

func (h *UsersHandler) today() calendar.Date {
	return calendar.DateOf(h.now())
}

// SubmitBirthday handles PUT /hello/:name.
func (h *UsersHandler) SubmitBirthday(ctx *gin.Context) {
	name := ctx.Param("name")

	var body user.PutUserBody
	if !BindJSON(ctx, &body) {
		return
	}

	u, err := h.validator.NewUser(name, *body.Birthday, h.today())
	if err != nil {
		RespondError(ctx, err)
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	if err := h.users.Store(cctx, u); err != nil {
		RespondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetUser handles GET /hello/:name.
func (h *UsersHandler) GetUser(ctx *gin.Context) {
	name := ctx.Param("name")

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	u, err := h.users.Retrieve(cctx, name)
	if err != nil {
		RespondError(ctx, err)
		return
	}

	days, err := calendar.DaysUntilNextBirthday(h.today(), u.Birthday())
	if err != nil {
		RespondError(ctx, apperror.Otherf("days until birthday of %q: %w", u.Name(), err))
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{"message": greeting(u.Name(), days)})
}

func greeting(name string, days int) string {
	if days == 0 {
		return fmt.Sprintf("Hello, %s! Happy birthday!", name)
	}
	return fmt.Sprintf("Hello, %s! Your birthday is in %d day(s)", name, days)
}
