package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bareloved/gigmaster-sub001/internal/model"
)

func newCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetUserID(t *testing.T) {
	c, _ := newCtx(http.MethodGet, "/", "")

	// JWT numeric claims arrive as float64.
	c.Set("user_id", float64(42))
	uid, err := getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)

	c.Set("user_id", uint64(7))
	uid, err = getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), uid)

	c.Set("user_id", "19")
	uid, err = getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(19), uid)

	c.Set("user_id", "not-a-number")
	_, err = getUserID(c)
	assert.Error(t, err)
}

func TestGetUserIDMissing(t *testing.T) {
	c, _ := newCtx(http.MethodGet, "/", "")
	_, err := getUserID(c)
	assert.Error(t, err)
}

func TestGigReqNormalize(t *testing.T) {
	req := gigReq{Title: "  Jazz Night  ", StartsAt: time.Now(), Status: " confirmed "}
	msg, ok := req.normalize()
	require.True(t, ok, msg)
	assert.Equal(t, "Jazz Night", req.Title)
	assert.Equal(t, model.GigStatusConfirmed, req.Status)

	req = gigReq{Title: "x", StartsAt: time.Now()}
	_, ok = req.normalize()
	require.True(t, ok)
	assert.Equal(t, model.GigStatusDraft, req.Status) // default

	req = gigReq{Title: "   ", StartsAt: time.Now()}
	_, ok = req.normalize()
	assert.False(t, ok)

	req = gigReq{Title: "x"}
	_, ok = req.normalize()
	assert.False(t, ok) // zero starts_at

	start := time.Now()
	before := start.Add(-time.Hour)
	req = gigReq{Title: "x", StartsAt: start, EndsAt: &before}
	_, ok = req.normalize()
	assert.False(t, ok)

	req = gigReq{Title: "x", StartsAt: start, Status: "PENDING"}
	_, ok = req.normalize()
	assert.False(t, ok)
}

func TestContactReqNormalize(t *testing.T) {
	email := "  Anna@Example.COM "
	req := contactReq{Name: "  Anna  ", Email: &email}
	msg, ok := req.normalize()
	require.True(t, ok, msg)
	assert.Equal(t, "Anna", req.Name)
	require.NotNil(t, req.Email)
	assert.Equal(t, "anna@example.com", *req.Email)

	blank := "   "
	req = contactReq{Name: "Anna", Email: &blank}
	_, ok = req.normalize()
	require.True(t, ok)
	assert.Nil(t, req.Email)

	req = contactReq{Name: "  "}
	_, ok = req.normalize()
	assert.False(t, ok)
}

// Handlers must reject requests whose context carries no usable user ID,
// before touching any repository.
func TestHandlersRejectMissingUser(t *testing.T) {
	h := &GigHandler{}
	for name, fn := range map[string]echo.HandlerFunc{
		"CreateGig":     h.CreateGig,
		"ListGigs":      h.ListGigs,
		"GetGigPack":    h.GetGigPack,
		"UpdateGig":     h.UpdateGig,
		"DeleteGig":     h.DeleteGig,
		"SaveGigPack":   h.SaveGigPack,
		"SearchGigs":    h.SearchGigs,
		"TogglePacked":  h.TogglePacked,
		"CreateShare":   h.CreateShare,
		"ListShares":    h.ListShares,
		"RevokeShare":   h.RevokeShare,
		"CreateContact": h.CreateContact,
		"ListContacts":  h.ListContacts,
		"GetContact":    h.GetContact,
		"UpdateContact": h.UpdateContact,
		"DeleteContact": h.DeleteContact,
	} {
		c, rec := newCtx(http.MethodGet, "/", "")
		require.NoError(t, fn(c), name)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}

func TestSaveGigPackRejectsBadGigID(t *testing.T) {
	h := &GigHandler{}
	c, rec := newCtx(http.MethodPut, "/v1/gigs/abc/pack", "")
	c.Set("user_id", float64(1))
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.SaveGigPack(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
