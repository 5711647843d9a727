package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booklog/internal/book"
	"booklog/internal/testutil"
)

func TestPage_ShowRendersFormAndList(t *testing.T) {
	repo, err := book.NewMemoryRepo()
	require.NoError(t, err)
	_, err = repo.Insert(context.Background(), testutil.SampleDraft)
	require.NoError(t, err)

	router := newTestRouter(t, repo)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	body := w.Body.String()
	assert.Contains(t, body, `<html lang="ja">`)
	for _, label := range []string{"タイトル", "著者名・訳者名", "出版社名", "発行年月日", "読んだ日付", "本の要点", "感想・意見", "調べたいこと", "備考"} {
		assert.Contains(t, body, "<strong>"+label+":</strong>", label)
	}
	assert.Contains(t, body, `<li id="book-1">`)
	assert.Contains(t, body, "<strong>タイトル:</strong> Foo")
	assert.Equal(t, 3, strings.Count(body, `<input type="text"`))
	assert.Equal(t, 2, strings.Count(body, `<input type="date"`))
	assert.Equal(t, 4, strings.Count(body, "<textarea"))
	assert.Contains(t, body, `<button type="submit">追加</button>`)
}

func TestPage_ShowStartsWithBlankDraft(t *testing.T) {
	repo, err := book.NewMemoryRepo()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	newTestRouter(t, repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	body := w.Body.String()
	assert.Contains(t, body, `<input type="date" name="published_date" value="">`)
	assert.NotContains(t, body, `<li id=`)
}

func TestPage_SubmitStoresAndResetsDraft(t *testing.T) {
	repo, err := book.NewMemoryRepo()
	require.NoError(t, err)
	router := newTestRouter(t, repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := sessionCookie(t, w)

	req := testutil.NewFormRequest("/books", testutil.FormValues(testutil.SampleDraft))
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<strong>タイトル:</strong> Foo")
	assert.Contains(t, body, "<strong>備考:</strong> N")
	assert.Contains(t, body, `name="title" placeholder="タイトル" value=""`)
	assert.Contains(t, body, `<input type="date" name="published_date" value="2026-10-19">`)
	assert.Contains(t, body, `<input type="date" name="read_date" value="2026-10-19">`)

	stored, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, testutil.SampleDraft, stored[0].Draft)
}

func TestPage_SubmitFailureKeepsInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := book.NewMockClient(ctrl)
	client.EXPECT().List(gomock.Any()).Return(nil, nil)
	client.EXPECT().Insert(gomock.Any(), testutil.SampleDraft).Return(nil, errors.New("network down"))

	router := newTestRouter(t, client)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	req := testutil.NewFormRequest("/books", testutil.FormValues(testutil.SampleDraft))
	req.AddCookie(sessionCookie(t, w))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `name="title" placeholder="タイトル" value="Foo"`)
	assert.Contains(t, body, `<textarea name="summary" placeholder="本の要点">S</textarea>`)
	assert.NotContains(t, body, `<li id=`)
}

func TestPage_SubmitWithoutEchoLeavesListStale(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := book.NewMockClient(ctrl)
	client.EXPECT().List(gomock.Any()).Return([]book.Book{}, nil)
	client.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil, nil)

	router := newTestRouter(t, client)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	req := testutil.NewFormRequest("/books", testutil.FormValues(testutil.SampleDraft))
	req.AddCookie(sessionCookie(t, w))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	body := w.Body.String()
	assert.NotContains(t, body, `<li id=`)
	assert.Contains(t, body, `name="title" placeholder="タイトル" value=""`)
}

func TestPage_SubmitWithoutSessionMountsView(t *testing.T) {
	repo, err := book.NewMemoryRepo()
	require.NoError(t, err)
	_, err = repo.Insert(context.Background(), book.Draft{Title: "Earlier"})
	require.NoError(t, err)

	router := newTestRouter(t, repo)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewFormRequest("/books", url.Values{"title": {"Later"}}))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, sessionCookie(t, w).Value)
	body := w.Body.String()
	assert.Contains(t, body, "<strong>タイトル:</strong> Earlier")
	assert.Contains(t, body, "<strong>タイトル:</strong> Later")
}

func TestPage_PartialFormOnlyEditsPostedFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := book.NewMockClient(ctrl)
	client.EXPECT().List(gomock.Any()).Return(nil, nil)
	client.EXPECT().Insert(gomock.Any(), book.Draft{Title: "Only"}).Return(nil, errors.New("boom"))

	router := newTestRouter(t, client)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewFormRequest("/books", url.Values{"title": {"Only"}, "bogus": {"x"}}))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPage_EscapesContent(t *testing.T) {
	repo, err := book.NewMemoryRepo()
	require.NoError(t, err)
	_, err = repo.Insert(context.Background(), book.Draft{Title: `<script>alert("x")</script>`})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	newTestRouter(t, repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	body := w.Body.String()
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestPage_ReloadMountsFreshView(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := book.NewMockClient(ctrl)
	gomock.InOrder(
		client.EXPECT().List(gomock.Any()).Return(nil, nil),
		client.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom")),
		client.EXPECT().List(gomock.Any()).Return([]book.Book{testutil.SampleBook}, nil),
	)

	router := newTestRouter(t, client)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := sessionCookie(t, w)

	req := testutil.NewFormRequest("/books", testutil.FormValues(testutil.SampleDraft))
	req.AddCookie(cookie)
	router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	body := w.Body.String()
	assert.Contains(t, body, `name="title" placeholder="タイトル" value=""`)
	assert.Contains(t, body, "<strong>タイトル:</strong> Foo")
}

func TestPage_LoadFailureRendersEmptyList(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := book.NewMockClient(ctrl)
	client.EXPECT().List(gomock.Any()).Return(nil, errors.New("unreachable"))

	w := httptest.NewRecorder()
	newTestRouter(t, client).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `<li id=`)
}

func TestPage_ForgedSessionCookieGetsNewSession(t *testing.T) {
	repo, err := book.NewMemoryRepo()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "attacker-chosen"})
	w := httptest.NewRecorder()
	newTestRouter(t, repo).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	issued := sessionCookie(t, w)
	assert.NotEqual(t, "attacker-chosen", issued.Value)
	assert.NotContains(t, issued.Value, "attacker-chosen")
}

func TestPage_IssuedSessionCookieRoundTrips(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := book.NewMockClient(ctrl)
	client.EXPECT().List(gomock.Any()).Return(nil, nil)
	client.EXPECT().Insert(gomock.Any(), book.Draft{Title: "Kept"}).Return(nil, errors.New("boom"))

	router := newTestRouter(t, client)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := sessionCookie(t, w)
	assert.Equal(t, 60, cookie.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	req := testutil.NewFormRequest("/books", url.Values{"title": {"Kept"}})
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies(), "a valid session must not be reissued")
	assert.Contains(t, w.Body.String(), `name="title" placeholder="タイトル" value="Kept"`)
}

func TestPage_SessionCookieFromOtherSecretIsRejected(t *testing.T) {
	repo, err := book.NewMemoryRepo()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	other := newTestRouterWithSecret(t, repo, []byte("fedcba9876543210fedcba9876543210"))
	other.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	foreign := sessionCookie(t, w)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(foreign)
	w = httptest.NewRecorder()
	newTestRouter(t, repo).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, foreign.Value, sessionCookie(t, w).Value)
}

func TestPage_EmptySecretStillSignsCookies(t *testing.T) {
	repo, err := book.NewMemoryRepo()
	require.NoError(t, err)
	router := newTestRouterWithSecret(t, repo, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := sessionCookie(t, w)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Empty(t, w.Result().Cookies())
}

func TestStaticHandler(t *testing.T) {
	repo, err := book.NewMemoryRepo()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	newTestRouter(t, repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".books")
}
