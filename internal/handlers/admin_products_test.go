package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/cart"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/config"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/models"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/store"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/upload"
)

func newTestBase(t *testing.T) *Base {
	t.Helper()
	s, err := store.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate())

	cookies := sessions.NewCookieStore([]byte("test-secret-key-0123456789abcdef"))
	return &Base{
		Store:    s,
		Cfg:      &config.Config{StoreName: "Sonhos de Crochê", MaxUploadBytes: 12 << 20},
		Sessions: cookies,
		Carts:    cart.NewSessionStore(cookies),
	}
}

func newProductAdmin(t *testing.T) *ProductAdminHandler {
	t.Helper()
	return &ProductAdminHandler{
		Base:    newTestBase(t),
		Uploads: upload.NewSaver(t.TempDir()),
	}
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	for name, contents := range files {
		fw, err := mw.CreateFormFile("image_files", name)
		require.NoError(t, err)
		_, err = fw.Write(contents)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestCreateProductRejectsOversizedUpload(t *testing.T) {
	h := newProductAdmin(t)
	h.Cfg.MaxUploadBytes = 1 << 10

	body, contentType := multipartBody(t,
		map[string]string{"name": "Bolsa Gigante", "price": "120,00"},
		map[string][]byte{"foto.jpg": bytes.Repeat([]byte("x"), 64<<10)},
	)

	r := httptest.NewRequest(http.MethodPost, "/admin/produtos/novo", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	h.CreateProduct(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/produtos/novo", w.Header().Get("Location"))

	count, err := h.Store.CountProducts()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

// One disallowed file in a batch is skipped with a warning; the rest of
// the batch is still stored.
func TestSaveUploadsSkipsDisallowedFile(t *testing.T) {
	h := newProductAdmin(t)

	p := &models.Product{Name: "Bolsa Floral", Price: dec("120.00"), IsActive: true}
	require.NoError(t, h.Store.CreateProduct(p))

	body, contentType := multipartBody(t, nil, map[string][]byte{
		"photo.GIF": []byte("gif-bytes"),
		"foto.webp": []byte("webp-bytes"),
	})
	r := httptest.NewRequest(http.MethodPost, "/admin/produtos/1/editar", body)
	r.Header.Set("Content-Type", contentType)
	require.NoError(t, r.ParseMultipartForm(32<<20))

	session, _ := h.Sessions.Get(r, AdminSession)
	h.saveUploads(r, session, p.ID)

	images, err := h.Store.GetProductImages(p.ID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Contains(t, images[0].ImageURL, ".webp")

	var warned bool
	for _, f := range GetFlash(session) {
		if f.Type == "warning" {
			warned = true
		}
	}
	assert.True(t, warned, "expected a warning flash for the rejected file")
}
