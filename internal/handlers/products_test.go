package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/azadstore/storefront/internal/platform/mediastore"
	"github.com/azadstore/storefront/internal/services"
)

func multipartBody(t *testing.T, fields map[string]string, fileName, fileType string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for field, value := range fields {
		if err := writer.WriteField(field, value); err != nil {
			t.Fatalf("write field %s: %v", field, err)
		}
	}
	if fileName != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="mediaFile"; filename="`+fileName+`"`)
		header.Set("Content-Type", fileType)
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write([]byte("payload")); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func newProductRouter(svc *stubCatalogService, media *stubMediaSaver) http.Handler {
	return NewRouter(WithProductRoutes(NewProductHandlers(svc, media).Routes))
}

func TestProductHandlersAdd(t *testing.T) {
	fields := map[string]string{
		"id":          "600",
		"name":        "PUBG 600 UC",
		"price":       "$10",
		"category":    "PUBG UC",
		"description": "Fast delivery",
	}

	t.Run("success", func(t *testing.T) {
		svc := &stubCatalogService{addProduct: services.Product{Name: "PUBG 600 UC"}}
		media := &stubMediaSaver{saved: mediastore.SavedMedia{Kind: mediastore.KindImage, PublicPath: "images/abc_uc.png"}}
		router := newProductRouter(svc, media)

		body, contentType := multipartBody(t, fields, "uc.png", "image/png")
		req := httptest.NewRequest(http.MethodPost, "/api/add-product", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		if media.calls != 1 {
			t.Fatalf("expected upload stored once, got %d", media.calls)
		}
		if svc.addCmd == nil {
			t.Fatalf("expected service invoked")
		}
		if svc.addCmd.ID != "600" || svc.addCmd.Media == nil {
			t.Fatalf("unexpected command: %+v", svc.addCmd)
		}
		if svc.addCmd.Media.PublicPath != "images/abc_uc.png" {
			t.Fatalf("unexpected media path: %q", svc.addCmd.Media.PublicPath)
		}
	})

	t.Run("missing file is 400", func(t *testing.T) {
		svc := &stubCatalogService{}
		media := &stubMediaSaver{}
		router := newProductRouter(svc, media)

		body, contentType := multipartBody(t, fields, "", "")
		req := httptest.NewRequest(http.MethodPost, "/api/add-product", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
		if svc.addCmd != nil {
			t.Fatalf("service must not run without a file")
		}
	})

	t.Run("duplicate id is 400", func(t *testing.T) {
		svc := &stubCatalogService{addErr: services.ErrProductExists}
		media := &stubMediaSaver{saved: mediastore.SavedMedia{Kind: mediastore.KindImage, PublicPath: "images/abc_uc.png"}}
		router := newProductRouter(svc, media)

		body, contentType := multipartBody(t, fields, "uc.png", "image/png")
		req := httptest.NewRequest(http.MethodPost, "/api/add-product", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("unsupported media is 400", func(t *testing.T) {
		svc := &stubCatalogService{}
		media := &stubMediaSaver{saveErr: mediastore.ErrUnsupportedMedia}
		router := newProductRouter(svc, media)

		body, contentType := multipartBody(t, fields, "notes.txt", "text/plain")
		req := httptest.NewRequest(http.MethodPost, "/api/add-product", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
		if svc.addCmd != nil {
			t.Fatalf("service must not run when upload is rejected")
		}
	})
}

func TestProductHandlersUpdate(t *testing.T) {
	t.Run("partial update without media", func(t *testing.T) {
		svc := &stubCatalogService{}
		router := newProductRouter(svc, &stubMediaSaver{})

		body, contentType := multipartBody(t, map[string]string{"price": "$12"}, "", "")
		req := httptest.NewRequest(http.MethodPut, "/api/products/600", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		if svc.updateCmd == nil {
			t.Fatalf("expected service invoked")
		}
		if svc.updateCmd.ID != "600" {
			t.Fatalf("unexpected id: %q", svc.updateCmd.ID)
		}
		if svc.updateCmd.Price == nil || *svc.updateCmd.Price != "$12" {
			t.Fatalf("expected price set, got %+v", svc.updateCmd.Price)
		}
		if svc.updateCmd.Name != nil || svc.updateCmd.Media != nil {
			t.Fatalf("untouched fields must stay nil: %+v", svc.updateCmd)
		}
	})

	t.Run("update with new media", func(t *testing.T) {
		svc := &stubCatalogService{}
		media := &stubMediaSaver{saved: mediastore.SavedMedia{Kind: mediastore.KindVideo, PublicPath: "videos/abc_promo.mp4"}}
		router := newProductRouter(svc, media)

		body, contentType := multipartBody(t, map[string]string{"name": "Updated"}, "promo.mp4", "video/mp4")
		req := httptest.NewRequest(http.MethodPut, "/api/products/600", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		if svc.updateCmd == nil || svc.updateCmd.Media == nil {
			t.Fatalf("expected media in command: %+v", svc.updateCmd)
		}
		if svc.updateCmd.Media.Kind != mediastore.KindVideo {
			t.Fatalf("unexpected media kind: %v", svc.updateCmd.Media.Kind)
		}
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		svc := &stubCatalogService{updateErr: services.ErrProductNotFound}
		router := newProductRouter(svc, &stubMediaSaver{})

		body, contentType := multipartBody(t, map[string]string{"price": "$12"}, "", "")
		req := httptest.NewRequest(http.MethodPut, "/api/products/999", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
	})
}

func TestProductHandlersDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &stubCatalogService{}
		router := newProductRouter(svc, &stubMediaSaver{})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/products/600", nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if svc.deletedID != "600" {
			t.Fatalf("unexpected deleted id: %q", svc.deletedID)
		}
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		svc := &stubCatalogService{deleteErr: services.ErrProductNotFound}
		router := newProductRouter(svc, &stubMediaSaver{})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/products/999", nil))

		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
	})
}
