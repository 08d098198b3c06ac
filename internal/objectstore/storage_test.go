package objectstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUpload(t *testing.T) {
	var (
		gotPath, gotType, gotAuth, gotUpsert string
		gotBody                              []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		gotUpsert = r.Header.Get("x-upsert")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"Key":"generated-images/business-1/a.png"}`))
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL + "/", ServiceKey: "svc", Bucket: "generated-images"})
	res, err := c.Upload(context.Background(), "business-1/generated-image-1.png", pngHeader)
	require.NoError(t, err)

	require.Equal(t, "/storage/v1/object/generated-images/business-1/generated-image-1.png", gotPath)
	require.Equal(t, "image/png", gotType)
	require.Equal(t, "Bearer svc", gotAuth)
	require.Equal(t, "true", gotUpsert)
	require.Equal(t, pngHeader, gotBody)

	require.Equal(t, "image/png", res.ContentType)
	require.Equal(t, srv.URL+"/storage/v1/object/public/generated-images/business-1/generated-image-1.png", res.PublicURL)
}

func TestUpload_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"statusCode":"403","error":"Unauthorized","message":"new row violates row-level security policy"}`))
	}))
	defer srv.Close()

	_, err := New(Config{URL: srv.URL, ServiceKey: "bad", Bucket: "b"}).Upload(context.Background(), "x.png", pngHeader)
	var se *Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusForbidden, se.StatusCode)
	require.Equal(t, "new row violates row-level security policy", se.Message)
}

func TestPublicURL_Escapes(t *testing.T) {
	c := New(Config{URL: "https://p.supabase.co", Bucket: "b"})
	require.Equal(t, "https://p.supabase.co/storage/v1/object/public/b/dir/a%20b.png", c.PublicURL("/dir/a b.png"))
}
