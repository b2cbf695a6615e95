package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentorhub/internal/pkg/apperrors"
)

// newFileHeader builds a real multipart.FileHeader by parsing a form
func newFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("profile_image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	_, fh, err := req.FormFile("profile_image")
	require.NoError(t, err)
	return fh
}

func TestLocalStorageSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	url, err := store.SaveFileWithPath(newFileHeader(t, "me.PNG", []byte("png-bytes")), ProfileImageDir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/profile_images/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	full, err := store.GetFullPath(url)
	require.NoError(t, err)
	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.DeleteFile(url))
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, store.DeleteFile(url))
}

func TestLocalStorageRelativePaths(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	p, err := store.SaveFileWithPath(newFileHeader(t, "a.jpg", []byte("x")), ProfileImageDir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, "uploads/profile_images/"))

	full, err := store.GetFullPath(p)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "profile_images", filepath.Base(p)), full)
}

func TestLocalStorageRejectsUnsupportedType(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, err = store.SaveFileWithPath(newFileHeader(t, "script.sh", []byte("#!/bin/sh")), ProfileImageDir)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestLocalStorageNilHeader(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	p, err := store.SaveFileWithPath(nil, ProfileImageDir)
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestGetFullPathStaysInsideBase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "http://cdn.test/uploads")
	require.NoError(t, err)

	full, err := store.GetFullPath("http://cdn.test/uploads/../../etc/passwd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(full, dir))

	_, err = store.GetFullPath("http://elsewhere.test/x.png")
	assert.Error(t, err)
}
