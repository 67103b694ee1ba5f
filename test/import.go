package test

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

// LoadTestFile loads a test file from the testdata directory
//
// File contents are returned as a buffer and a map for the HTTP request headers
func LoadTestFile(t *testing.T, filePath string) (*bytes.Buffer, map[string]string) {
	file, err := os.Open(path.Join("../../../testdata", filePath))
	if err != nil {
		assert.FailNow(t, err.Error())
	}
	defer file.Close()

	return MultipartFile(t, path.Base(filePath), file)
}

// MultipartFile returns a multipart form with the content of r as field "file".
func MultipartFile(t *testing.T, filename string, r io.Reader) (*bytes.Buffer, map[string]string) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	w, err := mw.CreateFormFile("file", filename)
	if err != nil {
		assert.Fail(t, err.Error())
	}

	if _, err := io.Copy(w, r); err != nil {
		assert.Fail(t, err.Error())
	}

	mw.Close()

	return body, map[string]string{"Content-Type": mw.FormDataContentType()}
}

// MultipartForm returns a multipart form without any file.
func MultipartForm(t *testing.T) (*bytes.Buffer, map[string]string) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	if err := mw.WriteField("note", "no file"); err != nil {
		assert.Fail(t, err.Error())
	}

	mw.Close()

	return body, map[string]string{"Content-Type": mw.FormDataContentType()}
}
