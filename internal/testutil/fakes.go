package testutil

import (
	"context"
	"mime/multipart"

	"github.com/stretchr/testify/mock"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendMail(toEmail string, subject string, body string) error {
	args := m.Called(toEmail, subject, body)
	return args.Error(0)
}

type MockS3 struct {
	mock.Mock
}

func (m *MockS3) UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	args := m.Called(ctx, fileName, file, folder)
	return args.String(0), args.Error(1)
}

func (m *MockS3) DeleteFile(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

func (m *MockS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.example/" + objectKey
}

func (m *MockS3) GetObjectKeyFromLink(link string) string {
	const prefix = "https://bucket.example/"
	if len(link) <= len(prefix) || link[:len(prefix)] != prefix {
		return ""
	}
	return link[len(prefix):]
}
