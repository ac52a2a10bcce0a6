package s3_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfimport/internal/config"
	"nfimport/internal/port"
	"nfimport/internal/storage/s3"
)

func newLocalClient(t *testing.T) port.ObjectStorage {
	t.Helper()
	client, err := s3.NewS3Client(context.Background(), config.S3Config{
		Region:    "us-east-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)
	return client
}

func TestGetPresignedURL_PathStyleEndpoint(t *testing.T) {
	client := newLocalClient(t)

	raw, err := client.GetPresignedURL(context.Background(), "nfe-archive", "tenants/t1/nfe/abc.xml", 600)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/nfe-archive/tenants/t1/nfe/abc.xml", u.Path)
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.Equal(t, "attachment", u.Query().Get("response-content-disposition"))
}

func TestGetPresignedURL_DefaultExpiry(t *testing.T) {
	client := newLocalClient(t)

	raw, err := client.GetPresignedURL(context.Background(), "nfe-archive", "k.xml", 0)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
}
