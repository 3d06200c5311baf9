package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantdefender/internal/config"
)

func TestNewObjectStoreEndpointURL(t *testing.T) {
	store, err := NewObjectStore(config.StorageConfig{
		Endpoint:      "https://objects.example.com",
		AccessKey:     "ak",
		SecretKey:     "sk",
		BucketArchive: "scans",
	})
	require.NoError(t, err)

	u := store.client.EndpointURL()
	assert.Equal(t, "objects.example.com", u.Host)
	assert.Equal(t, "https", u.Scheme)
}

func TestNewObjectStoreBareHost(t *testing.T) {
	store, err := NewObjectStore(config.StorageConfig{Endpoint: "127.0.0.1:9000", UseSSL: false})
	require.NoError(t, err)

	u := store.client.EndpointURL()
	assert.Equal(t, "127.0.0.1:9000", u.Host)
	assert.Equal(t, "http", u.Scheme)
}
