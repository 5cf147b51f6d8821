package local_fs

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetDeleteRoundTrip(t *testing.T) {
	client, err := NewClient(&Config{SavePath: t.TempDir()})
	require.NoError(t, err)

	content := []byte("hello vault")
	key, err := client.PutFile("1/docs/hello.txt", bytes.NewReader(content), "text/plain", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "1/docs/hello.txt", key)

	rc, err := client.GetFile(key)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, content, got)

	require.NoError(t, client.Delete(key))

	_, err = client.GetFile(key)
	assert.Error(t, err)
}

func TestDeleteMissingFileIsNoop(t *testing.T) {
	client, err := NewClient(&Config{SavePath: t.TempDir()})
	require.NoError(t, err)

	assert.NoError(t, client.Delete("1/never/was.txt"))
}

func TestListObjectKeys(t *testing.T) {
	client, err := NewClient(&Config{SavePath: t.TempDir()})
	require.NoError(t, err)

	_, err = client.PutFile("1/docs/a.txt", bytes.NewReader([]byte("a")), "text/plain", time.Now())
	require.NoError(t, err)
	_, err = client.PutFile("2/b.txt", bytes.NewReader([]byte("b")), "text/plain", time.Now())
	require.NoError(t, err)

	keys, err := client.ListObjectKeys("")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1/docs/a.txt", "2/b.txt"}, keys)

	keys, err = client.ListObjectKeys("1/")
	require.NoError(t, err)
	assert.Equal(t, []string{"1/docs/a.txt"}, keys)
}

func TestListObjectKeysMissingRoot(t *testing.T) {
	client, err := NewClient(&Config{SavePath: t.TempDir() + "/nope"})
	require.NoError(t, err)

	keys, err := client.ListObjectKeys("")
	assert.NoError(t, err)
	assert.Empty(t, keys)
}

func TestObjectModTime(t *testing.T) {
	client, err := NewClient(&Config{SavePath: t.TempDir()})
	require.NoError(t, err)

	stamp := time.Now().Add(-2 * time.Hour).Truncate(time.Second)
	_, err = client.PutFile("3/c.txt", bytes.NewReader([]byte("c")), "text/plain", stamp)
	require.NoError(t, err)

	mt, err := client.ObjectModTime("3/c.txt")
	require.NoError(t, err)
	assert.WithinDuration(t, stamp, mt, time.Second)

	_, err = client.ObjectModTime("3/missing.txt")
	assert.Error(t, err)
}

func TestCustomPathPrefix(t *testing.T) {
	client, err := NewClient(&Config{SavePath: t.TempDir(), CustomPath: "vault"})
	require.NoError(t, err)

	key, err := client.PutFile("2/a.txt", bytes.NewReader([]byte("x")), "text/plain", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "vault/2/a.txt", key)
}
