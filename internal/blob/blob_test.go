package blob

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOpenRevoke(t *testing.T) {
	s := NewStore()
	h, err := s.Create([]byte("Date,Gross"), "text/csv;charset=utf-8")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(h.URL, URLPrefix))
	assert.Equal(t, "text/csv;charset=utf-8", h.ContentType)
	assert.Equal(t, 10, h.Size)
	assert.Equal(t, 1, s.Len())

	data, err := s.Open(h.URL)
	require.NoError(t, err)
	assert.Equal(t, "Date,Gross", string(data))

	s.Revoke(h.URL)
	assert.Equal(t, 0, s.Len())

	_, err = s.Open(h.URL)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateCopiesData(t *testing.T) {
	s := NewStore()
	src := []byte("abc")
	h, err := s.Create(src, "text/plain")
	require.NoError(t, err)

	src[0] = 'x'
	data, err := s.Open(h.URL)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}

func TestRevokeUnknown(t *testing.T) {
	s := NewStore()
	s.Revoke(URLPrefix + "missing")
	assert.Equal(t, 0, s.Len())
}

func TestHandlesAreIndependent(t *testing.T) {
	s := NewStore()
	a, err := s.Create([]byte("a"), "text/csv")
	require.NoError(t, err)
	b, err := s.Create([]byte("a"), "text/csv")
	require.NoError(t, err)
	assert.NotEqual(t, a.URL, b.URL, "same content still gets distinct handles")

	s.Revoke(a.URL)
	_, err = s.Open(b.URL)
	assert.NoError(t, err)
}

func TestConcurrentCreateRevoke(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := s.Create([]byte("row"), "text/csv")
			if !assert.NoError(t, err) {
				return
			}
			s.Revoke(h.URL)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, s.Len())
}
