package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/stripecsv/internal/blob"
	"github.com/cleared-dev/stripecsv/internal/delivery"
	"github.com/cleared-dev/stripecsv/internal/model"
	"github.com/cleared-dev/stripecsv/internal/source"
)

type delivered struct {
	data        string
	contentType string
	filename    string
	liveHandles int
}

// fakeDeliverer records calls and the number of live blob handles at the
// moment of delivery.
type fakeDeliverer struct {
	mu    sync.Mutex
	blobs *blob.Store
	calls []delivered
	err   error
	panic bool
}

func (f *fakeDeliverer) Deliver(data []byte, contentType, filename string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, delivered{
		data:        string(data),
		contentType: contentType,
		filename:    filename,
		liveHandles: f.blobs.Len(),
	})
	if f.panic {
		panic("save dialog crashed")
	}
	return f.err
}

func januaryCharges(t *testing.T, format model.AccountingFormat) model.ExportParams {
	t.Helper()
	p, err := model.ParsePeriod("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	return model.ExportParams{DataType: model.DataTypeCharges, Format: format, Period: p}
}

func newTestExporter() (*Exporter, *fakeDeliverer, *blob.Store) {
	store := blob.NewStore()
	fake := &fakeDeliverer{blobs: store}
	return NewExporter(fake, store), fake, store
}

func TestExport_Delivers(t *testing.T) {
	e, fake, store := newTestExporter()

	doc, err := e.Export(januaryCharges(t, model.FormatLine), source.Sample())
	require.NoError(t, err)
	assert.Equal(t, "stripe-charges-2024-01.csv", doc.Name)
	assert.Equal(t, "text/csv;charset=utf-8", doc.ContentType)

	require.Len(t, fake.calls, 1)
	call := fake.calls[0]
	assert.Equal(t, string(doc.Data), call.data)
	assert.Equal(t, ContentType, call.contentType)
	assert.Equal(t, "stripe-charges-2024-01.csv", call.filename)
	assert.Equal(t, 1, call.liveHandles, "handle is live during delivery")
	assert.Equal(t, 0, store.Len(), "handle is released afterwards")
}

func TestExport_Summary(t *testing.T) {
	e, fake, _ := newTestExporter()
	records := []model.TransactionRecord{
		rec("2024-01-15", "1,250.00", "36.25", "1,213.75", "a"),
		rec("2024-01-15", "10.00", "0.59", "9.41", "b"),
	}

	_, err := e.Export(januaryCharges(t, model.FormatSummary), records)
	require.NoError(t, err)
	require.Len(t, fake.calls, 1)
	assert.Equal(t, Header+"\n2024-01-15,1260.00,36.84,1223.16,USD,daily-2024-01-15-USD-2", fake.calls[0].data)
}

func TestExport_FormatErrorSkipsDelivery(t *testing.T) {
	e, fake, store := newTestExporter()
	records := source.Sample()
	records[4].Net = "oops"

	doc, err := e.Export(januaryCharges(t, model.FormatLine), records)
	assert.Nil(t, doc)
	var ee *ExportError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "ch_1MqJz...", ee.Reference)

	assert.Empty(t, fake.calls, "no partial document is delivered")
	assert.Equal(t, 0, store.Len())
}

func TestDeliver_ReleasesOnError(t *testing.T) {
	e, fake, store := newTestExporter()
	fake.err = errors.New("user cancelled save")

	_, err := e.Export(januaryCharges(t, model.FormatLine), source.Sample())
	var de *DeliveryError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "stripe-charges-2024-01.csv", de.Filename)
	assert.Contains(t, err.Error(), "user cancelled save")
	assert.Equal(t, 0, store.Len())
}

func TestDeliver_ReleasesOnPanic(t *testing.T) {
	e, fake, store := newTestExporter()
	fake.panic = true

	assert.Panics(t, func() {
		_ = e.Deliver(&Document{Name: "a.csv", ContentType: ContentType, Data: []byte(Header)})
	})
	require.Len(t, fake.calls, 1)
	assert.Equal(t, 1, fake.calls[0].liveHandles)
	assert.Equal(t, 0, store.Len(), "handle released even when delivery panics")
}

func TestDeliver_Unavailable(t *testing.T) {
	store := blob.NewStore()
	e := NewExporter(delivery.Unavailable{}, store)

	_, err := e.Export(januaryCharges(t, model.FormatLine), source.Sample())
	var de *DeliveryError
	require.True(t, errors.As(err, &de))
	assert.ErrorIs(t, err, delivery.ErrUnavailable)
	assert.Equal(t, 0, store.Len())
}

func TestDeliver_NoDeliverer(t *testing.T) {
	e := NewExporter(nil, nil)
	err := e.Deliver(&Document{Name: "a.csv", Data: []byte(Header)})
	var de *DeliveryError
	require.True(t, errors.As(err, &de))
	assert.ErrorIs(t, err, errNoDeliverer)
}

func TestExport_ToDirectory(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(delivery.NewDir(dir), nil)

	doc, err := e.Export(januaryCharges(t, model.FormatLine), source.Sample())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, doc.Name))
	require.NoError(t, err)
	assert.Equal(t, doc.Data, data)
	assert.True(t, strings.HasPrefix(string(data), Header+"\n"))
}

func TestExport_Idempotent(t *testing.T) {
	e, fake, _ := newTestExporter()
	params := januaryCharges(t, model.FormatLine)

	for i := 0; i < 2; i++ {
		_, err := e.Export(params, source.Sample())
		require.NoError(t, err)
	}
	require.Len(t, fake.calls, 2)
	assert.Equal(t, fake.calls[0], fake.calls[1])
}

func TestExport_Concurrent(t *testing.T) {
	e, fake, store := newTestExporter()
	params := januaryCharges(t, model.FormatLine)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.Export(params, source.Sample())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, fake.calls, 20, "concurrent exports are not deduplicated")
	assert.Equal(t, 0, store.Len())
}
