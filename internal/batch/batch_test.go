package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/arcanaland/framesmith/internal/assembler"
	"github.com/arcanaland/framesmith/internal/card"
	"github.com/arcanaland/framesmith/internal/frameerr"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeCatalog struct{}

func (fakeCatalog) Lookup(_ context.Context, name string) (card.Attributes, error) {
	if name == "Unknown" {
		return card.Attributes{}, errors.New("card not found")
	}
	a := card.Attributes{Name: name, ArtCropRef: "art/" + name + ".jpg"}
	if name == "Artless" {
		a.ArtCropRef = ""
	}
	return a, nil
}

type fakeBuilder struct {
	active, peak atomic.Int32
	delay        time.Duration
}

func (b *fakeBuilder) Assemble(ctx context.Context, a card.Attributes) (*assembler.Result, error) {
	n := b.active.Add(1)
	defer b.active.Add(-1)
	for {
		p := b.peak.Load()
		if n <= p || b.peak.CompareAndSwap(p, n) {
			break
		}
	}
	select {
	case <-time.After(b.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if a.ArtCropRef == "" {
		return nil, frameerr.ErrMissingArt
	}
	return &assembler.Result{ArtSource: a.ArtCropRef, InfoArtist: a.Name}, nil
}

func TestRunKeepsOrderAndSkipsFailures(t *testing.T) {
	names := []string{"Forest", "Unknown", "Llanowar Elves", "Artless", "Sol Ring", "Island"}
	b := &fakeBuilder{delay: 5 * time.Millisecond}

	var mu sync.Mutex
	var seen []int
	r := NewRunner(fakeCatalog{}, b, 2, zaptest.NewLogger(t), WithProgress(func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, done)
		assert.Equal(t, len(names), total)
	}))

	outcomes, err := r.Run(context.Background(), names)
	require.NoError(t, err)
	require.Len(t, outcomes, len(names))

	for i, o := range outcomes {
		assert.Equal(t, names[i], o.Name)
	}
	assert.Error(t, outcomes[1].Err)
	assert.ErrorIs(t, outcomes[3].Err, frameerr.ErrMissingArt)
	assert.Equal(t, "art/Sol Ring.jpg", outcomes[4].Result.ArtSource)
	assert.LessOrEqual(t, b.peak.Load(), int32(2))
	assert.Len(t, seen, len(names))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(fakeCatalog{}, &fakeBuilder{delay: time.Second}, 4, nil)
	_, err := r.Run(ctx, []string{"Forest", "Island"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadNames(t *testing.T) {
	in := "Llanowar Elves\n\n  # basics\nForest  \r\n#Island\nSol Ring"
	names, err := ReadNames(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"Llanowar Elves", "Forest", "Sol Ring"}, names)
}

func TestWriteProject(t *testing.T) {
	outcomes := []Outcome{
		{Name: "Forest", Result: &assembler.Result{Width: 2010, InfoArtist: "John Avon"}},
		{Name: "Unknown", Err: errors.New("card not found")},
		{Name: "Island", Result: &assembler.Result{Width: 2010}},
	}

	var buf bytes.Buffer
	n, err := WriteProject(&buf, outcomes)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var project []struct {
		Key  string         `json:"key"`
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &project))
	require.Len(t, project, 2)
	assert.Equal(t, "Forest", project[0].Key)
	assert.Equal(t, "John Avon", project[0].Data["infoArtist"])
	assert.Equal(t, 2010.0, project[0].Data["width"])
	assert.Equal(t, "Island", project[1].Key)
}
