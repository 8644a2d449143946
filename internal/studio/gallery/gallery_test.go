package gallery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func image(id int64, prompt string) GeneratedImage {
	return GeneratedImage{
		ID:        id,
		ImageURL:  "data:image/png;base64,AAAA",
		Prompt:    prompt,
		Seed:      id * 10,
		Timestamp: time.UnixMilli(id),
	}
}

func ids(s State) []int64 {
	out := make([]int64, 0, len(s.Images))
	for _, img := range s.Images {
		out = append(out, img.ID)
	}
	return out
}

func TestReduce_CreatedPrepends(t *testing.T) {
	s := State{}
	s = Reduce(s, Created{Image: image(1, "first")})
	s = Reduce(s, Created{Image: image(2, "second")})
	s = Reduce(s, Created{Image: image(3, "third")})

	assert.Equal(t, []int64{3, 2, 1}, ids(s))
	assert.Equal(t, 3, s.Len())
}

func TestReduce_CreatedDuplicateIDIgnored(t *testing.T) {
	s := Reduce(State{}, Created{Image: image(1, "first")})
	s = Reduce(s, Created{Image: image(1, "again")})

	require.Equal(t, 1, s.Len())
	assert.Equal(t, "first", s.Images[0].Prompt)
}

func TestReduce_RegeneratedKeepsPositionAndID(t *testing.T) {
	s := State{}
	for i := int64(1); i <= 3; i++ {
		s = Reduce(s, Created{Image: image(i, "p")})
	}
	before := s

	at := time.UnixMilli(99)
	s = Reduce(s, Regenerated{ID: 2, ImageURL: "data:image/png;base64,BBBB", Prompt: "p", Seed: 777, Timestamp: at})

	assert.Equal(t, []int64{3, 2, 1}, ids(s))
	img, ok := s.Find(2)
	require.True(t, ok)
	assert.Equal(t, "data:image/png;base64,BBBB", img.ImageURL)
	assert.Equal(t, int64(777), img.Seed)
	assert.Equal(t, at, img.Timestamp)
	assert.Equal(t, 1, s.Position(2))

	// 原状态不变
	orig, _ := before.Find(2)
	assert.Equal(t, int64(20), orig.Seed)
}

func TestReduce_RegeneratedMissingIsNoop(t *testing.T) {
	s := Reduce(State{}, Created{Image: image(1, "p")})
	s = Reduce(s, Removed{ID: 1})
	s = Reduce(s, Regenerated{ID: 1, ImageURL: "x", Seed: 5})

	assert.Zero(t, s.Len())
}

func TestReduce_RemovedPreservesOrder(t *testing.T) {
	s := State{}
	for i := int64(1); i <= 4; i++ {
		s = Reduce(s, Created{Image: image(i, "p")})
	}

	s = Reduce(s, Removed{ID: 3})
	assert.Equal(t, []int64{4, 2, 1}, ids(s))

	s = Reduce(s, Removed{ID: 3})
	assert.Equal(t, []int64{4, 2, 1}, ids(s))

	s = Reduce(s, Removed{ID: 42})
	assert.Equal(t, []int64{4, 2, 1}, ids(s))
	assert.Equal(t, -1, s.Position(3))
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := State{}
	for i := int64(1); i <= 3; i++ {
		s = Reduce(s, Created{Image: image(i, "p")})
	}
	snapshot := append([]GeneratedImage(nil), s.Images...)

	_ = Reduce(s, Removed{ID: 2})
	_ = Reduce(s, Regenerated{ID: 1, Seed: 1})
	_ = Reduce(s, Created{Image: image(9, "p")})

	assert.Equal(t, snapshot, s.Images)
}

func TestStore_NextIDUnique(t *testing.T) {
	store := NewStore()
	now := time.UnixMilli(1_700_000_000_000)

	a := store.NextID(now)
	b := store.NextID(now)
	c := store.NextID(now.Add(-time.Second))
	d := store.NextID(now.Add(time.Second))

	assert.Equal(t, int64(1_700_000_000_000), a)
	assert.Equal(t, a+1, b)
	assert.Equal(t, b+1, c)
	assert.Equal(t, int64(1_700_000_001_000), d)
}

func TestStore_Dispatch(t *testing.T) {
	store := NewStore()
	assert.Zero(t, store.State().Len())

	s := store.Dispatch(Created{Image: image(5, "p")})
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, s, store.State())

	store.Dispatch(Removed{ID: 5})
	assert.Zero(t, store.State().Len())
}
