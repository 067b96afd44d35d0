package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reshetovitsme/offer-listener/internal/modules/channel/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	channels map[string]domain.Channel
	calls    []string
}

func (f *fakeSource) ResolveChannel(_ context.Context, name string) (domain.Channel, error) {
	f.calls = append(f.calls, name)
	ch, ok := f.channels[name]
	if !ok {
		return domain.Channel{}, errors.New("USERNAME_NOT_OCCUPIED")
	}
	return ch, nil
}

func TestResolveRegistersAllRepresentations(t *testing.T) {
	source := &fakeSource{channels: map[string]domain.Channel{
		"deals_ch": {ID: "123", Username: "deals_ch", Title: "Deals"},
	}}

	set := New(source, time.Second).Resolve(context.Background(), []string{"deals_ch"})

	require.Equal(t, 1, set.Len())
	assert.True(t, set.Contains("123"))
	assert.True(t, set.Contains("-100123"))
	assert.Equal(t, "deals_ch", set.Channels()[0].Name)
}

func TestResolveSkipsBadChannel(t *testing.T) {
	source := &fakeSource{channels: map[string]domain.Channel{
		"first":  {ID: "-1001"},
		"second": {ID: "-1002"},
	}}

	set := New(source, time.Second).Resolve(context.Background(), []string{"first", "bad_channel", "second"})

	assert.Equal(t, []string{"first", "bad_channel", "second"}, source.calls)
	require.Equal(t, 2, set.Len())
	assert.True(t, set.Contains("1"))
	assert.True(t, set.Contains("2"))
}

func TestResolveTrimsAndDropsEmptyNames(t *testing.T) {
	source := &fakeSource{channels: map[string]domain.Channel{
		"a": {ID: "1"},
	}}

	set := New(source, 0).Resolve(context.Background(), []string{" a ", "", "  ", "a"})

	assert.Equal(t, []string{"a"}, source.calls)
	assert.Equal(t, 1, set.Len())
}

func TestResolveEmptyResultIsNotFatal(t *testing.T) {
	source := &fakeSource{channels: map[string]domain.Channel{
		"blank": {},
	}}

	set := New(source, time.Second).Resolve(context.Background(), []string{"missing", "blank"})

	require.NotNil(t, set)
	assert.True(t, set.Empty())
	assert.False(t, set.Contains("123"))
}

func TestResolveStopsWhenContextCancelled(t *testing.T) {
	source := &fakeSource{channels: map[string]domain.Channel{
		"a": {ID: "1"},
		"b": {ID: "2"},
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	set := New(source, time.Second).Resolve(ctx, []string{"a", "b"})

	assert.Empty(t, source.calls)
	assert.True(t, set.Empty())
}
