package enricher

import (
	"context"
	"errors"
	"testing"

	"github.com/shopworks/catalogsync/infrastructure/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	content string
	err     error
	lastReq provider.ChatCompletionRequest
}

func (f *fakeGenerator) ChatCompletion(_ context.Context, req provider.ChatCompletionRequest) (provider.ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return provider.ChatCompletionResponse{}, f.err
	}
	return provider.NewChatCompletionResponse(f.content, "stop"), nil
}

func TestDescribeBuildsPromptFromNameAndCategory(t *testing.T) {
	gen := &fakeGenerator{content: "A mug worth waking up for."}
	d := NewDescriber(gen, nil)

	got, err := d.Describe(context.Background(), "Blue Mug", "Kitchen")
	require.NoError(t, err)
	assert.Equal(t, "A mug worth waking up for.", got)

	messages := gen.lastReq.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].Role())
	assert.Contains(t, messages[1].Content(), "Blue Mug")
	assert.Contains(t, messages[1].Content(), "Kitchen")
}

func TestDescribeTrimsToOneLine(t *testing.T) {
	gen := &fakeGenerator{content: "\"Sip in style.\"\nHere is more copy you did not ask for."}
	d := NewDescriber(gen, nil)

	got, err := d.Describe(context.Background(), "Blue Mug", "Kitchen")
	require.NoError(t, err)
	assert.Equal(t, "Sip in style.", got)
}

func TestDescribePropagatesProviderErrors(t *testing.T) {
	wantErr := errors.New("deadline exceeded")
	d := NewDescriber(&fakeGenerator{err: wantErr}, nil)

	_, err := d.Describe(context.Background(), "Blue Mug", "Kitchen")
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}

func TestDescribeRejectsEmptyCompletion(t *testing.T) {
	d := NewDescriber(&fakeGenerator{content: "   \n"}, nil)

	_, err := d.Describe(context.Background(), "Blue Mug", "Kitchen")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty completion")
}

func TestDocument(t *testing.T) {
	got := Document("Blue Mug", "Kitchen", "Great mug!")
	assert.Equal(t, "Blue Mug\nKitchen\nGreat mug!", got)
}
