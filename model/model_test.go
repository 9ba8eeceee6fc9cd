package model

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/orchestrai/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedModelReplaysInOrder(t *testing.T) {
	m := NewScriptedModel("test", "one", "two")

	resp, err := m.Generate(context.Background(), Request{Messages: []core.Message{core.NewUserMessage("hi")}})
	require.NoError(t, err)
	assert.Equal(t, "one", resp.Text)
	assert.NotEmpty(t, resp.ID)

	resp, err = m.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "two", resp.Text)

	_, err = m.Generate(context.Background(), Request{})
	assert.Error(t, err)
	assert.Equal(t, 3, m.Calls())
}

func TestScriptedModelLoopLast(t *testing.T) {
	m := NewScriptedModel("test", "only").LoopLast()
	for i := 0; i < 5; i++ {
		resp, err := m.Generate(context.Background(), Request{})
		require.NoError(t, err)
		assert.Equal(t, "only", resp.Text)
	}
}

func TestScriptedModelFailWith(t *testing.T) {
	boom := errors.New("boom")
	m := NewScriptedModel("test").FailWith(boom)
	_, err := m.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, boom)
}

func TestScriptedModelRecordsRequests(t *testing.T) {
	m := NewScriptedModel("test", "one")
	req := Request{
		Messages: []core.Message{core.NewSystemMessage("sys"), core.NewUserMessage("hi")},
		Schema:   core.ResponseSchema(),
	}
	_, err := m.Generate(context.Background(), req)
	require.NoError(t, err)

	recorded := m.Requests()
	require.Len(t, recorded, 1)
	assert.Len(t, recorded[0].Messages, 2)
	assert.Equal(t, core.RoleSystem, recorded[0].Messages[0].Role)
}

func TestScriptedModelHonorsContext(t *testing.T) {
	m := NewScriptedModel("test", "one")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}
