package orchestrai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/orchestrai/agent"
	"github.com/hupe1980/orchestrai/model"
)

func TestFacadeRunConversation(t *testing.T) {
	o := New()

	m := model.NewScriptedModel("scripted",
		`{"reasoning":"done","action":"final_answer","content":"hello"}`,
	)
	_, err := o.NewAgent("assistant", "You are helpful.", m)
	require.NoError(t, err)

	answer, err := o.RunConversation(context.Background(), "assistant", "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello", answer)
}

func TestFacadeUnknownAgent(t *testing.T) {
	o := New()
	_, err := o.RunConversation(context.Background(), "ghost", "hi")
	assert.Error(t, err)
}

func TestFacadeSharesManager(t *testing.T) {
	o := New()

	parent, err := o.NewAgent("parent", "role", model.NewScriptedModel("p"))
	require.NoError(t, err)
	_, err = o.NewAgent("child", "role", model.NewScriptedModel("c"), func(ao *agent.Options) {
		ao.Parent = parent
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"child", "parent"}, o.Manager().Names())
	assert.Equal(t, []string{"child"}, parent.Children())
}
