package nav

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/hizollo/internal/command"
	"github.com/keshon/hizollo/internal/help"
)

var (
	visitor = command.Caller{UserID: "1", Tag: "visitor#0001"}
	dev     = command.Caller{UserID: "42", Tag: "dev#0042"}
)

func newRouter(t *testing.T) *Router {
	t.Helper()
	reg := command.NewRegistry()
	require.NoError(t, reg.Register(&command.Command{
		Name:        "help",
		Aliases:     []string{"h"},
		Type:        command.TypeInformation,
		Description: "顯示指令清單",
		Options: []command.Option{{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "指令名稱",
			Description: "要查詢的特定指令",
		}},
	}))
	require.NoError(t, reg.Register(&command.Command{Name: "devdump", Type: command.TypeDeveloper, Description: "dump"}))
	require.NoError(t, reg.RegisterGroup(
		&command.Command{Name: "roll", Description: "擲"},
		&command.Command{Name: "dice", Type: command.TypeFun, Description: "擲骰子"},
	))

	auth := help.AuthorizerFunc(func(c command.Caller, _ command.Type) bool { return c.UserID == dev.UserID })
	renderer := help.NewRenderer(reg, help.Config{Prefix: "z!"}, auth, nil)
	return NewRouter(reg, renderer, zerolog.Nop())
}

func TestCategorySelection(t *testing.T) {
	r := newRouter(t)

	reply, ok := r.Handle(visitor, Selection{CustomID: "help:main", Values: []string{"information"}})
	require.True(t, ok)
	require.NotNil(t, reply.View)
	assert.True(t, reply.View.Ephemeral)
	assert.Contains(t, reply.View.Description, "`help`")
	require.NotNil(t, reply.View.Menu)
	assert.Equal(t, "help:type", reply.View.Menu.CustomID)
}

func TestCommandSelection(t *testing.T) {
	r := newRouter(t)

	reply, ok := r.Handle(visitor, Selection{CustomID: "help:type", Values: []string{"help"}})
	require.True(t, ok)
	require.NotNil(t, reply.View)
	assert.True(t, reply.View.Ephemeral)
	assert.Contains(t, reply.View.Description, "`h`")

	reply, ok = r.Handle(visitor, Selection{CustomID: "help:type", Values: []string{"roll"}})
	require.True(t, ok)
	require.Len(t, reply.View.Fields, 1)
	assert.Equal(t, "roll dice", reply.View.Fields[0].Name)
}

func TestSelectionOfRemovedCommand(t *testing.T) {
	r := newRouter(t)

	reply, ok := r.Handle(visitor, Selection{CustomID: "help:type", Values: []string{"gone"}})
	require.True(t, ok)
	assert.Nil(t, reply.View)
	assert.Equal(t, "這個指令不存在，請使用 `z!help` 或 `/help` 查看當前的指令列表", reply.Text)
}

func TestDeveloperSelections(t *testing.T) {
	r := newRouter(t)

	reply, ok := r.Handle(visitor, Selection{CustomID: "help:main", Values: []string{"developer"}})
	require.True(t, ok)
	assert.Nil(t, reply.View)
	assert.NotEmpty(t, reply.Text)

	reply, ok = r.Handle(visitor, Selection{CustomID: "help:type", Values: []string{"devdump"}})
	require.True(t, ok)
	assert.Nil(t, reply.View)

	reply, ok = r.Handle(dev, Selection{CustomID: "help:main", Values: []string{"developer"}})
	require.True(t, ok)
	require.NotNil(t, reply.View)
	assert.Contains(t, reply.View.Description, "`devdump`")

	reply, ok = r.Handle(dev, Selection{CustomID: "help:type", Values: []string{"devdump"}})
	require.True(t, ok)
	require.NotNil(t, reply.View)
}

func TestIgnoredSelections(t *testing.T) {
	r := newRouter(t)

	for _, sel := range []Selection{
		{CustomID: "help_menu_main", Values: []string{"fun"}},
		{CustomID: "help:other", Values: []string{"fun"}},
		{CustomID: "roll:main", Values: []string{"fun"}},
		{CustomID: "help:main"},
		{CustomID: "help:main", Values: []string{"no-such-category"}},
	} {
		_, ok := r.Handle(visitor, sel)
		assert.False(t, ok, sel.CustomID)
	}
	assert.True(t, r.Owns("help:main"))
	assert.False(t, r.Owns("purge:x"))
}
