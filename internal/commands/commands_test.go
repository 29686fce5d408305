package commands

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/hizollo/internal/command"
	"github.com/keshon/hizollo/internal/help"
	"github.com/keshon/hizollo/internal/middleware"
	"github.com/keshon/hizollo/internal/storage"
	"github.com/keshon/hizollo/internal/view"
)

type reply struct {
	view      *view.View
	text      string
	ephemeral bool
}

type recorder struct {
	replies []reply
}

func (r *recorder) Respond(_ context.Context, v *view.View) error {
	r.replies = append(r.replies, reply{view: v, ephemeral: v.Ephemeral})
	return nil
}

func (r *recorder) RespondText(_ context.Context, text string, ephemeral bool) error {
	r.replies = append(r.replies, reply{text: text, ephemeral: ephemeral})
	return nil
}

func (r *recorder) last(t *testing.T) reply {
	t.Helper()
	require.NotEmpty(t, r.replies)
	return r.replies[len(r.replies)-1]
}

type memHistory struct {
	recs map[string][]storage.CommandHistoryRecord
}

func (m *memHistory) AppendCommandToHistory(guildID string, rec storage.CommandHistoryRecord) error {
	m.recs[guildID] = append(m.recs[guildID], rec)
	return nil
}

func (m *memHistory) FetchCommandHistory(guildID string) ([]storage.CommandHistoryRecord, error) {
	return m.recs[guildID], nil
}

var (
	visitor = command.Caller{UserID: "1", Tag: "visitor#0001", GuildID: "g1", ChannelID: "general"}
	dev     = command.Caller{UserID: "2", Tag: "dev#0002", GuildID: "g1", ChannelID: "test-channel"}
)

type fixture struct {
	reg      *command.Registry
	renderer *help.Renderer
	history  *memHistory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	auth := help.AuthorizerFunc(func(c command.Caller, t command.Type) bool {
		return t != command.TypeDeveloper || c.ChannelID == "test-channel"
	})
	reg := command.NewRegistry()
	renderer := help.NewRenderer(reg, help.Config{BotName: "HiZollo", Prefix: "z!"}, auth, nil)
	history := &memHistory{recs: map[string][]storage.CommandHistoryRecord{}}

	err := Register(reg, Deps{
		Renderer: renderer,
		History:  history,
		Latency:  func() time.Duration { return 42 * time.Millisecond },
		Intn:     func(n int) int { return n - 1 },
		Jobs:     func() []string { return []string{"slash-sync:g1"} },
	},
		middleware.WithAccessControl(auth, renderer.NotFound),
		middleware.WithCommandLogger(history, zerolog.Nop()),
	)
	require.NoError(t, err)
	return &fixture{reg: reg, renderer: renderer, history: history}
}

func (f *fixture) run(t *testing.T, caller command.Caller, key, sub string, args ...string) *recorder {
	t.Helper()
	res := f.reg.Resolve(key, sub)
	require.Equal(t, command.KindFound, res.Kind(), "resolve %s %s", key, sub)

	rec := &recorder{}
	inv := &command.Invocation{Command: res.Command(), Caller: caller, Args: args, Reply: rec}
	if sub != "" {
		inv.Group = key
	}
	require.NoError(t, res.Command().Handler(context.Background(), inv))
	return rec
}

func TestCatalogRegistered(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, []string{"help", "choose", "ping", "devdump", "roll"}, f.reg.Names())
	assert.Equal(t, command.KindGroup, f.reg.Resolve("roll", "").Kind())
	assert.Equal(t, command.KindFound, f.reg.Resolve("roll", "d").Kind())
	assert.Equal(t, command.KindFound, f.reg.Resolve("h", "").Kind())
}

func TestChoose(t *testing.T) {
	f := newFixture(t)

	rec := f.run(t, visitor, "choose", "", "a")
	assert.Equal(t, reply{text: chooseTooFew, ephemeral: true}, rec.last(t))

	rec = f.run(t, visitor, "choose", "", "a", " ", "")
	assert.Equal(t, chooseTooFew, rec.last(t).text)

	rec = f.run(t, visitor, "choose", "", "a", "b")
	assert.Equal(t, reply{text: "b 吧"}, rec.last(t))
}

func TestHelpEndToEnd(t *testing.T) {
	f := newFixture(t)

	rec := f.run(t, visitor, "help", "")
	overview := rec.last(t).view
	require.NotNil(t, overview)
	assert.False(t, overview.Ephemeral)
	require.NotNil(t, overview.Menu)
	assert.Equal(t, "help:main", overview.Menu.CustomID)

	rec = f.run(t, visitor, "help", "", "choose")
	detail := rec.last(t).view
	require.NotNil(t, detail)
	assert.Contains(t, detail.Description, "`choose`")
	assert.Contains(t, detail.Description, "`<選項1> <選項2> ...`")
	assert.Contains(t, detail.Description, "功能")

	rec = f.run(t, visitor, "help", "", "roll dice")
	assert.Contains(t, rec.last(t).view.Description, "算式")

	rec = f.run(t, visitor, "help", "", "roll")
	require.Len(t, rec.last(t).view.Fields, 2)

	rec = f.run(t, visitor, "help", "", "nothing")
	assert.Equal(t, reply{text: f.renderer.NotFound(), ephemeral: true}, rec.last(t))
}

func TestDevdumpAuthorization(t *testing.T) {
	f := newFixture(t)

	rec := f.run(t, visitor, "help", "", "devdump")
	assert.Equal(t, reply{text: f.renderer.NotFound(), ephemeral: true}, rec.last(t))

	rec = f.run(t, visitor, "devdump", "")
	assert.Equal(t, reply{text: f.renderer.NotFound(), ephemeral: true}, rec.last(t))

	rec = f.run(t, dev, "help", "", "devdump")
	require.NotNil(t, rec.last(t).view)

	f.run(t, visitor, "ping", "")
	rec = f.run(t, dev, "devdump", "")
	v := rec.last(t).view
	require.NotNil(t, v)
	assert.True(t, v.Ephemeral)
	assert.Contains(t, v.Description, "共 5 個指令，1 個指令群")
	require.Len(t, v.Fields, 2)
	assert.Contains(t, v.Fields[0].Value, "visitor#0001 ping")
	assert.Equal(t, "`slash-sync:g1`", v.Fields[1].Value)
}

func TestPingAndCoin(t *testing.T) {
	f := newFixture(t)

	rec := f.run(t, visitor, "ping", "")
	assert.Equal(t, "Pong！延遲為 42 毫秒", rec.last(t).text)

	rec = f.run(t, visitor, "roll", "coin")
	assert.Equal(t, "🪙 硬幣落下，是反面！", rec.last(t).text)
	assert.Equal(t, "roll coin", f.history.recs["g1"][len(f.history.recs["g1"])-1].Command)
}

func TestRollDice(t *testing.T) {
	f := newFixture(t)

	rec := f.run(t, visitor, "roll", "dice", "2d6+1")
	v := rec.last(t).view
	require.NotNil(t, v)
	assert.Contains(t, v.Description, "**結果**：**13**")

	rec = f.run(t, visitor, "roll", "dice")
	assert.Contains(t, rec.last(t).view.Description, "**結果**：**6**")

	rec = f.run(t, visitor, "roll", "dice", "1/0")
	assert.True(t, rec.last(t).ephemeral)
	assert.Contains(t, rec.last(t).text, "division by zero")
}

func TestSplitQuery(t *testing.T) {
	tests := []struct {
		args     []string
		key, sub string
	}{
		{nil, "", ""},
		{[]string{""}, "", ""},
		{[]string{"help"}, "help", ""},
		{[]string{"roll dice"}, "roll", "dice"},
		{[]string{"roll", "dice"}, "roll", "dice"},
		{[]string{"  roll   dice extra"}, "roll", "dice"},
	}
	for _, tc := range tests {
		key, sub := splitQuery(tc.args)
		assert.Equal(t, tc.key, key, tc.args)
		assert.Equal(t, tc.sub, sub, tc.args)
	}
}

type channelPerms struct {
	bot int64
}

func (p channelPerms) UserPermissions(string, string) (int64, error) { return 0, nil }
func (p channelPerms) BotPermissions(string) (int64, error) { return p.bot, nil }

func TestHelpNeedsEmbedLinks(t *testing.T) {
	f := newFixture(t)
	cmd := f.reg.Resolve("help", "").Command()
	require.NotNil(t, cmd.Permissions)
	assert.Equal(t, []int64{discordgo.PermissionEmbedLinks}, cmd.Permissions.Bot)

	tests := []struct {
		name    string
		bot     int64
		wantTxt string
	}{
		{"missing embed links", discordgo.PermissionSendMessages, "我沒有足夠的權限執行這個指令"},
		{"has embed links", discordgo.PermissionSendMessages | discordgo.PermissionEmbedLinks, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := middleware.WithPermissions(channelPerms{bot: tc.bot})(cmd.Handler)
			rec := &recorder{}
			require.NoError(t, h(context.Background(), &command.Invocation{Command: cmd, Caller: visitor, Reply: rec}))

			got := rec.last(t)
			assert.Equal(t, tc.wantTxt, got.text)
			if tc.wantTxt == "" {
				assert.NotNil(t, got.view)
			}
		})
	}
}
