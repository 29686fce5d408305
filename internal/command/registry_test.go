package command

import (
	"errors"
	"slices"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.Register(&Command{Name: "choose", Type: TypeUtility, Description: "pick one"}))
	require.NoError(t, r.Register(&Command{Name: "help", Aliases: []string{"h", "說明"}, Type: TypeInformation}))
	require.NoError(t, r.RegisterGroup(
		&Command{Name: "roll", Type: TypeSubcommandGroup, Description: "dice"},
		&Command{Name: "dice", Aliases: []string{"d"}, Type: TypeFun},
		&Command{Name: "coin", Type: TypeFun},
	))
	return r
}

func TestResolveNameAndAliases(t *testing.T) {
	r := sampleRegistry(t)

	for _, key := range []string{"help", "h", "說明"} {
		res := r.Resolve(key, "")
		require.Equal(t, KindFound, res.Kind(), key)
		assert.Equal(t, "help", res.Command().Name)
	}

	choose := r.Resolve("choose", "")
	require.Equal(t, KindFound, choose.Kind())
	assert.Equal(t, TypeUtility, choose.Type())
}

func TestResolveNotFound(t *testing.T) {
	r := sampleRegistry(t)

	tests := []struct {
		key, sub string
	}{
		{"nonexistent-key", ""},
		{"Help", ""},
		{"hel", ""},
		{"help", "anything"},
		{"roll", "nonexistent-sub"},
		{"dice", ""},
	}
	for _, tc := range tests {
		res := r.Resolve(tc.key, tc.sub)
		assert.Equal(t, KindNotFound, res.Kind(), "%q %q", tc.key, tc.sub)
		assert.Nil(t, res.Command())
		assert.Nil(t, res.Group())
	}
}

func TestResolveGroup(t *testing.T) {
	r := sampleRegistry(t)

	res := r.Resolve("roll", "")
	require.Equal(t, KindGroup, res.Kind())
	assert.Equal(t, "roll", res.Group().Name())
	assert.Equal(t, TypeSubcommandGroup, res.Type())

	names := []string{}
	for _, c := range res.Group().Commands() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"dice", "coin"}, names)

	sub := r.Resolve("roll", "dice")
	require.Equal(t, KindFound, sub.Kind())
	assert.Equal(t, "dice", sub.Command().Name)

	alias := r.Resolve("roll", "d")
	require.Equal(t, KindFound, alias.Kind())
	assert.Same(t, sub.Command(), alias.Command())
}

func TestRegisterDottedNameCreatesGroup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Command{Name: "config set", Type: TypeUtility}))
	require.NoError(t, r.Register(&Command{Name: "config.get", Type: TypeUtility}))

	res := r.Resolve("config", "")
	require.Equal(t, KindGroup, res.Kind())
	assert.Equal(t, TypeSubcommandGroup, res.Group().Header.Type)
	assert.Len(t, res.Group().Commands(), 2)
	assert.Equal(t, KindFound, r.Resolve("config", "get").Kind())
	assert.Equal(t, 1, r.Len())
}

func TestRegisterDuplicates(t *testing.T) {
	tests := []struct {
		name string
		cmd  *Command
	}{
		{"same name", &Command{Name: "help"}},
		{"alias equals name", &Command{Name: "other", Aliases: []string{"choose"}}},
		{"alias equals alias", &Command{Name: "other", Aliases: []string{"h"}}},
		{"name equals alias", &Command{Name: "說明"}},
		{"name equals group", &Command{Name: "roll"}},
		{"self duplicate alias", &Command{Name: "twice", Aliases: []string{"t", "t"}}},
		{"duplicate subcommand", &Command{Name: "roll coin"}},
		{"subcommand under command", &Command{Name: "help me"}},
		{"name equals member alias", &Command{Name: "d"}},
		{"member alias equals name", &Command{Name: "roll again", Aliases: []string{"help"}}},
		{"member alias in another group", &Command{Name: "flip side", Aliases: []string{"d"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := sampleRegistry(t)
			before := r.Names()

			err := r.Register(tc.cmd)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDuplicateKey)

			var dup *DuplicateKeyError
			assert.True(t, errors.As(err, &dup))
			assert.Equal(t, before, r.Names())
		})
	}
}

func TestRegisterMalformedOptions(t *testing.T) {
	tests := []struct {
		name string
		cmd  *Command
	}{
		{"repeat not last", &Command{Name: "x", Options: []Option{
			{Name: "items%i", Repeat: true},
			{Name: "tail"},
		}}},
		{"duplicate option", &Command{Name: "x", Options: []Option{
			{Name: "target"},
			{Name: "target"},
		}}},
		{"empty option name", &Command{Name: "x", Options: []Option{{}}}},
		{"empty command name", &Command{}},
		{"negative cooldown", &Command{Name: "x", Cooldown: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := NewRegistry().Register(tc.cmd)
			assert.ErrorIs(t, err, ErrMalformedOption)
		})
	}

	ok := &Command{Name: "choose", Options: []Option{
		{Name: "first"},
		{Name: "選項%i", Repeat: true},
	}}
	assert.NoError(t, ok.Validate())
}

func TestIterateOrderAndFilter(t *testing.T) {
	r := sampleRegistry(t)

	var all []string
	for c := range r.Iterate(nil) {
		all = append(all, c.Name)
	}
	assert.Equal(t, []string{"choose", "help", "roll"}, all)

	var info []string
	for c := range r.Iterate(OfType(TypeInformation)) {
		info = append(info, c.Name)
	}
	assert.Equal(t, []string{"help"}, info)

	seq := r.Iterate(OfType(TypeSubcommandGroup))
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
	require.Len(t, first, 1)
	assert.Equal(t, "roll", first[0].Name)

	for range r.Iterate(nil) {
		break
	}
}

func TestUniquenessAcrossRegistry(t *testing.T) {
	r := sampleRegistry(t)

	owners := map[string]string{}
	for c := range r.Iterate(nil) {
		for _, key := range c.Keys() {
			prev, taken := owners[key]
			assert.False(t, taken, "key %q owned by %q and %q", key, prev, c.Name)
			owners[key] = c.Name
		}
	}
}

func TestTypeKeys(t *testing.T) {
	for _, typ := range Types() {
		assert.True(t, typ.Valid())
		parsed, ok := ParseType(typ.Key())
		require.True(t, ok, typ.Key())
		assert.Equal(t, typ, parsed)
	}
	_, ok := ParseType("")
	assert.False(t, ok)
	assert.False(t, TypeUnknown.Valid())
	assert.Equal(t, "", Type(200).Key())
}

func TestSlashDefinitionExpandsRepeat(t *testing.T) {
	cmd := &Command{
		Name:        "choose",
		Description: "pick",
		Options: []Option{
			{Name: "選項%i", Type: discordgo.ApplicationCommandOptionString, Required: true, Repeat: true},
		},
	}
	def := cmd.SlashDefinition()
	require.Len(t, def.Options, MaxRepeat)
	assert.Equal(t, "選項1", def.Options[0].Name)
	assert.True(t, def.Options[0].Required)
	assert.Equal(t, "選項2", def.Options[1].Name)
	assert.False(t, def.Options[1].Required)
	assert.Equal(t, discordgo.ChatApplicationCommand, def.Type)
}

func TestGroupSlashDefinition(t *testing.T) {
	r := sampleRegistry(t)
	defs := r.SlashDefinitions()
	require.Len(t, defs, 3)

	roll := defs[2]
	assert.Equal(t, "roll", roll.Name)
	require.Len(t, roll.Options, 2)
	assert.Equal(t, discordgo.ApplicationCommandOptionSubCommand, roll.Options[0].Type)
	assert.Equal(t, "dice", roll.Options[0].Name)
	assert.Equal(t, "dice", roll.Options[0].Description)
}

func TestInvocationArg(t *testing.T) {
	inv := &Invocation{Args: []string{"a", "b"}}
	assert.Equal(t, "b", inv.Arg(1))
	assert.Equal(t, "", inv.Arg(2))
	assert.Equal(t, "", inv.Arg(-1))
}

func TestDeveloperSlashDefinitionIsRestricted(t *testing.T) {
	r := sampleRegistry(t)
	require.NoError(t, r.Register(&Command{Name: "devdump", Type: TypeDeveloper, Description: "dump"}))
	require.NoError(t, r.RegisterGroup(
		&Command{Name: "debug", Type: TypeDeveloper},
		&Command{Name: "cache", Type: TypeDeveloper},
	))

	defs := r.SlashDefinitions()
	require.Len(t, defs, 5)

	for _, def := range defs[:3] {
		assert.Nil(t, def.DefaultMemberPermissions, def.Name)
		assert.Nil(t, def.DMPermission, def.Name)
	}
	for _, def := range defs[3:] {
		require.NotNil(t, def.DefaultMemberPermissions, def.Name)
		assert.Equal(t, int64(0), *def.DefaultMemberPermissions, def.Name)
		require.NotNil(t, def.DMPermission, def.Name)
		assert.False(t, *def.DMPermission, def.Name)
	}
}
