// Package help renders the help center: the category overview, the list of
// commands in one category, and the detail of a command or group.
package help

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/keshon/hizollo/internal/command"
	"github.com/keshon/hizollo/internal/view"
)

const (
	// MaxMenuOptions is the platform limit for picker entries.
	MaxMenuOptions = 25
	// MaxOptionDescription is the platform limit for a picker entry description.
	MaxOptionDescription = 100

	menuEmoji   = "🔹"
	blankField  = "\u200b"
	footerHint  = "．使用指令時不須連同 [] 或 <> 一起輸入"
	defaultName = "HiZollo"
)

// Authorizer decides whether a caller may see commands of a category.
type Authorizer interface {
	Authorized(c command.Caller, t command.Type) bool
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(c command.Caller, t command.Type) bool

func (f AuthorizerFunc) Authorized(c command.Caller, t command.Type) bool { return f(c, t) }

// Profile provides cosmetic details of the bot itself.
type Profile interface {
	AvatarURL() string
	ThumbnailURL() string
}

// Config holds the text and color settings of rendered views.
type Config struct {
	BotName string
	Prefix  string
	Color   int
}

type cell struct {
	once sync.Once
	body *view.View
}

// Renderer builds views from a registry. Registry contents are assumed
// static once rendering starts; computed bodies live for the process.
type Renderer struct {
	reg     *command.Registry
	cfg     Config
	auth    Authorizer
	profile Profile

	overview   [2]cell
	categories [command.TypeDeveloper + 1]cell
}

// NewRenderer returns a renderer. A nil authorizer only hides the developer
// category; a nil profile leaves icons empty.
func NewRenderer(reg *command.Registry, cfg Config, auth Authorizer, profile Profile) *Renderer {
	if cfg.BotName == "" {
		cfg.BotName = defaultName
	}
	if auth == nil {
		auth = AuthorizerFunc(func(_ command.Caller, t command.Type) bool {
			return t != command.TypeDeveloper
		})
	}
	return &Renderer{reg: reg, cfg: cfg, auth: auth, profile: profile}
}

// Authorized reports whether caller may see entries of category t.
func (r *Renderer) Authorized(caller command.Caller, t command.Type) bool {
	if t != command.TypeDeveloper {
		return true
	}
	return r.auth.Authorized(caller, t)
}

// Overview lists every visible category with a category picker.
func (r *Renderer) Overview(caller command.Caller) *view.View {
	authorized := r.Authorized(caller, command.TypeDeveloper)
	idx := 0
	if authorized {
		idx = 1
	}
	c := &r.overview[idx]
	c.once.Do(func() { c.body = r.buildOverview(authorized) })
	return r.stamp(caller, c.body)
}

func (r *Renderer) buildOverview(withDeveloper bool) *view.View {
	v := &view.View{
		Description: "以下是我的指令列表，你可以使用 `" + r.cfg.Prefix + "help 指令名稱` 或 `/help 指令名稱` 來查看特定指令的使用方法",
	}
	menu := &view.Menu{
		CustomID:    MenuID(ScopeMain),
		Placeholder: "請選擇一個指令分類",
	}

	counter := 0
	for _, t := range command.Types() {
		if t == command.TypeDeveloper && !withDeveloper {
			continue
		}
		v.Fields = append(v.Fields, view.Field{
			Name:   menuEmoji + " **" + CategoryName(t) + "**",
			Value:  CategoryDescription(t),
			Inline: true,
		})
		counter++
		if counter%2 == 1 {
			v.Fields = append(v.Fields, view.Field{Name: blankField, Value: blankField, Inline: true})
		}

		menu.Options = append(menu.Options, view.MenuOption{
			Label:       CategoryName(t),
			Description: CategoryDescription(t),
			Emoji:       menuEmoji,
			Value:       t.Key(),
		})
	}
	v.Menu = menu
	return v
}

// Category lists the commands of one category with a command picker. An
// empty category yields an empty list and no picker.
func (r *Renderer) Category(caller command.Caller, t command.Type) *view.View {
	if !t.Valid() {
		return r.stamp(caller, r.buildCategory(t))
	}
	c := &r.categories[t]
	c.once.Do(func() { c.body = r.buildCategory(t) })
	return r.stamp(caller, c.body)
}

func (r *Renderer) buildCategory(t command.Type) *view.View {
	var names []string
	var options []view.MenuOption
	for cmd := range r.reg.Iterate(command.OfType(t)) {
		names = append(names, "`"+cmd.Name+"`")
		if len(options) < MaxMenuOptions {
			options = append(options, view.MenuOption{
				Label:       cmd.Name,
				Description: truncate(cmd.Description, MaxOptionDescription),
				Emoji:       menuEmoji,
				Value:       cmd.Name,
			})
		}
	}

	v := &view.View{
		Description: "以下是所有**" + CategoryName(t) + "**分類中的指令\n" +
			"你可以使用 `" + r.cfg.Prefix + "help 指令名稱` 或 `/help 指令名稱` 來查看特定指令的使用方法\n\n" +
			strings.Join(names, "．"),
	}
	if len(options) > 0 {
		v.Menu = &view.Menu{
			CustomID:    MenuID(ScopeType),
			Placeholder: "請選擇一個指令",
			Options:     options,
		}
	}
	return v
}

// Detail renders a single command.
func (r *Renderer) Detail(caller command.Caller, cmd *command.Command) *view.View {
	return r.stamp(caller, &view.View{Description: CommandDescription(cmd, false)})
}

// GroupDetail renders one block per member of a group.
func (r *Renderer) GroupDetail(caller command.Caller, groupName string, g *command.Group) *view.View {
	v := &view.View{
		Description: "這是 " + r.cfg.BotName + " 的 " + groupName + " 指令清單",
	}
	for _, sub := range g.Commands() {
		v.Fields = append(v.Fields, view.Field{
			Name:  groupName + " " + sub.Name,
			Value: "** - 指令功能：**" + sub.Description + "\n" + CommandDescription(sub, true),
		})
	}
	return r.stamp(caller, v)
}

// Resolved renders whatever a lookup produced. The second result is false
// when the user should get NotFound instead, which also covers categories
// the caller is not authorized for.
func (r *Renderer) Resolved(caller command.Caller, res command.Resolution) (*view.View, bool) {
	if !r.Authorized(caller, res.Type()) {
		return nil, false
	}
	switch res.Kind() {
	case command.KindFound:
		return r.Detail(caller, res.Command()), true
	case command.KindGroup:
		return r.GroupDetail(caller, res.Group().Name(), res.Group()), true
	default:
		return nil, false
	}
}

// NotFound is the guidance shown for unknown or hidden commands.
func (r *Renderer) NotFound() string {
	return "這個指令不存在，請使用 `" + r.cfg.Prefix + "help` 或 `/help` 查看當前的指令列表"
}

func (r *Renderer) stamp(caller command.Caller, body *view.View) *view.View {
	v := body.Clone()
	v.Author = view.Author{Name: r.cfg.BotName + " 的幫助中心"}
	v.Footer = view.Footer{Text: caller.Tag + footerHint, IconURL: caller.AvatarURL}
	v.Color = r.cfg.Color
	if r.profile != nil {
		v.Author.IconURL = r.profile.AvatarURL()
		v.Thumbnail = r.profile.ThumbnailURL()
	}
	return v
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
