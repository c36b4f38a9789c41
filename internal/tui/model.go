// Package tui provides the interactive feed browser.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zfogg/creatorhub/cli/pkg/api"
	clierrors "github.com/zfogg/creatorhub/cli/pkg/errors"
	"github.com/zfogg/creatorhub/cli/pkg/formatter"
	"github.com/zfogg/creatorhub/cli/pkg/optimistic"
	"github.com/zfogg/creatorhub/cli/pkg/session"
)

// Options configures the feed browser.
type Options struct {
	Context    context.Context
	Controller *optimistic.Controller
	Session    *session.State
	FeedType   string

	// Load fetches one page of the feed and seeds it into the store.
	Load func(page int) (*api.FeedResponse, error)
	// Follow flips the follow relationship with a post's author.
	Follow func(ctx context.Context, username string) (optimistic.Outcome, error)
	// Changes delivers store notifications. Nil disables live refresh.
	Changes <-chan optimistic.Change
}

// Model is the feed browser state for Bubble Tea.
type Model struct {
	ctx        context.Context
	controller *optimistic.Controller
	session    *session.State
	feedType   string
	load       func(page int) (*api.FeedResponse, error)
	follow     func(ctx context.Context, username string) (optimistic.Outcome, error)
	changes    <-chan optimistic.Change

	keys   keyMap
	help   help.Model
	styles styles

	posts    []api.Post
	selected int
	page     int
	hasMore  bool
	loading  bool
	pending  map[string]bool

	status    string
	statusErr bool

	width  int
	height int
}

// New creates a feed browser model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return Model{
		ctx:        ctx,
		controller: opts.Controller,
		session:    opts.Session,
		feedType:   opts.FeedType,
		load:       opts.Load,
		follow:     opts.Follow,
		changes:    opts.Changes,
		keys:       defaultKeyMap(),
		help:       help.New(),
		styles:     defaultStyles(),
		page:       1,
		loading:    true,
		pending:    make(map[string]bool),
	}
}

// Messages

type feedLoadedMsg struct {
	page int
	resp *api.FeedResponse
	err  error
}

type mutationMsg struct {
	key     string
	label   string
	outcome optimistic.Outcome
	err     error
}

type storeChangedMsg optimistic.Change

// Commands

func (m Model) loadCmd(page int) tea.Cmd {
	load := m.load
	return func() tea.Msg {
		resp, err := load(page)
		return feedLoadedMsg{page: page, resp: resp, err: err}
	}
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		c, ok := <-changes
		if !ok {
			return nil
		}
		return storeChangedMsg(c)
	}
}

func (m Model) toggleCmd(k, label, entityID string, action optimistic.Action) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		out := controller.Toggle(ctx, entityID, action)
		return mutationMsg{key: k, label: label, outcome: out}
	}
}

func (m Model) followCmd(k, username string) tea.Cmd {
	ctx, follow := m.ctx, m.follow
	return func() tea.Msg {
		out, err := follow(ctx, username)
		return mutationMsg{key: k, label: "Follow", outcome: out, err: err}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(1), m.waitForChange())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case feedLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setStatus(clierrors.CategorizeError(msg.err).Error(), true)
			return m, nil
		}
		if msg.page == 1 {
			m.posts = nil
			m.selected = 0
		}
		m.posts = append(m.posts, msg.resp.Posts...)
		m.page = msg.page
		m.hasMore = msg.resp.HasMore
		if len(m.posts) == 0 {
			m.setStatus("No posts in this feed.", false)
		}
		return m, nil

	case mutationMsg:
		if msg.err == nil && msg.outcome.Status == optimistic.StatusBusy {
			// the first mutation still owns the pending key and the status line
			return m, nil
		}
		delete(m.pending, msg.key)
		switch {
		case msg.err != nil:
			m.setStatus(msg.err.Error(), true)
		case !msg.outcome.OK():
			m.setStatus(clierrors.MutationError(msg.label, msg.outcome).Error(), true)
		default:
			m.setStatus(confirmation(msg.label, msg.outcome.Entity), false)
		}
		return m, nil

	case storeChangedMsg:
		// the view reads the store on every render; this only wakes it up
		return m, m.waitForChange()
	}

	return m, nil
}

// confirmation describes the settled state of a toggle
func confirmation(label string, e optimistic.Entity) string {
	switch label {
	case "Like":
		return pickText(e.Flag(optimistic.FlagLiked), "♥ Liked", "Unliked")
	case "Save":
		return pickText(e.Flag(optimistic.FlagSaved), "★ Saved", "Removed from saved")
	case "Hide":
		return pickText(e.Flag(optimistic.FlagHidden), "Hidden", "Visible again")
	case "Follow":
		name := api.UsernameFromEntityID(e.ID)
		return pickText(e.Flag(optimistic.FlagFollowing), "✓ Following "+name, "Unfollowed "+name)
	}
	return label + " done"
}

func pickText(on bool, yes, no string) string {
	if on {
		return yes
	}
	return no
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.posts)-1 {
			m.selected++
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadCmd(1)
	case key.Matches(msg, m.keys.NextPage):
		if !m.hasMore || m.loading {
			return m, nil
		}
		m.loading = true
		return m, m.loadCmd(m.page + 1)
	case key.Matches(msg, m.keys.Like):
		return m.startToggle(optimistic.ActionLike, "Like")
	case key.Matches(msg, m.keys.Save):
		return m.startToggle(optimistic.ActionSave, "Save")
	case key.Matches(msg, m.keys.Hide):
		return m.startToggle(optimistic.ActionHide, "Hide")
	case key.Matches(msg, m.keys.Follow):
		return m.startFollow()
	}
	return m, nil
}

func (m Model) current() (api.Post, bool) {
	if m.selected < 0 || m.selected >= len(m.posts) {
		return api.Post{}, false
	}
	return m.posts[m.selected], true
}

func (m Model) startToggle(action optimistic.Action, label string) (tea.Model, tea.Cmd) {
	post, ok := m.current()
	if !ok {
		return m, nil
	}
	k := post.ID + "/" + string(action)
	if m.pending[k] {
		return m, nil
	}
	m.pending[k] = true
	m.setStatus(label+"…", false)
	return m, m.toggleCmd(k, label, post.ID, action)
}

func (m Model) startFollow() (tea.Model, tea.Cmd) {
	post, ok := m.current()
	if !ok {
		return m, nil
	}
	if post.AuthorUsername == "" || m.follow == nil {
		m.setStatus("This post has no author to follow", true)
		return m, nil
	}
	k := api.FollowEntityID(post.AuthorUsername) + "/" + string(optimistic.ActionFollow)
	if m.pending[k] {
		return m, nil
	}
	m.pending[k] = true
	m.setStatus("Follow…", false)
	return m, m.followCmd(k, post.AuthorUsername)
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.loading && len(m.posts) == 0 {
		b.WriteString(m.styles.Muted.Render("Loading..."))
		b.WriteString("\n")
	}

	first, last := m.visibleRange()
	for i := first; i < last; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}
	if m.hasMore {
		b.WriteString(m.styles.Muted.Render("  n: load more"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderHeader() string {
	title := fmt.Sprintf("CreatorHub · %s · page %d", m.feedType, m.page)
	if m.loading {
		title += " · loading"
	}
	if m.session != nil {
		if snap := m.session.Snapshot(); snap.LoggedIn {
			title += " · @" + snap.Username
		}
	}
	return m.styles.Header.Render(title)
}

// visibleRange keeps the selection on screen when the feed is taller than the
// terminal
func (m Model) visibleRange() (int, int) {
	rows := len(m.posts)
	capacity := m.height - 7
	if m.height == 0 || capacity >= rows || capacity <= 0 {
		return 0, rows
	}
	first := m.selected - capacity/2
	if first < 0 {
		first = 0
	}
	if first+capacity > rows {
		first = rows - capacity
	}
	return first, first + capacity
}

func (m Model) renderRow(i int) string {
	post := m.posts[i]
	e, ok := m.controller.Store().Get(post.ID)
	if !ok {
		e = api.PostEntity(post)
	}

	like := formatter.Mark(e.Flag(optimistic.FlagLiked), "♥")
	save := formatter.Mark(e.Flag(optimistic.FlagSaved), "★")
	if i != m.selected {
		like = m.styles.Liked.Render(like)
		save = m.styles.Saved.Render(save)
	}

	title := formatter.Truncate(post.Title, 36)
	if e.Flag(optimistic.FlagHidden) {
		title = "(hidden) " + formatter.Truncate(post.Title, 27)
	}

	following := ""
	if f, ok := m.controller.Store().Get(api.FollowEntityID(post.AuthorUsername)); ok && f.Flag(optimistic.FlagFollowing) {
		following = " ✓"
	}

	line := fmt.Sprintf("%s%s %-36s  @%-14s %6s likes %5s saves %5s comments%s",
		like, save, title,
		post.AuthorUsername+following,
		formatter.Count(e.Counter(optimistic.CounterLikes)),
		formatter.Count(e.Counter(optimistic.CounterSaves)),
		formatter.Count(e.Counter(optimistic.CounterComments)),
		m.pendingMarker(post),
	)

	switch {
	case i == m.selected:
		return m.styles.Selected.Render("› " + line)
	case e.Flag(optimistic.FlagHidden):
		return m.styles.Muted.Render("  " + line)
	default:
		return "  " + line
	}
}

func (m Model) pendingMarker(post api.Post) string {
	for k := range m.pending {
		if strings.HasPrefix(k, post.ID+"/") || strings.HasPrefix(k, api.FollowEntityID(post.AuthorUsername)+"/") {
			return " …"
		}
	}
	return ""
}

func (m Model) renderStatus() string {
	switch {
	case m.status == "":
		return ""
	case m.statusErr:
		return m.styles.Danger.Render(m.status)
	case len(m.pending) > 0:
		return m.styles.Pending.Render(m.status)
	default:
		return m.styles.Success.Render(m.status)
	}
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	changes := make(chan optimistic.Change, 64)
	unsubscribe := opts.Controller.Store().Subscribe(func(c optimistic.Change) {
		// a dropped notification is fine: any later one re-renders the same state
		select {
		case changes <- c:
		default:
		}
	})
	defer unsubscribe()
	opts.Changes = changes

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
