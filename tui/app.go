package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cinebook-cli/auth"
	"cinebook-cli/booking"
	"cinebook-cli/config"
	"cinebook-cli/model"
	"cinebook-cli/service"
	"cinebook-cli/store"
)

type appState int

const (
	stateLoadingMovies appState = iota
	stateSelectMovie
	stateLoadingShowtimes
	stateSelectShowtime
	stateLoadingInventory
	stateSelectSeats
	stateConfirm
	stateSubmitting
	stateLoadingReservations
	stateShowReservations
	stateLogin
	stateError
)

type appModel struct {
	client  *service.Client
	session *auth.Session
	logger  *log.Logger

	state     appState
	lastState appState
	err       error

	width  int
	height int

	movies    []model.Movie
	movie     model.Movie
	showtimes []model.Showtime
	showtime  model.Showtime

	movieList       list.Model
	showtimeList    list.Model
	reservationList list.Model

	inv             booking.Inventory
	selection       *booking.Selection
	cursorRow       int
	cursorSeat      int
	showSeatNumbers bool
	notice          string

	loginUser        textinput.Model
	loginPass        textinput.Model
	loginNotice      string
	loginReturnState appState

	spinner spinner.Model
}

type errMsg struct {
	err            error
	returnState    appState
	returnStateSet bool
}

type moviesMsg struct {
	movies []model.Movie
	err    error
}

type showtimesMsg struct {
	showtimes []model.Showtime
	err       error
}

type inventoryMsg struct {
	inv booking.Inventory
	err error
}

type submitMsg struct {
	reservation model.Reservation
	err         error
}

type reservationsMsg struct {
	reservations []model.Reservation
	notice       string
	err          error
}

type loginMsg struct {
	session *auth.Session
	err     error
}

type refreshMsg struct {
	session *auth.Session
	err     error
}

func New(cfg config.Config) tea.Model {
	m := appModel{
		client:    service.NewClient(nil, cfg.APIBaseURL),
		state:     stateLoadingMovies,
		selection: booking.NewSelection(),
	}

	if session, err := store.LoadSession(); err == nil {
		m.session = session
	}

	logOut := io.Writer(io.Discard)
	if f, err := store.OpenLogFile(); err == nil {
		logOut = f
	}
	m.logger = log.New(logOut, "", log.LstdFlags)

	m.movieList = newList("Now Showing")
	m.showtimeList = newList("Showtimes")
	m.reservationList = newList("My Reservations")

	m.loginUser = textinput.New()
	m.loginUser.Placeholder = "username"
	m.loginUser.CharLimit = 150
	m.loginPass = textinput.New()
	m.loginPass.Placeholder = "password"
	m.loginPass.EchoMode = textinput.EchoPassword
	m.loginPass.CharLimit = 128

	m.showSeatNumbers = true

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.fetchMoviesCmd(), m.maybeRefreshCmd(), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.state == stateLogin {
			return m.updateLogin(msg)
		}
		if m.handleFilterInput(msg) {
			return m, nil
		}
		var handled bool
		m, cmd, handled := m.handleKey(msg)
		if handled {
			return m, cmd
		}
		// fallthrough to component update
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		if msg.returnStateSet {
			m.lastState = msg.returnState
		} else {
			m.lastState = recoverStateFrom(m.state)
		}
		m.state = stateError
		return m, nil

	case moviesMsg:
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateSelectMovie)
		}
		m.movies = msg.movies
		m.movieList.SetItems(buildMovieItems(msg.movies))
		m.state = stateSelectMovie
		return m, nil

	case showtimesMsg:
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateSelectMovie)
		}
		if len(msg.showtimes) == 0 {
			return m, errWithOptionsCmd(fmt.Errorf("no showtimes scheduled for %s", m.movie.Title), stateSelectMovie)
		}
		m.showtimes = msg.showtimes
		m.showtimeList.Title = fmt.Sprintf("Showtimes • %s", m.movie.Title)
		m.showtimeList.SetItems(buildShowtimeItems(msg.showtimes))
		m.state = stateSelectShowtime
		return m, nil

	case inventoryMsg:
		if msg.err != nil {
			// Terminal for this view: only a path back to browsing.
			return m, errWithOptionsCmd(msg.err, stateSelectShowtime)
		}
		m.inv = msg.inv
		m.selection = booking.NewSelection()
		m.cursorRow, m.cursorSeat = 0, 0
		m.notice = ""
		m.state = stateSelectSeats
		return m, nil

	case submitMsg:
		// The confirmation dialog closes on both outcomes.
		if msg.err != nil {
			if errors.Is(msg.err, booking.ErrLoginRequired) || service.IsUnauthorized(msg.err) {
				return m.gotoLogin(stateSelectSeats, "Log in to finish your booking."), nil
			}
			m.notice = booking.SubmitFailureMessage(msg.err)
			m.state = stateSelectSeats
			return m, nil
		}
		m.selection.Clear()
		m.state = stateLoadingReservations
		notice := fmt.Sprintf("Booked! Reference %s", msg.reservation.BookingReference)
		return m, tea.Batch(m.fetchReservationsCmd(notice), m.spinner.Tick)

	case reservationsMsg:
		if msg.err != nil {
			if service.IsUnauthorized(msg.err) {
				return m.gotoLogin(stateSelectMovie, "Log in to see your reservations."), nil
			}
			return m, errWithOptionsCmd(msg.err, stateSelectMovie)
		}
		title := "My Reservations"
		if msg.notice != "" {
			title = fmt.Sprintf("My Reservations • %s", msg.notice)
		}
		m.reservationList.Title = title
		m.reservationList.SetItems(buildReservationItems(msg.reservations))
		m.state = stateShowReservations
		return m, nil

	case loginMsg:
		if msg.err != nil {
			if detail := service.ErrorDetail(msg.err); detail != "" {
				m.loginNotice = detail
			} else {
				m.loginNotice = "Login failed. Check your credentials and try again."
			}
			return m, nil
		}
		m.session = msg.session
		_ = store.SaveSession(m.session)
		m.loginPass.SetValue("")
		m.state = m.loginReturnState
		if m.state == stateSelectSeats {
			m.notice = "Logged in. Confirm your booking to finish."
		}
		return m, nil

	case refreshMsg:
		if msg.err != nil {
			m.logger.Printf("session refresh failed: %v", msg.err)
			m.session = nil
			_ = store.ClearSession()
			return m, nil
		}
		m.session = msg.session
		_ = store.SaveSession(m.session)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectMovie:
		m.movieList, cmd = m.movieList.Update(msg)
	case stateSelectShowtime:
		m.showtimeList, cmd = m.showtimeList.Update(msg)
	case stateShowReservations:
		m.reservationList, cmd = m.reservationList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLoadingMovies, stateLoadingShowtimes, stateLoadingInventory, stateSubmitting, stateLoadingReservations:
		return header + "\n\n" + m.loadingView()
	case stateSelectMovie:
		return header + "\n\n" + m.movieList.View()
	case stateSelectShowtime:
		return header + "\n\n" + m.showtimeList.View()
	case stateSelectSeats:
		return header + "\n\n" + m.seatMapView()
	case stateConfirm:
		return header + "\n\n" + m.confirmDialogView()
	case stateShowReservations:
		return header + "\n\n" + m.reservationList.View()
	case stateLogin:
		return header + "\n\n" + m.loginView()
	case stateError:
		return header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()) + "\n\n" + hint("Press esc to go back to browsing or ctrl+c to quit.")
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("CineBook")
	sub := []string{}
	if m.movie.Title != "" && m.state != stateSelectMovie {
		sub = append(sub, fmt.Sprintf("Movie: %s", m.movie.Title))
	}
	if m.state == stateSelectSeats || m.state == stateConfirm || m.state == stateSubmitting {
		if !m.inv.Showtime.ShowTime.IsZero() {
			sub = append(sub, fmt.Sprintf("Showtime: %s", m.inv.Showtime.ShowTime.Format("Mon Jan 2 15:04")))
		}
		if m.inv.Theater.Name != "" {
			sub = append(sub, fmt.Sprintf("Theater: %s", m.inv.Theater.Name))
		}
	}
	if name := m.session.Username(); name != "" {
		sub = append(sub, fmt.Sprintf("User: %s", name))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}
	hints := "ctrl+c quit • esc back • type to filter"
	switch m.state {
	case stateSelectMovie:
		hints = "ctrl+c quit • enter showtimes • ctrl+r my reservations • type to filter"
	case stateSelectShowtime:
		hints = "ctrl+c quit • esc back • enter pick seats • type to filter"
	case stateSelectSeats:
		hints = "arrows move • enter/space toggle seat • c confirm • n toggle numbers • esc back"
	case stateConfirm:
		hints = "enter confirm booking • esc cancel"
	case stateShowReservations:
		hints = "ctrl+c quit • esc back • type to filter"
	case stateLogin:
		hints = "tab switch field • enter submit • esc cancel"
	}
	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		next := m.goBack()
		return next, nil, true
	case "n":
		if m.state == stateSelectSeats {
			m.showSeatNumbers = !m.showSeatNumbers
			return m, nil, true
		}
	case "c":
		if m.state == stateSelectSeats {
			return m.openConfirmDialog()
		}
	case "ctrl+r":
		if m.state == stateSelectMovie {
			if !m.session.Authenticated() {
				return m.gotoLogin(stateSelectMovie, "Log in to see your reservations."), nil, true
			}
			m.state = stateLoadingReservations
			return m, tea.Batch(m.fetchReservationsCmd(""), m.spinner.Tick), true
		}
	case "up", "k", "down", "j", "left", "h", "right", "l":
		if m.state == stateSelectSeats {
			m.moveCursor(msg.String())
			return m, nil, true
		}
	}

	if msg.Type == tea.KeyEnter || msg.Type == tea.KeySpace {
		switch m.state {
		case stateSelectMovie:
			if msg.Type != tea.KeyEnter {
				break
			}
			item, ok := m.movieList.SelectedItem().(movieItem)
			if !ok {
				return m, nil, true
			}
			m.movie = item.movie
			_ = store.RememberMovie(m.movie)
			m.state = stateLoadingShowtimes
			return m, tea.Batch(m.fetchShowtimesCmd(m.movie.Id), m.spinner.Tick), true
		case stateSelectShowtime:
			if msg.Type != tea.KeyEnter {
				break
			}
			item, ok := m.showtimeList.SelectedItem().(showtimeItem)
			if !ok {
				return m, nil, true
			}
			m.showtime = item.showtime
			m.state = stateLoadingInventory
			return m, tea.Batch(m.fetchInventoryCmd(m.showtime.Id), m.spinner.Tick), true
		case stateSelectSeats:
			m.toggleSeatUnderCursor()
			return m, nil, true
		case stateConfirm:
			if msg.Type != tea.KeyEnter {
				break
			}
			if !m.session.Authenticated() {
				return m.gotoLogin(stateSelectSeats, "Log in to finish your booking."), nil, true
			}
			m.state = stateSubmitting
			return m, tea.Batch(m.submitCmd(), m.spinner.Tick), true
		}
	}
	return m, nil, false
}

func (m appModel) openConfirmDialog() (appModel, tea.Cmd, bool) {
	if m.selection.Count() == 0 {
		// Local validation only; no request goes out.
		m.notice = "Please select at least one seat."
		return m, nil, true
	}
	m.notice = ""
	m.state = stateConfirm
	return m, nil, true
}

func (m appModel) gotoLogin(returnState appState, notice string) appModel {
	m.loginReturnState = returnState
	m.loginNotice = notice
	m.loginUser.Focus()
	m.loginPass.Blur()
	m.state = stateLogin
	return m
}

func (m appModel) goBack() appModel {
	switch m.state {
	case stateSelectShowtime:
		m.state = stateSelectMovie
	case stateSelectSeats:
		// Leaving the reservation view discards the in-progress selection.
		m.selection.Clear()
		m.notice = ""
		m.state = stateSelectShowtime
	case stateConfirm:
		m.state = stateSelectSeats
	case stateShowReservations:
		m.state = stateSelectMovie
	case stateLogin:
		m.loginPass.SetValue("")
		m.state = m.loginReturnState
	case stateError:
		m.state = m.lastState
	}
	return m
}

func (m appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m.goBack(), nil
	case "tab", "shift+tab":
		if m.loginUser.Focused() {
			m.loginUser.Blur()
			m.loginPass.Focus()
		} else {
			m.loginPass.Blur()
			m.loginUser.Focus()
		}
		return m, nil
	case "enter":
		if m.loginUser.Focused() {
			m.loginUser.Blur()
			m.loginPass.Focus()
			return m, nil
		}
		username := strings.TrimSpace(m.loginUser.Value())
		password := m.loginPass.Value()
		if username == "" || password == "" {
			m.loginNotice = "Username and password are required."
			return m, nil
		}
		return m, m.loginCmd(username, password)
	}

	var cmd tea.Cmd
	if m.loginUser.Focused() {
		m.loginUser, cmd = m.loginUser.Update(msg)
	} else {
		m.loginPass, cmd = m.loginPass.Update(msg)
	}
	return m, cmd
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		// Single letters double as shortcuts outside the list states.
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateSelectMovie:
		return &m.movieList
	case stateSelectShowtime:
		return &m.showtimeList
	case stateShowReservations:
		return &m.reservationList
	default:
		return nil
	}
}

func (m appModel) isLoadingState() bool {
	return m.state == stateLoadingMovies ||
		m.state == stateLoadingShowtimes ||
		m.state == stateLoadingInventory ||
		m.state == stateSubmitting ||
		m.state == stateLoadingReservations
}

func (m appModel) loadingView() string {
	title := "Loading"
	switch m.state {
	case stateLoadingMovies:
		title = "Loading movies"
	case stateLoadingShowtimes:
		title = "Loading showtimes"
	case stateLoadingInventory:
		title = "Loading seat map"
	case stateSubmitting:
		title = "Submitting your booking"
	case stateLoadingReservations:
		title = "Loading your reservations"
	}

	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Fetching data..."))
}

func (m appModel) loginView() string {
	label := lipgloss.NewStyle().Bold(true)
	lines := []string{
		label.Render("Sign in"),
		"",
		"Username: " + m.loginUser.View(),
		"Password: " + m.loginPass.View(),
	}
	if m.loginNotice != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render(m.loginNotice))
	}
	return strings.Join(lines, "\n")
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.movieList.SetSize(m.width, h)
	m.showtimeList.SetSize(m.width, h)
	m.reservationList.SetSize(m.width, h)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errWithOptionsCmd(err error, returnState appState) tea.Cmd {
	return func() tea.Msg {
		return errMsg{
			err:            err,
			returnState:    returnState,
			returnStateSet: true,
		}
	}
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoadingMovies:
		return stateSelectMovie
	case stateLoadingShowtimes:
		return stateSelectMovie
	case stateLoadingInventory:
		return stateSelectShowtime
	case stateSubmitting:
		return stateSelectSeats
	case stateLoadingReservations:
		return stateSelectMovie
	default:
		return state
	}
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

func (m appModel) fetchMoviesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		movies, err := m.client.ListMovies(ctx)
		return moviesMsg{movies: movies, err: err}
	}
}

func (m appModel) fetchShowtimesCmd(movieID int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		showtimes, err := m.client.ListShowtimesByMovie(ctx, movieID)
		if service.IsNotFound(err) {
			return showtimesMsg{showtimes: nil, err: nil}
		}
		return showtimesMsg{showtimes: showtimes, err: err}
	}
}

func (m appModel) fetchInventoryCmd(showtimeID int) tea.Cmd {
	session := m.session
	logger := m.logger
	return func() tea.Msg {
		ctx := context.Background()
		inv, err := booking.LoadInventory(ctx, m.client, session, showtimeID, storeLayoutCache{}, logger)
		return inventoryMsg{inv: inv, err: err}
	}
}

func (m appModel) submitCmd() tea.Cmd {
	session := m.session
	showtimeID := m.inv.Showtime.Id
	selection := m.selection
	return func() tea.Msg {
		ctx := context.Background()
		reservation, err := booking.Submit(ctx, m.client, session, showtimeID, selection)
		return submitMsg{reservation: reservation, err: err}
	}
}

func (m appModel) fetchReservationsCmd(notice string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		ctx := context.Background()
		reservations, err := m.client.ListReservations(ctx, session)
		return reservationsMsg{reservations: reservations, notice: notice, err: err}
	}
}

func (m appModel) loginCmd(username string, password string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		session, err := m.client.Login(ctx, username, password)
		return loginMsg{session: session, err: err}
	}
}

func (m appModel) maybeRefreshCmd() tea.Cmd {
	session := m.session
	if session == nil {
		return nil
	}
	now := time.Now()
	if !session.AccessExpired(now) || session.RefreshExpired(now) {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		next, err := m.client.RefreshSession(ctx, session)
		return refreshMsg{session: next, err: err}
	}
}

// storeLayoutCache adapts the store package to the loader's cache interface.
type storeLayoutCache struct{}

func (storeLayoutCache) Load(theaterID int) (model.Theater, []model.Seat, bool) {
	theater, seats, fresh, err := store.LoadTheaterLayoutCache(theaterID)
	if err != nil || !fresh {
		return model.Theater{}, nil, false
	}
	return theater, seats, true
}

func (storeLayoutCache) Save(theater model.Theater, seats []model.Seat) {
	_ = store.SaveTheaterLayoutCache(theater, seats)
}
