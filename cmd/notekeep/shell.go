package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/lifecycle"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/aretw0/notekeep"
	"github.com/aretw0/notekeep/pkg/auth"
	"github.com/aretw0/notekeep/pkg/core"
	"github.com/aretw0/notekeep/pkg/view"
)

var errQuit = errors.New("quit")

const shellHelp = `Commands:
  home | search [text] | archive | tags | settings   switch view
  close-search | back                                leave search or a tag
  ls                                                 list visible notes
  open <id>                                          select a note
  new | edit                                         open a draft
  title <text> | content <text> | tag <a,b>          edit the draft
  save | cancel                                      finish the draft
  toggle-archive | rm                                act on the selection
  state                                              print session state
  login <token> | logout                             change credentials
  exit`

// shell is an interactive session. The App is rebuilt whenever the stored
// credential changes, so the mode follows login and logout.
type shell struct {
	env *env
	out io.Writer

	mu    sync.Mutex
	app   *notekeep.App
	token string
}

func newShell(ctx context.Context, e *env, out io.Writer) (*shell, error) {
	s := &shell{env: e, out: out}
	token, err := e.creds.Token(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.rebuild(ctx, token); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *shell) current() *notekeep.App {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.app
}

// rebuild starts a new session unless token is the one already in use.
func (s *shell) rebuild(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.app != nil && token == s.token {
		return nil
	}
	a, err := s.env.newApp(ctx)
	if err != nil {
		return err
	}
	s.app = a
	s.token = token
	slog.Debug("session rebuilt", "mode", a.Mode())
	return nil
}

// follow rebuilds the session on credential changes made outside the shell.
func (s *shell) follow(ctx context.Context) {
	tokens, err := s.env.creds.Watch(ctx)
	if errors.Is(err, auth.ErrWatchUnsupported) {
		slog.Debug("credential store cannot be watched")
		return
	}
	if err != nil {
		slog.Warn("failed to watch credential", "error", err)
		return
	}
	lifecycle.Go(ctx, func(ctx context.Context) error {
		for token := range tokens {
			if err := s.rebuild(ctx, token); err != nil {
				slog.Error("failed to rebuild session", "error", err)
				continue
			}
			fmt.Fprintf(s.out, "\n[%s mode]\n", core.ModeFor(token))
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		slog.Error("credential follower stopped", "error", err)
	}))
}

func (s *shell) prompt() string {
	a := s.current()
	v := a.View()
	p := fmt.Sprintf("%s:%s", a.Mode(), v.View)
	if v.Filter.Kind == core.FilterKindTag {
		p += "#" + v.Filter.Tag
	}
	if v.HasSelection() {
		p += "/" + v.SelectedID
	}
	return p + "> "
}

// exec runs one command line. It returns errQuit on exit.
func (s *shell) exec(ctx context.Context, line string) error {
	name, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	a := s.current()

	switch name {
	case "":
		return nil
	case "exit", "quit":
		return errQuit
	case "help":
		fmt.Fprintln(s.out, shellHelp)
		return nil

	case "home", "archive", "tags", "settings":
		return a.Navigate(view.View(name))
	case "search":
		if err := a.Navigate(view.Search); err != nil {
			return err
		}
		a.SetQuery(rest)
		return nil
	case "close-search":
		a.CloseSearch()
		return nil
	case "back":
		v := a.View()
		switch {
		case v.Filter.Kind == core.FilterKindTag:
			a.BackFromTag()
		case v.Query != "":
			a.BackToSearch()
		default:
			a.ClearSelection()
		}
		return nil

	case "ls":
		printNotes(s.out, a.Visible())
		return nil
	case "open":
		if rest == "" {
			return errors.New("usage: open <id>")
		}
		return a.SelectNote(ctx, rest)

	case "new":
		_, err := a.CreateNote()
		return err
	case "edit":
		n, ok := a.Selected()
		if !ok {
			return errors.New("no note selected")
		}
		_, err := a.EditNote(n.Key())
		return err
	case "title":
		return a.SetTitle(rest)
	case "content":
		return a.SetContent(rest)
	case "tag":
		return a.SetTagsText(rest)
	case "save":
		n, err := a.SaveDraft(ctx)
		if err != nil {
			return failure(a, err)
		}
		printNote(s.out, n)
		return nil
	case "cancel":
		a.CancelDraft()
		return nil

	case "toggle-archive":
		n, err := a.ToggleArchive(ctx)
		if err != nil {
			return failure(a, err)
		}
		printNote(s.out, n)
		return nil
	case "rm":
		if err := a.DeleteSelected(ctx); err != nil {
			return failure(a, err)
		}
		return nil

	case "state":
		return printJSON(s.out, a.State())

	case "login":
		if err := s.env.creds.SetToken(ctx, rest); err != nil {
			return err
		}
		return s.rebuild(ctx, strings.TrimSpace(rest))
	case "logout":
		if err := s.env.creds.Clear(ctx); err != nil {
			return err
		}
		return s.rebuild(ctx, "")
	}
	return fmt.Errorf("unknown command %q (try help)", name)
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cfg)
		if err != nil {
			return err
		}
		defer e.close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "> ",
			HistoryFile:     filepath.Join(e.dir, "history"),
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return fmt.Errorf("failed to initialize readline: %w", err)
		}
		defer rl.Close()

		sh, err := newShell(ctx, e, rl.Stdout())
		if err != nil {
			return err
		}
		sh.follow(ctx)

		for {
			rl.SetPrompt(sh.prompt())
			line, err := rl.Readline()
			if err != nil {
				if errors.Is(err, readline.ErrInterrupt) {
					continue
				}
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}

			err = sh.exec(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(rl.Stderr(), "Error: %v\n", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
