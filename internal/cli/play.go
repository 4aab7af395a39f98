package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"anagram-quiz-service/internal/app"
	"anagram-quiz-service/internal/config"
	"anagram-quiz-service/internal/domain"
	"anagram-quiz-service/internal/game"
	"anagram-quiz-service/internal/infra/file"
	"anagram-quiz-service/internal/infra/memory"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const playHelp = `Type your guess and press Enter. Commands:
  :hint          reveal a letter (hard and expert only)
  :skip          next word, no score change
  :tier <name>   switch tier (easy, medium, hard, expert, all)
  :next          move on after completing a level
  :start [tier]  start over
  :save          save your score to the leaderboard
  :board         show the leaderboard
  :quit          leave`

// NewPlayCmd runs a single-player game in the terminal with a file-backed leaderboard.
func NewPlayCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			setupLogging("")

			catalog, err := loadCatalog(cmd.Context(), cfg, nil)
			if err != nil {
				return err
			}
			opts, err := gameOptions(cfg)
			if err != nil {
				return err
			}
			board := app.NewLeaderboardService(file.NewLeaderboardStore(cfg.Leaderboard.File), cfg.Leaderboard.Capacity)
			service := app.NewGameService(memory.NewSessionStore(), game.NewGenerator(catalog, nil), board, opts)
			return newTerminal(service, cmd.InOrStdin(), cmd.OutOrStdout()).run(cmd.Context())
		},
	}
}

type terminal struct {
	service *app.GameService
	in      *bufio.Scanner
	out     io.Writer
	id      string
}

func newTerminal(service *app.GameService, in io.Reader, out io.Writer) *terminal {
	return &terminal{service: service, in: bufio.NewScanner(in), out: &syncWriter{w: out}, id: "terminal"}
}

// syncWriter serializes writes from the read loop and the countdown watcher.
// Each fmt.Fprint* call is a single Write, so lines never interleave.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (t *terminal) run(ctx context.Context) error {
	state, err := t.service.Start(ctx, t.id, "")
	if err != nil {
		return err
	}
	var watcherDone <-chan struct{}
	if state.Timed {
		watcherDone = t.watchTimer(ctx)
	}
	defer func() {
		t.service.End(ctx, t.id)
		if watcherDone != nil {
			<-watcherDone
		}
	}()

	fmt.Fprintln(t.out, "Country anagrams!")
	fmt.Fprintln(t.out, playHelp)
	t.printState(state)

	for t.prompt("> ") {
		line := strings.TrimSpace(t.in.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			t.guess(ctx, line)
			continue
		}
		cmd, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
		switch strings.ToLower(cmd) {
		case "quit", "q":
			fmt.Fprintln(t.out, "Bye!")
			return nil
		case "hint":
			res, err := t.service.RequestHint(ctx, t.id)
			if err != nil {
				t.printError(err)
				continue
			}
			fmt.Fprintf(t.out, "Hint: %s\n", res.Hint)
		case "skip":
			t.printResult(t.service.Skip(ctx, t.id))
		case "tier":
			tier, err := domain.ParseTier(arg)
			if err != nil {
				t.printError(err)
				continue
			}
			t.printResult(t.service.ChangeTier(ctx, t.id, tier))
		case "next":
			t.printResult(t.service.AdvanceLevel(ctx, t.id))
		case "start":
			tier, err := optionalTier(arg)
			if err != nil {
				t.printError(err)
				continue
			}
			t.printResult(t.service.Start(ctx, t.id, tier))
		case "save":
			t.save(ctx)
		case "board":
			t.printBoard(t.service.Leaderboard(ctx))
		case "help":
			fmt.Fprintln(t.out, playHelp)
		default:
			fmt.Fprintf(t.out, "Unknown command %q, try :help\n", cmd)
		}
	}
	return t.in.Err()
}

func (t *terminal) guess(ctx context.Context, guess string) {
	res, err := t.service.SubmitGuess(ctx, t.id, guess)
	if err != nil {
		t.printError(err)
		return
	}
	if res.Verdict.Correct {
		fmt.Fprintf(t.out, "%s +%d\n", res.Message, res.Verdict.Points)
	} else {
		fmt.Fprintf(t.out, "%s -%d\n", res.Message, res.Verdict.Points)
		if res.Answer != "" {
			fmt.Fprintf(t.out, "The answer was %s.\n", res.Answer)
		}
	}
	if res.LevelComplete {
		fmt.Fprintf(t.out, "Level %s complete! Type :next to continue.\n", strings.ToUpper(string(res.State.Tier)))
	}
	t.printState(res.State)
}

func (t *terminal) save(ctx context.Context) {
	if !t.prompt("Name: ") {
		return
	}
	lb, err := t.service.SaveScore(ctx, t.id, t.in.Text())
	if err != nil {
		t.printError(err)
		return
	}
	fmt.Fprintln(t.out, "Score saved.")
	t.printBoard(lb)
}

// watchTimer reports countdown expiry; the session's own snapshots drive it.
// The returned channel closes once the watcher has stopped writing.
func (t *terminal) watchTimer(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	updates, cancel, err := t.service.Subscribe(ctx, t.id)
	if err != nil {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		defer cancel()
		for st := range updates {
			if st.Status == domain.StatusOver {
				fmt.Fprintf(t.out, "\nTime's up! Final score: %d. Type :start to play again.\n", st.Score)
			}
		}
	}()
	return done
}

func (t *terminal) prompt(p string) bool {
	fmt.Fprint(t.out, p)
	return t.in.Scan()
}

func (t *terminal) printResult(state domain.SessionState, err error) {
	if err != nil {
		t.printError(err)
		return
	}
	t.printState(state)
}

func (t *terminal) printState(state domain.SessionState) {
	fmt.Fprintf(t.out, "Tier: %s | Score: %d | Streak: %d", strings.ToUpper(string(state.Tier)), state.Score, state.ConsecutiveCorrect)
	if state.Timed {
		fmt.Fprintf(t.out, " | Time: %ds", state.RemainingSeconds)
	}
	fmt.Fprintln(t.out)
	if state.Status != domain.StatusInRound {
		return
	}
	fmt.Fprintf(t.out, "Unscramble: %s\n", state.Scrambled)
	if state.Hint != "" {
		fmt.Fprintf(t.out, "Hint: %s\n", state.Hint)
	}
}

func (t *terminal) printBoard(lb domain.Leaderboard) {
	if len(lb.Entries) == 0 {
		fmt.Fprintln(t.out, "No scores yet.")
		return
	}
	fmt.Fprintln(t.out, "Leaderboard:")
	for i, e := range lb.Entries {
		fmt.Fprintf(t.out, "%d. %s - %d\n", i+1, e.Name, e.Score)
	}
}

func (t *terminal) printError(err error) {
	switch {
	case errors.Is(err, domain.ErrHintIneligible):
		fmt.Fprintln(t.out, "Hints are only available on hard and expert.")
	case errors.Is(err, domain.ErrHintExhausted):
		fmt.Fprintln(t.out, "No more hints for this word.")
	case errors.Is(err, domain.ErrLevelComplete):
		fmt.Fprintln(t.out, "Level complete! Type :next to continue.")
	case errors.Is(err, domain.ErrSessionOver):
		fmt.Fprintln(t.out, "Time's up! Type :start to play again.")
	case errors.Is(err, domain.ErrEmptyName):
		fmt.Fprintln(t.out, "Please enter a name.")
	default:
		fmt.Fprintf(t.out, "Error: %v\n", err)
	}
}

func optionalTier(raw string) (domain.Tier, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return domain.ParseTier(raw)
}
