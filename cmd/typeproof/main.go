// Package main provides the CLI entrypoint for typeproof.
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/typeproof/typeproof/internal/binding"
	"github.com/typeproof/typeproof/internal/challenge"
	"github.com/typeproof/typeproof/internal/config"
	"github.com/typeproof/typeproof/internal/identity"
	"github.com/typeproof/typeproof/internal/leaderboard"
	"github.com/typeproof/typeproof/internal/logger"
	"github.com/typeproof/typeproof/internal/model"
	"github.com/typeproof/typeproof/internal/prover"
	"github.com/typeproof/typeproof/internal/replay"
	"github.com/typeproof/typeproof/internal/score"
	"github.com/typeproof/typeproof/internal/server"
	"github.com/typeproof/typeproof/internal/store"
	"github.com/typeproof/typeproof/internal/tui"
	"github.com/typeproof/typeproof/internal/validator"
)

const (
	defaultWords     = 12
	defaultPort      = 8972
	defaultHost      = "0.0.0.0"
	defaultRateLimit = 10
	defaultTopLimit  = 20
)

var (
	playChallengeID int64
	playPrompt      string
	playWordList    string
	playWords       int
	playPlayer      string
	playServerURL   string
	playSubmit      bool

	serveHost           string
	servePort           int
	serveRateLimit      int
	serveMaxPromptChars int
	serveMaxEvents      int
	serveMaxBodyBytes   int64
	serveMaxSealBytes   int
	serveDBPath         string
	serveProverMode     string
	serveProverBinary   string
	serveImageID        string
	serveTimeoutMs      int64

	proveChallengeID  int64
	provePlayer       string
	provePrompt       string
	proveReplay       string
	proveProverMode   string
	proveProverBinary string
	proveImageID      string

	replayPrompt  string
	replayEncoded string

	topChallengeID int64
	topLimit       int
	topDBPath      string
	topServerURL   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typeproof",
		Short:         "Provable typing races: record, prove, relay",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newProveCmd())
	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newTopCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Record a typing run and print the replay",
		Args:  cobra.NoArgs,
		RunE:  runPlayCmd,
	}
	cmd.Flags().Int64Var(&playChallengeID, "challenge", 0, "challenge id to submit against")
	cmd.Flags().StringVar(&playPrompt, "prompt", "", "prompt text (overrides the generated one)")
	cmd.Flags().StringVar(&playWordList, "wordlist", "", "word list path")
	cmd.Flags().IntVar(&playWords, "words", defaultWords, "words in a generated prompt")
	cmd.Flags().StringVar(&playPlayer, "player", "", "player key (64-char hex or account address)")
	cmd.Flags().StringVar(&playServerURL, "server-url", "", "relay server base URL")
	cmd.Flags().BoolVar(&playSubmit, "submit", false, "submit the replay to the relay server")
	return cmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "wordlist", &playWordList, fileCfg.Client.WordListPath)
	applyIntConfig(cmd, "words", &playWords, fileCfg.Client.Words)
	applyStringConfig(cmd, "player", &playPlayer, fileCfg.Client.Player)
	applyStringConfig(cmd, "server-url", &playServerURL, fileCfg.Client.ServerURL)

	ch, err := resolveChallenge(playPrompt, playWordList, playWords)
	if err != nil {
		return err
	}

	recorder := tui.NewModel(ch.Prompt)
	program := tea.NewProgram(recorder, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	res := recorder.Result()
	if res.Aborted || !res.Done {
		logErrln("Session aborted; nothing recorded.")
		return nil
	}

	encoded, err := replay.Encode(res.Events)
	if err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	encodedB64 := base64.StdEncoding.EncodeToString(encoded)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "prompt: %s\n", ch.Prompt)
	fmt.Fprintf(out, "prompt_sha256: %s\n", ch.HashHex())
	fmt.Fprintf(out, "replay: %s\n", encodedB64)
	printStats(out, res.Stats)
	if res.Stats.BelowMinDuration() {
		logErrf("Warning: duration %d ms is under the %d ms floor; a relay will reject this replay.\n",
			res.Stats.DurationMs, res.Stats.MinDurationMs)
	}

	if !playSubmit {
		return nil
	}
	if playServerURL == "" {
		return fmt.Errorf("--submit requires --server-url")
	}
	if playPlayer == "" {
		return fmt.Errorf("--submit requires --player")
	}
	return submitReplay(cmd.Context(), out, playServerURL, validator.Submission{
		ChallengeID: playChallengeID,
		Player:      playPlayer,
		Prompt:      ch.Prompt,
		Replay:      encodedB64,
	})
}

func submitReplay(ctx context.Context, out io.Writer, baseURL string, sub validator.Submission) error {
	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}
	url := strings.TrimRight(baseURL, "/") + "/api/v1/submit"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logErrf("failed to close response body: %v\n", cerr)
		}
	}()
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("relay rejected submission (%s): %s", resp.Status, strings.TrimSpace(string(respBody)))
	}
	fmt.Fprintf(out, "accepted: %s\n", strings.TrimSpace(string(respBody)))
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the relay server",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveHost, "host", defaultHost, "listen host")
	cmd.Flags().IntVar(&servePort, "port", defaultPort, "listen port")
	cmd.Flags().IntVar(&serveRateLimit, "rate-limit", defaultRateLimit, "requests per second")
	cmd.Flags().IntVar(&serveMaxPromptChars, "max-prompt-chars", validator.DefaultMaxPromptChars, "maximum prompt length")
	cmd.Flags().IntVar(&serveMaxEvents, "max-events", validator.DefaultMaxEvents, "maximum replay events")
	cmd.Flags().Int64Var(&serveMaxBodyBytes, "max-body-bytes", validator.DefaultMaxBodyBytes, "maximum request body size")
	cmd.Flags().IntVar(&serveMaxSealBytes, "max-seal-bytes", binding.DefaultMaxSealBytes, "maximum artifact seal size")
	cmd.Flags().StringVar(&serveDBPath, "db", "", "submission log path (empty: XDG default, 'off': disabled)")
	cmd.Flags().StringVar(&serveProverMode, "prover", "local", "prover backend: local or exec")
	cmd.Flags().StringVar(&serveProverBinary, "prover-binary", "", "proving host binary (exec mode)")
	cmd.Flags().StringVar(&serveImageID, "image-id", "", "guest image id declared by the local prover")
	cmd.Flags().Int64Var(&serveTimeoutMs, "prove-timeout-ms", 0, "per-proof timeout in ms (0: none)")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "host", &serveHost, fileCfg.Server.Host)
	applyIntConfig(cmd, "port", &servePort, fileCfg.Server.Port)
	applyIntConfig(cmd, "rate-limit", &serveRateLimit, fileCfg.Server.RateLimit)
	applyIntConfig(cmd, "max-prompt-chars", &serveMaxPromptChars, fileCfg.Server.MaxPromptChars)
	applyIntConfig(cmd, "max-events", &serveMaxEvents, fileCfg.Server.MaxEvents)
	applyInt64Config(cmd, "max-body-bytes", &serveMaxBodyBytes, fileCfg.Server.MaxBodyBytes)
	applyIntConfig(cmd, "max-seal-bytes", &serveMaxSealBytes, fileCfg.Server.MaxSealBytes)
	applyStringConfig(cmd, "db", &serveDBPath, fileCfg.Server.DBPath)
	applyStringConfig(cmd, "prover", &serveProverMode, fileCfg.Prover.Mode)
	applyStringConfig(cmd, "prover-binary", &serveProverBinary, fileCfg.Prover.Binary)
	applyStringConfig(cmd, "image-id", &serveImageID, fileCfg.Prover.ImageID)
	applyInt64Config(cmd, "prove-timeout-ms", &serveTimeoutMs, fileCfg.Prover.TimeoutMs)

	log := logger.New("server")

	pv, err := buildProver(serveProverMode, serveProverBinary, serveImageID)
	if err != nil {
		return err
	}

	var st *store.Store
	switch serveDBPath {
	case "off":
	default:
		path := serveDBPath
		if path == "" {
			path = config.DefaultDBPath()
		}
		st, err = store.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				log.Error("failed to close db", "error", cerr)
			}
		}()
	}

	srv := server.New(server.Options{
		Host:      serveHost,
		Port:      servePort,
		RateLimit: serveRateLimit,
		Limits: validator.Limits{
			MaxPromptChars: serveMaxPromptChars,
			MaxEvents:      serveMaxEvents,
			MaxBodyBytes:   serveMaxBodyBytes,
		},
		MaxSealBytes: serveMaxSealBytes,
		ProveTimeout: time.Duration(serveTimeoutMs) * time.Millisecond,
	}, pv, st, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	log.Info("relay server started", "host", serveHost, "port", servePort, "prover", serveProverMode)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func newProveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prove",
		Short: "Validate a replay, prove it, and check the binding",
		Args:  cobra.NoArgs,
		RunE:  runProveCmd,
	}
	cmd.Flags().Int64Var(&proveChallengeID, "challenge", 0, "challenge id")
	cmd.Flags().StringVar(&provePlayer, "player", "", "player key (64-char hex or account address)")
	cmd.Flags().StringVar(&provePrompt, "prompt", "", "prompt text")
	cmd.Flags().StringVar(&proveReplay, "replay", "", "base64 encoded replay")
	cmd.Flags().StringVar(&proveProverMode, "prover", "local", "prover backend: local or exec")
	cmd.Flags().StringVar(&proveProverBinary, "prover-binary", "", "proving host binary (exec mode)")
	cmd.Flags().StringVar(&proveImageID, "image-id", "", "guest image id declared by the local prover")
	return cmd
}

func runProveCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "player", &provePlayer, fileCfg.Client.Player)
	applyStringConfig(cmd, "prover", &proveProverMode, fileCfg.Prover.Mode)
	applyStringConfig(cmd, "prover-binary", &proveProverBinary, fileCfg.Prover.Binary)
	applyStringConfig(cmd, "image-id", &proveImageID, fileCfg.Prover.ImageID)

	pv, err := buildProver(proveProverMode, proveProverBinary, proveImageID)
	if err != nil {
		return err
	}

	v := validator.New(validator.DefaultLimits())
	req, err := v.Validate(validator.Submission{
		ChallengeID: proveChallengeID,
		Player:      provePlayer,
		Prompt:      provePrompt,
		Replay:      proveReplay,
	})
	if err != nil {
		return fmt.Errorf("submission rejected: %w", err)
	}

	art, err := pv.Prove(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("proving failed: %w", err)
	}

	checker := binding.NewChecker(binding.DefaultMaxSealBytes)
	if err := checker.Check(req, art); err != nil {
		return fmt.Errorf("binding check failed: %w", err)
	}
	if err := checker.CheckStats(req.Stats, art); err != nil {
		return fmt.Errorf("binding check failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "image_id: %s\n", art.ImageID)
	fmt.Fprintf(out, "journal_sha256: %s\n", art.JournalHash)
	fmt.Fprintf(out, "journal.challenge_id: %d\n", req.ChallengeID)
	fmt.Fprintf(out, "journal.player: %s\n", identity.Hex(req.Player))
	fmt.Fprintf(out, "journal.prompt_sha256: %s\n", hex.EncodeToString(req.PromptHash[:]))
	fmt.Fprintf(out, "journal.score: %d\n", art.Score)
	fmt.Fprintf(out, "journal.wpm_x100: %d\n", art.WpmX100)
	fmt.Fprintf(out, "journal.accuracy_bps: %d\n", art.AccuracyBps)
	fmt.Fprintf(out, "journal.duration_ms: %d\n", art.DurationMs)
	fmt.Fprintf(out, "seal: %s\n", hex.EncodeToString(art.Seal))
	return nil
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Decode a replay and score it against a prompt",
		Args:  cobra.NoArgs,
		RunE:  runReplayCmd,
	}
	cmd.Flags().StringVar(&replayPrompt, "prompt", "", "prompt text")
	cmd.Flags().StringVar(&replayEncoded, "replay", "", "base64 encoded replay")
	return cmd
}

func runReplayCmd(cmd *cobra.Command, _ []string) error {
	if replayEncoded == "" {
		return fmt.Errorf("--replay must not be empty")
	}
	data, err := base64.StdEncoding.DecodeString(replayEncoded)
	if err != nil {
		return fmt.Errorf("failed to decode replay base64: %w", err)
	}
	events, err := replay.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to decode replay: %w", err)
	}
	stats, err := score.Compute(replayPrompt, events)
	if err != nil {
		return fmt.Errorf("failed to score replay: %w", err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "events: %d\n", len(events))
	fmt.Fprintf(out, "typed: %s\n", stats.ReconstructedText)
	printStats(out, stats)
	if stats.BelowMinDuration() {
		fmt.Fprintf(out, "below_min_duration: true (floor %d ms)\n", stats.MinDurationMs)
	}
	return nil
}

func newTopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the leaderboard for a challenge",
		Args:  cobra.NoArgs,
		RunE:  runTopCmd,
	}
	cmd.Flags().Int64Var(&topChallengeID, "challenge", 0, "challenge id")
	cmd.Flags().IntVar(&topLimit, "limit", defaultTopLimit, "rows to show")
	cmd.Flags().StringVar(&topDBPath, "db", "", "submission log path")
	cmd.Flags().StringVar(&topServerURL, "server-url", "", "relay server base URL")
	return cmd
}

func runTopCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "db", &topDBPath, fileCfg.Server.DBPath)
	applyStringConfig(cmd, "server-url", &topServerURL, fileCfg.Client.ServerURL)
	if topChallengeID < 0 {
		return fmt.Errorf("--challenge must be >= 0")
	}

	var rows []model.LeaderboardRow
	if topServerURL != "" {
		rows, err = fetchLeaderboard(cmd.Context(), topServerURL, uint32(topChallengeID), topLimit)
		if err != nil {
			return err
		}
	} else {
		path := topDBPath
		if path == "" {
			path = config.DefaultDBPath()
		}
		st, err := store.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		rows, err = st.TopScores(cmd.Context(), uint32(topChallengeID), topLimit)
		if err != nil {
			return fmt.Errorf("failed to query leaderboard: %w", err)
		}
	}

	title := fmt.Sprintf("Challenge %d", topChallengeID)
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), leaderboard.Render(title, rows))
		return err
	}
	program := tea.NewProgram(leaderboard.NewModel(title, rows), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run leaderboard TUI: %w", err)
	}
	return nil
}

func fetchLeaderboard(ctx context.Context, baseURL string, challengeID uint32, limit int) ([]model.LeaderboardRow, error) {
	url := fmt.Sprintf("%s/api/v1/leaderboard/%d?limit=%d", strings.TrimRight(baseURL, "/"), challengeID, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logErrf("failed to close response body: %v\n", cerr)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("relay returned %s", resp.Status)
	}
	var payload struct {
		Rows []model.LeaderboardRow `json:"rows"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %w", err)
	}
	return payload.Rows, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func resolveChallenge(promptText, wordListPath string, wordCount int) (challenge.Challenge, error) {
	if promptText != "" {
		ch, err := challenge.New(promptText)
		if err != nil {
			return challenge.Challenge{}, fmt.Errorf("invalid prompt: %w", err)
		}
		return ch, nil
	}
	if wordCount <= 0 {
		return challenge.Challenge{}, fmt.Errorf("--words must be > 0")
	}
	path := wordListPath
	if path == "" {
		path = config.DefaultWordListPath()
	}
	words, err := challenge.LoadWords(path)
	if err != nil {
		return challenge.Challenge{}, fmt.Errorf("failed to load word list %s: %w", path, err)
	}
	gen := challenge.NewGenerator()
	ch, err := gen.Generate(words, wordCount)
	if err != nil {
		return challenge.Challenge{}, fmt.Errorf("failed to generate prompt: %w", err)
	}
	return ch, nil
}

func buildProver(mode, binary, imageID string) (prover.Prover, error) {
	switch mode {
	case "local", "":
		return prover.NewLocal(imageID), nil
	case "exec":
		if binary == "" {
			return nil, fmt.Errorf("--prover-binary is required in exec mode")
		}
		return prover.NewExec(binary), nil
	default:
		return nil, fmt.Errorf("unknown prover mode %q (use local or exec)", mode)
	}
}

func printStats(out io.Writer, stats score.Stats) {
	fmt.Fprintf(out, "score: %d\n", stats.Score)
	fmt.Fprintf(out, "wpm_x100: %d\n", stats.WpmX100)
	fmt.Fprintf(out, "accuracy_bps: %d\n", stats.AccuracyBps)
	fmt.Fprintf(out, "duration_ms: %d\n", stats.DurationMs)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typeproof configuration
# Uncomment a value to enable it. CLI flags override config values.

[server]
# host = %q
# port = %d
# rate-limit = %d          # Requests per second
# max-prompt-chars = %d
# max-events = %d
# max-body-bytes = %d
# max-seal-bytes = %d
# db-path = ""              # Submission log path ("off" disables it)

[prover]
# mode = "local"            # "local" or "exec"
# binary = ""               # Proving host binary (exec mode)
# image-id = ""             # Guest image id (local mode)
# timeout-ms = 0            # Per-proof timeout (0: none)

[client]
# server-url = ""           # Relay base URL for submit/top
# player = ""               # 64-char hex key or account address
# wordlist = ""             # Word list for generated prompts
# words = %d                # Words per generated prompt
`,
		defaultHost,
		defaultPort,
		defaultRateLimit,
		validator.DefaultMaxPromptChars,
		validator.DefaultMaxEvents,
		validator.DefaultMaxBodyBytes,
		binding.DefaultMaxSealBytes,
		defaultWords,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
