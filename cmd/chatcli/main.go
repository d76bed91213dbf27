// Command chatcli talks to the conversation engine from a terminal,
// bypassing HTTP and auth. It uses the same store and models as the server.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"solace/internal/capabilities"
	"solace/internal/config"
	"solace/internal/domain/models/chat"
	"solace/internal/domain/services"
	"solace/internal/repository/store"
	authSvc "solace/internal/service/auth"
	chatSvc "solace/internal/service/chat"
	serviceLLM "solace/internal/service/llm"

	"github.com/joho/godotenv"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

type CLI struct {
	ctx           context.Context
	sessions      services.SessionService
	conversations services.ConversationService
	scanner       *bufio.Scanner
	userEmail     string
	listed        []chat.Session
	eof           bool
	logger        *slog.Logger
}

func main() {
	email := flag.String("email", "demo@solace.local", "Email of the user to chat as")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fail("Invalid configuration: %v", err)
	}

	// Logs go to a file so they don't interleave with the conversation
	logFile, err := config.SetupLogFile("logs", cfg.LogMaxFiles)
	if err != nil {
		fail("Failed to setup logger: %v", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}))
	logger.Info("session started", "log_file", logFile.Name(), "email", *email)

	ctx := context.Background()
	db, err := store.Open(ctx, cfg, logger)
	if err != nil {
		fail("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer db.Close()

	caps, err := capabilities.NewRegistry()
	if err != nil {
		fail("Failed to load capabilities: %v", err)
	}
	gateway, _, err := serviceLLM.SetupGateway(cfg, caps, logger)
	if err != nil {
		fail("Failed to setup gateway: %v", err)
	}
	prompts, err := chatSvc.LoadPrompts()
	if err != nil {
		fail("Failed to load prompts: %v", err)
	}
	location, err := cfg.Location()
	if err != nil {
		fail("Failed to load time zone: %v", err)
	}

	sessionService := chatSvc.NewSessionService(db.Sessions, db.History, authSvc.NewOwnerBasedAuthorizer(db.Sessions), location, logger)
	conversationService := chatSvc.NewConversationService(
		sessionService,
		db.Sessions,
		db.History,
		gateway,
		prompts,
		chatSvc.ConversationConfig{Model: cfg.DefaultModel, TitleModel: cfg.TitleModel},
		logger,
	)

	cli := &CLI{
		ctx:           ctx,
		sessions:      sessionService,
		conversations: conversationService,
		scanner:       bufio.NewScanner(os.Stdin),
		userEmail:     *email,
		logger:        logger,
	}
	fmt.Printf("%sModel: %s | User: %s | Log: %s%s\n", colorBlue, cfg.DefaultModel, *email, logFile.Name(), colorReset)
	cli.run()
}

func fail(format string, args ...any) {
	fmt.Printf("%s"+format+"%s\n", append(append([]any{colorRed}, args...), colorReset)...)
	os.Exit(1)
}

func (cli *CLI) run() {
	for {
		fmt.Println("\n" + strings.Repeat("─", 40))
		fmt.Println("Main Menu:")
		fmt.Println("1. Start a conversation")
		fmt.Println("2. List recent sessions")
		fmt.Println("3. Continue a listed session")
		fmt.Println("4. Analyze concerns")
		fmt.Println("5. Exit")
		fmt.Print("\nSelect option (1-5): ")

		choice := cli.readLine()
		if cli.eof {
			return
		}
		fmt.Println()
		cli.logger.Debug("menu selection", "choice", choice)

		switch choice {
		case "1":
			cli.converse("")
		case "2":
			cli.listSessions()
		case "3":
			if id := cli.pickSession(); id != "" {
				cli.showHistory(id)
				cli.converse(id)
			}
		case "4":
			cli.analyze()
		case "5":
			fmt.Printf("%sGoodbye!%s\n", colorGreen, colorReset)
			return
		default:
			fmt.Printf("%sInvalid choice. Please enter 1-5.%s\n", colorYellow, colorReset)
		}
	}
}

// converse sends messages until an empty line; sessionID "" reuses or creates one
func (cli *CLI) converse(sessionID string) {
	fmt.Printf("%sEmpty line returns to the menu.%s\n", colorCyan, colorReset)
	for {
		fmt.Print("\nYou: ")
		message := cli.readLine()
		if message == "" {
			return
		}

		fmt.Printf("%sWaiting for response...%s\n", colorBlue, colorReset)
		history, err := cli.conversations.SendMessage(cli.ctx, &services.SendMessageRequest{
			UserEmail: cli.userEmail,
			QueryText: message,
			SessionID: sessionID,
		})
		if err != nil {
			cli.logger.Error("send message failed", "error", err, "session_id", sessionID)
			fmt.Printf("%sError: %v%s\n", colorRed, err, colorReset)
			return
		}

		sessionID = history.SessionID
		if len(history.Data) > 0 {
			fmt.Printf("\n%sAssistant:%s %s\n", colorGreen, colorReset, history.Data[0].ResponseText)
		}
	}
}

func (cli *CLI) listSessions() {
	grouped, err := cli.sessions.GroupedSessions(cli.ctx, cli.userEmail)
	if err != nil {
		fmt.Printf("%sError: %v%s\n", colorRed, err, colorReset)
		return
	}

	cli.listed = cli.listed[:0]
	for _, group := range []struct {
		label    string
		sessions []chat.Session
	}{
		{"Today", grouped.Today},
		{"Yesterday", grouped.Yesterday},
		{"Last week", grouped.LastWeek},
	} {
		if len(group.sessions) == 0 {
			continue
		}
		fmt.Printf("%s%s%s\n", colorCyan, group.label, colorReset)
		for i := range group.sessions {
			s := group.sessions[i]
			cli.listed = append(cli.listed, s)
			fmt.Printf("  %d. %s (%s)\n", len(cli.listed), s.DisplayTitle(), s.SessionStart.Local().Format("Mon 15:04"))
		}
	}

	if len(cli.listed) == 0 {
		fmt.Printf("%sNo sessions in the last week.%s\n", colorYellow, colorReset)
	}
}

func (cli *CLI) pickSession() string {
	if len(cli.listed) == 0 {
		cli.listSessions()
		if len(cli.listed) == 0 {
			return ""
		}
	}

	fmt.Print("\nSession number: ")
	n, err := strconv.Atoi(cli.readLine())
	if err != nil || n < 1 || n > len(cli.listed) {
		fmt.Printf("%sInvalid session number%s\n", colorYellow, colorReset)
		return ""
	}
	return cli.listed[n-1].SessionID
}

func (cli *CLI) showHistory(sessionID string) {
	session, err := cli.sessions.GetSessionWithHistory(cli.ctx, cli.userEmail, sessionID)
	if err != nil {
		fmt.Printf("%sError: %v%s\n", colorRed, err, colorReset)
		return
	}

	fmt.Printf("%s=== %s ===%s\n", colorCyan, session.Title, colorReset)
	for _, entry := range session.Data {
		fmt.Printf("\nYou: %s\n%sAssistant:%s %s\n", entry.QueryText, colorGreen, colorReset, entry.ResponseText)
	}
}

func (cli *CLI) analyze() {
	fmt.Print("Describe the concerns: ")
	text := cli.readLine()
	if text == "" {
		return
	}

	fmt.Printf("%sAnalyzing...%s\n", colorBlue, colorReset)
	resp, err := cli.conversations.Analyze(cli.ctx, &services.AnalyzeRequest{ClinicalText: text})
	if err != nil {
		fmt.Printf("%sError: %v%s\n", colorRed, err, colorReset)
		return
	}
	fmt.Printf("\n%s\n", resp.Analysis)
}

func (cli *CLI) readLine() string {
	if !cli.scanner.Scan() {
		cli.eof = true
		return ""
	}
	return strings.TrimSpace(cli.scanner.Text())
}
