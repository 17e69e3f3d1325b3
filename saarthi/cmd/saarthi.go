// Command-line entrypoint: talk to Saarthi from a terminal
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"saarthi/saarthi/agents/core"
	"saarthi/saarthi/config"
	"saarthi/saarthi/services/intent"
	"saarthi/saarthi/services/llm"
	"saarthi/saarthi/services/maps"
	"saarthi/saarthi/services/prompt"
	"saarthi/saarthi/services/session"
	"saarthi/saarthi/services/traffic"
	"saarthi/saarthi/utils/color"
	"saarthi/saarthi/utils/jsonutils"
	"saarthi/saarthi/utils/logging"
	"saarthi/saarthi/utils/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	args := os.Args[1:]
	if len(args) < 1 || args[0] != "chat" {
		fmt.Println("Saarthi CLI usage:")
		fmt.Println("  saarthi chat [destination]   # Start a conversation, optionally with a destination set")
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		fmt.Println(color.ColorError("could not open logs: " + err.Error()))
		os.Exit(1)
	}
	defer logging.Sync()

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		fmt.Println(color.ColorError(err.Error()))
		os.Exit(1)
	}
	systemPrompt := profile.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = prompt.DefaultSystemPrompt
	}

	mapsClient := maps.NewClient(cfg.GoogleMapsAPIKey)
	reporter := traffic.NewReporter(mapsClient)
	store := session.NewStore(session.WithTTL(cfg.SessionTTL), session.WithDefaultPrompt(systemPrompt))
	generator := llm.NewGenerator(context.Background(), cfg)
	orch := core.NewOrchestrator(store, generator, intent.NewClassifier(mapsClient, reporter),
		core.WithDirections(mapsClient),
		core.WithPersistFallbacks(profile.PersistFallbacks),
	)

	sessionID := fmt.Sprintf("cli-%s", uuid.New().String()[:8])
	nav := &types.NavigationContext{SessionID: sessionID}
	if len(args) > 1 {
		nav.Destination = strings.Join(args[1:], " ")
	}
	logging.AppLogger.Info("saarthi cli started", zap.String("session_id", sessionID), zap.String("provider", cfg.LLMProvider))

	fmt.Println()
	fmt.Println(color.ColorInfo("Saarthi is listening."), "Session:", sessionID)
	if generator == nil {
		fmt.Println(color.ColorWarning("No generation backend configured; replies come from navigation rules."))
	}
	fmt.Println("Type your question or 'exit' to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(color.ColorPrompt("you> "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			fmt.Println("Shubh yatra!")
			break
		}
		if line == "" {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		reply, err := orch.Respond(ctx, core.Request{Utterance: line, Context: nav})
		cancel()
		if err != nil {
			fmt.Println(color.ColorError(err.Error()))
			continue
		}
		nav.SessionID = reply.SessionID
		fmt.Println(color.ColorReply("saarthi> "+reply.Text, reply.Status == core.StatusFallback))
		if len(reply.Slots) > 0 {
			fmt.Println(color.ColorInfo(jsonutils.ToJSON(reply.Slots)))
		}
		if reply.DestinationChange != "" {
			nav.Destination = reply.DestinationChange
			if reply.NewDirections != nil && len(reply.NewDirections.Routes) > 0 {
				r := reply.NewDirections.Routes[0]
				fmt.Println(color.ColorInfo(fmt.Sprintf("  new route: %s, %s", r.Distance.Text, r.Duration.Text)))
			}
		}
	}
}
