package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	oneminute "github.com/one-minute-gemma/one-minute-agent"
	"github.com/one-minute-gemma/one-minute-agent/agent"
	"github.com/one-minute-gemma/one-minute-agent/model"
)

// demoCmd runs the offline coordination walkthrough
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted two-agent coordination demo (offline)",
	Long: `Runs both agents against scripted model replies, no external services.

The victim assistant escalates a deteriorating situation while the operator
dispatches responders. Both conversations run concurrently and every message
crossing the bus is printed along with the audit log.`,
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sys := oneminute.New(func(o *oneminute.Options) {
		o.Config = cfg
		o.Logger = newLogger(cfg)
	})

	victimModel := model.NewMock(func(o *model.MockOptions) { o.ModelName = "demo-victim" })
	victimModel.Enqueue(
		`{"thought": "This needs immediate escalation to the operator", "action": "request_emergency_escalation", "actionInput": {"escalation_reason": "Victim losing consciousness", "critical_details": {"breathing": "shallow"}, "recommended_actions": ["dispatch ALS unit"]}}`,
		`{"thought": "Escalation delivered", "action": "None", "actionInput": {}}`,
		`{"answer": "Emergency services have been alerted. Help is coming, stay with me."}`,
	)

	operatorModel := model.NewMock(func(o *model.MockOptions) { o.ModelName = "demo-operator" })
	operatorModel.Enqueue(
		`{"thought": "Responders must be dispatched now", "action": "send_dispatch_update", "actionInput": {"responder_eta": 4, "responder_types": ["ambulance"], "instructions_for_victim": "Stay on your side and keep the airway clear", "dispatch_status": "en_route"}}`,
		`{"thought": "Dispatch is on the way", "action": "None", "actionInput": {}}`,
		`{"answer": "Ambulance en route, ETA 4 minutes."}`,
	)

	assistant := sys.NewVictimAssistantAgent(victimModel)
	operator := sys.NewOperatorAgent(operatorModel)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Both sides of the incident talk at the same time; the bus serializes
	// their messages.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(chatStep(gctx, assistant, "Please hurry, they are barely responding"))
	g.Go(chatStep(gctx, operator, "This is 911, what's your emergency?"))
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Println("=== Coordination Messages ===")
	for _, msg := range sys.Bus.History(0) {
		fmt.Printf("%-17s -> %-17s [%s] %s\n", msg.Sender, msg.Recipient, msg.Priority, msg.Type)
	}

	fmt.Printf("\nCritical messages: %d\n", len(sys.Bus.CriticalMessages()))

	fmt.Println("\n=== Audit Log ===")
	for _, line := range sys.Events.FormattedEntries(0) {
		fmt.Println(line)
	}

	return nil
}

// chatStep wraps one agent turn for errgroup; reasoning failures surface as
// errors so the demo exits non-zero instead of printing apologies.
func chatStep(ctx context.Context, ag *agent.Agent, input string) func() error {
	return func() error {
		resp := ag.Chat(ctx, input)
		if msg, ok := resp.Metadata["error"]; ok {
			return fmt.Errorf("%s: %v", ag.Name(), msg)
		}
		fmt.Printf("%s: %s\n", ag.Name(), resp.Content)
		return nil
	}
}
