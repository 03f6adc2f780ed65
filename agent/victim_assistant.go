package agent

import "github.com/one-minute-gemma/one-minute-agent/model"

// NewVictimAssistant returns an agent that talks directly to the person in
// crisis. It always reasons before answering and rewrites any third-person
// phrasing in the final answer into direct address.
func NewVictimAssistant(provider model.Provider, tools ToolRunner, optFns ...func(o *Options)) *Agent {
	preset := func(o *Options) {
		o.MaxIterations = 3
		o.AlwaysReason = true
		o.ReasonTriggers = append([]string{}, assistanceTriggers...)
		o.PromptTemplate = victimAssistantPromptTemplate
		o.ToolsHeading = "AVAILABLE ASSISTANCE TOOLS"
		o.Reminder = "You are helping someone who may be scared, injured, or in crisis. Be calm, clear, and supportive."
		o.DefaultThought = "Assessing situation to provide appropriate assistance..."
		o.FinalizeAnswer = rewriteDirectAddress
	}

	return New("victim-assistant", provider, tools, append([]func(o *Options){preset}, optFns...)...)
}
