package agent

import "github.com/one-minute-gemma/one-minute-agent/model"

// NewOperator returns an agent tuned for talking to 911 operators. It reasons
// only when the exchange sounds like an emergency or an initial greeting, and
// keeps the tool loop short so dispatch information goes out fast.
func NewOperator(provider model.Provider, tools ToolRunner, optFns ...func(o *Options)) *Agent {
	preset := func(o *Options) {
		o.MaxIterations = 2
		o.AlwaysReason = false
		o.ReasonTriggers = append(append([]string{}, emergencyTriggers...), greetingTriggers...)
		o.PromptTemplate = operatorPromptTemplate
		o.ToolsHeading = "AVAILABLE EMERGENCY TOOLS"
		o.Reminder = "You are communicating with a 911 operator. Be decisive, clear, and prioritize life-saving information."
		o.DefaultThought = "Analyzing emergency situation..."
	}

	return New("operator", provider, tools, append([]func(o *Options){preset}, optFns...)...)
}
