package prompt

import (
	"encoding/json"
	"sort"
	"strings"

	"saarthi/saarthi/services/session"
	"saarthi/saarthi/utils/jsonutils"
	"saarthi/saarthi/utils/types"
)

const (
	userPrefix      = "User:"
	assistantPrefix = "Saarthi:"

	// routeInfoLimit caps the serialized route payload carried in a user turn.
	routeInfoLimit = 500
)

// Format serializes a session into a single generation request: the system
// prompt, one role-prefixed line per message, and an open assistant turn when
// the user spoke last.
func Format(sess session.Session) string {
	var sb strings.Builder
	if p := strings.TrimSpace(sess.SystemPrompt); p != "" {
		sb.WriteString(p)
		if len(sess.Messages) > 0 {
			sb.WriteString("\n\n")
		}
	}
	for i, m := range sess.Messages {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(rolePrefix(m.Role))
		sb.WriteString(" ")
		sb.WriteString(m.Content)
	}
	if last, ok := sess.LastMessage(); ok && last.Role == session.RoleUser {
		sb.WriteString("\n")
		sb.WriteString(assistantPrefix)
	}
	return sb.String()
}

func rolePrefix(r session.Role) string {
	if r == session.RoleAssistant {
		return assistantPrefix
	}
	return userPrefix
}

// FormatUserTurn is the text stored for a user utterance. With driving context
// attached it becomes a "Current context:" block followed by the query.
func FormatUserTurn(query string, ctx *types.NavigationContext) string {
	query = strings.TrimSpace(query)
	if ctx.IsEmpty() {
		return query
	}
	var sb strings.Builder
	sb.WriteString("Current context:\n")
	for _, kv := range contextLines(ctx) {
		sb.WriteString("- ")
		sb.WriteString(kv[0])
		sb.WriteString(": ")
		sb.WriteString(kv[1])
		sb.WriteString("\n")
	}
	sb.WriteString("\nUser query: ")
	sb.WriteString(query)
	return sb.String()
}

func contextLines(ctx *types.NavigationContext) [][2]string {
	var out [][2]string
	add := func(k, v string) {
		if v != "" {
			out = append(out, [2]string{k, v})
		}
	}
	add("current_location", ctx.CurrentLocation)
	add("origin", ctx.Origin)
	add("destination", ctx.Destination)
	add("next_turn", ctx.NextTurn)
	add("distance_remaining", ctx.DistanceRemaining)
	add("route_info", routeInfo(ctx.RouteInfo))

	keys := make([]string, 0, len(ctx.Extra))
	for k := range ctx.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		add(k, ctx.Extra[k])
	}
	return out
}

// routeInfo renders structured route data as compact JSON; plain strings pass through.
func routeInfo(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]interface{}, []interface{}:
		return jsonutils.CompactJSON(t, routeInfoLimit)
	default:
		return jsonutils.CompactJSON(t, 0)
	}
}

// Navigation builds the stateless one-shot prompt used for quick direction questions.
func Navigation(query string, ctx *types.NavigationContext) string {
	var sb strings.Builder
	sb.WriteString("You are navigating and need to provide clear, concise directions. ")
	if ctx != nil {
		if ctx.CurrentLocation != "" {
			sb.WriteString("Current location: " + ctx.CurrentLocation + ". ")
		}
		if ctx.Destination != "" {
			sb.WriteString("Destination: " + ctx.Destination + ". ")
		}
		if ctx.NextTurn != "" {
			sb.WriteString("Next turn: " + ctx.NextTurn + ". ")
		}
		if ctx.DistanceRemaining != "" {
			sb.WriteString("Distance remaining: " + ctx.DistanceRemaining + ". ")
		}
	}
	sb.WriteString("\nKeep your response under 15 words, focused on the immediate navigation need.")
	sb.WriteString("\n\nUser asks: " + strings.TrimSpace(query) + "\nNavigation response:")
	return sb.String()
}
