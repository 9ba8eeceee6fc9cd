// Package agent implements the conversational actors of OrchestrAI and the
// loop that drives them. An Agent owns its conversation history and tool
// registry, declares child agents it may delegate to, and resolves all
// agent references by name through a Manager.
//
// RunConversation is the core protocol: the agent's history is sent to the
// model, the schema-validated structured response is dispatched as exactly
// one of final_answer, call_tool or delegate, results are appended back into
// history, and the cycle repeats until a final answer terminates the loop or
// the turn budget runs out. Delegation re-enters the identical loop on the
// child agent, recursively.
package agent
