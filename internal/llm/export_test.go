package llm

var AgentConfigDoc = agentConfigDoc
