package chat

import "github.com/JaimeStill/agent-hub/pkg/openapi"

type spec struct {
	Chat *openapi.Operation
}

// Spec contains the OpenAPI definition of the chat endpoint.
var Spec = spec{
	Chat: &openapi.Operation{
		Summary:     "Chat with agent",
		Description: "Relays one message to the LLM, running at most one attached tool, and records both turns",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
		},
		RequestBody: openapi.RequestBodyJSON("ChatRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Agent reply", "ChatResponse"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			502: openapi.ResponseRef("BadGateway"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"ChatRequest": {
			Type:     "object",
			Required: []string{"message"},
			Properties: map[string]*openapi.Schema{
				"message": {Type: "string", Example: "Summarize the latest PR"},
			},
		},
		"ChatResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"reply": {Type: "string"},
			},
		},
	}
}
